package utils

import (
	"crypto/rand"
	"errors"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateVideoFile(file *multipart.FileHeader) error
	IsVideoFile(name string) bool
	SequenceStem(sourceName string) string
	SequenceFileName(sourceName string, t time.Time) (string, error)
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return &utils{
		maxFileSize: 200 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

var videoExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
	".wmv": true,
	".flv": true,
}

func (u *utils) ValidateVideoFile(file *multipart.FileHeader) error {
	if file == nil {
		return errors.New("no file uploaded")
	}

	if file.Size > u.maxFileSize {
		return errors.New("file size exceeds limit")
	}

	contentType := file.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(file.Filename))

	if !strings.HasPrefix(contentType, "video/") && !videoExtensions[ext] {
		return errors.New("uploaded file is not a video")
	}

	return nil
}

func (u *utils) IsVideoFile(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// SequenceStem sanitizes a source file name into the stem its sequence files
// are named after.
func (u *utils) SequenceStem(sourceName string) string {
	stem := strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
	stem = unsafeFileChars.ReplaceAllString(stem, "_")
	if stem == "" {
		stem = "recording"
	}
	return stem
}

// SequenceFileName builds the persisted sequence file name for a recording:
// sanitized source stem plus a ULID for uniqueness.
func (u *utils) SequenceFileName(sourceName string, t time.Time) (string, error) {
	stem := u.SequenceStem(sourceName)

	id, err := u.NewULIDFromTimestamp(t)
	if err != nil {
		return "", err
	}

	return stem + "_" + id + "_landmarks.json", nil
}
