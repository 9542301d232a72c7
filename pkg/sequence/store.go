package sequence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrSequenceNotFound = errors.New("sequence file not found")

// Store persists recorded sequences as JSON files, one file per recording:
// an array of frames, each frame an array of feature values. Files are
// written once and never updated.
type Store struct {
	dir string
	log *logrus.Logger
}

func NewStore(dir string, log *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sequence directory %s: %w", dir, err)
	}

	return &Store{dir: dir, log: log}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Write stores frames under the given file name and returns the full path.
// Frame order is preserved exactly as given.
func (s *Store) Write(name string, frames [][]float32) (string, error) {
	path := filepath.Join(s.dir, name)

	data, err := json.Marshal(frames)
	if err != nil {
		return "", fmt.Errorf("failed to marshal sequence %s: %w", name, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write sequence %s: %w", name, err)
	}

	s.log.WithFields(logrus.Fields{
		"file":   name,
		"frames": len(frames),
	}).Info("Sequence saved")

	return path, nil
}

// Read loads a previously written sequence by file name.
func (s *Store) Read(name string) ([][]float32, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSequenceNotFound, name)
		}
		return nil, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}

	var frames [][]float32
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("failed to decode sequence %s: %w", name, err)
	}

	return frames, nil
}

// List returns the stored sequence file names sorted by name, so batch runs
// over the same directory are deterministic.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list sequence directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}

	sort.Strings(names)
	return names, nil
}

// Path resolves a sequence file name inside the store directory, rejecting
// anything that would escape it.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %s", ErrSequenceNotFound, name)
	}
	return filepath.Join(s.dir, name), nil
}
