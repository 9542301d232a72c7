package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	captureService "MotionTrace/internal/api/capture/service"
	"MotionTrace/pkg/detector"
	"MotionTrace/pkg/log"
	"MotionTrace/pkg/sequence"
	"MotionTrace/pkg/utils"

	"github.com/joho/godotenv"
	"golang.org/x/net/context"
)

func main() {
	inputDir := flag.String("input-dir", "videos", "directory containing input video files")
	outputDir := flag.String("output-dir", "data", "directory to write landmark sequence files to")
	minDetection := flag.Float64("min-detection-confidence", 0.5, "minimum detection confidence for the holistic model")
	minTracking := flag.Float64("min-tracking-confidence", 0.5, "minimum tracking confidence for the holistic model")
	flag.Parse()

	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("Error loading .env file: %v", err)
	}

	store, err := sequence.NewStore(*outputDir, logger)
	if err != nil {
		logger.Fatalf("Error creating sequence store: %v", err)
	}

	opts := detector.DefaultOptions()
	opts.MinDetectionConfidence = *minDetection
	opts.MinTrackingConfidence = *minTracking

	trackingDetector := detector.NewHolisticClient(opts)
	defer trackingDetector.Close()

	utilsInstance := utils.New()
	svc := captureService.NewCaptureService(logger, nil, store, trackingDetector, nil, utilsInstance)

	entries, err := os.ReadDir(*inputDir)
	if err != nil {
		logger.Fatalf("Error reading input directory %s: %v", *inputDir, err)
	}

	existing, err := store.List()
	if err != nil {
		logger.Fatalf("Error listing output directory: %v", err)
	}

	processed := 0
	skipped := 0
	failed := 0

	for _, entry := range entries {
		if entry.IsDir() || !utilsInstance.IsVideoFile(entry.Name()) {
			continue
		}

		if hasSequence(existing, utilsInstance.SequenceStem(entry.Name())) {
			logger.WithFields(log.Fields{
				"video": entry.Name(),
			}).Info("Sequence already exists, skipping")
			skipped++
			continue
		}

		videoPath := filepath.Join(*inputDir, entry.Name())

		rec, err := svc.RecordVideo(context.Background(), videoPath, entry.Name())
		if err != nil {
			// One broken video must not stop the rest of the batch.
			logger.WithFields(log.Fields{
				"video": entry.Name(),
				"error": err.Error(),
			}).Warn("Failed to process video, skipping")
			failed++
			continue
		}

		logger.WithFields(log.Fields{
			"video":  entry.Name(),
			"file":   rec.SequenceFile,
			"frames": rec.FrameCount,
		}).Info("Video processed")
		processed++
	}

	logger.WithFields(log.Fields{
		"processed": processed,
		"skipped":   skipped,
		"failed":    failed,
	}).Info("Batch extraction finished")

	if processed == 0 && failed > 0 {
		os.Exit(1)
	}
}

func hasSequence(existing []string, stem string) bool {
	for _, name := range existing {
		if strings.HasPrefix(name, stem+"_") && strings.HasSuffix(name, "_landmarks.json") {
			return true
		}
	}
	return false
}
