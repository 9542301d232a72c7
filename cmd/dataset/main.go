package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	datasetService "MotionTrace/internal/api/dataset/service"
	"MotionTrace/pkg/log"
	"MotionTrace/pkg/sequence"
	"MotionTrace/pkg/utils"

	"golang.org/x/net/context"
)

func main() {
	inputDir := flag.String("input-dir", "data", "directory containing landmark sequence files")
	outputFile := flag.String("output-file", "", "path to write the dataset artifact to (default <input-dir>/dataset.npy)")
	landmarks := flag.String("landmarks", "Pose,Face,LeftHand,RightHand", "comma-separated landmark groups to include")
	maxLen := flag.Int("max-len", 30, "number of frames every sequence is normalized to")
	flag.Parse()

	logger := log.NewLogger()

	store, err := sequence.NewStore(*inputDir, logger)
	if err != nil {
		logger.Fatalf("Error opening sequence directory: %v", err)
	}

	groups := strings.Split(*landmarks, ",")
	for i := range groups {
		groups[i] = strings.TrimSpace(groups[i])
	}

	artifactDir := *inputDir
	if *outputFile != "" {
		artifactDir = filepath.Dir(*outputFile)
	}

	svc := datasetService.NewDatasetService(logger, nil, store, nil, nil, utils.New(), artifactDir)

	build, err := svc.BuildDataset(context.Background(), groups, *maxLen)
	if err != nil {
		logger.Fatalf("Dataset build failed: %v", err)
	}

	artifactPath := build.ArtifactPath
	if *outputFile != "" {
		if err := os.Rename(build.ArtifactPath, *outputFile); err != nil {
			logger.Fatalf("Error moving artifact to %s: %v", *outputFile, err)
		}
		artifactPath = *outputFile
	}

	logger.WithFields(log.Fields{
		"artifact":  artifactPath,
		"instances": build.InstanceCount,
		"max_len":   build.MaxLen,
		"width":     build.FeatureWidth,
		"skipped":   build.SkippedCount,
	}).Info("Dataset artifact written")
}
