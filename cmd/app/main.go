package main

import (
	"os"
	"os/signal"
	"syscall"

	"MotionTrace/internal/config"
	"MotionTrace/pkg/detector"
	"MotionTrace/pkg/log"
	"MotionTrace/pkg/redis"
	"MotionTrace/pkg/sequence"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("Error loading .env file: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New()

	store, err := sequence.NewStore(dataDir(), logger)
	if err != nil {
		logger.Fatalf("Error creating sequence store: %v", err)
	}

	// Live frames are independent snapshots, uploaded videos are tracked
	// across frames. Each mode keeps its own connection to the detection
	// service.
	liveOpts := detector.DefaultOptions()
	liveOpts.StaticImageMode = true
	liveDetector := detector.NewHolisticClient(liveOpts)

	trackingOpts := detector.DefaultOptions()
	trackingDetector := detector.NewHolisticClient(trackingOpts)

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithRedisServer(redisServer),
		config.WithSequenceStore(store),
		config.WithLiveDetector(liveDetector),
		config.WithTrackingDetector(trackingDetector),
		config.WithMiddleware(),
		config.WithS3Client(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	server.Shutdown()
}

func dataDir() string {
	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "data"
	}
	return dir
}
