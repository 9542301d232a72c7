package config

import (
	"fmt"
	"os"

	"MotionTrace/database/postgres"
	captureHandler "MotionTrace/internal/api/capture/handler"
	captureRepository "MotionTrace/internal/api/capture/repository"
	captureService "MotionTrace/internal/api/capture/service"
	datasetHandler "MotionTrace/internal/api/dataset/handler"
	datasetRepository "MotionTrace/internal/api/dataset/repository"
	datasetService "MotionTrace/internal/api/dataset/service"
	"MotionTrace/internal/middleware"
	"MotionTrace/pkg/detector"
	"MotionTrace/pkg/redis"
	"MotionTrace/pkg/s3"
	"MotionTrace/pkg/sequence"
	"MotionTrace/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine           *fiber.App
	db               *sqlx.DB
	log              *logrus.Logger
	middleware       middleware.Middleware
	validator        *validator.Validate
	utils            utils.IUtils
	handlers         []handler
	redisServer      redis.IRedis
	s3Client         s3.ItfS3
	sequenceStore    *sequence.Store
	liveDetector     detector.Detector
	trackingDetector detector.Detector
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.sequenceStore == nil {
		return nil, fmt.Errorf("sequence store is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSequenceStore(store *sequence.Store) ServerOption {
	return func(s *Server) error {
		s.sequenceStore = store
		return nil
	}
}

func WithLiveDetector(det detector.Detector) ServerOption {
	return func(s *Server) error {
		s.liveDetector = det
		return nil
	}
}

func WithTrackingDetector(det detector.Detector) ServerOption {
	return func(s *Server) error {
		s.trackingDetector = det
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func artifactDir() string {
	dir := os.Getenv("DATASET_DIR")
	if dir == "" {
		dir = "datasets"
	}
	return dir
}

func (s *Server) RegisterHandler() {
	// Capture Domain
	captureRepo := captureRepository.New(s.db, s.log)
	captureServices := captureService.NewCaptureService(s.log, captureRepo, s.sequenceStore, s.trackingDetector, s.liveDetector, s.utils)
	captureHandlers := captureHandler.New(s.log, s.validator, s.middleware, captureServices, s.utils)

	// Dataset Domain
	datasetRepo := datasetRepository.New(s.db, s.log)
	datasetServices := datasetService.NewDatasetService(s.log, datasetRepo, s.sequenceStore, s.redisServer, s.s3Client, s.utils, artifactDir())
	datasetHandlers := datasetHandler.New(s.log, s.validator, s.middleware, datasetServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, captureHandlers, datasetHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		s.closeDetectors()
		return err
	}

	return nil
}

func (s *Server) Shutdown() {
	s.closeDetectors()
	if err := s.engine.Shutdown(); err != nil {
		s.log.Errorf("Error shutting down server: %v", err)
	}
}

func (s *Server) closeDetectors() {
	if s.liveDetector != nil {
		s.liveDetector.Close()
	}
	if s.trackingDetector != nil {
		s.trackingDetector.Close()
	}
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
