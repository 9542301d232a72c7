package datasetHandler

import (
	datasetService "MotionTrace/internal/api/dataset/service"
	"MotionTrace/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DatasetHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	datasetService datasetService.IDatasetService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ds datasetService.IDatasetService,
) *DatasetHandler {
	return &DatasetHandler{
		log:            log,
		validator:      validator,
		middleware:     middleware,
		datasetService: ds,
	}
}

func (h *DatasetHandler) Start(srv fiber.Router) {
	srv.Post("/datasets", h.BuildDataset)

	datasets := srv.Group("/datasets")
	datasets.Get("/:id/status", h.GetBuildStatus)
	datasets.Get("/:id/download", h.DownloadDataset)
}
