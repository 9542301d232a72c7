package datasetHandler

import (
	"time"

	"MotionTrace/internal/api/dataset"
	"MotionTrace/internal/entity"
	contextPkg "MotionTrace/pkg/context"
	"MotionTrace/pkg/handlerUtil"
	"MotionTrace/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *DatasetHandler) BuildDataset(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Minute)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing dataset build request")

	var req dataset.BuildDatasetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	build, err := h.datasetService.BuildDataset(c, req.Landmarks, req.MaxLen)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "build_dataset")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"build_id":   build.ID,
			"instances":  build.InstanceCount,
		}).Info("Dataset built successfully")
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, dataset.BuildDatasetResponse{
			ID:            build.ID,
			Status:        string(entity.BuildStatusCompleted),
			InstanceCount: build.InstanceCount,
			MaxLen:        build.MaxLen,
			FeatureWidth:  build.FeatureWidth,
			SkippedCount:  build.SkippedCount,
			ArtifactPath:  build.ArtifactPath,
			ArtifactURL:   build.ArtifactURL,
		})
	}
}

func (h *DatasetHandler) GetBuildStatus(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	buildID := ctx.Params("id")

	status, err := h.datasetService.GetBuildStatus(c, buildID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_build_status")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, dataset.BuildStatusResponse{
		ID:     buildID,
		Status: string(status),
	})
}

func (h *DatasetHandler) DownloadDataset(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	buildID := ctx.Params("id")

	url, err := h.datasetService.PresignArtifact(c, buildID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "presign_artifact")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, dataset.DownloadDatasetResponse{
		URL: url,
	})
}
