package handlerUtil

import (
	"errors"

	"MotionTrace/internal/api/capture"
	"MotionTrace/internal/api/dataset"
	"MotionTrace/pkg/landmark"
	"MotionTrace/pkg/log"
	"MotionTrace/pkg/response"
	"MotionTrace/pkg/sequence"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Capture domain errors
	if errors.Is(err, capture.ErrInvalidVideoFile) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid video file")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid video file",
			"code":  "INVALID_VIDEO_FILE",
		})
	}

	if errors.Is(err, capture.ErrSourceUnavailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Video source unavailable")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Video source could not be opened",
			"code":  "SOURCE_UNAVAILABLE",
		})
	}

	if errors.Is(err, capture.ErrEmptySequence) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Recording produced no frames")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Recording produced no frames",
			"code":  "EMPTY_SEQUENCE",
		})
	}

	if errors.Is(err, sequence.ErrSequenceNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Sequence not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Sequence not found",
			"code":  "SEQUENCE_NOT_FOUND",
		})
	}

	// Landmark configuration errors
	if errors.Is(err, landmark.ErrInvalidSelection) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid landmark selection")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid landmark selection",
			"code":  "INVALID_SELECTION",
		})
	}

	if errors.Is(err, landmark.ErrInvalidMaxLen) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid max sequence length")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Max sequence length must be positive",
			"code":  "INVALID_MAX_LEN",
		})
	}

	if errors.Is(err, landmark.ErrFeatureCountMismatch) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Feature count mismatch")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Sequence frames do not match the expected feature layout",
			"code":  "FEATURE_COUNT_MISMATCH",
		})
	}

	// Dataset domain errors
	if errors.Is(err, dataset.ErrNoValidSequences) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("No valid sequences for dataset build")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "No valid sequences available to build a dataset",
			"code":  "NO_VALID_SEQUENCES",
		})
	}

	if errors.Is(err, dataset.ErrBuildNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Dataset build not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Dataset build not found",
			"code":  "BUILD_NOT_FOUND",
		})
	}

	if errors.Is(err, dataset.ErrArtifactNotAvailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Dataset artifact not available")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Dataset artifact not available for download",
			"code":  "ARTIFACT_NOT_AVAILABLE",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
