package captureHandler

import (
	captureService "MotionTrace/internal/api/capture/service"
	"MotionTrace/internal/middleware"
	"MotionTrace/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type CaptureHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	captureService captureService.ICaptureService
	utils          utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	cs captureService.ICaptureService,
	utils utils.IUtils,
) *CaptureHandler {
	return &CaptureHandler{
		log:            log,
		validator:      validator,
		middleware:     middleware,
		captureService: cs,
		utils:          utils,
	}
}

func (h *CaptureHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	capture := srv.Group("/capture")
	capture.Post("/videos", h.UploadVideo)
	capture.Get("/sequences", h.ListSequences)
	capture.Get("/sequences/:name", h.DownloadSequence)

	live := capture.Group("/live")
	live.Use("/ws", wsMiddleware)
	live.Get("/ws", websocket.New(h.handleLiveWebSocket))
}
