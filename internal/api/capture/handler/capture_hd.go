package captureHandler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"MotionTrace/internal/api/capture"
	contextPkg "MotionTrace/pkg/context"
	"MotionTrace/pkg/handlerUtil"
	"MotionTrace/pkg/log"
	"MotionTrace/pkg/sequence"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

func uploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

func (h *CaptureHandler) UploadVideo(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Minute)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing video upload")

	file, err := ctx.FormFile("video")
	if err != nil {
		return errHandler.Handle(ctx, requestID, capture.ErrInvalidVideoFile, ctx.Path(), "parse_video_file")
	}

	if err := h.utils.ValidateVideoFile(file); err != nil {
		return errHandler.Handle(ctx, requestID, capture.ErrInvalidVideoFile, ctx.Path(), "validate_video_file")
	}

	dir := uploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_upload_dir")
	}

	uploadPath := filepath.Join(dir, filepath.Base(file.Filename))
	if err := ctx.SaveFile(file, uploadPath); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "save_upload")
	}
	defer func() {
		if err := os.Remove(uploadPath); err != nil {
			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"file":       uploadPath,
				"error":      err.Error(),
			}).Warn("Failed to remove uploaded video")
		}
	}()

	recording, err := h.captureService.RecordVideo(c, uploadPath, file.Filename)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "record_video")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"file":       recording.SequenceFile,
			"frames":     recording.FrameCount,
		}).Info("Video processed successfully")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, capture.UploadVideoResponse{
			ID:           recording.ID,
			SequenceFile: recording.SequenceFile,
			FrameCount:   recording.FrameCount,
			DurationMS:   recording.DurationMS,
		})
	}
}

func (h *CaptureHandler) ListSequences(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	recordings, err := h.captureService.ListSequences(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_sequences")
	}

	resp := capture.ListSequencesResponse{Sequences: make([]capture.SequenceInfo, 0, len(recordings))}
	for _, rec := range recordings {
		info := capture.SequenceInfo{
			SequenceFile: rec.SequenceFile,
			SourceName:   rec.SourceName,
			FrameCount:   rec.FrameCount,
			DurationMS:   rec.DurationMS,
		}
		if !rec.CreatedAt.IsZero() {
			info.CreatedAt = rec.CreatedAt.Format(time.RFC3339)
		}
		resp.Sequences = append(resp.Sequences, info)
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, resp)
}

func (h *CaptureHandler) DownloadSequence(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	name := ctx.Params("name")

	path, err := h.captureService.SequencePath(name)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "resolve_sequence")
	}

	if _, err := os.Stat(path); err != nil {
		return errHandler.Handle(ctx, requestID, fmt.Errorf("%w: %s", sequence.ErrSequenceNotFound, name), ctx.Path(), "stat_sequence")
	}

	return ctx.Download(path, name)
}

func (h *CaptureHandler) handleLiveWebSocket(c *websocket.Conn) {
	h.log.Info("Live capture WebSocket client connected")
	defer h.log.Info("Live capture WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Live capture WebSocket error: %v", err)
			} else {
				h.log.Info("Live capture WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		landmarks, err := h.captureService.ProcessLiveFrame(message)
		if err != nil {
			// Per-frame failures are reported to the client but never end
			// the session; the next frame is processed normally.
			h.log.Errorf("Error processing live frame: %v", err)
			if writeErr := c.WriteJSON(capture.LiveFrameError{Error: err.Error()}); writeErr != nil {
				h.log.Errorf("Error sending error response: %v", writeErr)
				break
			}
			continue
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(capture.LiveFrameResponse{Landmarks: landmarks}); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}
