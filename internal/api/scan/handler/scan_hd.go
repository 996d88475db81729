package scanHandler

import (
	"io"
	"strconv"
	"time"

	"ProjectQRIS/internal/api/scan"
	contextPkg "ProjectQRIS/pkg/context"
	"ProjectQRIS/pkg/handlerUtil"
	jwtPkg "ProjectQRIS/pkg/jwt"
	"ProjectQRIS/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

func (h *ScanHandler) ScanImage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	operator, err := jwtPkg.GetOperatorLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Invalid session")
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, scan.ErrInvalidImage, ctx.Path(), "get_form_file")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_name":  file.Filename,
		"file_size":  file.Size,
	}).Debug("Processing scan upload")

	if err := h.utils.ValidateImageFile(file); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "validate_image_file")
	}

	fileContent, err := file.Open()
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_file")
	}
	defer fileContent.Close()

	data, err := io.ReadAll(fileContent)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_file")
	}

	result, err := h.scanService.ScanImage(c, operator.ID, file.Filename, data)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "scan_image")
	}

	if !result.Result.Success {
		return errHandler.Handle(ctx, requestID, scan.ErrQRNotDetected, ctx.Path(), "scan_image")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"scan_id":    result.ID,
			"strategy":   result.Result.Strategy,
		}).Info("Scan successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *ScanHandler) GetScanByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	operator, err := jwtPkg.GetOperatorLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Invalid session")
	}

	result, err := h.scanService.GetScanByID(c, operator.ID, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_scan_by_id")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *ScanHandler) GetScanHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	operator, err := jwtPkg.GetOperatorLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Invalid session")
	}

	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))

	result, err := h.scanService.GetScanHistory(c, operator.ID, page, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_scan_history")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

// handleBulkScanWebSocket receives card photos as binary frames and
// replies with one scan result per frame, in order. Unlike the HTTP
// endpoint, decode failures are written back as a normal result with
// success=false so the client can keep its frame/result pairing.
func (h *ScanHandler) handleBulkScanWebSocket(c *websocket.Conn) {
	h.log.Info("Bulk scan WebSocket client connected")
	defer h.log.Info("Bulk scan WebSocket client disconnected")

	operatorID := c.Query("operator_id")
	if operatorID == "" {
		_ = c.WriteJSON(scan.BulkScanError{Error: "operator_id query parameter is required"})
		return
	}

	c.SetPingHandler(func(data string) error {
		h.log.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second
	frameIndex := 0

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Bulk scan WebSocket error: %v", err)
			} else {
				h.log.Info("Bulk scan WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		frameIndex++
		fileName := "bulk-" + strconv.Itoa(frameIndex)

		scanCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		result, err := h.scanService.ScanImage(scanCtx, operatorID, fileName, message)
		cancel()

		if err != nil {
			h.log.Errorf("Error processing bulk scan frame: %v", err)
			if writeErr := c.WriteJSON(scan.BulkScanError{Error: err.Error()}); writeErr != nil {
				h.log.Errorf("Error sending error response: %v", writeErr)
				break
			}
			continue
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(result); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}
