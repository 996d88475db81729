package scanHandler

import (
	scanService "ProjectQRIS/internal/api/scan/service"
	"ProjectQRIS/internal/middleware"
	"ProjectQRIS/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ScanHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	scanService scanService.Service
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss scanService.Service,
	utils utils.IUtils,
) *ScanHandler {
	return &ScanHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		scanService: ss,
		utils:       utils,
	}
}

func (h *ScanHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	scans := srv.Group("/scan")
	scans.Use("/ws", wsMiddleware)
	scans.Get("/ws", websocket.New(h.handleBulkScanWebSocket))
	scans.Get("/:id", h.middleware.NewTokenMiddleware, h.GetScanByID)

	srv.Post("/scan", h.middleware.NewTokenMiddleware, h.ScanImage)
	srv.Get("/scan", h.middleware.NewTokenMiddleware, h.GetScanHistory)
}
