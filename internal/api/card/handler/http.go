package cardHandler

import (
	cardService "ProjectQRIS/internal/api/card/service"
	"ProjectQRIS/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CardHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	cardService cardService.Service
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs cardService.Service,
) *CardHandler {
	return &CardHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		cardService: cs,
	}
}

func (h *CardHandler) Start(srv fiber.Router) {
	cards := srv.Group("/cards")

	cards.Post("/batches", h.middleware.NewTokenMiddleware, h.CreateBatch)
	cards.Get("/batches", h.middleware.NewTokenMiddleware, h.GetBatches)
	cards.Get("/batches/:id", h.middleware.NewTokenMiddleware, h.GetBatchByID)

	cards.Put("/settings", h.middleware.NewTokenMiddleware, h.UpsertSettings)
	cards.Get("/settings", h.middleware.NewTokenMiddleware, h.GetSettings)
}
