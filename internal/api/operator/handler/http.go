package operatorHandler

import (
	operatorService "ProjectQRIS/internal/api/operator/service"
	"ProjectQRIS/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type OperatorHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	operatorService operatorService.Service
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	os operatorService.Service,
) *OperatorHandler {
	return &OperatorHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		operatorService: os,
	}
}

func (h *OperatorHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")

	auth.Post("/login", h.middleware.NewRateLimiter, h.Login)
	auth.Get("/profile", h.middleware.NewTokenMiddleware, h.GetProfile)
}
