package config

import (
	"fmt"
	"os"

	"ProjectQRIS/database/postgres"
	cardHandler "ProjectQRIS/internal/api/card/handler"
	cardRepository "ProjectQRIS/internal/api/card/repository"
	cardService "ProjectQRIS/internal/api/card/service"
	operatorHandler "ProjectQRIS/internal/api/operator/handler"
	operatorRepository "ProjectQRIS/internal/api/operator/repository"
	operatorService "ProjectQRIS/internal/api/operator/service"
	scanHandler "ProjectQRIS/internal/api/scan/handler"
	scanRepository "ProjectQRIS/internal/api/scan/repository"
	scanService "ProjectQRIS/internal/api/scan/service"
	"ProjectQRIS/internal/middleware"
	"ProjectQRIS/pkg/bcrypt"
	"ProjectQRIS/pkg/qrscan"
	"ProjectQRIS/pkg/redis"
	"ProjectQRIS/pkg/s3"
	"ProjectQRIS/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	s3Client    s3.ItfS3
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

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Operator Domain
	operatorRepo := operatorRepository.New(s.db, s.log)
	operatorServices := operatorService.New(operatorRepo, s.bcryptUtils, s.log)
	operatorHandlers := operatorHandler.New(s.log, s.validator, s.middleware, operatorServices)

	// Scan Domain
	scanner := qrscan.New(s.log)
	scanRepo := scanRepository.New(s.db, s.log)
	scanServices := scanService.New(scanRepo, scanner, s.redisServer, s.s3Client, s.utils, s.log)
	scanHandlers := scanHandler.New(s.log, s.validator, s.middleware, scanServices, s.utils)

	// Card Domain
	cardRepo := cardRepository.New(s.db, s.log)
	cardServices := cardService.New(cardRepo, scanRepo, s.utils, s.log)
	cardHandlers := cardHandler.New(s.log, s.validator, s.middleware, cardServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, operatorHandlers, scanHandlers, cardHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
