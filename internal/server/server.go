// Package server assembles the Fiber application.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gofiber/template/html/v3"
	"github.com/google/uuid"

	"verbum/internal/config"
	"verbum/internal/handlers/api"
	"verbum/web"
)

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *config.Config
	log *log.Logger
}

// New creates a new server with middleware configured.
func New(cfg *config.Config, lg *log.Logger) *Server {
	engine := html.NewFileSystem(http.FS(web.Views()), ".html")

	app := fiber.New(fiber.Config{
		AppName:      cfg.SiteTitle,
		Views:        engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: errorHandler(lg),
	})

	// Global middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.IsDev(),
	}))
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${respHeader:X-Request-ID}\n",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		MaxAge:       86400,
	}))

	// Rate limiting middleware, per IP per minute. Probes and metrics are exempt.
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Next: func(c fiber.Ctx) bool {
				switch c.Path() {
				case "/healthz", "/readyz", "/metrics":
					return true
				}
				return false
			},
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return api.JSONError(c, fiber.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			},
		}))
	}

	return &Server{
		App: app,
		Cfg: cfg,
		log: lg,
	}
}

// errorHandler maps unmatched routes to a JSON 404 and every other
// unhandled error to a generic JSON 500.
func errorHandler(lg *log.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		var e *fiber.Error
		if errors.As(err, &e) {
			switch {
			case e.Code == fiber.StatusNotFound:
				return api.JSONError(c, fiber.StatusNotFound, api.MsgNotFound)
			case e.Code < fiber.StatusInternalServerError:
				return api.JSONError(c, e.Code, e.Message)
			}
		}

		lg.Error("Unhandled request error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", requestid.FromContext(c),
			"err", err,
		)
		return api.JSONError(c, fiber.StatusInternalServerError, api.MsgInternal)
	}
}

// Start starts the server on the configured address.
func (s *Server) Start() error {
	s.log.Info("Starting server", "addr", s.Cfg.ServerAddr)
	return s.App.Listen(s.Cfg.ServerAddr, fiber.ListenConfig{
		DisableStartupMessage: true,
	})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}
