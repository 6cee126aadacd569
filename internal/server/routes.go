package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"verbum/internal/handlers"
	"verbum/internal/handlers/api"
	"verbum/web"
)

// History is the history store as seen by the HTTP layer.
type History interface {
	api.HistoryRecorder
	api.HistoryReader
}

// Deps are the components the routes are served by.
type Deps struct {
	Screen  api.Screener
	Lexicon api.Lexicon
	History History
	Checks  []handlers.ReadinessCheck
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	pageHandler := handlers.NewPageHandler(s.Cfg)
	probeHandler := handlers.NewProbeHandler(deps.Checks...)
	synonymsHandler := api.NewSynonymsHandler(deps.Screen, deps.Lexicon, deps.History, s.log)
	wordCloudHandler := api.NewWordCloudHandler(deps.History)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Static files
	s.App.Get("/static*", static.New("", static.Config{FS: web.Static()}))

	// Frontend
	s.App.Get("/", pageHandler.Index)

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Post("/synonyms", synonymsHandler.Lookup)
	apiGroup.Get("/wordcloud", wordCloudHandler.WordCloud)
}
