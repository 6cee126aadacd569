// Package handlers serves the HTML interface and health probes.
package handlers

import (
	"github.com/gofiber/fiber/v3"

	"verbum/internal/config"
	"verbum/internal/validation"
)

// PageHandler renders the thesaurus interface.
type PageHandler struct {
	cfg *config.Config
}

// NewPageHandler creates a new page handler.
func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

// Index renders the main page.
func (h *PageHandler) Index(c fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"SiteTitle":     h.cfg.SiteTitle,
		"FilterEnabled": h.cfg.EnableProfanityFilter,
		"MaxWordLength": validation.MaxWordLength,
	})
}
