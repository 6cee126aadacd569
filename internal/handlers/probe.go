package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// ReadinessCheck reports whether one dependency can serve traffic.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	checks []ReadinessCheck
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(checks ...ReadinessCheck) *ProbeHandler {
	return &ProbeHandler{checks: checks}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if every dependency check passes.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	for _, check := range h.checks {
		if err := check.Check(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  check.Name + " unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
