package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cybersoft/talentmatch/pkg/health"
)

// HealthHandler serves the welcome message, liveness and readiness probes.
type HealthHandler struct {
	svc     health.ReadinessUseCase
	appName string
}

func NewHealthHandler(svc health.ReadinessUseCase, appName string) *HealthHandler {
	return &HealthHandler{svc: svc, appName: appName}
}

// @Summary Welcome message
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"Message": "Welcome to " + h.appName})
}

// Healthz: basic liveness check.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {boolean} bool
// @Router  /healthz [get]
func (h *HealthHandler) Healthz(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(true)
}

// Ready: readiness check with DB ping.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} health.Report
// @Failure 503 {object} health.Report
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	r := h.svc.Report(ctx)
	status := fiber.StatusOK
	if !r.Ready {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(r)
}
