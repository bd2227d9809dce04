package handler

import (
	"context"
	"time"

	"dhruvtara/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const (
	componentOK          = "ok"
	componentUnavailable = "unavailable"
	componentDisabled    = "disabled"

	pingTimeout = 2 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness plus the state of each dependency.
// Dependencies are informational: the endpoint answers 200 while the process runs.
type HealthHandler struct {
	components map[string]Pinger
}

func NewHealthHandler(components map[string]Pinger) *HealthHandler {
	return &HealthHandler{components: components}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), pingTimeout)
	defer cancel()

	status := componentOK
	components := make(map[string]string, len(h.components))
	for name, p := range h.components {
		if p == nil {
			components[name] = componentDisabled
			continue
		}
		if err := p.Ping(ctx); err != nil {
			components[name] = componentUnavailable
			status = "degraded"
			continue
		}
		components[name] = componentOK
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"status":     status,
		"components": components,
	})
}
