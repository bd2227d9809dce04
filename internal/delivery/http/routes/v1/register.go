package v1

import (
	"dhruvtara/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Assessment *handler.AssessmentHandler
	Career     *handler.CareerHandler
}

func Register(r fiber.Router, h Handlers, requireAuth fiber.Handler) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"), requireAuth)
	}

	protected := r.Group("", requireAuth)

	if h.User != nil {
		h.User.RegisterRoutes(protected.Group("/users"))
	}
	if h.Assessment != nil {
		h.Assessment.RegisterRoutes(protected)
	}
	if h.Career != nil {
		h.Career.RegisterRoutes(protected)
	}
}
