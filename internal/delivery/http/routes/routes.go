package routes

import (
	"dhruvtara/internal/delivery/http/handler"
	v1 "dhruvtara/internal/delivery/http/routes/v1"
	"dhruvtara/internal/pkg/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	health      *handler.HealthHandler
	metrics     *metrics.Metrics
	v1          v1.Handlers
	requireAuth fiber.Handler
}

func NewRegistry(health *handler.HealthHandler, m *metrics.Metrics, h v1.Handlers, requireAuth fiber.Handler) *Registry {
	return &Registry{health: health, metrics: m, v1: h, requireAuth: requireAuth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerMetrics(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerMetrics(app *fiber.App) {
	if r.metrics == nil {
		return
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(r.metrics.Registry, promhttp.HandlerOpts{})))
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1, r.requireAuth)
}
