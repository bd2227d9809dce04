package app

import (
	"context"
	"fmt"
	"strings"

	"dhruvtara/internal/config"
	"dhruvtara/internal/delivery/http/handler"
	"dhruvtara/internal/delivery/http/middleware"
	"dhruvtara/internal/delivery/http/routes"
	v1 "dhruvtara/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application around an existing container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	accessLog := middleware.NewAccessLogMiddleware(c.Logger.Named("http"), c.Metrics)
	errMw := middleware.NewErrorMiddleware(c.Logger.Named("http"))

	app.Use(accessLog.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	authMw := middleware.NewAuthMiddleware(c.JWT, c.Auth)

	health := handler.NewHealthHandler(map[string]handler.Pinger{
		"database": c.DB,
		"redis":    c.Cache,
	})

	routes.NewRegistry(health, c.Metrics, v1.Handlers{
		Auth:       handler.NewAuthHandler(c.Auth),
		User:       handler.NewUserHandler(c.User),
		Assessment: handler.NewAssessmentHandler(c.Assessment),
		Career:     handler.NewCareerHandler(c.CareerPath),
	}, authMw.Middleware()).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
