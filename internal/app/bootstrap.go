package app

import (
	"fmt"
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/config"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/handler"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/routes"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/infrastructure/metrics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Log)
	registry(c).Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	log := logger.New(cfg.Log.Level, cfg.Log.Format).With(
		zap.String("app", cfg.App.AppName),
		zap.String("env", cfg.App.Environment),
	)

	c, err := NewContainer(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log.Named("http")).Middleware())
	app.Use(metrics.Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func registry(c *Container) *routes.Registry {
	uc := c.Usecases

	health := handler.NewHealthHandler().
		WithCheck("postgres", c.DB, true).
		WithCheck("redis", c.Cache, false)
	if c.Search.Enabled() {
		health.WithCheck("elasticsearch", c.Search, false)
	}

	return &routes.Registry{
		AuthMW:       middleware.NewAuthMiddleware(c.JWT),
		Health:       health,
		Auth:         handler.NewAuthHandler(uc.Auth),
		Users:        handler.NewUserHandler(uc.User, uc.Notifications, uc.Bookmarks),
		Jobs:         handler.NewJobsHandler(uc.Jobs),
		Applications: handler.NewApplicationHandler(uc.Applications),
		Students:     handler.NewStudentHandler(uc.Students),
		Recruiters:   handler.NewRecruiterHandler(uc.Recruiters),
		Interviews:   handler.NewInterviewHandler(uc.Interviews),
		Analytics:    handler.NewAnalyticsHandler(uc.Analytics),
		Reports:      handler.NewReportHandler(uc.Reports),
		Admin:        handler.NewAdminHandler(uc.Admin),
		WS:           ws.NewHandler(c.Hub, c.JWT, c.Log.Named("ws")),
	}
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
