package routes

import (
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/handler"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the set of handlers mounted on the application.
// Nil handlers are skipped.
type Registry struct {
	AuthMW       *middleware.AuthMiddleware
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Jobs         *handler.JobsHandler
	Applications *handler.ApplicationHandler
	Students     *handler.StudentHandler
	Recruiters   *handler.RecruiterHandler
	Interviews   *handler.InterviewHandler
	Analytics    *handler.AnalyticsHandler
	Reports      *handler.ReportHandler
	Admin        *handler.AdminHandler
	WS           *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app.Group("/api"))
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	if r.WS != nil {
		app.Get("/ws", r.WS.HandleNotifications)
	}
}

func (r *Registry) registerAPI(api fiber.Router) {
	if r.Auth != nil {
		r.Auth.RegisterRoutes(api.Group("/auth"))
	}
	if r.AuthMW == nil {
		return
	}
	auth := r.AuthMW.Middleware()

	if r.Jobs != nil {
		r.Jobs.RegisterRoutes(api.Group("/jobPosts"), auth)
	}
	if r.Users != nil {
		r.Users.RegisterRoutes(api.Group("/users", auth))
	}
	if r.Applications != nil {
		r.Applications.RegisterRoutes(api.Group("/applications", auth))
	}
	if r.Students != nil {
		r.Students.RegisterRoutes(api.Group("/students", auth))
	}
	if r.Recruiters != nil {
		r.Recruiters.RegisterRoutes(api.Group("/recruiters", auth))
	}
	if r.Interviews != nil {
		r.Interviews.RegisterRoutes(api.Group("/interviews", auth))
	}
	if r.Analytics != nil {
		r.Analytics.RegisterRoutes(api.Group("/analytics", auth))
	}
	if r.Reports != nil {
		r.Reports.RegisterRoutes(api.Group("/reports", auth))
	}
	if r.Admin != nil {
		r.Admin.RegisterRoutes(api.Group("/admin", auth, middleware.RequireRoles(user.RoleAdmin)))
	}
}
