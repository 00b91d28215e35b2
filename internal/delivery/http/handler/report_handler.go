package handler

import (
	"context"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/response"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReportHandler struct {
	uc usecase.ReportUsecase
}

func NewReportHandler(uc usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	admin := middleware.RequireRoles(user.RoleAdmin)

	r.Get("/system-overview", admin, report(h.uc.SystemOverview))
	r.Get("/job-postings", admin, report(h.uc.JobPostings))
	r.Get("/applications", admin, report(h.uc.Applications))
	r.Get("/user-activity", admin, report(h.uc.UserActivity))
	r.Get("/popular-jobs", admin, report(h.uc.PopularJobs))
	r.Get("/recruiter-performance", admin, report(h.uc.RecruiterPerformance))
	r.Get("/comprehensive", admin, report(h.uc.Comprehensive))
}

func report[T any](build func(context.Context) (T, error)) fiber.Handler {
	return func(c fiber.Ctx) error {
		out, err := build(c.Context())
		if err != nil {
			return mapUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, out)
	}
}
