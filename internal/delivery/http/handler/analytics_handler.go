package handler

import (
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/dto"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/response"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	staff := middleware.RequireRoles(user.RoleRecruiter, user.RoleAdmin)

	r.Get("/summary", middleware.RequireRoles(user.RoleAdmin), h.Summary)
	r.Get("/dashboard", staff, h.Dashboard)
	r.Get("/applications", staff, h.Applications)
	r.Get("/jobs", staff, h.Jobs)
	r.Get("/interviews", staff, h.Interviews)
	r.Get("/trends", staff, h.Trends)
}

func (h *AnalyticsHandler) Summary(c fiber.Ctx) error {
	s, err := h.uc.Summary(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}

func (h *AnalyticsHandler) Dashboard(c fiber.Ctx) error {
	d, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, d)
}

func (h *AnalyticsHandler) Applications(c fiber.Ctx) error {
	s, err := h.uc.ApplicationStats(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}

func (h *AnalyticsHandler) Jobs(c fiber.Ctx) error {
	s, err := h.uc.JobStats(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}

func (h *AnalyticsHandler) Interviews(c fiber.Ctx) error {
	s, err := h.uc.InterviewStats(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}

// Trends is shaped for chart widgets: parallel label and value arrays.
func (h *AnalyticsHandler) Trends(c fiber.Ctx) error {
	t, err := h.uc.Trends(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TrendsResponse{
		Daily:   dto.SeriesFromBuckets(t.Daily),
		Monthly: dto.SeriesFromBuckets(t.Monthly),
	})
}
