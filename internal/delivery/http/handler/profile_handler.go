package handler

import (
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/dto"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/response"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StudentHandler struct {
	uc usecase.StudentUsecase
}

func NewStudentHandler(uc usecase.StudentUsecase) *StudentHandler {
	return &StudentHandler{uc: uc}
}

func (h *StudentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	self := middleware.RequireRoles(user.RoleStudent)

	r.Post("/", middleware.RequireRoles(user.RoleStudent, user.RoleAdmin), h.CreateOrUpdate)
	r.Get("/email/:email", h.GetByEmail)
	r.Get("/id/:id", h.GetByID)
	r.Get("/me/dashboard", self, h.Dashboard)
	r.Get("/me/recommendations", self, h.Recommendations)
}

func (h *StudentHandler) CreateOrUpdate(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.StudentRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	s, err := h.uc.CreateOrUpdate(c.Context(), actor, usecase.StudentInput{
		Email:     req.Email,
		Skills:    req.Skills,
		Education: req.Education,
		ResumeURL: req.ResumeURL,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Student profile saved", s)
}

func (h *StudentHandler) GetByEmail(c fiber.Ctx) error {
	s, err := h.uc.GetByEmail(c.Context(), pathEmail(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}

func (h *StudentHandler) GetByID(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}

func (h *StudentHandler) Dashboard(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Dashboard(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, d)
}

func (h *StudentHandler) Recommendations(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	jobs, err := h.uc.Recommendations(c.Context(), actor, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(jobs, limit, 0))
}

type RecruiterHandler struct {
	uc usecase.RecruiterUsecase
}

func NewRecruiterHandler(uc usecase.RecruiterUsecase) *RecruiterHandler {
	return &RecruiterHandler{uc: uc}
}

func (h *RecruiterHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", middleware.RequireRoles(user.RoleRecruiter, user.RoleAdmin), h.CreateOrUpdate)
	r.Get("/email/:email", h.GetByEmail)
	r.Get("/id/:id", h.GetByID)
	r.Get("/me/dashboard", middleware.RequireRoles(user.RoleRecruiter), h.Dashboard)
}

func (h *RecruiterHandler) CreateOrUpdate(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.RecruiterRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	rec, err := h.uc.CreateOrUpdate(c.Context(), actor, usecase.RecruiterInput{
		Email:       req.Email,
		CompanyName: req.CompanyName,
		Designation: req.Designation,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Recruiter profile saved", rec)
}

func (h *RecruiterHandler) GetByEmail(c fiber.Ctx) error {
	rec, err := h.uc.GetByEmail(c.Context(), pathEmail(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rec)
}

func (h *RecruiterHandler) GetByID(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	rec, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rec)
}

func (h *RecruiterHandler) Dashboard(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Dashboard(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, d)
}
