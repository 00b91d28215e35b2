package handler

import (
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/dto"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/response"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/apply", middleware.RequireRoles(user.RoleStudent), h.Apply)
	r.Get("/", middleware.RequireRoles(user.RoleAdmin), h.ListAll)
	r.Get("/job/:jobId", h.ListByJob)
	r.Get("/student/:studentId", h.ListByStudent)
	r.Post("/bulk-status", middleware.RequireRoles(user.RoleRecruiter, user.RoleAdmin), h.BulkUpdateStatus)
	r.Get("/:id", h.Get)
	r.Delete("/:id", h.Withdraw)
	r.Post("/:id/status", middleware.RequireRoles(user.RoleRecruiter, user.RoleAdmin), h.UpdateStatus)
	r.Get("/:id/history", middleware.RequireRoles(user.RoleRecruiter, user.RoleAdmin), h.History)
}

// Apply takes the job id from the body or, for older clients, the jobId query parameter.
func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest("Invalid request payload", err)
		}
	}
	raw := firstNonEmpty(req.JobID, c.Query("jobId"))
	jobID, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return badRequest("Invalid job id", err)
	}

	a, err := h.uc.Apply(c.Context(), actor, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted", a)
}

func (h *ApplicationHandler) ListAll(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	limit, offset, err := paging(c)
	if err != nil {
		return err
	}

	apps, err := h.uc.ListAll(c.Context(), actor, c.Query("status"), limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(apps, limit, offset))
}

func (h *ApplicationHandler) ListByJob(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}

	apps, err := h.uc.ListByJob(c.Context(), actor, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(apps, 0, 0))
}

func (h *ApplicationHandler) ListByStudent(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	studentID, err := pathUUID(c, "studentId")
	if err != nil {
		return err
	}

	apps, err := h.uc.ListByStudent(c.Context(), actor, studentID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(apps, 0, 0))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	a, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, a)
}

func (h *ApplicationHandler) Withdraw(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Withdraw(c.Context(), actor, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application withdrawn", nil)
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	status := strings.TrimSpace(c.Query("status"))
	if status == "" {
		return badRequest("Query parameter status is required", nil)
	}

	a, err := h.uc.UpdateStatus(c.Context(), actor, id, status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application status updated", a)
}

func (h *ApplicationHandler) BulkUpdateStatus(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req dto.BulkStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	ids := make([]uuid.UUID, 0, len(req.ApplicationIDs))
	for _, raw := range req.ApplicationIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return badRequest("Invalid application id "+raw, err)
		}
		ids = append(ids, id)
	}

	res, err := h.uc.BulkUpdateStatus(c.Context(), actor, usecase.BulkStatusInput{
		ApplicationIDs: ids,
		Status:         req.Status,
		Note:           req.Note,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Bulk status update processed", res)
}

func (h *ApplicationHandler) History(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	changes, err := h.uc.History(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(changes, 0, 0))
}
