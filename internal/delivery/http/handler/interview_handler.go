package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/dto"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/response"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const defaultSlotDuration = time.Hour

type InterviewHandler struct {
	uc usecase.InterviewUsecase
}

func NewInterviewHandler(uc usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	staff := middleware.RequireRoles(user.RoleRecruiter, user.RoleAdmin)

	r.Post("/schedule", staff, h.Schedule)
	r.Get("/interviewer", staff, h.ByInterviewer)
	r.Get("/upcoming", staff, h.Upcoming)
	r.Get("/slots", staff, h.Slots)
	r.Get("/statistics", staff, h.Statistics)
	r.Get("/application/:applicationId", h.ByApplication)
	r.Put("/:id/reschedule", staff, h.Reschedule)
	r.Put("/:id/complete", staff, h.Complete)
	r.Put("/:id/confirm", h.Confirm)
	r.Delete("/:id", staff, h.Cancel)
}

func (h *InterviewHandler) Schedule(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.ScheduleInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	iv, err := h.uc.Schedule(c.Context(), actor, usecase.ScheduleInput{
		ApplicationID:    req.ApplicationID,
		Type:             req.Type,
		ScheduledAt:      req.ScheduledAt,
		EndAt:            req.EndAt,
		InterviewerEmail: req.InterviewerEmail,
		InterviewerName:  req.InterviewerName,
		Location:         req.Location,
		MeetingLink:      req.MeetingLink,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Interview scheduled", iv)
}

func (h *InterviewHandler) Reschedule(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.RescheduleInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	start, err := parseTime("scheduled_at", req.ScheduledAt)
	if err != nil {
		return err
	}
	end, err := parseTime("end_at", req.EndAt)
	if err != nil {
		return err
	}

	iv, err := h.uc.Reschedule(c.Context(), actor, id, usecase.RescheduleInput{ScheduledAt: start, EndAt: end, Reason: req.Reason})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Interview rescheduled", iv)
}

func (h *InterviewHandler) Complete(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CompleteInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	if req.Score == nil {
		return badRequest("Score is required", nil)
	}

	iv, err := h.uc.Complete(c.Context(), actor, id, usecase.CompleteInput{Score: *req.Score, Feedback: req.Feedback})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Interview completed", iv)
}

func (h *InterviewHandler) Confirm(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	iv, err := h.uc.Confirm(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Interview confirmed", iv)
}

// Cancel reads the reason from the body or the reason query parameter.
func (h *InterviewHandler) Cancel(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CancelInterviewRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return badRequest("Invalid request payload", err)
		}
	}

	iv, err := h.uc.Cancel(c.Context(), actor, id, firstNonEmpty(req.Reason, c.Query("reason")))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Interview cancelled", iv)
}

func (h *InterviewHandler) ByApplication(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	appID, err := pathUUID(c, "applicationId")
	if err != nil {
		return err
	}

	list, err := h.uc.ByApplication(c.Context(), actor, appID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(list, 0, 0))
}

func (h *InterviewHandler) ByInterviewer(c fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return badRequest("Query parameter email is required", nil)
	}

	list, err := h.uc.ByInterviewer(c.Context(), email)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(list, 0, 0))
}

func (h *InterviewHandler) Upcoming(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}

	list, err := h.uc.Upcoming(c.Context(), strings.TrimSpace(c.Query("email")), limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(list, limit, 0))
}

func (h *InterviewHandler) Slots(c fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return badRequest("Query parameter email is required", nil)
	}
	from, err := parseTime("from", c.Query("from"))
	if err != nil {
		return err
	}
	to, err := parseTime("to", c.Query("to"))
	if err != nil {
		return err
	}
	duration, err := parseDuration(c.Query("duration"))
	if err != nil {
		return err
	}

	slots, err := h.uc.AvailableSlots(c.Context(), usecase.SlotQuery{
		InterviewerEmail: email,
		From:             from,
		To:               to,
		Duration:         duration,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(slots, 0, 0))
}

func (h *InterviewHandler) Statistics(c fiber.Ctx) error {
	stats, err := h.uc.Statistics(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}

func parseTime(name, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, badRequest("Invalid "+name+", expected RFC3339", err)
	}
	return t, nil
}

// parseDuration accepts Go duration syntax or a plain number of minutes.
func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultSlotDuration, nil
	}
	if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
		return time.Duration(minutes) * time.Minute, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, badRequest("Invalid duration", err)
	}
	return d, nil
}
