package handler

import (
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/dto"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/response"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

// RegisterRoutes mounts the job board. Reads are public; writes need auth and
// a recruiter or admin role.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	writer := middleware.RequireRoles(user.RoleRecruiter, user.RoleAdmin)

	r.Get("/", h.List)
	r.Post("/", auth, writer, h.Create)
	r.Get("/jobTitle", h.byQuery("jobTitle", func(p *usecase.JobListParams, v string) { p.Title = v }))
	r.Get("/jobType", h.byQuery("jobType", func(p *usecase.JobListParams, v string) { p.Type = v }))
	r.Get("/companyName", h.byQuery("companyName", func(p *usecase.JobListParams, v string) { p.CompanyName = v }))
	r.Get("/location", h.byQuery("location", func(p *usecase.JobListParams, v string) { p.Location = v }))
	r.Get("/recruiter", h.byQuery("email", func(p *usecase.JobListParams, v string) { p.RecruiterEmail = v }))
	r.Get("/trending", h.Trending)
	r.Get("/recent", h.Recent)
	r.Get("/:id", h.Get)
	r.Put("/:id", auth, writer, h.Update)
	r.Delete("/:id", auth, writer, h.Delete)
	r.Get("/:id/similar", h.Similar)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	limit, offset, err := paging(c)
	if err != nil {
		return err
	}

	params := usecase.JobListParams{
		Keyword:        c.Query("keyword"),
		Title:          firstNonEmpty(c.Query("title"), c.Query("jobTitle")),
		Type:           firstNonEmpty(c.Query("type"), c.Query("jobType")),
		Location:       c.Query("location"),
		CompanyName:    c.Query("companyName"),
		Stipend:        c.Query("stipend"),
		RecruiterEmail: c.Query("recruiterEmail"),
		Status:         c.Query("status"),
		Limit:          limit,
		Offset:         offset,
	}
	return h.list(c, params)
}

func (h *JobsHandler) byQuery(name string, set func(*usecase.JobListParams, string)) fiber.Handler {
	return func(c fiber.Ctx) error {
		v := strings.TrimSpace(c.Query(name))
		if v == "" {
			return badRequest("Query parameter "+name+" is required", nil)
		}
		limit, offset, err := paging(c)
		if err != nil {
			return err
		}

		params := usecase.JobListParams{Limit: limit, Offset: offset}
		set(&params, v)
		return h.list(c, params)
	}
}

func (h *JobsHandler) list(c fiber.Ctx, params usecase.JobListParams) error {
	jobs, err := h.uc.List(c.Context(), params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(jobs, params.Limit, params.Offset))
}

func (h *JobsHandler) Trending(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	jobs, err := h.uc.Trending(c.Context(), limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(jobs, limit, 0))
}

func (h *JobsHandler) Recent(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	jobs, err := h.uc.Recent(c.Context(), limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(jobs, limit, 0))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, j)
}

func (h *JobsHandler) Similar(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	jobs, err := h.uc.Similar(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(jobs, 0, 0))
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	j, err := h.uc.Create(c.Context(), actor, jobInput(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job post created", j)
}

func (h *JobsHandler) Update(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	j, err := h.uc.Update(c.Context(), actor, id, jobInput(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job post updated", j)
}

func (h *JobsHandler) Delete(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), actor, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job post deleted", nil)
}

func jobInput(req dto.JobRequest) usecase.JobInput {
	return usecase.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Stipend:     req.Stipend,
		Type:        req.Type,
		Location:    req.Location,
		Status:      req.Status,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
