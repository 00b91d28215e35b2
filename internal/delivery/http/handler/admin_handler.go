package handler

import (
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/dto"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/response"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc usecase.AdminUsecase
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users", h.ListUsers)
	r.Put("/users/:id/status", h.SetUserStatus)
	r.Get("/stats", h.Stats)
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	limit, offset, err := paging(c)
	if err != nil {
		return err
	}

	users, err := h.uc.ListUsers(c.Context(), actor, c.Query("role"), limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	items := make([]dto.UserResponse, len(users))
	for i, u := range users {
		items[i] = userResponse(u)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(items, limit, offset))
}

func (h *AdminHandler) SetUserStatus(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UserStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	if req.Active == nil {
		return badRequest("Field active is required", nil)
	}

	u, err := h.uc.SetUserStatus(c.Context(), actor, id, *req.Active)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "User status updated", userResponse(u))
}

func (h *AdminHandler) Stats(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	s, err := h.uc.SystemStats(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, s)
}
