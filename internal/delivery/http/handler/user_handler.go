package handler

import (
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/dto"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/response"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"
	ucuser "github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	users         usecase.UserUsecase
	notifications usecase.NotificationUsecase
	bookmarks     usecase.BookmarkUsecase
}

func NewUserHandler(users usecase.UserUsecase, notifications usecase.NotificationUsecase, bookmarks usecase.BookmarkUsecase) *UserHandler {
	return &UserHandler{users: users, notifications: notifications, bookmarks: bookmarks}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
	r.Get("/notifications", h.ListNotifications)
	r.Put("/notifications/:id/read", h.MarkNotificationRead)
	r.Get("/bookmarks", h.ListBookmarks)
	r.Post("/bookmarks/:jobId", h.ToggleBookmark)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	u, err := h.users.GetMe(c.Context(), actor.UserID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, userResponse(u))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req dto.UpdateMeRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	if req.Name == nil && req.Password == nil {
		return badRequest("Nothing to update", nil)
	}

	u, err := h.users.UpdateMe(c.Context(), actor.UserID, ucuser.UpdateMeInput{Name: req.Name, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", userResponse(u))
}

func (h *UserHandler) ListNotifications(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}

	list, err := h.notifications.List(c.Context(), actor.UserID, c.Query("unread") == "true", limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, list)
}

func (h *UserHandler) MarkNotificationRead(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifications.MarkRead(c.Context(), actor.UserID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Notification marked as read", nil)
}

func (h *UserHandler) ListBookmarks(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	jobs, err := h.bookmarks.List(c.Context(), actor)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewList(jobs, 0, 0))
}

func (h *UserHandler) ToggleBookmark(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}

	on, err := h.bookmarks.Toggle(c.Context(), actor, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.BookmarkResponse{JobID: jobID.String(), Bookmarked: on})
}
