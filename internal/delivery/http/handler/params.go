package handler

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func actorFrom(c fiber.Ctx) (usecase.Actor, error) {
	userID, email, role, ok := middleware.Identity(c)
	if !ok {
		return usecase.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return usecase.Actor{UserID: userID, Email: email, Role: role}, nil
}

func pathUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, badRequest("Invalid "+name, err)
	}
	return id, nil
}

func pathEmail(c fiber.Ctx) string {
	raw := c.Params("email")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func queryInt(c fiber.Ctx, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, badRequest("Invalid "+name, err)
	}
	return n, nil
}

func paging(c fiber.Ctx) (int, int, error) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return 0, 0, err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
