package handler

import (
	"context"
	"sort"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const healthCheckTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness plus the state of each named dependency.
// Only the checks listed in required turn the response into a 503.
type HealthHandler struct {
	checks   map[string]Pinger
	required map[string]bool
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{checks: map[string]Pinger{}, required: map[string]bool{}}
}

func (h *HealthHandler) WithCheck(name string, p Pinger, required bool) *HealthHandler {
	if p != nil {
		h.checks[name] = p
		h.required[name] = required
	}
	return h
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := fiber.StatusOK
	deps := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			deps[name] = "down"
			if h.required[name] {
				status = fiber.StatusServiceUnavailable
			}
			continue
		}
		deps[name] = "up"
	}

	msg := "healthy"
	if status != fiber.StatusOK {
		msg = "unhealthy"
	}
	return c.Status(status).JSON(response.SemanticResponse{
		Status:  status,
		Message: msg,
		Data:    fiber.Map{"dependencies": deps, "time": time.Now().UTC()},
	})
}
