package handler

import (
	"errors"
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/delivery/http/middleware"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/interview"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/response"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/validation"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase"
	ucauth "github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase/auth"
	ucuser "github.com/arshsnaz/zidio-job-platform-sub000/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

// reasons are domain errors whose text is shown to the client in place of the
// generic status message.
var reasons = []error{
	application.ErrAlreadyApplied,
	application.ErrInvalidTransition,
	application.ErrInvalidStatus,
	usecase.ErrJobClosed,
	usecase.ErrSelfDeactivation,
	job.ErrInvalidStatus,
	interview.ErrConflict,
	interview.ErrInvalidSlot,
	interview.ErrInvalidScore,
	interview.ErrInvalidType,
	interview.ErrClosed,
	user.ErrInvalidRole,
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", verr.Fields, err)
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrAccountDisabled):
		return middleware.NewAppError(fiber.StatusForbidden, "Account disabled", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, ucauth.ErrInvalidInput), errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, reason(err, "Bad request"), nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, ucuser.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, reason(err, "Conflict"), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func reason(err error, fallback string) string {
	for _, r := range reasons {
		if errors.Is(err, r) {
			msg := r.Error()
			return strings.ToUpper(msg[:1]) + msg[1:]
		}
	}
	return fallback
}

func badRequest(msg string, cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, msg, nil, cause)
}
