package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSelfDeactivation = errors.New("admins cannot deactivate themselves")

type AdminUsecase interface {
	ListUsers(ctx context.Context, actor Actor, role string, limit, offset int) ([]user.User, error)
	SetUserStatus(ctx context.Context, actor Actor, id uuid.UUID, active bool) (user.User, error)
	SystemStats(ctx context.Context, actor Actor) (SystemSummary, error)
}

type Admin struct {
	users     user.Repository
	analytics AnalyticsUsecase
	log       *zap.Logger
}

func NewAdminUsecase(users user.Repository, analytics AnalyticsUsecase, log *zap.Logger) *Admin {
	return &Admin{users: users, analytics: analytics, log: logger.OrNop(log)}
}

func (u *Admin) ListUsers(ctx context.Context, actor Actor, role string, limit, offset int) ([]user.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if limit < 0 || offset < 0 {
		return nil, ErrInvalidInput
	}
	f := user.ListFilter{Limit: limit, Offset: offset}
	if strings.TrimSpace(role) != "" {
		r, err := user.ParseRole(role)
		if err != nil {
			return nil, ErrInvalidInput
		}
		f.Role = r
	}
	rows, err := u.users.ListUsers(ctx, f)
	if err != nil {
		return nil, internalError(err)
	}
	return rows, nil
}

func (u *Admin) SetUserStatus(ctx context.Context, actor Actor, id uuid.UUID, active bool) (user.User, error) {
	if !actor.IsAdmin() {
		return user.User{}, ErrForbidden
	}
	if id == actor.UserID && !active {
		return user.User{}, errors.Join(ErrConflict, ErrSelfDeactivation)
	}
	if err := u.users.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, internalError(err)
	}
	u.log.Info("user status changed",
		zap.String("user_id", id.String()),
		zap.Bool("active", active),
		zap.String("by", actor.UserID.String()),
	)
	usr, err := u.users.GetUserByID(ctx, id)
	if err != nil {
		return user.User{}, internalError(err)
	}
	return usr, nil
}

func (u *Admin) SystemStats(ctx context.Context, actor Actor) (SystemSummary, error) {
	if !actor.IsAdmin() {
		return SystemSummary{}, ErrForbidden
	}
	return u.analytics.Summary(ctx)
}
