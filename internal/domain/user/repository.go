package user

import (
	"context"
	"errors"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	CreateUser(ctx context.Context, q database.Querier, u User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, u User) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	ListUsers(ctx context.Context, f ListFilter) ([]User, error)
	CountByRole(ctx context.Context) (map[Role]int, error)
	CountByActive(ctx context.Context) (active, inactive int, err error)
	// RegisteredSince returns the creation time of every account created at or after since.
	RegisteredSince(ctx context.Context, since time.Time) ([]time.Time, error)
}
