package usecase

import (
	"context"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"

	"github.com/google/uuid"
)

// Cache is the JSON cache used for listings and analytics. Implementations
// report a miss rather than an error when the backend is down.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

// JobSearcher is the optional full-text index over job posts.
type JobSearcher interface {
	Enabled() bool
	Index(ctx context.Context, j job.JobPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, keywords []string, size int) ([]uuid.UUID, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Pusher delivers a realtime event to every open connection of a user.
type Pusher interface {
	PushToUser(userID uuid.UUID, payload []byte) int
}

// Notifier records a notification for a user and fans it out to realtime and e-mail channels.
type Notifier interface {
	Notify(ctx context.Context, in NotifyInput) error
}

// TxRunner runs fn in one database transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(q database.Querier) error) error
}

// Actor is the authenticated caller of a usecase.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   user.Role
}

func (a Actor) IsAdmin() bool     { return a.Role == user.RoleAdmin }
func (a Actor) IsRecruiter() bool { return a.Role == user.RoleRecruiter }
func (a Actor) IsStudent() bool   { return a.Role == user.RoleStudent }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, NotifyInput) error { return nil }
