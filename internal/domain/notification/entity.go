package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindApplicationReceived Kind = "APPLICATION_RECEIVED"
	KindApplicationSent     Kind = "APPLICATION_SENT"
	KindStatusChanged       Kind = "APPLICATION_STATUS"
	KindInterview           Kind = "INTERVIEW"
	KindJobPosted           Kind = "JOB_POSTED"
)

var ErrNotFound = errors.New("notification not found")

type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	CreateNotification(ctx context.Context, n Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}
