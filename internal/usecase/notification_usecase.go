package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/notification"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/infrastructure/metrics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotifyInput struct {
	UserID uuid.UUID
	// Email, when set, also receives the notification by mail.
	Email string
	Kind  notification.Kind
	Title string
	Body  string
}

type NotificationList struct {
	Items  []notification.Notification `json:"items"`
	Unread int                         `json:"unread"`
}

type NotificationUsecase interface {
	Notifier
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) (NotificationList, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

type emailDispatcher interface {
	TrySubmit(t worker.Task) bool
}

type Notifications struct {
	repo   notification.Repository
	pusher Pusher
	mailer Mailer
	pool   emailDispatcher
	log    *zap.Logger
	now    func() time.Time
}

// NewNotificationUsecase wires the realtime and mail channels; pusher, mailer
// and pool may each be nil. Without a pool mail is sent inline.
func NewNotificationUsecase(repo notification.Repository, pusher Pusher, mailer Mailer, pool emailDispatcher, log *zap.Logger) *Notifications {
	return &Notifications{
		repo:   repo,
		pusher: pusher,
		mailer: mailer,
		pool:   pool,
		log:    logger.OrNop(log),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type pushEvent struct {
	ID        uuid.UUID         `json:"id"`
	Type      notification.Kind `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	CreatedAt time.Time         `json:"created_at"`
}

// Notify persists the notification; realtime push and e-mail are best effort.
func (u *Notifications) Notify(ctx context.Context, in NotifyInput) error {
	if in.UserID == uuid.Nil || strings.TrimSpace(in.Title) == "" {
		return ErrInvalidInput
	}

	n := notification.Notification{
		ID:        uuid.New(),
		UserID:    in.UserID,
		Kind:      in.Kind,
		Title:     in.Title,
		Body:      in.Body,
		CreatedAt: u.now(),
	}
	if err := u.repo.CreateNotification(ctx, n); err != nil {
		u.log.Error("persist notification failed", zap.String("user_id", in.UserID.String()), zap.Error(err))
		return internalError(err)
	}
	metrics.NotificationsSent.WithLabelValues("store", "ok").Inc()

	if u.pusher != nil {
		payload, err := json.Marshal(pushEvent{ID: n.ID, Type: n.Kind, Title: n.Title, Body: n.Body, CreatedAt: n.CreatedAt})
		if err == nil {
			delivered := u.pusher.PushToUser(in.UserID, payload)
			metrics.NotificationsSent.WithLabelValues("websocket", outcome(delivered > 0)).Inc()
		}
	}

	if u.mailer != nil && strings.TrimSpace(in.Email) != "" {
		u.sendMail(ctx, in)
	}
	return nil
}

func (u *Notifications) sendMail(ctx context.Context, in NotifyInput) {
	send := func(ctx context.Context) error {
		err := u.mailer.Send(ctx, in.Email, in.Title, in.Body)
		metrics.NotificationsSent.WithLabelValues("email", outcome(err == nil)).Inc()
		if err != nil {
			u.log.Warn("notification email failed", zap.String("to", in.Email), zap.Error(err))
		}
		return err
	}

	if u.pool == nil {
		_ = send(ctx)
		return
	}
	if !u.pool.TrySubmit(send) {
		metrics.NotificationsSent.WithLabelValues("email", "dropped").Inc()
		u.log.Warn("notification email dropped, queue full", zap.String("to", in.Email))
	}
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

func (u *Notifications) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) (NotificationList, error) {
	items, err := u.repo.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return NotificationList{}, internalError(err)
	}
	unread, err := u.repo.CountUnread(ctx, userID)
	if err != nil {
		return NotificationList{}, internalError(err)
	}
	return NotificationList{Items: items, Unread: unread}, nil
}

func (u *Notifications) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := u.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return ErrNotFound
		}
		return internalError(err)
	}
	return nil
}
