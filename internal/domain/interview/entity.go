package interview

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePhoneScreening Type = "PHONE_SCREENING"
	TypeTechnical      Type = "TECHNICAL_INTERVIEW"
	TypeHR             Type = "HR_INTERVIEW"
	TypePanel          Type = "PANEL_INTERVIEW"
	TypeFinal          Type = "FINAL_INTERVIEW"
)

var Types = []Type{TypePhoneScreening, TypeTechnical, TypeHR, TypePanel, TypeFinal}

type Status string

const (
	StatusScheduled   Status = "SCHEDULED"
	StatusConfirmed   Status = "CONFIRMED"
	StatusInProgress  Status = "IN_PROGRESS"
	StatusCompleted   Status = "COMPLETED"
	StatusCancelled   Status = "CANCELLED"
	StatusRescheduled Status = "RESCHEDULED"
	StatusNoShow      Status = "NO_SHOW"
)

var Statuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusRescheduled,
	StatusNoShow,
}

var (
	ErrNotFound     = errors.New("interview not found")
	ErrInvalidType  = errors.New("invalid interview type")
	ErrConflict     = errors.New("interviewer already booked for this time")
	ErrInvalidSlot  = errors.New("interview must end after it starts")
	ErrInvalidScore = errors.New("score must be between 0 and 100")
	ErrClosed       = errors.New("interview is already completed or cancelled")
)

func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}
	return "", ErrInvalidType
}

type Interview struct {
	ID               uuid.UUID `json:"id"`
	ApplicationID    uuid.UUID `json:"application_id"`
	Type             Type      `json:"type"`
	ScheduledAt      time.Time `json:"scheduled_at"`
	EndAt            time.Time `json:"end_at"`
	InterviewerEmail string    `json:"interviewer_email"`
	InterviewerName  string    `json:"interviewer_name"`
	Location         string    `json:"location"`
	MeetingLink      string    `json:"meeting_link"`
	Status           Status    `json:"status"`
	Notes            string    `json:"notes"`
	Score            *int      `json:"score,omitempty"`
	Feedback         string    `json:"feedback"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Closed interviews can no longer be rescheduled, confirmed or completed.
func (i Interview) Closed() bool {
	return i.Status == StatusCompleted || i.Status == StatusCancelled
}

// AppendNote adds a line to the interview notes.
func (i *Interview) AppendNote(note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	if strings.TrimSpace(i.Notes) == "" {
		i.Notes = note
		return
	}
	i.Notes = i.Notes + "\n" + note
}

type Repository interface {
	CreateInterview(ctx context.Context, iv Interview) error
	GetInterviewByID(ctx context.Context, id uuid.UUID) (Interview, error)
	UpdateInterview(ctx context.Context, iv Interview) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]Interview, error)
	// ListByInterviewer returns every interview of the interviewer overlapping [from, to].
	// A zero from/to leaves that side open.
	ListByInterviewer(ctx context.Context, email string, from, to time.Time) ([]Interview, error)
	ListUpcoming(ctx context.Context, now time.Time, limit int) ([]Interview, error)
	ListAll(ctx context.Context) ([]Interview, error)
}
