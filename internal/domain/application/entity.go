package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusApplied   Status = "APPLIED"
	StatusShortlist Status = "SHORTLIST"
	StatusSelected  Status = "SELECTED"
	StatusRejected  Status = "REJECTED"
)

// Statuses is the display order used by every breakdown.
var Statuses = []Status{StatusApplied, StatusShortlist, StatusSelected, StatusRejected}

var (
	ErrNotFound          = errors.New("application not found")
	ErrAlreadyApplied    = errors.New("student already applied to this job")
	ErrInvalidStatus     = errors.New("invalid application status")
	ErrInvalidTransition = errors.New("invalid application status transition")
)

// Once reviewed, an application never returns to APPLIED but a recruiter
// may still change a shortlist, selection or rejection decision.
var transitions = map[Status][]Status{
	StatusApplied:   {StatusShortlist, StatusSelected, StatusRejected},
	StatusShortlist: {StatusSelected, StatusRejected},
	StatusSelected:  {StatusShortlist, StatusRejected},
	StatusRejected:  {StatusShortlist, StatusSelected},
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// Decided reports whether a recruiter has made a final call on the application.
func (s Status) Decided() bool {
	return s == StatusSelected || s == StatusRejected
}

// CanTransition reports whether an application may move from s to next.
// Re-applying the current status is allowed and is a no-op for callers.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Application struct {
	ID           uuid.UUID `json:"id"`
	StudentID    uuid.UUID `json:"student_id"`
	JobID        uuid.UUID `json:"job_id"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	JobTitle     string    `json:"job_title"`
	JobType      string    `json:"job_type"`
	CompanyName  string    `json:"company_name"`
	Status       Status    `json:"status"`
	AppliedDate  time.Time `json:"applied_date"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StatusChange is one entry of an application's status history.
type StatusChange struct {
	ID             uuid.UUID `json:"id"`
	ApplicationID  uuid.UUID `json:"application_id"`
	FromStatus     Status    `json:"from_status"`
	ToStatus       Status    `json:"to_status"`
	ChangedBy      uuid.UUID `json:"changed_by"`
	ChangedByEmail string    `json:"changed_by_email"`
	Note           string    `json:"note,omitempty"`
	ChangedAt      time.Time `json:"changed_at"`
}

type ListFilter struct {
	StudentID   uuid.UUID
	JobID       uuid.UUID
	RecruiterID uuid.UUID
	Status      Status
	Limit       int
	Offset      int
}

type Repository interface {
	CreateApplication(ctx context.Context, a Application) error
	GetApplicationByID(ctx context.Context, id uuid.UUID) (Application, error)
	// UpdateStatus moves the application from c.FromStatus to c.ToStatus and
	// appends c to its history. It fails with ErrInvalidTransition when the
	// stored status is no longer c.FromStatus.
	UpdateStatus(ctx context.Context, c StatusChange) error
	StatusHistory(ctx context.Context, applicationID uuid.UUID) ([]StatusChange, error)
	DeleteApplication(ctx context.Context, id uuid.UUID) error
	ListApplications(ctx context.Context, f ListFilter) ([]Application, error)
	ExistsForStudentJob(ctx context.Context, studentID, jobID uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
	AppliedJobIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
	CountByJob(ctx context.Context, recruiterID uuid.UUID) (map[uuid.UUID]int, error)
}
