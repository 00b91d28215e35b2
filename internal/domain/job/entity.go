package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

var (
	ErrNotFound      = errors.New("job post not found")
	ErrInvalidStatus = errors.New("invalid job status")
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusOpen:
		return StatusOpen, nil
	case StatusClosed:
		return StatusClosed, nil
	default:
		return "", ErrInvalidStatus
	}
}

type JobPost struct {
	ID             uuid.UUID `json:"id"`
	RecruiterID    uuid.UUID `json:"recruiter_id"`
	RecruiterEmail string    `json:"recruiter_email"`
	CompanyName    string    `json:"company_name"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Stipend        string    `json:"stipend"`
	Type           string    `json:"type"`
	Location       string    `json:"location"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (j JobPost) IsOpen() bool {
	return j.Status == "" || j.Status == StatusOpen
}

// ListFilter narrows a job listing. Every text field is a case-insensitive
// substring match except Type, which matches exactly ignoring case.
type ListFilter struct {
	IDs            []uuid.UUID
	Keywords       []string
	Title          string
	Type           string
	Location       string
	CompanyName    string
	Stipend        string
	RecruiterEmail string
	RecruiterID    uuid.UUID
	Status         Status
	Limit          int
	Offset         int
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type Repository interface {
	CreateJob(ctx context.Context, j JobPost) error
	GetJobByID(ctx context.Context, id uuid.UUID) (JobPost, error)
	UpdateJob(ctx context.Context, j JobPost) error
	DeleteJob(ctx context.Context, id uuid.UUID) error
	ListJobs(ctx context.Context, f ListFilter) ([]JobPost, error)
	CountJobs(ctx context.Context) (int, error)
	CountByType(ctx context.Context) ([]TypeCount, error)
	// TrendingJobs orders jobs by number of applications received.
	TrendingJobs(ctx context.Context, limit int) ([]JobPost, error)
	// ListAll returns every posting, newest first, for reporting.
	ListAll(ctx context.Context) ([]JobPost, error)
}
