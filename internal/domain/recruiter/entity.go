package recruiter

import (
	"context"
	"errors"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"

	"github.com/google/uuid"
)

const (
	DefaultCompanyName = "Company"
	DefaultDesignation = "Recruiter"
)

var ErrNotFound = errors.New("recruiter not found")

type Recruiter struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CompanyName string    `json:"company_name"`
	Designation string    `json:"designation"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Repository interface {
	CreateRecruiter(ctx context.Context, q database.Querier, r Recruiter) error
	UpsertRecruiter(ctx context.Context, r Recruiter) (Recruiter, error)
	GetRecruiterByID(ctx context.Context, id uuid.UUID) (Recruiter, error)
	GetRecruiterByEmail(ctx context.Context, email string) (Recruiter, error)
	GetRecruiterByUserID(ctx context.Context, userID uuid.UUID) (Recruiter, error)
	ListRecruiters(ctx context.Context) ([]Recruiter, error)
}
