package bookmark

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	UserID    uuid.UUID `json:"user_id"`
	JobID     uuid.UUID `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	// Toggle adds the bookmark when absent and removes it otherwise,
	// returning whether the job is bookmarked afterwards.
	Toggle(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	ListJobIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// FollowersOfRecruiter lists the users who bookmarked at least one job of recruiterID.
	FollowersOfRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]uuid.UUID, error)
}
