package usecase

import (
	"context"
	"errors"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/bookmark"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"

	"github.com/google/uuid"
)

type BookmarkUsecase interface {
	Toggle(ctx context.Context, actor Actor, jobID uuid.UUID) (bool, error)
	List(ctx context.Context, actor Actor) ([]job.JobPost, error)
}

type Bookmarks struct {
	bookmarks bookmark.Repository
	jobs      job.Repository
}

func NewBookmarkUsecase(bookmarks bookmark.Repository, jobs job.Repository) *Bookmarks {
	return &Bookmarks{bookmarks: bookmarks, jobs: jobs}
}

// Toggle flips the bookmark on a job and reports whether it is now saved.
func (u *Bookmarks) Toggle(ctx context.Context, actor Actor, jobID uuid.UUID) (bool, error) {
	if actor.UserID == uuid.Nil {
		return false, ErrUnauthorized
	}
	if _, err := u.jobs.GetJobByID(ctx, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, internalError(err)
	}
	saved, err := u.bookmarks.Toggle(ctx, actor.UserID, jobID)
	if err != nil {
		return false, internalError(err)
	}
	return saved, nil
}

func (u *Bookmarks) List(ctx context.Context, actor Actor) ([]job.JobPost, error) {
	ids, err := u.bookmarks.ListJobIDs(ctx, actor.UserID)
	if err != nil {
		return nil, internalError(err)
	}
	if len(ids) == 0 {
		return []job.JobPost{}, nil
	}
	rows, err := u.jobs.ListJobs(ctx, job.ListFilter{IDs: ids, Limit: len(ids)})
	if err != nil {
		return nil, internalError(err)
	}
	return rows, nil
}
