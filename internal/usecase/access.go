package usecase

import (
	"context"
	"errors"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/student"

	"github.com/google/uuid"
)

// jobManager returns the job when the actor is an admin or the recruiter who posted it.
func jobManager(ctx context.Context, jobs job.Repository, recruiters recruiter.Repository, actor Actor, jobID uuid.UUID) (job.JobPost, error) {
	j, err := jobs.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.JobPost{}, ErrNotFound
		}
		return job.JobPost{}, internalError(err)
	}
	if actor.IsAdmin() {
		return j, nil
	}
	if !actor.IsRecruiter() {
		return job.JobPost{}, ErrForbidden
	}
	rec, err := recruiters.GetRecruiterByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, recruiter.ErrNotFound) {
			return job.JobPost{}, ErrForbidden
		}
		return job.JobPost{}, internalError(err)
	}
	if rec.ID != j.RecruiterID {
		return job.JobPost{}, ErrForbidden
	}
	return j, nil
}

// studentOf resolves the student profile of the calling user.
func studentOf(ctx context.Context, students student.Repository, actor Actor) (student.Student, error) {
	if !actor.IsStudent() {
		return student.Student{}, ErrForbidden
	}
	st, err := students.GetStudentByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Student{}, ErrNotFound
		}
		return student.Student{}, internalError(err)
	}
	return st, nil
}

// recruiterOf resolves the recruiter profile of the calling user.
func recruiterOf(ctx context.Context, recruiters recruiter.Repository, actor Actor) (recruiter.Recruiter, error) {
	if !actor.IsRecruiter() {
		return recruiter.Recruiter{}, ErrForbidden
	}
	rec, err := recruiters.GetRecruiterByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, recruiter.ErrNotFound) {
			return recruiter.Recruiter{}, ErrNotFound
		}
		return recruiter.Recruiter{}, internalError(err)
	}
	return rec, nil
}
