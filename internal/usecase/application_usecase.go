package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/notification"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/student"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/infrastructure/metrics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrJobClosed = errors.New("job is not accepting applications")

const maxBulkApplications = 100

type BulkStatusInput struct {
	ApplicationIDs []uuid.UUID `json:"application_ids"`
	Status         string      `json:"status"`
	Note           string      `json:"note"`
}

type BulkFailure struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Reason        string    `json:"reason"`
}

type BulkStatusResult struct {
	Updated []application.Application `json:"updated"`
	Failed  []BulkFailure             `json:"failed"`
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor Actor, jobID uuid.UUID) (application.Application, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error)
	ListByStudent(ctx context.Context, actor Actor, studentID uuid.UUID) ([]application.Application, error)
	ListByJob(ctx context.Context, actor Actor, jobID uuid.UUID) ([]application.Application, error)
	ListAll(ctx context.Context, actor Actor, status string, limit, offset int) ([]application.Application, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (application.Application, error)
	BulkUpdateStatus(ctx context.Context, actor Actor, in BulkStatusInput) (BulkStatusResult, error)
	History(ctx context.Context, actor Actor, id uuid.UUID) ([]application.StatusChange, error)
	Withdraw(ctx context.Context, actor Actor, id uuid.UUID) error
}

type Applications struct {
	apps       application.Repository
	jobs       job.Repository
	students   student.Repository
	recruiters recruiter.Repository
	notifier   Notifier
	cache      Cache
	log        *zap.Logger
	now        func() time.Time
}

func NewApplicationUsecase(
	apps application.Repository,
	jobs job.Repository,
	students student.Repository,
	recruiters recruiter.Repository,
	notifier Notifier,
	cache Cache,
	log *zap.Logger,
) *Applications {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Applications{
		apps:       apps,
		jobs:       jobs,
		students:   students,
		recruiters: recruiters,
		notifier:   notifier,
		cache:      cache,
		log:        logger.OrNop(log),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Apply files an application from the calling student. The job must exist
// and be open, and a student may apply to a job only once.
func (u *Applications) Apply(ctx context.Context, actor Actor, jobID uuid.UUID) (application.Application, error) {
	st, err := studentOf(ctx, u.students, actor)
	if err != nil {
		return application.Application{}, err
	}

	j, err := u.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, internalError(err)
	}
	if !j.IsOpen() {
		return application.Application{}, fmt.Errorf("%w: %w", ErrConflict, ErrJobClosed)
	}

	exists, err := u.apps.ExistsForStudentJob(ctx, st.ID, j.ID)
	if err != nil {
		return application.Application{}, internalError(err)
	}
	if exists {
		return application.Application{}, fmt.Errorf("%w: %w", ErrConflict, application.ErrAlreadyApplied)
	}

	a := application.Application{
		ID:          uuid.New(),
		StudentID:   st.ID,
		JobID:       j.ID,
		Status:      application.StatusApplied,
		AppliedDate: u.now(),
	}
	if err := u.apps.CreateApplication(ctx, a); err != nil {
		if errors.Is(err, application.ErrAlreadyApplied) {
			return application.Application{}, fmt.Errorf("%w: %w", ErrConflict, application.ErrAlreadyApplied)
		}
		u.log.Error("create application failed", zap.Error(err))
		return application.Application{}, internalError(err)
	}
	metrics.ApplicationsSubmitted.Inc()
	u.invalidateAnalytics(ctx)

	created, err := u.apps.GetApplicationByID(ctx, a.ID)
	if err != nil {
		return application.Application{}, internalError(err)
	}

	_ = u.notifier.Notify(ctx, NotifyInput{
		UserID: st.UserID,
		Email:  st.Email,
		Kind:   notification.KindApplicationSent,
		Title:  "Application submitted",
		Body:   fmt.Sprintf("Dear %s,\n\nYour application for %s at %s has been received.", st.Name, j.Title, j.CompanyName),
	})
	if rec, err := u.recruiters.GetRecruiterByID(ctx, j.RecruiterID); err == nil {
		_ = u.notifier.Notify(ctx, NotifyInput{
			UserID: rec.UserID,
			Email:  rec.Email,
			Kind:   notification.KindApplicationReceived,
			Title:  "New application received",
			Body:   fmt.Sprintf("Dear %s,\n\n%s applied for %s.", rec.Name, st.Name, j.Title),
		})
	} else {
		u.log.Warn("recruiter lookup for notification failed", zap.String("recruiter_id", j.RecruiterID.String()), zap.Error(err))
	}
	return created, nil
}

func (u *Applications) Get(ctx context.Context, actor Actor, id uuid.UUID) (application.Application, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if actor.IsAdmin() {
		return a, nil
	}
	if actor.IsStudent() {
		if err := u.ownStudent(ctx, actor, a.StudentID); err != nil {
			return application.Application{}, err
		}
		return a, nil
	}
	if _, err := u.manageableJob(ctx, actor, a.JobID); err != nil {
		return application.Application{}, err
	}
	return a, nil
}

func (u *Applications) ListByStudent(ctx context.Context, actor Actor, studentID uuid.UUID) ([]application.Application, error) {
	if !actor.IsAdmin() {
		if err := u.ownStudent(ctx, actor, studentID); err != nil {
			return nil, err
		}
	}
	return u.list(ctx, application.ListFilter{StudentID: studentID})
}

func (u *Applications) ListByJob(ctx context.Context, actor Actor, jobID uuid.UUID) ([]application.Application, error) {
	if _, err := u.manageableJob(ctx, actor, jobID); err != nil {
		return nil, err
	}
	return u.list(ctx, application.ListFilter{JobID: jobID})
}

func (u *Applications) ListAll(ctx context.Context, actor Actor, status string, limit, offset int) ([]application.Application, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	f := application.ListFilter{Limit: limit, Offset: offset}
	if status != "" {
		st, err := application.ParseStatus(status)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		f.Status = st
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}
	return u.list(ctx, f)
}

// UpdateStatus moves an application out of APPLIED, or between SHORTLIST,
// SELECTED and REJECTED, and records the change in its history.
// Re-applying the current status changes nothing and sends no notification.
func (u *Applications) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (application.Application, error) {
	next, err := application.ParseStatus(status)
	if err != nil {
		return application.Application{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return u.changeStatus(ctx, actor, id, next, "")
}

// BulkUpdateStatus applies one status to many applications. Each application
// is checked and updated on its own; failures are reported per id.
func (u *Applications) BulkUpdateStatus(ctx context.Context, actor Actor, in BulkStatusInput) (BulkStatusResult, error) {
	if !actor.IsAdmin() && !actor.IsRecruiter() {
		return BulkStatusResult{}, ErrForbidden
	}
	next, err := application.ParseStatus(in.Status)
	if err != nil {
		return BulkStatusResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if len(in.ApplicationIDs) == 0 || len(in.ApplicationIDs) > maxBulkApplications {
		return BulkStatusResult{}, fmt.Errorf("%w: between 1 and %d application ids required", ErrInvalidInput, maxBulkApplications)
	}
	note := sanitize.Text(in.Note)

	res := BulkStatusResult{Updated: []application.Application{}, Failed: []BulkFailure{}}
	seen := make(map[uuid.UUID]struct{}, len(in.ApplicationIDs))
	for _, id := range in.ApplicationIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		a, err := u.changeStatus(ctx, actor, id, next, note)
		if err != nil {
			res.Failed = append(res.Failed, BulkFailure{ApplicationID: id, Reason: u.bulkReason(id, err)})
			continue
		}
		res.Updated = append(res.Updated, a)
	}
	u.log.Info("bulk status update",
		zap.String("actor", actor.Email),
		zap.String("status", string(next)),
		zap.Int("updated", len(res.Updated)),
		zap.Int("failed", len(res.Failed)),
	)
	return res, nil
}

// History lists the status changes of an application, oldest first.
func (u *Applications) History(ctx context.Context, actor Actor, id uuid.UUID) ([]application.StatusChange, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := u.manageableJob(ctx, actor, a.JobID); err != nil {
		return nil, err
	}
	changes, err := u.apps.StatusHistory(ctx, id)
	if err != nil {
		return nil, internalError(err)
	}
	return changes, nil
}

func (u *Applications) changeStatus(ctx context.Context, actor Actor, id uuid.UUID, next application.Status, note string) (application.Application, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if _, err := u.manageableJob(ctx, actor, a.JobID); err != nil {
		return application.Application{}, err
	}

	if a.Status == next {
		return a, nil
	}
	if !a.Status.CanTransition(next) {
		return application.Application{}, fmt.Errorf("%w: %w", ErrConflict, application.ErrInvalidTransition)
	}

	change := application.StatusChange{
		ID:             uuid.New(),
		ApplicationID:  a.ID,
		FromStatus:     a.Status,
		ToStatus:       next,
		ChangedBy:      actor.UserID,
		ChangedByEmail: actor.Email,
		Note:           note,
		ChangedAt:      u.now(),
	}
	if err := u.apps.UpdateStatus(ctx, change); err != nil {
		switch {
		case errors.Is(err, application.ErrNotFound):
			return application.Application{}, ErrNotFound
		case errors.Is(err, application.ErrInvalidTransition):
			return application.Application{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return application.Application{}, internalError(err)
	}
	metrics.ApplicationStatusChanges.WithLabelValues(string(next)).Inc()
	u.invalidateAnalytics(ctx)

	updated, err := u.load(ctx, id)
	if err != nil {
		return application.Application{}, err
	}

	if st, err := u.students.GetStudentByID(ctx, a.StudentID); err == nil {
		_ = u.notifier.Notify(ctx, NotifyInput{
			UserID: st.UserID,
			Email:  st.Email,
			Kind:   notification.KindStatusChanged,
			Title:  "Application status updated",
			Body: fmt.Sprintf("Dear %s,\n\nYour application for %s at %s is now %s.",
				st.Name, updated.JobTitle, updated.CompanyName, updated.Status),
		})
	}
	return updated, nil
}

func (u *Applications) bulkReason(id uuid.UUID, err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, application.ErrInvalidTransition):
		return application.ErrInvalidTransition.Error()
	}
	u.log.Error("bulk status update failed", zap.String("application_id", id.String()), zap.Error(err))
	return "internal error"
}

// Withdraw deletes an application. Students may withdraw their own while it
// is still APPLIED; admins may remove any.
func (u *Applications) Withdraw(ctx context.Context, actor Actor, id uuid.UUID) error {
	a, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		if !actor.IsStudent() {
			return ErrForbidden
		}
		if err := u.ownStudent(ctx, actor, a.StudentID); err != nil {
			return err
		}
		if a.Status != application.StatusApplied {
			return fmt.Errorf("%w: application already %s", ErrConflict, a.Status)
		}
	}

	if err := u.apps.DeleteApplication(ctx, id); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return ErrNotFound
		}
		return internalError(err)
	}
	u.invalidateAnalytics(ctx)
	return nil
}

func (u *Applications) load(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := u.apps.GetApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, internalError(err)
	}
	return a, nil
}

func (u *Applications) list(ctx context.Context, f application.ListFilter) ([]application.Application, error) {
	rows, err := u.apps.ListApplications(ctx, f)
	if err != nil {
		return nil, internalError(err)
	}
	return rows, nil
}

func (u *Applications) ownStudent(ctx context.Context, actor Actor, studentID uuid.UUID) error {
	st, err := studentOf(ctx, u.students, actor)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if st.ID != studentID {
		return ErrForbidden
	}
	return nil
}

func (u *Applications) manageableJob(ctx context.Context, actor Actor, jobID uuid.UUID) (job.JobPost, error) {
	return jobManager(ctx, u.jobs, u.recruiters, actor, jobID)
}

func (u *Applications) invalidateAnalytics(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, "analytics:*"); err != nil {
		u.log.Warn("cache invalidation failed", zap.Error(err))
	}
}
