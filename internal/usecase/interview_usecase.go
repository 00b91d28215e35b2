package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/interview"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/notification"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/student"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/infrastructure/metrics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/sanitize"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxSlotWindow     = 14 * 24 * time.Hour
	defaultUpcoming   = 20
	interviewTimeText = "Jan 02, 2006 at 15:04"
)

type ScheduleInput struct {
	ApplicationID    string `json:"application_id"`
	Type             string `json:"type"`
	ScheduledAt      string `json:"scheduled_at"`
	EndAt            string `json:"end_at"`
	InterviewerEmail string `json:"interviewer_email"`
	InterviewerName  string `json:"interviewer_name,omitempty"`
	Location         string `json:"location,omitempty"`
	MeetingLink      string `json:"meeting_link,omitempty"`
}

type RescheduleInput struct {
	ScheduledAt time.Time `json:"scheduled_at"`
	EndAt       time.Time `json:"end_at"`
	Reason      string    `json:"reason"`
}

type CompleteInput struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type SlotQuery struct {
	InterviewerEmail string
	From             time.Time
	To               time.Time
	Duration         time.Duration
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, actor Actor, in ScheduleInput) (interview.Interview, error)
	Reschedule(ctx context.Context, actor Actor, id uuid.UUID, in RescheduleInput) (interview.Interview, error)
	Cancel(ctx context.Context, actor Actor, id uuid.UUID, reason string) (interview.Interview, error)
	Complete(ctx context.Context, actor Actor, id uuid.UUID, in CompleteInput) (interview.Interview, error)
	Confirm(ctx context.Context, actor Actor, id uuid.UUID) (interview.Interview, error)
	ByApplication(ctx context.Context, actor Actor, applicationID uuid.UUID) ([]interview.Interview, error)
	ByInterviewer(ctx context.Context, email string) ([]interview.Interview, error)
	Upcoming(ctx context.Context, email string, limit int) ([]interview.Interview, error)
	AvailableSlots(ctx context.Context, q SlotQuery) ([]interview.Slot, error)
	Statistics(ctx context.Context) (interview.Statistics, error)
}

type Interviews struct {
	interviews interview.Repository
	apps       application.Repository
	jobs       job.Repository
	students   student.Repository
	recruiters recruiter.Repository
	users      user.Repository
	notifier   Notifier
	cache      Cache
	log        *zap.Logger
	now        func() time.Time
}

func NewInterviewUsecase(
	interviews interview.Repository,
	apps application.Repository,
	jobs job.Repository,
	students student.Repository,
	recruiters recruiter.Repository,
	users user.Repository,
	notifier Notifier,
	cache Cache,
	log *zap.Logger,
) *Interviews {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Interviews{
		interviews: interviews,
		apps:       apps,
		jobs:       jobs,
		students:   students,
		recruiters: recruiters,
		users:      users,
		notifier:   notifier,
		cache:      cache,
		log:        logger.OrNop(log),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (u *Interviews) Schedule(ctx context.Context, actor Actor, in ScheduleInput) (interview.Interview, error) {
	in.InterviewerEmail = strings.ToLower(strings.TrimSpace(in.InterviewerEmail))
	if err := validation.InterviewSchedule.Validate(in); err != nil {
		return interview.Interview{}, errors.Join(ErrInvalidInput, err)
	}
	typ, err := interview.ParseType(in.Type)
	if err != nil {
		return interview.Interview{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	start, end, err := parseWindow(in.ScheduledAt, in.EndAt)
	if err != nil {
		return interview.Interview{}, err
	}
	appID, err := uuid.Parse(in.ApplicationID)
	if err != nil {
		return interview.Interview{}, ErrInvalidInput
	}

	app, err := u.application(ctx, appID)
	if err != nil {
		return interview.Interview{}, err
	}
	if _, err := jobManager(ctx, u.jobs, u.recruiters, actor, app.JobID); err != nil {
		return interview.Interview{}, err
	}

	interviewer, err := u.users.GetUserByEmail(ctx, in.InterviewerEmail)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return interview.Interview{}, fmt.Errorf("%w: interviewer %s", ErrNotFound, in.InterviewerEmail)
		}
		return interview.Interview{}, internalError(err)
	}
	name := sanitize.Text(in.InterviewerName)
	if name == "" {
		name = interviewer.Name
	}

	if err := u.checkConflict(ctx, in.InterviewerEmail, start, end, uuid.Nil); err != nil {
		return interview.Interview{}, err
	}

	now := u.now()
	iv := interview.Interview{
		ID:               uuid.New(),
		ApplicationID:    app.ID,
		Type:             typ,
		ScheduledAt:      start,
		EndAt:            end,
		InterviewerEmail: in.InterviewerEmail,
		InterviewerName:  name,
		Location:         sanitize.Text(in.Location),
		MeetingLink:      strings.TrimSpace(in.MeetingLink),
		Status:           interview.StatusScheduled,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := u.interviews.CreateInterview(ctx, iv); err != nil {
		u.log.Error("create interview failed", zap.Error(err))
		return interview.Interview{}, internalError(err)
	}
	metrics.InterviewsScheduled.WithLabelValues(string(iv.Type)).Inc()
	u.invalidate(ctx)

	location := iv.Location
	if location == "" {
		location = "Virtual"
	}
	u.notifyCandidate(ctx, app, "Interview scheduled", fmt.Sprintf(
		"You have been scheduled for a %s on %s with %s. Location: %s",
		humanType(iv.Type), iv.ScheduledAt.Format(interviewTimeText), iv.InterviewerName, location))
	return iv, nil
}

func (u *Interviews) Reschedule(ctx context.Context, actor Actor, id uuid.UUID, in RescheduleInput) (interview.Interview, error) {
	if in.ScheduledAt.IsZero() || in.EndAt.IsZero() {
		return interview.Interview{}, ErrInvalidInput
	}
	if !in.EndAt.After(in.ScheduledAt) {
		return interview.Interview{}, fmt.Errorf("%w: %w", ErrInvalidInput, interview.ErrInvalidSlot)
	}
	iv, app, err := u.managed(ctx, actor, id)
	if err != nil {
		return interview.Interview{}, err
	}
	if iv.Closed() {
		return interview.Interview{}, fmt.Errorf("%w: %w", ErrConflict, interview.ErrClosed)
	}

	start, end := in.ScheduledAt.UTC(), in.EndAt.UTC()
	if err := u.checkConflict(ctx, iv.InterviewerEmail, start, end, iv.ID); err != nil {
		return interview.Interview{}, err
	}

	reason := sanitize.Text(in.Reason)
	iv.AppendNote(fmt.Sprintf("Rescheduled from %s - Reason: %s", iv.ScheduledAt.Format(time.RFC3339), reason))
	iv.ScheduledAt, iv.EndAt = start, end
	iv.Status = interview.StatusRescheduled
	if err := u.save(ctx, &iv); err != nil {
		return interview.Interview{}, err
	}

	u.notifyCandidate(ctx, app, "Interview rescheduled", fmt.Sprintf(
		"Your %s has been rescheduled to %s. Reason: %s",
		humanType(iv.Type), iv.ScheduledAt.Format(interviewTimeText), reason))
	return iv, nil
}

func (u *Interviews) Cancel(ctx context.Context, actor Actor, id uuid.UUID, reason string) (interview.Interview, error) {
	iv, app, err := u.managed(ctx, actor, id)
	if err != nil {
		return interview.Interview{}, err
	}
	if iv.Closed() {
		return interview.Interview{}, fmt.Errorf("%w: %w", ErrConflict, interview.ErrClosed)
	}

	reason = sanitize.Text(reason)
	iv.Status = interview.StatusCancelled
	iv.AppendNote("Cancelled - Reason: " + reason)
	if err := u.save(ctx, &iv); err != nil {
		return interview.Interview{}, err
	}

	u.notifyCandidate(ctx, app, "Interview cancelled", fmt.Sprintf(
		"Your %s scheduled for %s has been cancelled. Reason: %s",
		humanType(iv.Type), iv.ScheduledAt.Format(interviewTimeText), reason))
	return iv, nil
}

func (u *Interviews) Complete(ctx context.Context, actor Actor, id uuid.UUID, in CompleteInput) (interview.Interview, error) {
	if in.Score < 0 || in.Score > 100 {
		return interview.Interview{}, fmt.Errorf("%w: %w", ErrInvalidInput, interview.ErrInvalidScore)
	}
	iv, app, err := u.managed(ctx, actor, id)
	if err != nil {
		return interview.Interview{}, err
	}
	if iv.Closed() {
		return interview.Interview{}, fmt.Errorf("%w: %w", ErrConflict, interview.ErrClosed)
	}

	score := in.Score
	iv.Score = &score
	iv.Feedback = sanitize.Text(in.Feedback)
	iv.Status = interview.StatusCompleted
	if err := u.save(ctx, &iv); err != nil {
		return interview.Interview{}, err
	}

	u.notifyCandidate(ctx, app, "Interview completed", fmt.Sprintf(
		"Your %s on %s has been marked as completed.", humanType(iv.Type), iv.ScheduledAt.Format(interviewTimeText)))
	return iv, nil
}

// Confirm may be called by the managing recruiter or by the candidate.
func (u *Interviews) Confirm(ctx context.Context, actor Actor, id uuid.UUID) (interview.Interview, error) {
	iv, err := u.load(ctx, id)
	if err != nil {
		return interview.Interview{}, err
	}
	app, err := u.application(ctx, iv.ApplicationID)
	if err != nil {
		return interview.Interview{}, err
	}
	if err := u.canView(ctx, actor, app); err != nil {
		return interview.Interview{}, err
	}
	if iv.Closed() {
		return interview.Interview{}, fmt.Errorf("%w: %w", ErrConflict, interview.ErrClosed)
	}
	if iv.Status == interview.StatusConfirmed {
		return iv, nil
	}

	iv.Status = interview.StatusConfirmed
	if err := u.save(ctx, &iv); err != nil {
		return interview.Interview{}, err
	}
	u.notifyCandidate(ctx, app, "Interview confirmed", fmt.Sprintf(
		"Your %s on %s is confirmed.", humanType(iv.Type), iv.ScheduledAt.Format(interviewTimeText)))
	return iv, nil
}

func (u *Interviews) ByApplication(ctx context.Context, actor Actor, applicationID uuid.UUID) ([]interview.Interview, error) {
	app, err := u.application(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := u.canView(ctx, actor, app); err != nil {
		return nil, err
	}
	rows, err := u.interviews.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, internalError(err)
	}
	return rows, nil
}

func (u *Interviews) ByInterviewer(ctx context.Context, email string) ([]interview.Interview, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrInvalidInput
	}
	rows, err := u.interviews.ListByInterviewer(ctx, email, time.Time{}, time.Time{})
	if err != nil {
		return nil, internalError(err)
	}
	return rows, nil
}

// Upcoming lists future interviews, optionally for one interviewer only.
func (u *Interviews) Upcoming(ctx context.Context, email string, limit int) ([]interview.Interview, error) {
	if limit <= 0 {
		limit = defaultUpcoming
	}
	now := u.now()
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		rows, err := u.interviews.ListUpcoming(ctx, now, limit)
		if err != nil {
			return nil, internalError(err)
		}
		return rows, nil
	}

	rows, err := u.interviews.ListByInterviewer(ctx, email, now, time.Time{})
	if err != nil {
		return nil, internalError(err)
	}
	out := interview.Upcoming(rows, now)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (u *Interviews) AvailableSlots(ctx context.Context, q SlotQuery) ([]interview.Slot, error) {
	q.InterviewerEmail = strings.ToLower(strings.TrimSpace(q.InterviewerEmail))
	if q.InterviewerEmail == "" || q.Duration <= 0 || !q.From.Before(q.To) {
		return nil, ErrInvalidInput
	}
	if q.To.Sub(q.From) > maxSlotWindow {
		return nil, fmt.Errorf("%w: window longer than %s", ErrInvalidInput, maxSlotWindow)
	}
	existing, err := u.interviews.ListByInterviewer(ctx, q.InterviewerEmail, q.From, q.To)
	if err != nil {
		return nil, internalError(err)
	}
	return interview.AvailableSlots(existing, q.From.UTC(), q.To.UTC(), q.Duration), nil
}

func (u *Interviews) Statistics(ctx context.Context) (interview.Statistics, error) {
	all, err := u.interviews.ListAll(ctx)
	if err != nil {
		return interview.Statistics{}, internalError(err)
	}
	return interview.Summarize(all), nil
}

func (u *Interviews) checkConflict(ctx context.Context, email string, start, end time.Time, exclude uuid.UUID) error {
	existing, err := u.interviews.ListByInterviewer(ctx, email, start, end)
	if err != nil {
		return internalError(err)
	}
	if other, clash := interview.FindConflict(existing, start, end, exclude); clash {
		u.log.Info("interview conflict",
			zap.String("interviewer", email),
			zap.String("conflicting_id", other.ID.String()),
		)
		return fmt.Errorf("%w: %w", ErrConflict, interview.ErrConflict)
	}
	return nil
}

// managed loads an interview the actor may change: admins and the recruiter owning the job.
func (u *Interviews) managed(ctx context.Context, actor Actor, id uuid.UUID) (interview.Interview, application.Application, error) {
	iv, err := u.load(ctx, id)
	if err != nil {
		return interview.Interview{}, application.Application{}, err
	}
	app, err := u.application(ctx, iv.ApplicationID)
	if err != nil {
		return interview.Interview{}, application.Application{}, err
	}
	if _, err := jobManager(ctx, u.jobs, u.recruiters, actor, app.JobID); err != nil {
		return interview.Interview{}, application.Application{}, err
	}
	return iv, app, nil
}

func (u *Interviews) canView(ctx context.Context, actor Actor, app application.Application) error {
	if actor.IsStudent() {
		st, err := studentOf(ctx, u.students, actor)
		if err != nil || st.ID != app.StudentID {
			return ErrForbidden
		}
		return nil
	}
	_, err := jobManager(ctx, u.jobs, u.recruiters, actor, app.JobID)
	return err
}

func (u *Interviews) load(ctx context.Context, id uuid.UUID) (interview.Interview, error) {
	iv, err := u.interviews.GetInterviewByID(ctx, id)
	if err != nil {
		if errors.Is(err, interview.ErrNotFound) {
			return interview.Interview{}, ErrNotFound
		}
		return interview.Interview{}, internalError(err)
	}
	return iv, nil
}

func (u *Interviews) application(ctx context.Context, id uuid.UUID) (application.Application, error) {
	app, err := u.apps.GetApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, fmt.Errorf("%w: application %s", ErrNotFound, id)
		}
		return application.Application{}, internalError(err)
	}
	return app, nil
}

func (u *Interviews) save(ctx context.Context, iv *interview.Interview) error {
	iv.UpdatedAt = u.now()
	if err := u.interviews.UpdateInterview(ctx, *iv); err != nil {
		if errors.Is(err, interview.ErrNotFound) {
			return ErrNotFound
		}
		u.log.Error("update interview failed", zap.String("interview_id", iv.ID.String()), zap.Error(err))
		return internalError(err)
	}
	u.invalidate(ctx)
	return nil
}

func (u *Interviews) notifyCandidate(ctx context.Context, app application.Application, title, body string) {
	st, err := u.students.GetStudentByID(ctx, app.StudentID)
	if err != nil {
		u.log.Warn("candidate lookup for notification failed", zap.String("application_id", app.ID.String()), zap.Error(err))
		return
	}
	_ = u.notifier.Notify(ctx, NotifyInput{
		UserID: st.UserID,
		Email:  st.Email,
		Kind:   notification.KindInterview,
		Title:  title,
		Body:   fmt.Sprintf("Dear %s,\n\n%s", st.Name, body),
	})
}

func (u *Interviews) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, analyticsKeyInterviews, analyticsKeyDashboard); err != nil {
		u.log.Warn("cache invalidation failed", zap.Error(err))
	}
}

func parseWindow(startText, endText string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startText)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: scheduled_at", ErrInvalidInput)
	}
	end, err := time.Parse(time.RFC3339, endText)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_at", ErrInvalidInput)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %w", ErrInvalidInput, interview.ErrInvalidSlot)
	}
	return start.UTC(), end.UTC(), nil
}

func humanType(t interview.Type) string {
	return strings.ToLower(strings.ReplaceAll(string(t), "_", " "))
}
