package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/analytics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/student"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/sanitize"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	recommendationLimit = 10
	recommendationPool  = 100
	recentApplications  = 5
	dashboardPicks      = 3
)

type StudentInput struct {
	Email     string `json:"email,omitempty"`
	Skills    string `json:"skills"`
	Education string `json:"education"`
	ResumeURL string `json:"resume_url"`
}

type RecentApplication struct {
	application.Application
	DaysSinceApplied int `json:"days_since_applied"`
}

type StudentDashboard struct {
	Student            student.Student              `json:"student"`
	Summary            analytics.ApplicationSummary `json:"summary"`
	RecentApplications []RecentApplication          `json:"recent_applications"`
	Recommended        []job.JobPost                `json:"recommended_jobs"`
	ProfileScore       int                          `json:"profile_score"`
	JobTypes           []analytics.Share            `json:"job_type_preferences"`
}

type StudentUsecase interface {
	CreateOrUpdate(ctx context.Context, actor Actor, in StudentInput) (student.Student, error)
	GetByEmail(ctx context.Context, email string) (student.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (student.Student, error)
	Recommendations(ctx context.Context, actor Actor, limit int) ([]job.JobPost, error)
	Dashboard(ctx context.Context, actor Actor) (StudentDashboard, error)
}

type Students struct {
	students student.Repository
	users    user.Repository
	jobs     job.Repository
	apps     application.Repository
	log      *zap.Logger
	now      func() time.Time
}

func NewStudentUsecase(students student.Repository, users user.Repository, jobs job.Repository, apps application.Repository, log *zap.Logger) *Students {
	return &Students{
		students: students,
		users:    users,
		jobs:     jobs,
		apps:     apps,
		log:      logger.OrNop(log),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrUpdate writes the caller's own profile. Admins may target any
// student account by e-mail.
func (u *Students) CreateOrUpdate(ctx context.Context, actor Actor, in StudentInput) (student.Student, error) {
	owner, err := u.profileOwner(ctx, actor, in.Email)
	if err != nil {
		return student.Student{}, err
	}

	s := student.Student{
		UserID:    owner.ID,
		Skills:    sanitize.Text(in.Skills),
		Education: sanitize.Text(in.Education),
		ResumeURL: strings.TrimSpace(in.ResumeURL),
	}
	saved, err := u.students.UpsertStudent(ctx, s)
	if err != nil {
		u.log.Error("upsert student failed", zap.String("user_id", owner.ID.String()), zap.Error(err))
		return student.Student{}, internalError(err)
	}
	return saved, nil
}

func (u *Students) profileOwner(ctx context.Context, actor Actor, email string) (user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var (
		owner user.User
		err   error
	)
	switch {
	case actor.IsAdmin() && email != "":
		owner, err = u.users.GetUserByEmail(ctx, email)
	case actor.IsStudent():
		owner, err = u.users.GetUserByID(ctx, actor.UserID)
	default:
		return user.User{}, ErrForbidden
	}
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, internalError(err)
	}
	if owner.Role != user.RoleStudent {
		return user.User{}, ErrInvalidInput
	}
	return owner, nil
}

func (u *Students) GetByEmail(ctx context.Context, email string) (student.Student, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return student.Student{}, ErrInvalidInput
	}
	return u.get(u.students.GetStudentByEmail(ctx, email))
}

func (u *Students) GetByID(ctx context.Context, id uuid.UUID) (student.Student, error) {
	return u.get(u.students.GetStudentByID(ctx, id))
}

func (u *Students) get(s student.Student, err error) (student.Student, error) {
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Student{}, ErrNotFound
		}
		return student.Student{}, internalError(err)
	}
	return s, nil
}

// Recommendations ranks open jobs the student has not applied to by skill
// overlap, then freshness.
func (u *Students) Recommendations(ctx context.Context, actor Actor, limit int) ([]job.JobPost, error) {
	st, err := studentOf(ctx, u.students, actor)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > recommendationLimit {
		limit = recommendationLimit
	}
	return u.recommend(ctx, st, limit)
}

func (u *Students) recommend(ctx context.Context, st student.Student, limit int) ([]job.JobPost, error) {
	ids, err := u.apps.AppliedJobIDs(ctx, st.ID)
	if err != nil {
		return nil, internalError(err)
	}
	applied := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		applied[id] = struct{}{}
	}

	open, err := u.jobs.ListJobs(ctx, job.ListFilter{Status: job.StatusOpen, Limit: recommendationPool})
	if err != nil {
		return nil, internalError(err)
	}
	return search.Recommend(st.SkillList(), open, applied, u.now(), limit), nil
}

func (u *Students) Dashboard(ctx context.Context, actor Actor) (StudentDashboard, error) {
	st, err := studentOf(ctx, u.students, actor)
	if err != nil {
		return StudentDashboard{}, err
	}
	apps, err := u.apps.ListApplications(ctx, application.ListFilter{StudentID: st.ID})
	if err != nil {
		return StudentDashboard{}, internalError(err)
	}
	picks, err := u.recommend(ctx, st, dashboardPicks)
	if err != nil {
		return StudentDashboard{}, err
	}

	now := u.now()
	recent := make([]RecentApplication, 0, recentApplications)
	for _, a := range apps {
		if len(recent) == recentApplications {
			break
		}
		recent = append(recent, RecentApplication{Application: a, DaysSinceApplied: analytics.DaysSince(a.AppliedDate, now)})
	}
	return StudentDashboard{
		Student:            st,
		Summary:            analytics.SummarizeApplications(apps),
		RecentApplications: recent,
		Recommended:        picks,
		ProfileScore:       student.ProfileScore(st),
		JobTypes:           analytics.JobTypePreferences(apps),
	}, nil
}
