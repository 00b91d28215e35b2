package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/analytics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/sanitize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecruiterInput struct {
	Email       string `json:"email,omitempty"`
	CompanyName string `json:"company_name"`
	Designation string `json:"designation"`
}

type JobApplicants struct {
	Job        job.JobPost `json:"job"`
	Applicants int         `json:"applicants"`
}

type RecruiterDashboard struct {
	Recruiter     recruiter.Recruiter          `json:"recruiter"`
	Jobs          []JobApplicants              `json:"jobs"`
	OpenJobs      int                          `json:"open_jobs"`
	Summary       analytics.ApplicationSummary `json:"summary"`
	Distribution  []analytics.Share            `json:"distribution"`
	SelectionRate int                          `json:"selection_rate"`
	AveragePerJob float64                      `json:"average_applications_per_job"`
}

type RecruiterUsecase interface {
	CreateOrUpdate(ctx context.Context, actor Actor, in RecruiterInput) (recruiter.Recruiter, error)
	GetByEmail(ctx context.Context, email string) (recruiter.Recruiter, error)
	GetByID(ctx context.Context, id uuid.UUID) (recruiter.Recruiter, error)
	Dashboard(ctx context.Context, actor Actor) (RecruiterDashboard, error)
}

type Recruiters struct {
	recruiters recruiter.Repository
	users      user.Repository
	jobs       job.Repository
	apps       application.Repository
	log        *zap.Logger
}

func NewRecruiterUsecase(recruiters recruiter.Repository, users user.Repository, jobs job.Repository, apps application.Repository, log *zap.Logger) *Recruiters {
	return &Recruiters{
		recruiters: recruiters,
		users:      users,
		jobs:       jobs,
		apps:       apps,
		log:        logger.OrNop(log),
	}
}

func (u *Recruiters) CreateOrUpdate(ctx context.Context, actor Actor, in RecruiterInput) (recruiter.Recruiter, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	var (
		owner user.User
		err   error
	)
	switch {
	case actor.IsAdmin() && email != "":
		owner, err = u.users.GetUserByEmail(ctx, email)
	case actor.IsRecruiter():
		owner, err = u.users.GetUserByID(ctx, actor.UserID)
	default:
		return recruiter.Recruiter{}, ErrForbidden
	}
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return recruiter.Recruiter{}, ErrNotFound
		}
		return recruiter.Recruiter{}, internalError(err)
	}
	if owner.Role != user.RoleRecruiter {
		return recruiter.Recruiter{}, ErrInvalidInput
	}

	r := recruiter.Recruiter{
		UserID:      owner.ID,
		CompanyName: sanitize.Text(in.CompanyName),
		Designation: sanitize.Text(in.Designation),
	}
	if r.CompanyName == "" {
		r.CompanyName = recruiter.DefaultCompanyName
	}
	if r.Designation == "" {
		r.Designation = recruiter.DefaultDesignation
	}
	saved, err := u.recruiters.UpsertRecruiter(ctx, r)
	if err != nil {
		u.log.Error("upsert recruiter failed", zap.String("user_id", owner.ID.String()), zap.Error(err))
		return recruiter.Recruiter{}, internalError(err)
	}
	return saved, nil
}

func (u *Recruiters) GetByEmail(ctx context.Context, email string) (recruiter.Recruiter, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return recruiter.Recruiter{}, ErrInvalidInput
	}
	return u.get(u.recruiters.GetRecruiterByEmail(ctx, email))
}

func (u *Recruiters) GetByID(ctx context.Context, id uuid.UUID) (recruiter.Recruiter, error) {
	return u.get(u.recruiters.GetRecruiterByID(ctx, id))
}

func (u *Recruiters) get(r recruiter.Recruiter, err error) (recruiter.Recruiter, error) {
	if err != nil {
		if errors.Is(err, recruiter.ErrNotFound) {
			return recruiter.Recruiter{}, ErrNotFound
		}
		return recruiter.Recruiter{}, internalError(err)
	}
	return r, nil
}

// Dashboard summarises the recruiter's own postings and the applications they received.
func (u *Recruiters) Dashboard(ctx context.Context, actor Actor) (RecruiterDashboard, error) {
	rec, err := recruiterOf(ctx, u.recruiters, actor)
	if err != nil {
		return RecruiterDashboard{}, err
	}

	jobs, err := u.jobs.ListJobs(ctx, job.ListFilter{RecruiterID: rec.ID, Limit: maxJobLimit})
	if err != nil {
		return RecruiterDashboard{}, internalError(err)
	}
	perJob, err := u.apps.CountByJob(ctx, rec.ID)
	if err != nil {
		return RecruiterDashboard{}, internalError(err)
	}
	apps, err := u.apps.ListApplications(ctx, application.ListFilter{RecruiterID: rec.ID})
	if err != nil {
		return RecruiterDashboard{}, internalError(err)
	}

	d := RecruiterDashboard{
		Recruiter: rec,
		Jobs:      make([]JobApplicants, 0, len(jobs)),
	}
	for _, j := range jobs {
		if j.IsOpen() {
			d.OpenJobs++
		}
		d.Jobs = append(d.Jobs, JobApplicants{Job: j, Applicants: perJob[j.ID]})
	}
	counts := analytics.CountByStatus(apps)
	d.Summary = analytics.SummaryFromCounts(counts)
	d.Distribution = analytics.StatusDistribution(counts)
	d.SelectionRate = d.Summary.SelectionRate
	d.AveragePerJob = analytics.AveragePerJob(len(apps), len(jobs))
	return d, nil
}
