package usecase

import (
	"context"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/analytics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"

	"go.uber.org/zap"
)

const (
	reportKeyOverview      = "analytics:reports:overview"
	reportKeyJobs          = "analytics:reports:jobs"
	reportKeyApplications  = "analytics:reports:applications"
	reportKeyUserActivity  = "analytics:reports:users"
	reportKeyPopularJobs   = "analytics:reports:popular"
	reportKeyRecruiters    = "analytics:reports:recruiters"
	reportKeyComprehensive = "analytics:reports:all"

	popularJobsLimit   = 10
	registrationMonths = 6
)

type SystemOverviewReport struct {
	GeneratedAt  time.Time                    `json:"generated_at"`
	Summary      SystemSummary                `json:"summary"`
	OpenJobs     int                          `json:"open_jobs"`
	ActiveUsers  int                          `json:"active_users"`
	Applications analytics.ApplicationSummary `json:"applications"`
}

type JobPostingReport struct {
	GeneratedAt   time.Time         `json:"generated_at"`
	Total         int               `json:"total"`
	Open          int               `json:"open"`
	Closed        int               `json:"closed"`
	ByType        []analytics.Share `json:"by_type"`
	ByLocation    []analytics.Share `json:"by_location"`
	ByCompany     []analytics.Share `json:"by_company"`
	AveragePerJob float64           `json:"average_applications_per_job"`
}

type ApplicationReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Stats       ApplicationStats   `json:"stats"`
	Monthly     []analytics.Bucket `json:"monthly"`
}

type UserActivityReport struct {
	GeneratedAt   time.Time          `json:"generated_at"`
	Total         int                `json:"total"`
	Active        int                `json:"active"`
	Inactive      int                `json:"inactive"`
	ByRole        []analytics.Share  `json:"by_role"`
	Registrations []analytics.Bucket `json:"registrations"`
	GrowthRate    float64            `json:"growth_rate"`
}

type PopularJobsReport struct {
	GeneratedAt time.Time                 `json:"generated_at"`
	Jobs        []analytics.JobPopularity `json:"jobs"`
}

type RecruiterPerformanceReport struct {
	GeneratedAt time.Time                  `json:"generated_at"`
	Recruiters  []analytics.RecruiterStats `json:"recruiters"`
}

type ComprehensiveReport struct {
	GeneratedAt          time.Time                  `json:"generated_at"`
	SystemOverview       SystemOverviewReport       `json:"system_overview"`
	JobPostings          JobPostingReport           `json:"job_postings"`
	Applications         ApplicationReport          `json:"applications"`
	UserActivity         UserActivityReport         `json:"user_activity"`
	PopularJobs          PopularJobsReport          `json:"popular_jobs"`
	RecruiterPerformance RecruiterPerformanceReport `json:"recruiter_performance"`
}

type ReportUsecase interface {
	SystemOverview(ctx context.Context) (SystemOverviewReport, error)
	JobPostings(ctx context.Context) (JobPostingReport, error)
	Applications(ctx context.Context) (ApplicationReport, error)
	UserActivity(ctx context.Context) (UserActivityReport, error)
	PopularJobs(ctx context.Context) (PopularJobsReport, error)
	RecruiterPerformance(ctx context.Context) (RecruiterPerformanceReport, error)
	Comprehensive(ctx context.Context) (ComprehensiveReport, error)
}

type Reports struct {
	analytics  AnalyticsUsecase
	users      user.Repository
	recruiters recruiter.Repository
	jobs       job.Repository
	apps       application.Repository
	cache      Cache
	log        *zap.Logger
	now        func() time.Time
}

func NewReportUsecase(analyticsUC AnalyticsUsecase, users user.Repository, recruiters recruiter.Repository, jobs job.Repository, apps application.Repository, cache Cache, log *zap.Logger) *Reports {
	return &Reports{
		analytics:  analyticsUC,
		users:      users,
		recruiters: recruiters,
		jobs:       jobs,
		apps:       apps,
		cache:      cache,
		log:        logger.OrNop(log),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (u *Reports) SystemOverview(ctx context.Context) (SystemOverviewReport, error) {
	return cached(ctx, u.cache, u.log, reportKeyOverview, func(ctx context.Context) (SystemOverviewReport, error) {
		jobs, apps, err := u.load(ctx)
		if err != nil {
			return SystemOverviewReport{}, err
		}
		return u.systemOverview(ctx, jobs, apps)
	})
}

func (u *Reports) JobPostings(ctx context.Context) (JobPostingReport, error) {
	return cached(ctx, u.cache, u.log, reportKeyJobs, func(ctx context.Context) (JobPostingReport, error) {
		jobs, apps, err := u.load(ctx)
		if err != nil {
			return JobPostingReport{}, err
		}
		return u.jobPostings(jobs, apps), nil
	})
}

func (u *Reports) Applications(ctx context.Context) (ApplicationReport, error) {
	return cached(ctx, u.cache, u.log, reportKeyApplications, func(ctx context.Context) (ApplicationReport, error) {
		apps, err := u.allApplications(ctx)
		if err != nil {
			return ApplicationReport{}, err
		}
		return u.applications(apps), nil
	})
}

func (u *Reports) UserActivity(ctx context.Context) (UserActivityReport, error) {
	return cached(ctx, u.cache, u.log, reportKeyUserActivity, u.userActivity)
}

func (u *Reports) PopularJobs(ctx context.Context) (PopularJobsReport, error) {
	return cached(ctx, u.cache, u.log, reportKeyPopularJobs, func(ctx context.Context) (PopularJobsReport, error) {
		jobs, apps, err := u.load(ctx)
		if err != nil {
			return PopularJobsReport{}, err
		}
		return u.popularJobs(jobs, apps), nil
	})
}

func (u *Reports) RecruiterPerformance(ctx context.Context) (RecruiterPerformanceReport, error) {
	return cached(ctx, u.cache, u.log, reportKeyRecruiters, func(ctx context.Context) (RecruiterPerformanceReport, error) {
		jobs, apps, err := u.load(ctx)
		if err != nil {
			return RecruiterPerformanceReport{}, err
		}
		return u.recruiterPerformance(ctx, jobs, apps)
	})
}

// Comprehensive builds every report from a single read of jobs and applications.
func (u *Reports) Comprehensive(ctx context.Context) (ComprehensiveReport, error) {
	return cached(ctx, u.cache, u.log, reportKeyComprehensive, func(ctx context.Context) (ComprehensiveReport, error) {
		jobs, apps, err := u.load(ctx)
		if err != nil {
			return ComprehensiveReport{}, err
		}
		out := ComprehensiveReport{
			GeneratedAt:  u.now(),
			JobPostings:  u.jobPostings(jobs, apps),
			Applications: u.applications(apps),
			PopularJobs:  u.popularJobs(jobs, apps),
		}
		if out.SystemOverview, err = u.systemOverview(ctx, jobs, apps); err != nil {
			return ComprehensiveReport{}, err
		}
		if out.UserActivity, err = u.userActivity(ctx); err != nil {
			return ComprehensiveReport{}, err
		}
		if out.RecruiterPerformance, err = u.recruiterPerformance(ctx, jobs, apps); err != nil {
			return ComprehensiveReport{}, err
		}
		return out, nil
	})
}

func (u *Reports) systemOverview(ctx context.Context, jobs []job.JobPost, apps []application.Application) (SystemOverviewReport, error) {
	summary, err := u.analytics.Summary(ctx)
	if err != nil {
		return SystemOverviewReport{}, err
	}
	active, _, err := u.users.CountByActive(ctx)
	if err != nil {
		return SystemOverviewReport{}, internalError(err)
	}
	out := SystemOverviewReport{
		GeneratedAt:  u.now(),
		Summary:      summary,
		ActiveUsers:  active,
		Applications: analytics.SummarizeApplications(apps),
	}
	for _, j := range jobs {
		if j.IsOpen() {
			out.OpenJobs++
		}
	}
	return out, nil
}

func (u *Reports) jobPostings(jobs []job.JobPost, apps []application.Application) JobPostingReport {
	types := make([]string, 0, len(jobs))
	locations := make([]string, 0, len(jobs))
	companies := make([]string, 0, len(jobs))
	out := JobPostingReport{GeneratedAt: u.now(), Total: len(jobs)}
	for _, j := range jobs {
		if j.IsOpen() {
			out.Open++
		} else {
			out.Closed++
		}
		types = append(types, j.Type)
		locations = append(locations, j.Location)
		companies = append(companies, j.CompanyName)
	}
	out.ByType = analytics.Tally(types)
	out.ByLocation = analytics.Tally(locations)
	out.ByCompany = analytics.Tally(companies)
	out.AveragePerJob = analytics.AveragePerJob(len(apps), len(jobs))
	return out
}

func (u *Reports) applications(apps []application.Application) ApplicationReport {
	return ApplicationReport{
		GeneratedAt: u.now(),
		Stats:       applicationStats(apps),
		Monthly:     analytics.MonthlyActivity(apps, u.now(), trendMonths),
	}
}

func (u *Reports) userActivity(ctx context.Context) (UserActivityReport, error) {
	roles, err := u.users.CountByRole(ctx)
	if err != nil {
		return UserActivityReport{}, internalError(err)
	}
	active, inactive, err := u.users.CountByActive(ctx)
	if err != nil {
		return UserActivityReport{}, internalError(err)
	}
	now := u.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(registrationMonths - 1), 0)
	joined, err := u.users.RegisteredSince(ctx, first)
	if err != nil {
		return UserActivityReport{}, internalError(err)
	}

	out := UserActivityReport{
		GeneratedAt:   now,
		Total:         active + inactive,
		Active:        active,
		Inactive:      inactive,
		ByRole:        make([]analytics.Share, 0, 3),
		Registrations: analytics.MonthlyCounts(joined, now, registrationMonths),
	}
	for _, r := range []user.Role{user.RoleStudent, user.RoleRecruiter, user.RoleAdmin} {
		out.ByRole = append(out.ByRole, analytics.Share{
			Name:       string(r),
			Value:      roles[r],
			Percentage: analytics.Percent(roles[r], out.Total),
		})
	}
	out.GrowthRate = analytics.GrowthRate(out.Registrations)
	return out, nil
}

func (u *Reports) popularJobs(jobs []job.JobPost, apps []application.Application) PopularJobsReport {
	return PopularJobsReport{
		GeneratedAt: u.now(),
		Jobs:        analytics.PopularJobs(jobs, apps, popularJobsLimit),
	}
}

func (u *Reports) recruiterPerformance(ctx context.Context, jobs []job.JobPost, apps []application.Application) (RecruiterPerformanceReport, error) {
	recs, err := u.recruiters.ListRecruiters(ctx)
	if err != nil {
		return RecruiterPerformanceReport{}, internalError(err)
	}
	return RecruiterPerformanceReport{
		GeneratedAt: u.now(),
		Recruiters:  analytics.RecruiterPerformance(recs, jobs, apps),
	}, nil
}

func (u *Reports) load(ctx context.Context) ([]job.JobPost, []application.Application, error) {
	jobs, err := u.jobs.ListAll(ctx)
	if err != nil {
		return nil, nil, internalError(err)
	}
	apps, err := u.allApplications(ctx)
	if err != nil {
		return nil, nil, err
	}
	return jobs, apps, nil
}

func (u *Reports) allApplications(ctx context.Context) ([]application.Application, error) {
	apps, err := u.apps.ListApplications(ctx, application.ListFilter{})
	if err != nil {
		return nil, internalError(err)
	}
	return apps, nil
}
