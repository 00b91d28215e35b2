package usecase

import (
	"context"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/analytics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/interview"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/user"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/infrastructure/metrics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"

	"go.uber.org/zap"
)

const (
	analyticsKeySummary      = "analytics:summary"
	analyticsKeyDashboard    = "analytics:dashboard"
	analyticsKeyApplications = "analytics:applications"
	analyticsKeyJobs         = "analytics:jobs"
	analyticsKeyInterviews   = "analytics:interviews"
	analyticsKeyTrends       = "analytics:trends"

	analyticsTTL  = time.Minute
	trendDays     = 7
	trendMonths   = 6
	trendingLimit = 5
)

type SystemSummary struct {
	Users        int `json:"users"`
	Students     int `json:"students"`
	Recruiters   int `json:"recruiters"`
	Admins       int `json:"admins"`
	Jobs         int `json:"jobs"`
	Applications int `json:"applications"`
	Interviews   int `json:"interviews"`
}

type ApplicationStats struct {
	Summary      analytics.ApplicationSummary `json:"summary"`
	Distribution []analytics.Share            `json:"distribution"`
	JobTypes     []analytics.Share            `json:"job_types"`
}

type JobStats struct {
	Total         int             `json:"total"`
	ByType        []job.TypeCount `json:"by_type"`
	AveragePerJob float64         `json:"average_applications_per_job"`
	Trending      []job.JobPost   `json:"trending"`
}

type Trends struct {
	Daily   []analytics.Bucket `json:"daily"`
	Monthly []analytics.Bucket `json:"monthly"`
}

type Dashboard struct {
	Summary      SystemSummary        `json:"summary"`
	Applications ApplicationStats     `json:"applications"`
	Jobs         JobStats             `json:"jobs"`
	Interviews   interview.Statistics `json:"interviews"`
	Trends       Trends               `json:"trends"`
}

type AnalyticsUsecase interface {
	Summary(ctx context.Context) (SystemSummary, error)
	Dashboard(ctx context.Context) (Dashboard, error)
	ApplicationStats(ctx context.Context) (ApplicationStats, error)
	JobStats(ctx context.Context) (JobStats, error)
	InterviewStats(ctx context.Context) (interview.Statistics, error)
	Trends(ctx context.Context) (Trends, error)
}

type Analytics struct {
	users      user.Repository
	jobs       job.Repository
	apps       application.Repository
	interviews interview.Repository
	cache      Cache
	log        *zap.Logger
	now        func() time.Time
}

func NewAnalyticsUsecase(users user.Repository, jobs job.Repository, apps application.Repository, interviews interview.Repository, cache Cache, log *zap.Logger) *Analytics {
	return &Analytics{
		users:      users,
		jobs:       jobs,
		apps:       apps,
		interviews: interviews,
		cache:      cache,
		log:        logger.OrNop(log),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// cached serves key from the cache when present and otherwise stores the result of load.
// Cache errors are logged and treated as a miss.
func cached[T any](ctx context.Context, c Cache, log *zap.Logger, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	var out T
	hit, err := c.GetJSON(ctx, key, &out)
	if err != nil {
		log.Debug("analytics cache read failed", zap.String("key", key), zap.Error(err))
	}
	if err == nil && hit {
		metrics.CacheHit("analytics")
		return out, nil
	}
	metrics.CacheMiss("analytics")

	out, err = load(ctx)
	if err != nil {
		return out, err
	}
	if err := c.SetJSON(ctx, key, out, analyticsTTL); err != nil {
		log.Debug("analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
	return out, nil
}

func (u *Analytics) Summary(ctx context.Context) (SystemSummary, error) {
	return cached(ctx, u.cache, u.log, analyticsKeySummary, u.summary)
}

func (u *Analytics) Dashboard(ctx context.Context) (Dashboard, error) {
	return cached(ctx, u.cache, u.log, analyticsKeyDashboard, func(ctx context.Context) (Dashboard, error) {
		var (
			d   Dashboard
			err error
		)
		if d.Summary, err = u.summary(ctx); err != nil {
			return Dashboard{}, err
		}
		apps, err := u.allApplications(ctx)
		if err != nil {
			return Dashboard{}, err
		}
		d.Applications = applicationStats(apps)
		if d.Jobs, err = u.jobStats(ctx, len(apps)); err != nil {
			return Dashboard{}, err
		}
		if d.Interviews, err = u.interviewStats(ctx); err != nil {
			return Dashboard{}, err
		}
		d.Trends = u.trends(apps)
		return d, nil
	})
}

func (u *Analytics) ApplicationStats(ctx context.Context) (ApplicationStats, error) {
	return cached(ctx, u.cache, u.log, analyticsKeyApplications, func(ctx context.Context) (ApplicationStats, error) {
		apps, err := u.allApplications(ctx)
		if err != nil {
			return ApplicationStats{}, err
		}
		return applicationStats(apps), nil
	})
}

func (u *Analytics) JobStats(ctx context.Context) (JobStats, error) {
	return cached(ctx, u.cache, u.log, analyticsKeyJobs, func(ctx context.Context) (JobStats, error) {
		counts, err := u.apps.CountByStatus(ctx)
		if err != nil {
			return JobStats{}, internalError(err)
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		return u.jobStats(ctx, total)
	})
}

func (u *Analytics) InterviewStats(ctx context.Context) (interview.Statistics, error) {
	return cached(ctx, u.cache, u.log, analyticsKeyInterviews, u.interviewStats)
}

func (u *Analytics) Trends(ctx context.Context) (Trends, error) {
	return cached(ctx, u.cache, u.log, analyticsKeyTrends, func(ctx context.Context) (Trends, error) {
		apps, err := u.allApplications(ctx)
		if err != nil {
			return Trends{}, err
		}
		return u.trends(apps), nil
	})
}

func (u *Analytics) summary(ctx context.Context) (SystemSummary, error) {
	roles, err := u.users.CountByRole(ctx)
	if err != nil {
		return SystemSummary{}, internalError(err)
	}
	jobs, err := u.jobs.CountJobs(ctx)
	if err != nil {
		return SystemSummary{}, internalError(err)
	}
	statuses, err := u.apps.CountByStatus(ctx)
	if err != nil {
		return SystemSummary{}, internalError(err)
	}
	ivs, err := u.interviews.ListAll(ctx)
	if err != nil {
		return SystemSummary{}, internalError(err)
	}

	s := SystemSummary{
		Students:   roles[user.RoleStudent],
		Recruiters: roles[user.RoleRecruiter],
		Admins:     roles[user.RoleAdmin],
		Jobs:       jobs,
		Interviews: len(ivs),
	}
	s.Users = s.Students + s.Recruiters + s.Admins
	for _, n := range statuses {
		s.Applications += n
	}
	return s, nil
}

func (u *Analytics) jobStats(ctx context.Context, applications int) (JobStats, error) {
	total, err := u.jobs.CountJobs(ctx)
	if err != nil {
		return JobStats{}, internalError(err)
	}
	byType, err := u.jobs.CountByType(ctx)
	if err != nil {
		return JobStats{}, internalError(err)
	}
	trending, err := u.jobs.TrendingJobs(ctx, trendingLimit)
	if err != nil {
		return JobStats{}, internalError(err)
	}
	return JobStats{
		Total:         total,
		ByType:        byType,
		AveragePerJob: analytics.AveragePerJob(applications, total),
		Trending:      trending,
	}, nil
}

func (u *Analytics) interviewStats(ctx context.Context) (interview.Statistics, error) {
	all, err := u.interviews.ListAll(ctx)
	if err != nil {
		return interview.Statistics{}, internalError(err)
	}
	return interview.Summarize(all), nil
}

func (u *Analytics) allApplications(ctx context.Context) ([]application.Application, error) {
	apps, err := u.apps.ListApplications(ctx, application.ListFilter{})
	if err != nil {
		return nil, internalError(err)
	}
	return apps, nil
}

func (u *Analytics) trends(apps []application.Application) Trends {
	now := u.now()
	return Trends{
		Daily:   analytics.DailyTrend(apps, now, trendDays),
		Monthly: analytics.MonthlyActivity(apps, now, trendMonths),
	}
}

func applicationStats(apps []application.Application) ApplicationStats {
	counts := analytics.CountByStatus(apps)
	return ApplicationStats{
		Summary:      analytics.SummaryFromCounts(counts),
		Distribution: analytics.StatusDistribution(counts),
		JobTypes:     analytics.JobTypePreferences(apps),
	}
}
