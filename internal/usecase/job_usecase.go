package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/bookmark"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/notification"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/infrastructure/metrics"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/sanitize"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/validation"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultJobLimit  = 20
	maxJobLimit      = 100
	similarJobsLimit = 5
	jobCacheTTL      = 2 * time.Minute
	jobLockTTL       = 10 * time.Second
)

type JobInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Stipend     string `json:"stipend,omitempty"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	Status      string `json:"status,omitempty"`
}

type JobListParams struct {
	Keyword        string
	Title          string
	Type           string
	Location       string
	CompanyName    string
	Stipend        string
	RecruiterEmail string
	Status         string
	Limit          int
	Offset         int
}

func (p JobListParams) hasFilter() bool {
	for _, v := range []string{p.Keyword, p.Title, p.Type, p.Location, p.CompanyName, p.Stipend, p.RecruiterEmail, p.Status} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

type JobUsecase interface {
	Create(ctx context.Context, actor Actor, in JobInput) (job.JobPost, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in JobInput) (job.JobPost, error)
	Get(ctx context.Context, id uuid.UUID) (job.JobPost, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	List(ctx context.Context, params JobListParams) ([]job.JobPost, error)
	Trending(ctx context.Context, limit int) ([]job.JobPost, error)
	Recent(ctx context.Context, limit int) ([]job.JobPost, error)
	Similar(ctx context.Context, id uuid.UUID) ([]job.JobPost, error)
}

type Jobs struct {
	jobs       job.Repository
	recruiters recruiter.Repository
	bookmarks  bookmark.Repository
	searcher   JobSearcher
	cache      Cache
	notifier   Notifier
	log        *zap.Logger
	now        func() time.Time
}

// NewJobUsecase builds the job usecase; bookmarks, searcher, cache and notifier are optional.
func NewJobUsecase(jobs job.Repository, recruiters recruiter.Repository, bookmarks bookmark.Repository, searcher JobSearcher, cache Cache, notifier Notifier, log *zap.Logger) *Jobs {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Jobs{
		jobs:       jobs,
		recruiters: recruiters,
		bookmarks:  bookmarks,
		searcher:   searcher,
		cache:      cache,
		notifier:   notifier,
		log:        logger.OrNop(log),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func cleanJobInput(in JobInput) JobInput {
	return JobInput{
		Title:       sanitize.Text(in.Title),
		Description: sanitize.HTML(in.Description),
		Stipend:     sanitize.Text(in.Stipend),
		Type:        sanitize.Text(in.Type),
		Location:    sanitize.Text(in.Location),
		Status:      strings.ToUpper(strings.TrimSpace(in.Status)),
	}
}

func (u *Jobs) Create(ctx context.Context, actor Actor, in JobInput) (job.JobPost, error) {
	if !actor.IsRecruiter() {
		return job.JobPost{}, ErrForbidden
	}
	rec, err := u.recruiters.GetRecruiterByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, recruiter.ErrNotFound) {
			return job.JobPost{}, ErrForbidden
		}
		return job.JobPost{}, internalError(err)
	}

	in = cleanJobInput(in)
	if err := validation.JobPost.Validate(in); err != nil {
		return job.JobPost{}, errors.Join(ErrInvalidInput, err)
	}
	status := job.StatusOpen
	if in.Status != "" {
		status = job.Status(in.Status)
	}

	j := job.JobPost{
		ID:          uuid.New(),
		RecruiterID: rec.ID,
		Title:       in.Title,
		Description: in.Description,
		Stipend:     in.Stipend,
		Type:        in.Type,
		Location:    in.Location,
		Status:      status,
	}
	if err := u.jobs.CreateJob(ctx, j); err != nil {
		u.log.Error("create job failed", zap.Error(err))
		return job.JobPost{}, internalError(err)
	}

	created, err := u.jobs.GetJobByID(ctx, j.ID)
	if err != nil {
		return job.JobPost{}, internalError(err)
	}
	u.afterWrite(ctx, created)

	_ = u.notifier.Notify(ctx, NotifyInput{
		UserID: actor.UserID,
		Kind:   notification.KindJobPosted,
		Title:  "Job posted",
		Body:   "Your job post \"" + created.Title + "\" is now live.",
	})
	u.notifyFollowers(ctx, created)
	return created, nil
}

// notifyFollowers tells students who bookmarked any earlier job of the same
// recruiter about a new opening.
func (u *Jobs) notifyFollowers(ctx context.Context, j job.JobPost) {
	if u.bookmarks == nil || !j.IsOpen() {
		return
	}
	followers, err := u.bookmarks.FollowersOfRecruiter(ctx, j.RecruiterID)
	if err != nil {
		u.log.Warn("follower lookup failed", zap.String("recruiter_id", j.RecruiterID.String()), zap.Error(err))
		return
	}
	for _, userID := range followers {
		_ = u.notifier.Notify(ctx, NotifyInput{
			UserID: userID,
			Kind:   notification.KindJobPosted,
			Title:  "New job from " + j.CompanyName,
			Body:   fmt.Sprintf("%s is hiring: %s (%s, %s).", j.CompanyName, j.Title, j.Type, j.Location),
		})
	}
}

func (u *Jobs) Update(ctx context.Context, actor Actor, id uuid.UUID, in JobInput) (job.JobPost, error) {
	existing, err := u.owned(ctx, actor, id)
	if err != nil {
		return job.JobPost{}, err
	}

	in = cleanJobInput(in)
	if err := validation.JobPost.Validate(in); err != nil {
		return job.JobPost{}, errors.Join(ErrInvalidInput, err)
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.Stipend = in.Stipend
	existing.Type = in.Type
	existing.Location = in.Location
	if in.Status != "" {
		existing.Status = job.Status(in.Status)
	}
	if err := u.jobs.UpdateJob(ctx, existing); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.JobPost{}, ErrNotFound
		}
		return job.JobPost{}, internalError(err)
	}

	updated, err := u.jobs.GetJobByID(ctx, id)
	if err != nil {
		return job.JobPost{}, internalError(err)
	}
	u.afterWrite(ctx, updated)
	return updated, nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (job.JobPost, error) {
	j, err := u.jobs.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.JobPost{}, ErrNotFound
		}
		return job.JobPost{}, internalError(err)
	}
	return j, nil
}

func (u *Jobs) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := u.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := u.jobs.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		return internalError(err)
	}

	if u.searcher != nil && u.searcher.Enabled() {
		if err := u.searcher.Delete(ctx, id); err != nil {
			u.log.Warn("remove job from search index failed", zap.String("job_id", id.String()), zap.Error(err))
		}
	}
	u.invalidate(ctx)
	return nil
}

// owned loads a job the actor may modify: the posting recruiter or an admin.
func (u *Jobs) owned(ctx context.Context, actor Actor, id uuid.UUID) (job.JobPost, error) {
	return jobManager(ctx, u.jobs, u.recruiters, actor, id)
}

func (u *Jobs) afterWrite(ctx context.Context, j job.JobPost) {
	if u.searcher != nil && u.searcher.Enabled() {
		if err := u.searcher.Index(ctx, j); err != nil {
			u.log.Warn("index job failed", zap.String("job_id", j.ID.String()), zap.Error(err))
		}
	}
	u.invalidate(ctx)
}

func (u *Jobs) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	for _, p := range []string{"jobs:*", "analytics:*"} {
		if err := u.cache.DeleteByPattern(ctx, p); err != nil {
			u.log.Warn("cache invalidation failed", zap.String("pattern", p), zap.Error(err))
		}
	}
}

func (u *Jobs) List(ctx context.Context, params JobListParams) ([]job.JobPost, error) {
	if params.Limit < 0 || params.Offset < 0 || params.Limit > maxJobLimit {
		return nil, ErrInvalidInput
	}
	if params.Limit == 0 {
		params.Limit = defaultJobLimit
	}
	var status job.Status
	if strings.TrimSpace(params.Status) != "" {
		st, err := job.ParseStatus(params.Status)
		if err != nil {
			return nil, ErrInvalidInput
		}
		status = st
	}

	cacheable := u.cache != nil && params.hasFilter()
	cacheKey, lockKey := "", ""
	if cacheable {
		cacheKey = JobsSearchCacheKey(params)
		lockKey = JobsSearchLockKey(cacheKey)

		var cached []job.JobPost
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			metrics.CacheHit("jobs")
			return cached, nil
		}
		metrics.CacheMiss("jobs")

		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", jobLockTTL)
		switch {
		case err == nil && ok:
			defer func() {
				if err := u.cache.Delete(context.WithoutCancel(ctx), lockKey); err != nil {
					u.log.Debug("cache lock release failed", zap.String("key", lockKey), zap.Error(err))
				}
			}()
		case err == nil && !ok:
			// another request is filling this key
			wait := 200*time.Millisecond + time.Duration(time.Now().UnixNano()%101)*time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
				return cached, nil
			}
		}
	}

	out, err := u.list(ctx, params, status)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := u.cache.SetJSON(ctx, cacheKey, out, jobCacheTTL); err != nil {
			u.log.Debug("cache set failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return out, nil
}

func (u *Jobs) list(ctx context.Context, params JobListParams, status job.Status) ([]job.JobPost, error) {
	f := job.ListFilter{
		Title:          params.Title,
		Type:           params.Type,
		Location:       params.Location,
		CompanyName:    params.CompanyName,
		Stipend:        params.Stipend,
		RecruiterEmail: strings.ToLower(strings.TrimSpace(params.RecruiterEmail)),
		Status:         status,
		Limit:          params.Limit,
		Offset:         params.Offset,
	}

	qctx := search.ProcessQuery(params.Keyword)
	if qctx.Normalized == "" {
		rows, err := u.jobs.ListJobs(ctx, f)
		if err != nil {
			return nil, internalError(err)
		}
		return rows, nil
	}

	if rows, ok := u.searchIndex(ctx, f, qctx); ok {
		return rows, nil
	}

	f.Keywords = qctx.Variants
	rows, err := u.jobs.ListJobs(ctx, f)
	if err != nil {
		return nil, internalError(err)
	}
	return search.RankJobs(rows, qctx.Variants, u.now()), nil
}

// searchIndex resolves a keyword query through the search index, keeping the
// index's relevance order. ok is false when the caller should fall back to SQL.
func (u *Jobs) searchIndex(ctx context.Context, f job.ListFilter, qctx search.QueryContext) ([]job.JobPost, bool) {
	if u.searcher == nil || !u.searcher.Enabled() {
		return nil, false
	}
	ids, err := u.searcher.Search(ctx, search.Keywords(qctx.Normalized), f.Offset+f.Limit)
	if err != nil {
		u.log.Warn("search index query failed, falling back to database", zap.Error(err))
		return nil, false
	}
	if f.Offset >= len(ids) {
		return []job.JobPost{}, true
	}
	ids = ids[f.Offset:]

	f.IDs = ids
	f.Offset = 0
	rows, err := u.jobs.ListJobs(ctx, f)
	if err != nil {
		return nil, false
	}

	byID := make(map[uuid.UUID]job.JobPost, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	out := make([]job.JobPost, 0, len(rows))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, true
}

func (u *Jobs) Trending(ctx context.Context, limit int) ([]job.JobPost, error) {
	rows, err := u.jobs.TrendingJobs(ctx, limit)
	if err != nil {
		return nil, internalError(err)
	}
	return rows, nil
}

func (u *Jobs) Recent(ctx context.Context, limit int) ([]job.JobPost, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := u.jobs.ListJobs(ctx, job.ListFilter{Status: job.StatusOpen, Limit: limit})
	if err != nil {
		return nil, internalError(err)
	}
	return rows, nil
}

func (u *Jobs) Similar(ctx context.Context, id uuid.UUID) ([]job.JobPost, error) {
	target, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	candidates, err := u.jobs.ListJobs(ctx, job.ListFilter{Status: job.StatusOpen, Limit: maxJobLimit})
	if err != nil {
		return nil, internalError(err)
	}
	return search.Similar(target, candidates, similarJobsLimit), nil
}
