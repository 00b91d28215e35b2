package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	enabled bool
	ids     []uuid.UUID
	err     error
	indexed []uuid.UUID
	deleted []uuid.UUID
}

func (f *fakeSearcher) Enabled() bool { return f.enabled }

func (f *fakeSearcher) Index(_ context.Context, j job.JobPost) error {
	f.indexed = append(f.indexed, j.ID)
	return nil
}

func (f *fakeSearcher) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSearcher) Search(context.Context, []string, int) ([]uuid.UUID, error) {
	return f.ids, f.err
}

func validJobInput() JobInput {
	return JobInput{
		Title:       "<b>Go</b> Developer",
		Description: `<p>Build APIs</p><script>alert(1)</script>`,
		Type:        "Internship",
		Location:    "Pune",
	}
}

func TestCreateJob_SanitizesIndexesAndInvalidates(t *testing.T) {
	w := newWorld()
	_, _, recActor := w.addRecruiter("Ravi", "ravi@acme.in", "Acme")
	s := &fakeSearcher{enabled: true}
	w.cache.values["jobs:search:abc"] = []byte(`[]`)
	w.cache.values["analytics:jobs"] = []byte(`{}`)
	uc := NewJobUsecase(w.jobs, w.recruiters, w.bookmarks, s, w.cache, w.notifier, nil)

	j, err := uc.Create(context.Background(), recActor, validJobInput())
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", j.Title)
	assert.Equal(t, "<p>Build APIs</p>", j.Description)
	assert.Equal(t, job.StatusOpen, j.Status)
	assert.Equal(t, []uuid.UUID{j.ID}, s.indexed)
	assert.False(t, w.cache.has("jobs:search:abc"))
	assert.False(t, w.cache.has("analytics:jobs"))
	assert.Len(t, w.notifier.to(recActor.UserID), 1)
}

func TestCreateJob_NotifiesStudentsWhoBookmarkedTheRecruiter(t *testing.T) {
	w := newWorld()
	_, rec, recActor := w.addRecruiter("Ravi", "ravi@acme.in", "Acme")
	_, other, _ := w.addRecruiter("Meera", "meera@globex.in", "Globex")
	ashaUser, _, _ := w.addStudent("Asha", "asha@zidio.in", "")
	vikUser, _, _ := w.addStudent("Vik", "vik@zidio.in", "")
	earlier := w.addJob(rec, "Backend Intern", "Internship", "Pune", job.StatusOpen)
	elsewhere := w.addJob(other, "Designer", "Contract", "Delhi", job.StatusOpen)
	w.bookmarks.set[[2]uuid.UUID{ashaUser.ID, earlier.ID}] = true
	w.bookmarks.set[[2]uuid.UUID{vikUser.ID, elsewhere.ID}] = true
	uc := NewJobUsecase(w.jobs, w.recruiters, w.bookmarks, nil, nil, w.notifier, nil)

	j, err := uc.Create(context.Background(), recActor, validJobInput())
	require.NoError(t, err)

	got := w.notifier.to(ashaUser.ID)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Body, j.Title)
	assert.Empty(t, w.notifier.to(vikUser.ID), "follows a different recruiter")
	assert.Len(t, w.notifier.to(recActor.UserID), 1)
}

func TestCreateJob_Rejections(t *testing.T) {
	w := newWorld()
	_, _, recActor := w.addRecruiter("Ravi", "ravi@acme.in", "Acme")
	_, _, stuActor := w.addStudent("Asha", "asha@zidio.in", "")
	uc := NewJobUsecase(w.jobs, w.recruiters, w.bookmarks, nil, nil, nil, nil)

	_, err := uc.Create(context.Background(), stuActor, validJobInput())
	assert.ErrorIs(t, err, ErrForbidden)

	in := validJobInput()
	in.Title = "  "
	in.Status = "archived"
	_, err = uc.Create(context.Background(), recActor, in)
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["title"])
	assert.True(t, fields["status"])
	assert.Empty(t, w.jobs.byID)
}

func TestUpdateDeleteJob_Ownership(t *testing.T) {
	w := newWorld()
	_, rec, owner := w.addRecruiter("Ravi", "ravi@acme.in", "Acme")
	_, _, other := w.addRecruiter("Meera", "meera@globex.in", "Globex")
	j := w.addJob(rec, "Backend Intern", "Internship", "Pune", job.StatusOpen)
	s := &fakeSearcher{enabled: true}
	uc := NewJobUsecase(w.jobs, w.recruiters, w.bookmarks, s, w.cache, nil, nil)
	ctx := context.Background()

	in := validJobInput()
	in.Status = "closed"
	_, err := uc.Update(ctx, other, j.ID, in)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := uc.Update(ctx, owner, j.ID, in)
	require.NoError(t, err)
	assert.Equal(t, job.StatusClosed, updated.Status)

	assert.ErrorIs(t, uc.Delete(ctx, other, j.ID), ErrForbidden)
	require.NoError(t, uc.Delete(ctx, adminActor(), j.ID))
	assert.Equal(t, []uuid.UUID{j.ID}, s.deleted)

	_, err = uc.Get(ctx, j.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListJobs_KeywordFallsBackToDatabase(t *testing.T) {
	w := newWorld()
	_, rec, _ := w.addRecruiter("Ravi", "ravi@acme.in", "Acme")
	w.addJob(rec, "Accountant", "Full-time", "Delhi", job.StatusOpen)
	golang := w.addJob(rec, "Golang Developer", "Internship", "Pune", job.StatusOpen)
	s := &fakeSearcher{enabled: true, err: errors.New("cluster down")}
	uc := NewJobUsecase(w.jobs, w.recruiters, w.bookmarks, s, nil, nil, nil)

	got, err := uc.List(context.Background(), JobListParams{Keyword: "golang"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, golang.ID, got[0].ID)
	assert.NotEmpty(t, w.jobs.lastList.Keywords)
}

func TestListJobs_UsesSearchIndexOrder(t *testing.T) {
	w := newWorld()
	_, rec, _ := w.addRecruiter("Ravi", "ravi@acme.in", "Acme")
	a := w.addJob(rec, "Go Developer", "Internship", "Pune", job.StatusOpen)
	b := w.addJob(rec, "Go Intern", "Internship", "Pune", job.StatusOpen)
	s := &fakeSearcher{enabled: true, ids: []uuid.UUID{b.ID, uuid.New(), a.ID}}
	uc := NewJobUsecase(w.jobs, w.recruiters, w.bookmarks, s, nil, nil, nil)

	got, err := uc.List(context.Background(), JobListParams{Keyword: "go"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
}

func TestListJobs_CachesFilteredResults(t *testing.T) {
	w := newWorld()
	_, rec, _ := w.addRecruiter("Ravi", "ravi@acme.in", "Acme")
	w.addJob(rec, "Go Developer", "Internship", "Pune", job.StatusOpen)
	uc := NewJobUsecase(w.jobs, w.recruiters, w.bookmarks, nil, w.cache, nil, nil)
	ctx := context.Background()
	params := JobListParams{Location: "pune"}

	first, err := uc.List(ctx, params)
	require.NoError(t, err)
	second, err := uc.List(ctx, params)
	require.NoError(t, err)

	assert.Len(t, second, len(first))
	assert.Equal(t, 1, w.jobs.listCalls)
	assert.False(t, w.cache.has(JobsSearchLockKey(JobsSearchCacheKey(params))), "lock released")
}

func TestListJobs_ReleasesLockWhenQueryFails(t *testing.T) {
	w := newWorld()
	dbErr := errors.New("connection reset")
	w.jobs.listErr = dbErr
	uc := NewJobUsecase(w.jobs, w.recruiters, w.bookmarks, nil, w.cache, nil, nil)
	ctx := context.Background()
	params := JobListParams{Location: "pune"}
	lockKey := JobsSearchLockKey(JobsSearchCacheKey(params))

	_, err := uc.List(ctx, params)
	require.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, w.cache.has(lockKey), "lock released after failure")

	w.jobs.listErr = nil
	start := time.Now()
	_, err = uc.List(ctx, params)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 150*time.Millisecond, "second caller did not wait on a stale lock")
	assert.Equal(t, 2, w.jobs.listCalls)
}

func TestListJobs_InvalidParams(t *testing.T) {
	w := newWorld()
	uc := NewJobUsecase(w.jobs, w.recruiters, w.bookmarks, nil, nil, nil, nil)

	_, err := uc.List(context.Background(), JobListParams{Limit: 101})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.List(context.Background(), JobListParams{Status: "draft"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecentAndSimilar(t *testing.T) {
	w := newWorld()
	_, rec, _ := w.addRecruiter("Ravi", "ravi@acme.in", "Acme")
	target := w.addJob(rec, "Go Developer", "Internship", "Pune", job.StatusOpen)
	sameCity := w.addJob(rec, "Accountant", "Full-time", "Pune", job.StatusOpen)
	sameCity.CreatedAt = time.Now().Add(time.Hour)
	w.jobs.byID[sameCity.ID] = sameCity
	w.addJob(rec, "Designer", "Contract", "Delhi", job.StatusOpen)
	w.addJob(rec, "Old role", "Internship", "Delhi", job.StatusClosed)
	uc := NewJobUsecase(w.jobs, w.recruiters, w.bookmarks, nil, nil, nil, nil)
	ctx := context.Background()

	recent, err := uc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	similar, err := uc.Similar(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, sameCity.ID, similar[0].ID)
}
