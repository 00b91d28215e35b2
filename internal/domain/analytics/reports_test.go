package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyTo(jobID uuid.UUID, statuses ...application.Status) []application.Application {
	out := make([]application.Application, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, application.Application{ID: uuid.New(), JobID: jobID, Status: s})
	}
	return out
}

func TestTally(t *testing.T) {
	got := Tally([]string{"Remote", "Pune", " ", "Remote", ""})

	require.Len(t, got, 3)
	assert.Equal(t, Share{Name: "Remote", Value: 2, Percentage: 40}, got[0])
	assert.Equal(t, Share{Name: UnspecifiedType, Value: 2, Percentage: 40}, got[1])
	assert.Equal(t, Share{Name: "Pune", Value: 1, Percentage: 20}, got[2])
	assert.Empty(t, Tally(nil))
}

func TestPopularJobs(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	older := job.JobPost{ID: uuid.New(), Title: "Older", CreatedAt: now.Add(-time.Hour)}
	newer := job.JobPost{ID: uuid.New(), Title: "Newer", CreatedAt: now}
	busy := job.JobPost{ID: uuid.New(), Title: "Busy", CompanyName: "Acme", CreatedAt: now.Add(-48 * time.Hour)}

	var all []application.Application
	all = append(all, applyTo(busy.ID, application.StatusApplied, application.StatusSelected, application.StatusRejected)...)
	all = append(all, applyTo(older.ID, application.StatusApplied)...)
	all = append(all, applyTo(newer.ID, application.StatusApplied)...)

	got := PopularJobs([]job.JobPost{older, newer, busy}, all, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "Busy", got[0].Title)
	assert.Equal(t, "Acme", got[0].CompanyName)
	assert.Equal(t, 3, got[0].Applications)
	assert.Equal(t, "Newer", got[1].Title, "ties favour the newer posting")

	assert.Len(t, PopularJobs([]job.JobPost{older, newer, busy}, all, 0), 3)
}

func TestRecruiterPerformance(t *testing.T) {
	acme := recruiter.Recruiter{ID: uuid.New(), Name: "Asha", CompanyName: "Acme"}
	globex := recruiter.Recruiter{ID: uuid.New(), Name: "Ravi", CompanyName: "Globex"}
	idle := recruiter.Recruiter{ID: uuid.New(), Name: "Meera", CompanyName: "Initech"}

	j1 := job.JobPost{ID: uuid.New(), RecruiterID: acme.ID, Status: job.StatusOpen}
	j2 := job.JobPost{ID: uuid.New(), RecruiterID: acme.ID, Status: job.StatusClosed}
	j3 := job.JobPost{ID: uuid.New(), RecruiterID: globex.ID, Status: job.StatusOpen}
	orphan := job.JobPost{ID: uuid.New(), RecruiterID: uuid.New()}

	var all []application.Application
	all = append(all, applyTo(j1.ID, application.StatusSelected, application.StatusApplied)...)
	all = append(all, applyTo(j2.ID, application.StatusRejected)...)
	all = append(all, applyTo(j3.ID, application.StatusSelected, application.StatusSelected, application.StatusApplied, application.StatusApplied)...)
	all = append(all, applyTo(orphan.ID, application.StatusApplied)...)

	got := RecruiterPerformance(
		[]recruiter.Recruiter{idle, globex, acme},
		[]job.JobPost{j1, j2, j3, orphan},
		all,
	)

	require.Len(t, got, 3)

	assert.Equal(t, acme.ID, got[0].RecruiterID)
	assert.Equal(t, 2, got[0].JobsPosted)
	assert.Equal(t, 1, got[0].OpenJobs)
	assert.Equal(t, 3, got[0].Applications)
	assert.Equal(t, 1, got[0].Selected)
	assert.Equal(t, 33, got[0].SelectionRate)
	assert.InDelta(t, 1.5, got[0].AveragePerJob, 0.001)

	assert.Equal(t, globex.ID, got[1].RecruiterID)
	assert.Equal(t, 4, got[1].Applications)
	assert.Equal(t, 50, got[1].SelectionRate)

	assert.Equal(t, idle.ID, got[2].RecruiterID)
	assert.Zero(t, got[2].JobsPosted)
	assert.Zero(t, got[2].SelectionRate)
}

func TestMonthlyCounts(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	times := []time.Time{
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	got := MonthlyCounts(times, now, 3)

	assert.Equal(t, []Bucket{
		{Label: "2024-01", Count: 1},
		{Label: "2024-02", Count: 0},
		{Label: "2024-03", Count: 1},
	}, got)
	assert.Empty(t, MonthlyCounts(times, now, 0))
}

func TestGrowthRate(t *testing.T) {
	assert.Zero(t, GrowthRate(nil))
	assert.Zero(t, GrowthRate([]Bucket{{Count: 0}, {Count: 0}}))
	assert.Equal(t, 100.0, GrowthRate([]Bucket{{Count: 0}, {Count: 4}}))
	assert.Equal(t, 50.0, GrowthRate([]Bucket{{Count: 9}, {Count: 2}, {Count: 3}}))
	assert.Equal(t, -33.3, GrowthRate([]Bucket{{Count: 3}, {Count: 2}}))
}
