package search

import (
	"sort"
	"strings"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"

	"github.com/google/uuid"
)

type JobScore struct {
	JobID       uuid.UUID
	Relevance   float64
	Freshness   float64
	DataQuality float64
	FinalScore  float64
}

func ComputeRelevance(j job.JobPost, queryVariants []string) float64 {
	if len(queryVariants) == 0 {
		return 0
	}

	title := strings.ToLower(j.Title)
	desc := strings.ToLower(j.Description)
	typ := strings.ToLower(j.Type)
	loc := strings.ToLower(j.Location)
	company := strings.ToLower(j.CompanyName)

	score := 0.0
	for _, v := range queryVariants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if strings.Contains(title, v) {
			score += 3
		}
		if strings.Contains(typ, v) || strings.Contains(loc, v) {
			score += 2
		}
		if strings.Contains(desc, v) {
			score += 1
		}
		if strings.Contains(company, v) {
			score += 1
		}
		if score >= 10 {
			return 10
		}
	}
	return score
}

func ComputeFreshness(j job.JobPost, now time.Time) float64 {
	if j.CreatedAt.IsZero() {
		return 0
	}
	age := now.Sub(j.CreatedAt)
	if age < 0 {
		age = 0
	}

	switch {
	case age <= 24*time.Hour:
		return 5
	case age <= 3*24*time.Hour:
		return 4
	case age <= 7*24*time.Hour:
		return 3
	case age <= 14*24*time.Hour:
		return 2
	case age <= 30*24*time.Hour:
		return 1
	default:
		return 0
	}
}

func ComputeDataQuality(j job.JobPost) float64 {
	score := 0.0
	if strings.TrimSpace(j.Title) != "" {
		score++
	}
	if strings.TrimSpace(j.CompanyName) != "" {
		score++
	}
	if strings.TrimSpace(j.Location) != "" {
		score++
	}
	if len(strings.TrimSpace(j.Description)) > 100 {
		score++
	}
	if strings.TrimSpace(j.Stipend) != "" {
		score++
	}
	return score
}

func ScoreJob(j job.JobPost, queryVariants []string, now time.Time) JobScore {
	rel := ComputeRelevance(j, queryVariants)
	fresh := ComputeFreshness(j, now)
	qual := ComputeDataQuality(j)

	return JobScore{
		JobID:       j.ID,
		Relevance:   rel,
		Freshness:   fresh,
		DataQuality: qual,
		FinalScore:  (rel * 2.0) + (fresh * 1.5) + (qual * 0.5),
	}
}

// RankJobs orders jobs by descending score, keeping the input order for ties.
func RankJobs(jobs []job.JobPost, queryVariants []string, now time.Time) []job.JobPost {
	if len(jobs) == 0 {
		return jobs
	}

	type scored struct {
		idx   int
		score float64
	}
	all := make([]scored, len(jobs))
	maxScore := 0.0
	for i := range jobs {
		s := ScoreJob(jobs[i], queryVariants, now).FinalScore
		all[i] = scored{idx: i, score: s}
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore == 0 {
		return jobs
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].score > all[j].score
	})

	out := make([]job.JobPost, 0, len(jobs))
	for _, it := range all {
		out = append(out, jobs[it.idx])
	}
	return out
}
