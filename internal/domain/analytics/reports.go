package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/recruiter"
)

// Tally groups labels into shares, largest first. Blank labels are counted as Unspecified.
func Tally(labels []string) []Share {
	counts := map[string]int{}
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			l = UnspecifiedType
		}
		counts[l]++
	}

	out := make([]Share, 0, len(counts))
	for name, n := range counts {
		out = append(out, Share{Name: name, Value: n, Percentage: Percent(n, len(labels))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type JobPopularity struct {
	JobID        uuid.UUID  `json:"job_id"`
	Title        string     `json:"title"`
	CompanyName  string     `json:"company_name"`
	Type         string     `json:"type"`
	Location     string     `json:"location"`
	Status       job.Status `json:"status"`
	Applications int        `json:"applications"`
}

// PopularJobs ranks jobs by applications received. Ties keep the newer job first.
func PopularJobs(jobs []job.JobPost, apps []application.Application, limit int) []JobPopularity {
	perJob := make(map[uuid.UUID]int, len(jobs))
	for _, a := range apps {
		perJob[a.JobID]++
	}

	sorted := make([]job.JobPost, len(jobs))
	copy(sorted, jobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := perJob[sorted[i].ID], perJob[sorted[j].ID]
		if ci != cj {
			return ci > cj
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]JobPopularity, 0, len(sorted))
	for _, j := range sorted {
		out = append(out, JobPopularity{
			JobID:        j.ID,
			Title:        j.Title,
			CompanyName:  j.CompanyName,
			Type:         j.Type,
			Location:     j.Location,
			Status:       j.Status,
			Applications: perJob[j.ID],
		})
	}
	return out
}

type RecruiterStats struct {
	RecruiterID   uuid.UUID `json:"recruiter_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CompanyName   string    `json:"company_name"`
	Designation   string    `json:"designation"`
	JobsPosted    int       `json:"jobs_posted"`
	OpenJobs      int       `json:"open_jobs"`
	Applications  int       `json:"applications"`
	Selected      int       `json:"selected"`
	SelectionRate int       `json:"selection_rate"`
	AveragePerJob float64   `json:"average_applications_per_job"`
}

// RecruiterPerformance reports every recruiter, including those without
// postings, ordered by jobs posted then applications received.
func RecruiterPerformance(recs []recruiter.Recruiter, jobs []job.JobPost, apps []application.Application) []RecruiterStats {
	index := make(map[uuid.UUID]int, len(recs))
	out := make([]RecruiterStats, len(recs))
	for i, r := range recs {
		index[r.ID] = i
		out[i] = RecruiterStats{
			RecruiterID: r.ID,
			Name:        r.Name,
			Email:       r.Email,
			CompanyName: r.CompanyName,
			Designation: r.Designation,
		}
	}

	owner := make(map[uuid.UUID]int, len(jobs))
	for _, j := range jobs {
		idx, ok := index[j.RecruiterID]
		if !ok {
			continue
		}
		owner[j.ID] = idx
		out[idx].JobsPosted++
		if j.IsOpen() {
			out[idx].OpenJobs++
		}
	}
	for _, a := range apps {
		idx, ok := owner[a.JobID]
		if !ok {
			continue
		}
		out[idx].Applications++
		if a.Status == application.StatusSelected {
			out[idx].Selected++
		}
	}
	for i := range out {
		out[i].SelectionRate = Percent(out[i].Selected, out[i].Applications)
		out[i].AveragePerJob = AveragePerJob(out[i].Applications, out[i].JobsPosted)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].JobsPosted != out[j].JobsPosted {
			return out[i].JobsPosted > out[j].JobsPosted
		}
		if out[i].Applications != out[j].Applications {
			return out[i].Applications > out[j].Applications
		}
		return out[i].CompanyName < out[j].CompanyName
	})
	return out
}

// GrowthRate compares the last two buckets as a percentage change rounded to
// one decimal. A jump from zero counts as 100.
func GrowthRate(buckets []Bucket) float64 {
	if len(buckets) < 2 {
		return 0
	}
	prev, cur := buckets[len(buckets)-2].Count, buckets[len(buckets)-1].Count
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	return math.Round(float64(cur-prev)/float64(prev)*1000) / 10
}
