// Package analytics derives dashboard figures from already fetched
// collections. Nothing here performs I/O.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/application"
)

const UnspecifiedType = "Unspecified"

// Percent returns part/total as a whole percentage, rounding half away from zero.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

type ApplicationSummary struct {
	Total         int `json:"total"`
	Pending       int `json:"pending"`
	Shortlisted   int `json:"shortlisted"`
	Selected      int `json:"selected"`
	Rejected      int `json:"rejected"`
	SuccessRate   int `json:"success_rate"`
	SelectionRate int `json:"selection_rate"`
}

// SummarizeApplications counts applications per status. SuccessRate counts
// shortlisted and selected applications as successes, SelectionRate only selected ones.
func SummarizeApplications(apps []application.Application) ApplicationSummary {
	counts := CountByStatus(apps)
	return SummaryFromCounts(counts)
}

func SummaryFromCounts(counts map[application.Status]int) ApplicationSummary {
	s := ApplicationSummary{
		Pending:     counts[application.StatusApplied],
		Shortlisted: counts[application.StatusShortlist],
		Selected:    counts[application.StatusSelected],
		Rejected:    counts[application.StatusRejected],
	}
	s.Total = s.Pending + s.Shortlisted + s.Selected + s.Rejected
	s.SuccessRate = Percent(s.Selected+s.Shortlisted, s.Total)
	s.SelectionRate = Percent(s.Selected, s.Total)
	return s
}

func CountByStatus(apps []application.Application) map[application.Status]int {
	out := make(map[application.Status]int, len(application.Statuses))
	for _, a := range apps {
		out[a.Status]++
	}
	return out
}

type Share struct {
	Name       string `json:"name"`
	Value      int    `json:"value"`
	Percentage int    `json:"percentage"`
}

// StatusDistribution lists the statuses present in counts in lifecycle order.
func StatusDistribution(counts map[application.Status]int) []Share {
	total := 0
	for _, st := range application.Statuses {
		total += counts[st]
	}
	out := make([]Share, 0, len(application.Statuses))
	for _, st := range application.Statuses {
		n := counts[st]
		if n == 0 {
			continue
		}
		out = append(out, Share{Name: string(st), Value: n, Percentage: Percent(n, total)})
	}
	return out
}

// JobTypePreferences groups applications by the type of job applied to,
// most popular first.
func JobTypePreferences(apps []application.Application) []Share {
	counts := map[string]int{}
	for _, a := range apps {
		t := strings.TrimSpace(a.JobType)
		if t == "" {
			t = UnspecifiedType
		}
		counts[t]++
	}

	out := make([]Share, 0, len(counts))
	for t, n := range counts {
		out = append(out, Share{Name: t, Value: n, Percentage: Percent(n, len(apps))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DailyTrend counts applications per UTC day for the last days days, ending today.
func DailyTrend(apps []application.Application, now time.Time, days int) []Bucket {
	if days <= 0 {
		return []Bucket{}
	}
	today := truncateDay(now)
	first := today.AddDate(0, 0, -(days - 1))

	out := make([]Bucket, days)
	for i := range out {
		out[i].Label = first.AddDate(0, 0, i).Format("2006-01-02")
	}
	for _, a := range apps {
		d := truncateDay(a.AppliedDate)
		if d.Before(first) || d.After(today) {
			continue
		}
		idx := int(d.Sub(first).Hours() / 24)
		out[idx].Count++
	}
	return out
}

// MonthlyActivity counts applications per UTC month for the last months months.
func MonthlyActivity(apps []application.Application, now time.Time, months int) []Bucket {
	times := make([]time.Time, 0, len(apps))
	for _, a := range apps {
		times = append(times, a.AppliedDate)
	}
	return MonthlyCounts(times, now, months)
}

// MonthlyCounts counts timestamps per UTC month for the last months months.
func MonthlyCounts(times []time.Time, now time.Time, months int) []Bucket {
	if months <= 0 {
		return []Bucket{}
	}
	n := now.UTC()
	current := time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, time.UTC)
	first := current.AddDate(0, -(months - 1), 0)

	out := make([]Bucket, months)
	index := make(map[string]int, months)
	for i := range out {
		label := first.AddDate(0, i, 0).Format("2006-01")
		out[i].Label = label
		index[label] = i
	}
	for _, t := range times {
		if idx, ok := index[t.UTC().Format("2006-01")]; ok {
			out[idx].Count++
		}
	}
	return out
}

// DaysSince returns the number of whole days between t and now, never negative.
func DaysSince(t, now time.Time) int {
	if t.IsZero() || !now.After(t) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}

// AveragePerJob is rounded to two decimals and is 0 without jobs.
func AveragePerJob(applications, jobs int) float64 {
	if jobs <= 0 {
		return 0
	}
	return math.Round(float64(applications)/float64(jobs)*100) / 100
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
