package search

import (
	"sort"
	"strings"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"

	"github.com/google/uuid"
)

// SkillOverlap counts the student's skills mentioned in a job's title, type or description.
func SkillOverlap(skills []string, j job.JobPost) int {
	text := strings.ToLower(j.Title + " " + j.Type + " " + j.Description)
	n := 0
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && strings.Contains(text, s) {
			n++
		}
	}
	return n
}

// Recommend picks open jobs the student has not applied to, ranked by skill
// overlap and then freshness.
func Recommend(skills []string, jobs []job.JobPost, applied map[uuid.UUID]struct{}, now time.Time, limit int) []job.JobPost {
	type candidate struct {
		job   job.JobPost
		score float64
	}
	cands := make([]candidate, 0, len(jobs))
	for _, j := range jobs {
		if !j.IsOpen() {
			continue
		}
		if _, ok := applied[j.ID]; ok {
			continue
		}
		score := float64(SkillOverlap(skills, j))*3 + ComputeFreshness(j, now)
		cands = append(cands, candidate{job: j, score: score})
	}

	sort.SliceStable(cands, func(a, b int) bool {
		if cands[a].score != cands[b].score {
			return cands[a].score > cands[b].score
		}
		return cands[a].job.CreatedAt.After(cands[b].job.CreatedAt)
	})

	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]job.JobPost, len(cands))
	for i, c := range cands {
		out[i] = c.job
	}
	return out
}

// Similar returns other jobs sharing the target's type or location, newest first.
func Similar(target job.JobPost, jobs []job.JobPost, limit int) []job.JobPost {
	typ := strings.ToLower(strings.TrimSpace(target.Type))
	loc := strings.ToLower(strings.TrimSpace(target.Location))

	out := make([]job.JobPost, 0)
	for _, j := range jobs {
		if j.ID == target.ID {
			continue
		}
		sameType := typ != "" && strings.EqualFold(strings.TrimSpace(j.Type), typ)
		sameLoc := loc != "" && strings.EqualFold(strings.TrimSpace(j.Location), loc)
		if sameType || sameLoc {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
