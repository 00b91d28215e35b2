package interview

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SlotStep is the granularity used when searching for free slots.
const SlotStep = 30 * time.Minute

type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps treats touching endpoints as a clash.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(aEnd.Before(bStart) || aStart.After(bEnd))
}

// FindConflict returns the first non-cancelled interview in existing that
// overlaps [start, end], skipping the interview with id exclude.
func FindConflict(existing []Interview, start, end time.Time, exclude uuid.UUID) (Interview, bool) {
	for _, iv := range existing {
		if iv.Status == StatusCancelled {
			continue
		}
		if exclude != uuid.Nil && iv.ID == exclude {
			continue
		}
		if Overlaps(start, end, iv.ScheduledAt, iv.EndAt) {
			return iv, true
		}
	}
	return Interview{}, false
}

// AvailableSlots walks [from, to) in SlotStep increments and keeps every slot
// of the given duration that fits before to and clashes with nothing in existing.
func AvailableSlots(existing []Interview, from, to time.Time, duration time.Duration) []Slot {
	out := []Slot{}
	if duration <= 0 || !from.Before(to) {
		return out
	}
	for cur := from; !cur.Add(duration).After(to); cur = cur.Add(SlotStep) {
		end := cur.Add(duration)
		if _, clash := FindConflict(existing, cur, end, uuid.Nil); clash {
			continue
		}
		out = append(out, Slot{Start: cur, End: end})
	}
	return out
}

// Upcoming keeps future SCHEDULED or CONFIRMED interviews, earliest first.
func Upcoming(all []Interview, now time.Time) []Interview {
	out := make([]Interview, 0, len(all))
	for _, iv := range all {
		if !iv.ScheduledAt.After(now) {
			continue
		}
		if iv.Status != StatusScheduled && iv.Status != StatusConfirmed {
			continue
		}
		out = append(out, iv)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out
}

type Statistics struct {
	Total              int            `json:"total"`
	ByStatus           map[Status]int `json:"by_status"`
	ByType             map[Type]int   `json:"by_type"`
	ActiveInterviewers int            `json:"active_interviewers"`
	AverageScore       float64        `json:"average_score"`
}

func Summarize(all []Interview) Statistics {
	st := Statistics{
		Total:    len(all),
		ByStatus: make(map[Status]int, len(Statuses)),
		ByType:   make(map[Type]int, len(Types)),
	}
	for _, s := range Statuses {
		st.ByStatus[s] = 0
	}
	for _, t := range Types {
		st.ByType[t] = 0
	}

	interviewers := map[string]struct{}{}
	scored, sum := 0, 0
	for _, iv := range all {
		st.ByStatus[iv.Status]++
		st.ByType[iv.Type]++
		if e := strings.ToLower(strings.TrimSpace(iv.InterviewerEmail)); e != "" {
			interviewers[e] = struct{}{}
		}
		if iv.Score != nil {
			scored++
			sum += *iv.Score
		}
	}
	st.ActiveInterviewers = len(interviewers)
	if scored > 0 {
		st.AverageScore = float64(sum) / float64(scored)
	}
	return st
}
