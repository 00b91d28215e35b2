package usecase

import (
	"strings"
	"testing"
)

func TestJobsSearchCacheKey_NormalizesInput(t *testing.T) {
	a := JobsSearchCacheKey(JobListParams{Keyword: "  Backend   Intern ", Location: "PUNE", Limit: 20})
	b := JobsSearchCacheKey(JobListParams{Keyword: "backend intern", Location: "pune", Limit: 20})
	if a != b {
		t.Fatalf("expected equal keys, got %s and %s", a, b)
	}
	if !strings.HasPrefix(a, "jobs:search:") {
		t.Fatalf("unexpected prefix: %s", a)
	}

	c := JobsSearchCacheKey(JobListParams{Keyword: "backend intern", Location: "pune", Limit: 20, Offset: 20})
	if a == c {
		t.Fatal("expected paging to change the key")
	}
}

func TestJobsSearchLockKey(t *testing.T) {
	key := JobsSearchCacheKey(JobListParams{Keyword: "go"})
	lock := JobsSearchLockKey(key)
	if lock != "jobs:lock:"+strings.TrimPrefix(key, "jobs:search:") {
		t.Fatalf("unexpected lock key: %s", lock)
	}
}
