package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type jobSearchCacheKeyInput struct {
	Keyword        string `json:"keyword"`
	Title          string `json:"title"`
	Type           string `json:"type"`
	Location       string `json:"location"`
	CompanyName    string `json:"company_name"`
	Stipend        string `json:"stipend"`
	RecruiterEmail string `json:"recruiter_email"`
	Status         string `json:"status"`
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
}

func normalizeSearchValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// JobsSearchCacheKey hashes the normalized listing parameters so equivalent
// queries share one cache entry.
func JobsSearchCacheKey(p JobListParams) string {
	in := jobSearchCacheKeyInput{
		Keyword:        normalizeSearchValue(p.Keyword),
		Title:          normalizeSearchValue(p.Title),
		Type:           normalizeSearchValue(p.Type),
		Location:       normalizeSearchValue(p.Location),
		CompanyName:    normalizeSearchValue(p.CompanyName),
		Stipend:        normalizeSearchValue(p.Stipend),
		RecruiterEmail: normalizeSearchValue(p.RecruiterEmail),
		Status:         normalizeSearchValue(p.Status),
		Limit:          p.Limit,
		Offset:         p.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "jobs:search:" + hex.EncodeToString(sum[:])
}

func JobsSearchLockKey(searchKey string) string {
	return "jobs:lock:" + strings.TrimPrefix(strings.TrimSpace(searchKey), "jobs:search:")
}
