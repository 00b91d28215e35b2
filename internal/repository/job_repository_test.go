package repository

import (
	"testing"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"

	"github.com/stretchr/testify/assert"
)

func TestBuildJobFilter_Empty(t *testing.T) {
	where, args := buildJobFilter(job.ListFilter{})
	assert.Equal(t, "", where)
	assert.Empty(t, args)
}

func TestBuildJobFilter_NumbersPlaceholdersInOrder(t *testing.T) {
	where, args := buildJobFilter(job.ListFilter{
		Keywords: []string{"go", " ", "remote"},
		Type:     " Internship ",
		Status:   job.StatusOpen,
	})

	assert.Equal(t,
		" WHERE (j.title ILIKE ANY($1) OR j.description ILIKE ANY($1) OR j.type ILIKE ANY($1) OR j.location ILIKE ANY($1))"+
			" AND lower(j.type) = lower($2) AND j.status = $3",
		where,
	)
	assert.Equal(t, []any{[]string{"%go%", "%remote%"}, "Internship", "OPEN"}, args)
}

func TestBuildJobFilter_SubstringFilters(t *testing.T) {
	where, args := buildJobFilter(job.ListFilter{Location: "Bengaluru", CompanyName: "zidio"})
	assert.Equal(t, " WHERE j.location ILIKE $1 AND r.company_name ILIKE $2", where)
	assert.Equal(t, []any{"%Bengaluru%", "%zidio%"}, args)
}

func TestBuildJobFilter_EscapesLikeWildcards(t *testing.T) {
	_, args := buildJobFilter(job.ListFilter{
		Title:    "100% remote",
		Stipend:  "10_000",
		Keywords: []string{`c\d`},
	})
	assert.Equal(t, []any{[]string{`%c\\d%`}, `%100\% remote%`, `%10\_000%`}, args)
}

func TestClampPage(t *testing.T) {
	l, o := clampPage(0, -5, 20, 100)
	assert.Equal(t, 20, l)
	assert.Equal(t, 0, o)

	l, _ = clampPage(500, 0, 20, 100)
	assert.Equal(t, 100, l)
}
