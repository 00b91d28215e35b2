package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" shortlist ")
	require.NoError(t, err)
	assert.Equal(t, StatusShortlist, st)

	_, err = ParseStatus("HIRED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusApplied, StatusShortlist, true},
		{StatusApplied, StatusSelected, true},
		{StatusApplied, StatusRejected, true},
		{StatusShortlist, StatusSelected, true},
		{StatusShortlist, StatusRejected, true},
		{StatusShortlist, StatusApplied, false},
		{StatusSelected, StatusRejected, true},
		{StatusSelected, StatusShortlist, true},
		{StatusRejected, StatusShortlist, true},
		{StatusRejected, StatusSelected, true},
		{StatusRejected, StatusApplied, false},
		{StatusSelected, StatusApplied, false},
		{StatusSelected, StatusSelected, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatus_Decided(t *testing.T) {
	assert.True(t, StatusSelected.Decided())
	assert.True(t, StatusRejected.Decided())
	assert.False(t, StatusApplied.Decided())
	assert.False(t, StatusShortlist.Decided())
}
