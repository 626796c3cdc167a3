package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTransitionAllowed_HappyPath(t *testing.T) {
	path := []Status{StatusApplied, StatusUnderReview, StatusShortlisted,
		StatusInterviewing, StatusOffered, StatusHired}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, IsTransitionAllowed(path[i], path[i+1]),
			"%s -> %s", path[i], path[i+1])
	}
}

func TestIsTransitionAllowed_RejectionFromAnyNonTerminal(t *testing.T) {
	for _, from := range []Status{StatusApplied, StatusUnderReview, StatusShortlisted,
		StatusInterviewing, StatusOffered} {
		assert.True(t, IsTransitionAllowed(from, StatusRejected), "%s -> rejected", from)
		assert.True(t, IsTransitionAllowed(from, StatusWithdrawn), "%s -> withdrawn", from)
	}
}

func TestIsTransitionAllowed_NoSkippingStages(t *testing.T) {
	assert.False(t, IsTransitionAllowed(StatusApplied, StatusOffered))
	assert.False(t, IsTransitionAllowed(StatusUnderReview, StatusHired))
	assert.False(t, IsTransitionAllowed(StatusOffered, StatusApplied)) // no going back
}

func TestIsTransitionAllowed_TerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []Status{StatusHired, StatusRejected, StatusWithdrawn} {
		assert.True(t, IsTerminal(terminal))
		for _, to := range []Status{StatusApplied, StatusUnderReview, StatusShortlisted,
			StatusInterviewing, StatusOffered, StatusHired, StatusRejected, StatusWithdrawn} {
			assert.False(t, IsTransitionAllowed(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("under_review")
	require.NoError(t, err)
	assert.Equal(t, StatusUnderReview, st)

	_, err = ParseStatus("ghosted")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}
