package review

import (
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/bramble/pkg/models"
)

func TestApply_ValidTransitions(t *testing.T) {
	cases := []struct {
		name       string
		current    models.ReviewStatus
		transition string
		expected   models.ReviewStatus
	}{
		{"start a new review", models.ReviewStatusNew, TransitionStart, models.ReviewStatusReviewing},
		{"accept under review", models.ReviewStatusReviewing, TransitionAccept, models.ReviewStatusAccepted},
		{"decline under review", models.ReviewStatusReviewing, TransitionDecline, models.ReviewStatusDeclined},
		{"reset from reviewing", models.ReviewStatusReviewing, TransitionReset, models.ReviewStatusNew},
		{"reset from accepted", models.ReviewStatusAccepted, TransitionReset, models.ReviewStatusNew},
		{"reset from declined", models.ReviewStatusDeclined, TransitionReset, models.ReviewStatusNew},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Apply(tc.current, tc.transition)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, next)
		})
	}
}

func TestApply_InvalidStateTransitions(t *testing.T) {
	cases := []struct {
		name       string
		current    models.ReviewStatus
		transition string
	}{
		{"accept without starting", models.ReviewStatusNew, TransitionAccept},
		{"decline without starting", models.ReviewStatusNew, TransitionDecline},
		{"start twice", models.ReviewStatusReviewing, TransitionStart},
		{"accept an accepted review", models.ReviewStatusAccepted, TransitionAccept},
		{"reset a new review", models.ReviewStatusNew, TransitionReset},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Apply(tc.current, tc.transition)
			require.Error(t, err)
			assert.Equal(t, 409, httperror.GetStatusCode(err))
			assert.Equal(t, tc.current, next)
		})
	}
}

func TestApply_UnknownTransition(t *testing.T) {
	_, err := Apply(models.ReviewStatusNew, "promote")
	require.Error(t, err)
	assert.Equal(t, 400, httperror.GetStatusCode(err))
}

func TestTransitions_ListsAll(t *testing.T) {
	assert.Equal(t, []string{TransitionStart, TransitionAccept, TransitionDecline, TransitionReset}, Transitions())
}
