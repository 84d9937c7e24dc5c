// Package review implements the human review workflow for
// recommendations: new -> reviewing -> accepted/declined, with reset
// back to new.
package review

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"

	"github.com/Ramsey-B/bramble/pkg/models"
)

// Transition names accepted by the workflow
const (
	TransitionStart   = "start"
	TransitionAccept  = "accept"
	TransitionDecline = "decline"
	TransitionReset   = "reset"
)

// transitions maps a transition name to its required source and
// resulting target status
var transitions = map[string]struct {
	from []models.ReviewStatus
	to   models.ReviewStatus
}{
	TransitionStart:   {from: []models.ReviewStatus{models.ReviewStatusNew}, to: models.ReviewStatusReviewing},
	TransitionAccept:  {from: []models.ReviewStatus{models.ReviewStatusReviewing}, to: models.ReviewStatusAccepted},
	TransitionDecline: {from: []models.ReviewStatus{models.ReviewStatusReviewing}, to: models.ReviewStatusDeclined},
	TransitionReset: {from: []models.ReviewStatus{
		models.ReviewStatusReviewing, models.ReviewStatusAccepted, models.ReviewStatusDeclined,
	}, to: models.ReviewStatusNew},
}

// Transitions lists the valid transition names
func Transitions() []string {
	return []string{TransitionStart, TransitionAccept, TransitionDecline, TransitionReset}
}

// Apply validates and performs a transition, returning the new status.
// An invalid transition is a validation error, never a silent no-op.
func Apply(current models.ReviewStatus, transition string) (models.ReviewStatus, error) {
	t, ok := transitions[transition]
	if !ok {
		return current, httperror.NewHTTPErrorf(http.StatusBadRequest,
			"unknown review transition %q", transition).
			AddMetaValue("kind", "validation_error")
	}
	for _, from := range t.from {
		if from == current {
			return t.to, nil
		}
	}
	return current, httperror.NewHTTPErrorf(http.StatusConflict,
		"cannot %s a review in status %s", transition, current).
		AddMetaValue("kind", "validation_error").
		AddMetaValue("current_status", string(current))
}
