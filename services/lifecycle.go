package services

import (
	"fmt"

	"github.com/linesmerrill/efiling-api/apperrors"
	"github.com/linesmerrill/efiling-api/models"
)

// caseTransitions lists the statuses reachable from each non-terminal status.
// processing is optional.
var caseTransitions = map[models.CaseStatus][]models.CaseStatus{
	models.CaseStatusPending:    {models.CaseStatusProcessing, models.CaseStatusApproved, models.CaseStatusRejected},
	models.CaseStatusProcessing: {models.CaseStatusApproved, models.CaseStatusRejected},
}

// hearingTransitions is monotonic: scheduled, ongoing, completed or scheduled, cancelled
var hearingTransitions = map[models.HearingStatus][]models.HearingStatus{
	models.HearingStatusScheduled: {models.HearingStatusOngoing, models.HearingStatusCancelled},
	models.HearingStatusOngoing:   {models.HearingStatusCompleted},
}

// CheckCaseTransition returns a validation error unless a case may move from one status to the other
func CheckCaseTransition(from, to models.CaseStatus) error {
	if !to.IsValid() {
		return apperrors.Validation("invalid status", apperrors.FieldError{
			Field:   "status",
			Message: "status must be one of pending, processing, approved, rejected",
		})
	}
	if from.IsTerminal() {
		return apperrors.Validation(fmt.Sprintf("case is already %s", from), apperrors.FieldError{
			Field:   "status",
			Message: fmt.Sprintf("no transition out of terminal status %s", from),
		})
	}
	if from == to {
		return apperrors.Validation(fmt.Sprintf("case is already %s", from), apperrors.FieldError{
			Field:   "status",
			Message: "no-op transition",
		})
	}
	for _, next := range caseTransitions[from] {
		if next == to {
			return nil
		}
	}
	return apperrors.Validation(fmt.Sprintf("cannot move case from %s to %s", from, to), apperrors.FieldError{
		Field:   "status",
		Message: fmt.Sprintf("transition %s to %s is not allowed", from, to),
	})
}

// CheckHearingTransition returns a validation error unless a hearing may move from one status to the other
func CheckHearingTransition(from, to models.HearingStatus) error {
	if !to.IsValid() {
		return apperrors.Validation("invalid status", apperrors.FieldError{
			Field:   "status",
			Message: "status must be one of scheduled, ongoing, completed, cancelled",
		})
	}
	for _, next := range hearingTransitions[from] {
		if next == to {
			return nil
		}
	}
	return apperrors.Validation(fmt.Sprintf("cannot move hearing from %s to %s", from, to), apperrors.FieldError{
		Field:   "status",
		Message: fmt.Sprintf("transition %s to %s is not allowed", from, to),
	})
}
