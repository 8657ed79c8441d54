// Package search resolves a free-text scan/search value to planned
// actions of a task, combining local plan filtering with remote lookup.
//
// Local descriptors are walked first: the common "I scanned a code that
// is already on the plan" case must never pay a network round-trip.
// Remote descriptors exist for fields whose authoritative match set
// lives server-side (e.g. product catalog lookups).
package search

// Outcome categorizes a search result.
type Outcome string

// Outcome constants.
const (
	// OutcomeSingle means exactly one action matched.
	OutcomeSingle Outcome = "single"

	// OutcomeMultiple means more than one action matched; the caller is
	// responsible for disambiguation.
	OutcomeMultiple Outcome = "multiple"

	// OutcomeNotFound means no action matched.
	OutcomeNotFound Outcome = "not_found"

	// OutcomeError means the search could not be performed (blank
	// value, unconfigured task type, or remote failure in fail mode).
	OutcomeError Outcome = "error"
)

// Result is the outcome of resolving a search value against a task.
// Exactly one of the payload fields is meaningful per outcome.
type Result struct {
	// Outcome categorizes the result.
	Outcome Outcome `json:"outcome"`

	// ActionID is set for OutcomeSingle.
	ActionID string `json:"action_id,omitempty"`

	// ActionIDs is set for OutcomeMultiple, in union order: local-field
	// matches first, then remote-field matches.
	ActionIDs []string `json:"action_ids,omitempty"`

	// Message is the displayable diagnostic for OutcomeNotFound and
	// OutcomeError. Never blank for those outcomes.
	Message string `json:"message,omitempty"`
}

// Single builds a single-match result.
func Single(actionID string) Result {
	return Result{Outcome: OutcomeSingle, ActionID: actionID}
}

// Multiple builds a multi-match result.
func Multiple(actionIDs []string) Result {
	return Result{Outcome: OutcomeMultiple, ActionIDs: actionIDs}
}

// NotFound builds a no-match result with a displayable message.
func NotFound(message string) Result {
	return Result{Outcome: OutcomeNotFound, Message: message}
}

// Error builds a failed-search result with a displayable message.
func Error(message string) Result {
	return Result{Outcome: OutcomeError, Message: message}
}
