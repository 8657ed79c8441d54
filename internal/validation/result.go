// Package validation provides the declarative step-validation engine
// for wizard steps.
//
// Expected validation failures are values, never errors: Validate
// returns a Result carrying the failing item's message. Errors are
// reserved for contract violations such as a missing required context
// key, which indicate a misconfigured template rather than bad user
// input.
package validation

// Result is the outcome of evaluating a rule against a candidate value.
type Result struct {
	// Valid reports whether every rule item passed.
	Valid bool `json:"valid"`

	// ErrorMessage is the first failing item's user-facing message.
	// Empty on success; never empty on failure.
	ErrorMessage string `json:"error_message,omitempty"`
}

// Success returns a passing result.
func Success() Result {
	return Result{Valid: true}
}

// Failure returns a failing result with the given user-facing message.
func Failure(msg string) Result {
	return Result{Valid: false, ErrorMessage: msg}
}

// Context is the mapping from string keys to external facts rule kinds
// may need (e.g. constants.ContextKeyPlanObjects holding the plan's
// allowed objects).
type Context map[string]any
