// Package errors provides centralized error handling for synncore.
//
// This package defines sentinel errors used for programmatic error
// categorization throughout the library. All error types can be checked
// using errors.Is().
//
// Expected domain outcomes (a failed validation, a not-found search, a
// payload type mismatch) are NOT errors - they are result values. The
// sentinels below mark contract violations and infrastructure failures
// only.
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrMissingContextKey indicates a validation rule required a
	// context key (e.g. planObjects) that the caller did not provide.
	// This is a template misconfiguration, not bad user input.
	ErrMissingContextKey = errors.New("required validation context key missing")

	// ErrUnknownRuleKind indicates a validation rule item carries a
	// rule kind the engine does not implement.
	ErrUnknownRuleKind = errors.New("unknown validation rule kind")

	// ErrInvalidTransition indicates an attempt to make an invalid
	// wizard state transition.
	ErrInvalidTransition = errors.New("invalid wizard state transition")

	// ErrWizardNotLoaded indicates a wizard operation was attempted
	// before Load succeeded.
	ErrWizardNotLoaded = errors.New("wizard not loaded")

	// ErrNoActiveStep indicates a step operation was attempted while no
	// step is active.
	ErrNoActiveStep = errors.New("no active step")

	// ErrStepNotSkippable indicates Skip was called on a step that does
	// not allow skipping.
	ErrStepNotSkippable = errors.New("step cannot be skipped")

	// ErrActionNotExecutable indicates the planned action is already
	// completed or skipped and may not be executed again.
	ErrActionNotExecutable = errors.New("planned action not executable")

	// ErrActionNotFound indicates the requested planned action does not
	// exist in the task plan.
	ErrActionNotFound = errors.New("planned action not found")

	// ErrTaskNotFound indicates the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTemplateNotFound indicates the action's template is missing
	// from the task type.
	ErrTemplateNotFound = errors.New("action template not found")

	// ErrTemplateInvalid indicates an action template failed validation
	// (no steps, unknown object types, bad rule kinds).
	ErrTemplateInvalid = errors.New("invalid action template")

	// ErrFactSaveFailed indicates the durable fact-action write failed.
	// The wizard session stays open for retry.
	ErrFactSaveFailed = errors.New("fact action save failed")

	// ErrFactNotFound indicates the requested fact action was not found.
	ErrFactNotFound = errors.New("fact action not found")

	// ErrStoreClosed indicates an operation on a closed fact store.
	ErrStoreClosed = errors.New("fact store closed")

	// ErrConfigNil indicates a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidBuffer indicates an invalid buffer configuration
	// value.
	ErrConfigInvalidBuffer = errors.New("invalid buffer configuration")

	// ErrConfigInvalidSearch indicates an invalid search configuration
	// value.
	ErrConfigInvalidSearch = errors.New("invalid search configuration")

	// ErrConfigInvalidLogging indicates an invalid logging configuration
	// value.
	ErrConfigInvalidLogging = errors.New("invalid logging configuration")

	// ErrTaskFileInvalid indicates a task definition file could not be
	// parsed or failed validation.
	ErrTaskFileInvalid = errors.New("invalid task file")

	// ErrScriptExhausted indicates a scripted session ran out of inputs
	// before the wizard reached its summary.
	ErrScriptExhausted = errors.New("scripted inputs exhausted")
)
