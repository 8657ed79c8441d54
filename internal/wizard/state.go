// Package wizard orchestrates the execution of one planned action: it
// walks the template's ordered steps, validates submitted values,
// remembers them for auto-fill, and produces a fact action on
// completion.
//
// This file implements the wizard state machine, which enforces valid
// state transitions.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors,
//     internal/validation, internal/savable, internal/clock, std lib
//   - MUST NOT import: internal/cli, internal/factstore
package wizard

import "github.com/a-simacov/synncore/internal/constants"

// ValidTransitions defines all allowed state transitions in the wizard
// lifecycle. Format: from_state -> []to_states
//
// The state machine follows this flow:
//
//	Loading → StepActive, LoadFailed
//	StepActive → StepActive (next step), Summary, ExitConfirm
//	Summary → Completed, ExitConfirm
//	ExitConfirm → Aborted, StepActive, Summary
//
// StepActive → StepActive is the step-advance transition; the step
// index moves while the state kind stays the same.
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[constants.WizardState][]constants.WizardState{
	constants.WizardStateLoading: {
		constants.WizardStateStepActive,
		constants.WizardStateLoadFailed,
	},
	constants.WizardStateStepActive: {
		constants.WizardStateStepActive,
		constants.WizardStateSummary,
		constants.WizardStateExitConfirm,
	},
	constants.WizardStateSummary: {
		constants.WizardStateCompleted,
		constants.WizardStateExitConfirm,
	},
	constants.WizardStateExitConfirm: {
		constants.WizardStateAborted,
		constants.WizardStateStepActive,
		constants.WizardStateSummary,
	},
}

// terminalStates defines states where no further transitions are
// allowed. Terminal states are those NOT present as keys in
// ValidTransitions. Duplicated for O(1) lookup.
//
//nolint:gochecknoglobals // Read-only lookup table for terminal state checks
var terminalStates = map[constants.WizardState]bool{
	constants.WizardStateCompleted:  true,
	constants.WizardStateAborted:    true,
	constants.WizardStateLoadFailed: true,
}

// IsValidTransition checks if a transition from one state to another is
// allowed. Returns false for transitions from terminal states.
func IsValidTransition(from, to constants.WizardState) bool {
	validTargets, exists := ValidTransitions[from]
	if !exists {
		return false // Terminal state or unknown state
	}
	for _, target := range validTargets {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminalState returns true for states where no further transitions
// are allowed. Terminal states: Completed, Aborted, LoadFailed.
func IsTerminalState(state constants.WizardState) bool {
	return terminalStates[state]
}
