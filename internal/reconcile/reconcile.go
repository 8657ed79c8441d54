// Package reconcile provides pure, side-effect-free functions over a
// planned action and the set of fact actions recorded for its task:
// completion quantity, completion progress and execution availability.
// These feed the wizard and UI-facing read models.
package reconcile

import "github.com/a-simacov/synncore/internal/domain"

// CompletedQuantity sums the storage-side quantities of all fact
// actions fulfilling the planned action. Placement-side quantities are
// not part of completion accounting. Returns zero when no fact
// references the action.
func CompletedQuantity(action *domain.PlannedAction, facts []*domain.FactAction) float64 {
	var total float64
	for _, f := range facts {
		if f.PlannedActionID == action.ID {
			total += f.Quantity
		}
	}
	return total
}

// CompletionProgress returns the fraction of the planned quantity that
// has been executed, clamped to [0, 1].
//
// When the planned quantity is not positive there is nothing to divide
// by: progress is 1 if the action is explicitly completed, else 0. This
// avoids falsely reporting 100% for zero-quantity actions that were
// never finalized.
func CompletionProgress(action *domain.PlannedAction, facts []*domain.FactAction) float64 {
	planned := action.EffectiveQuantity()
	if planned <= 0 {
		if action.IsCompleted {
			return 1
		}
		return 0
	}

	progress := CompletedQuantity(action, facts) / planned
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// IsPartiallyCompleted reports whether some but not all of the planned
// work has been recorded.
func IsPartiallyCompleted(action *domain.PlannedAction, facts []*domain.FactAction) bool {
	return !action.IsCompleted && !action.IsSkipped && CompletedQuantity(action, facts) > 0
}

// IsAvailableForExecution reports whether the action may still be
// executed.
func IsAvailableForExecution(action *domain.PlannedAction) bool {
	return !action.IsSkipped && !action.IsCompleted
}

// IsClickable reports whether the action may be selected in a list.
// Currently identical to IsAvailableForExecution, but UI affordance and
// execution eligibility are distinct contracts and may diverge.
func IsClickable(action *domain.PlannedAction) bool {
	return !action.IsCompleted && !action.IsSkipped
}
