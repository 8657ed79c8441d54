package wizard

import (
	"context"

	"github.com/a-simacov/synncore/internal/domain"
)

// PlanProvider supplies the task plan and configuration the wizard
// executes against. Implemented by the host application's storage
// layer.
type PlanProvider interface {
	// PlannedAction retrieves one planned action of the task.
	// Returns an error wrapping errors.ErrActionNotFound when absent.
	PlannedAction(ctx context.Context, taskID, actionID string) (*domain.PlannedAction, error)

	// TaskType retrieves the task's type configuration, exposing the
	// action templates and searchable-field descriptors.
	TaskType(ctx context.Context, taskID string) (*domain.TaskType, error)
}

// FactSaver durably persists fact actions. Save is an upsert: saving a
// fact with an existing id replaces the stored row (used to record the
// send-failed flag after a sync failure).
//
// The durable write must succeed before the wizard reports completion.
type FactSaver interface {
	SaveFactAction(ctx context.Context, fact *domain.FactAction) error
}

// SyncPusher pushes a completed fact action to the server. Best-effort:
// failure marks the fact for retry and never undoes local completion.
type SyncPusher interface {
	PushFactAction(ctx context.Context, fact *domain.FactAction, endpoint string) error
}
