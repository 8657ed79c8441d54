package domain

import (
	"time"

	"github.com/a-simacov/synncore/internal/constants"
)

// PlannedAction is a unit of work declared by a task's plan. Planned
// actions are created when the plan is parsed from the backend and are
// immutable afterwards, except for the completion flags which only the
// wizard finalizing this specific action may flip.
//
// Example JSON representation:
//
//	{
//	    "id": "pa-001",
//	    "order": 1,
//	    "template_id": "tpl-receive",
//	    "kind": "receive",
//	    "storage_task_product": {...},
//	    "placement_bin": {"code": "A01"},
//	    "planned_quantity": 12
//	}
type PlannedAction struct {
	// ID is the unique identifier of the planned action.
	ID string `json:"id"`

	// Order is the position of this action within the plan.
	Order int `json:"order"`

	// TemplateID references the ActionTemplate governing execution.
	TemplateID string `json:"template_id"`

	// Kind is the WMS operation semantics of the action.
	Kind constants.ActionKind `json:"kind"`

	// StorageTaskProduct is the task-bound product on the storage side,
	// if the template declares one.
	StorageTaskProduct *TaskProduct `json:"storage_task_product,omitempty"`

	// StorageProduct is the classifier product on the storage side.
	StorageProduct *Product `json:"storage_product,omitempty"`

	// StoragePallet is the pallet on the storage side.
	StoragePallet *Pallet `json:"storage_pallet,omitempty"`

	// StorageBin is the bin on the storage side.
	StorageBin *Bin `json:"storage_bin,omitempty"`

	// PlacementPallet is the pallet on the placement side.
	PlacementPallet *Pallet `json:"placement_pallet,omitempty"`

	// PlacementBin is the bin on the placement side.
	PlacementBin *Bin `json:"placement_bin,omitempty"`

	// IsCompleted marks the action as fulfilled. Set only by the wizard
	// on finalization.
	IsCompleted bool `json:"is_completed"`

	// IsSkipped marks the action as deliberately skipped.
	IsSkipped bool `json:"is_skipped"`

	// IsFinalAction marks the action that closes out the task.
	IsFinalAction bool `json:"is_final_action"`

	// PlannedQuantity is the quantity the plan expects. Zero when the
	// action has no quantity accounting.
	PlannedQuantity float64 `json:"planned_quantity"`
}

// NewPlannedAction builds a planned action, defaulting the planned
// quantity from the storage task product when none is given.
func NewPlannedAction(id string, order int, templateID string, kind constants.ActionKind) *PlannedAction {
	return &PlannedAction{
		ID:         id,
		Order:      order,
		TemplateID: templateID,
		Kind:       kind,
	}
}

// EffectiveQuantity returns the planned quantity, falling back to the
// storage task product's quantity, then zero.
func (a *PlannedAction) EffectiveQuantity() float64 {
	if a.PlannedQuantity > 0 {
		return a.PlannedQuantity
	}
	if a.StorageTaskProduct != nil {
		return a.StorageTaskProduct.Quantity
	}
	return 0
}

// PlanObjects returns the objects the plan allows for the given side
// and object type. The result feeds the from-plan validation rule.
func (a *PlannedAction) PlanObjects(side constants.ActionSide, t constants.ObjectType) []any {
	var objects []any

	appendPallet := func(p *Pallet) {
		if p != nil {
			objects = append(objects, *p)
		}
	}
	appendBin := func(b *Bin) {
		if b != nil {
			objects = append(objects, *b)
		}
	}

	switch side {
	case constants.ActionSideStorage:
		switch t {
		case constants.ObjectTypePallet:
			appendPallet(a.StoragePallet)
		case constants.ObjectTypeBin:
			appendBin(a.StorageBin)
		case constants.ObjectTypeTaskProduct:
			if a.StorageTaskProduct != nil {
				objects = append(objects, *a.StorageTaskProduct)
			}
		case constants.ObjectTypeClassifierProduct:
			if a.StorageProduct != nil {
				objects = append(objects, *a.StorageProduct)
			}
			if a.StorageTaskProduct != nil {
				objects = append(objects, a.StorageTaskProduct.Product)
			}
		}
	case constants.ActionSidePlacement:
		switch t {
		case constants.ObjectTypePallet:
			appendPallet(a.PlacementPallet)
		case constants.ObjectTypeBin:
			appendBin(a.PlacementBin)
		}
	}

	return objects
}

// FactAction records the real-world execution of (some or all of) a
// planned action. Fact actions are never mutated after creation; they
// are deleted only via task-level cleanup.
type FactAction struct {
	// ID is the unique identifier of the fact action.
	ID string `json:"id"`

	// TaskID is the owning task.
	TaskID string `json:"task_id"`

	// PlannedActionID references the planned action this fact fulfils.
	// Empty for unplanned (ad hoc) actions.
	PlannedActionID string `json:"planned_action_id,omitempty"`

	// TemplateID references the template that produced this fact.
	TemplateID string `json:"template_id,omitempty"`

	// Kind is the WMS operation semantics of the action.
	Kind constants.ActionKind `json:"kind"`

	// StorageProduct is the captured classifier product, if any.
	StorageProduct *Product `json:"storage_product,omitempty"`

	// StorageTaskProduct is the captured task-bound product, if any.
	StorageTaskProduct *TaskProduct `json:"storage_task_product,omitempty"`

	// StoragePallet is the captured storage-side pallet, if any.
	StoragePallet *Pallet `json:"storage_pallet,omitempty"`

	// StorageBin is the captured storage-side bin, if any.
	StorageBin *Bin `json:"storage_bin,omitempty"`

	// Quantity is the executed storage-side quantity. Only this value
	// participates in completion accounting.
	Quantity float64 `json:"quantity"`

	// PlacementPallet is the captured placement-side pallet, if any.
	PlacementPallet *Pallet `json:"placement_pallet,omitempty"`

	// PlacementBin is the captured placement-side bin, if any.
	PlacementBin *Bin `json:"placement_bin,omitempty"`

	// StartedAt is when wizard execution began. Invariant:
	// CompletedAt >= StartedAt.
	StartedAt time.Time `json:"started_at"`

	// CompletedAt is when the step sequence finished.
	CompletedAt time.Time `json:"completed_at"`

	// SendFailed marks a fact whose server-sync push failed and is
	// pending retry. Local persistence is unaffected.
	SendFailed bool `json:"send_failed,omitempty"`
}

// SavableObject is a typed value captured during wizard execution for
// reuse in later steps. The store holding these is an append-ordered
// sequence; "last object of type T" means the most recently appended
// object whose tag equals T.
type SavableObject struct {
	// ID is the unique identifier of this entry.
	ID string `json:"id"`

	// Type is the payload's type tag.
	Type constants.ObjectType `json:"type"`

	// Data is the typed payload variant.
	Data SavableObjectData `json:"data"`

	// Source labels which step/action produced the value.
	Source string `json:"source,omitempty"`

	// CreatedAt is when the entry was appended.
	CreatedAt time.Time `json:"created_at"`
}

// BufferItem is an entry of the cross-action quick-recall cache.
type BufferItem struct {
	// ID is the unique identifier of this entry.
	ID string `json:"id"`

	// Type is the payload's type tag.
	Type constants.ObjectType `json:"type"`

	// Data is the typed payload variant.
	Data SavableObjectData `json:"data"`

	// Source labels which step/action produced the value.
	Source string `json:"source,omitempty"`

	// CreatedAt is when the entry was inserted.
	CreatedAt time.Time `json:"created_at"`
}
