// Package constants provides shared constant values for the synncore
// task-execution library. Enum-style constants live here so that leaf
// packages (domain, validation, savable) can share them without import
// cycles.
//
// This package MUST NOT import any other internal packages.
package constants

// ObjectType identifies the kind of warehouse object a step captures
// or a savable/buffer entry holds. Values use snake_case for JSON
// serialization compatibility.
type ObjectType string

// Object type constants define the valid object kinds.
const (
	// ObjectTypePallet is a movable pallet identified by its code.
	ObjectTypePallet ObjectType = "pallet"

	// ObjectTypeBin is a fixed storage bin identified by its code.
	ObjectTypeBin ObjectType = "bin"

	// ObjectTypeTaskProduct is a product bound to a task's plan together
	// with its planned quantity.
	ObjectTypeTaskProduct ObjectType = "task_product"

	// ObjectTypeClassifierProduct is a product from the backend
	// classifier (catalog), not bound to any task.
	ObjectTypeClassifierProduct ObjectType = "classifier_product"

	// ObjectTypeQuantity is a bare quantity entry. It is a valid step
	// target but is never savable or bufferable.
	ObjectTypeQuantity ObjectType = "quantity"
)

// String returns the string representation of the ObjectType.
func (t ObjectType) String() string {
	return string(t)
}

// ActionKind is the WMS operation semantics of an action. The kind
// governs which object types a template expects on each side.
type ActionKind string

// Action kind constants cover the supported warehouse operations.
const (
	ActionKindPut     ActionKind = "put"
	ActionKindTake    ActionKind = "take"
	ActionKindReceive ActionKind = "receive"
	ActionKindExpense ActionKind = "expense"
	ActionKindRecount ActionKind = "recount"
	ActionKindUse     ActionKind = "use"
	ActionKindAssert  ActionKind = "assert"
)

// String returns the string representation of the ActionKind.
func (k ActionKind) String() string {
	return string(k)
}

// ActionSide distinguishes the storage side of an action (what is
// picked up) from the placement side (where it goes).
type ActionSide string

// Action side constants.
const (
	// ActionSideStorage is the side the object is taken from.
	ActionSideStorage ActionSide = "storage"

	// ActionSidePlacement is the side the object is placed to.
	ActionSidePlacement ActionSide = "placement"
)

// String returns the string representation of the ActionSide.
func (s ActionSide) String() string {
	return string(s)
}

// RuleKind identifies a validation rule item's behavior.
type RuleKind string

// Rule kind constants define the supported validation behaviors.
const (
	// RuleKindFromPlan requires the value to be one of the plan's
	// allowed objects (structural equality plus exact payload type).
	RuleKindFromPlan RuleKind = "from_plan"

	// RuleKindNotEmpty requires a non-nil, non-empty value.
	RuleKindNotEmpty RuleKind = "not_empty"

	// RuleKindMatchesRegex requires a string value matching the rule
	// item's pattern parameter.
	RuleKindMatchesRegex RuleKind = "matches_regex"
)

// String returns the string representation of the RuleKind.
func (k RuleKind) String() string {
	return string(k)
}

// SearchFieldKind identifies which captured field of a planned action
// a search descriptor targets.
type SearchFieldKind string

// Search field kind constants.
const (
	SearchFieldStorageBin        SearchFieldKind = "storage_bin"
	SearchFieldStoragePallet     SearchFieldKind = "storage_pallet"
	SearchFieldClassifierProduct SearchFieldKind = "classifier_product"
	SearchFieldTaskProduct       SearchFieldKind = "task_product"
	SearchFieldPlacementBin      SearchFieldKind = "placement_bin"
	SearchFieldPlacementPallet   SearchFieldKind = "placement_pallet"
)

// String returns the string representation of the SearchFieldKind.
func (k SearchFieldKind) String() string {
	return string(k)
}

// ObjectType maps the search field to the object type it captures.
// Storage pallet/bin fields map to the pallet/bin types, product
// fields map to their respective product types.
func (k SearchFieldKind) ObjectType() ObjectType {
	switch k {
	case SearchFieldStorageBin, SearchFieldPlacementBin:
		return ObjectTypeBin
	case SearchFieldStoragePallet, SearchFieldPlacementPallet:
		return ObjectTypePallet
	case SearchFieldClassifierProduct:
		return ObjectTypeClassifierProduct
	case SearchFieldTaskProduct:
		return ObjectTypeTaskProduct
	}
	return ""
}

// WizardState represents the state of an action wizard session.
// Status values use snake_case for JSON serialization compatibility.
//
// The state machine follows this flow:
//
//	Loading → StepActive, LoadFailed
//	StepActive → StepActive (next step), Summary, ExitConfirm
//	Summary → Completed, ExitConfirm
//	ExitConfirm → Aborted, StepActive, Summary
type WizardState string

// Wizard state constants define the valid states of a wizard session.
const (
	// WizardStateLoading indicates the planned action and template are
	// being fetched.
	WizardStateLoading WizardState = "loading"

	// WizardStateStepActive indicates a step is presented and waiting
	// for a candidate value.
	WizardStateStepActive WizardState = "step_active"

	// WizardStateSummary indicates all steps completed and the user is
	// reviewing accumulated selections.
	WizardStateSummary WizardState = "summary"

	// WizardStateExitConfirm indicates the user asked to leave and must
	// confirm the abort.
	WizardStateExitConfirm WizardState = "exit_confirm"

	// WizardStateCompleted indicates a fact action was persisted.
	// Terminal.
	WizardStateCompleted WizardState = "completed"

	// WizardStateAborted indicates the session ended without a fact
	// action. Terminal.
	WizardStateAborted WizardState = "aborted"

	// WizardStateLoadFailed indicates the plan or template could not be
	// loaded. Terminal.
	WizardStateLoadFailed WizardState = "load_failed"
)

// String returns the string representation of the WizardState.
func (s WizardState) String() string {
	return string(s)
}

// BufferCapacity is the maximum number of entries the cross-action
// quick-recall buffer retains. Oldest entries are evicted first.
const BufferCapacity = 20

// ContextKeyPlanObjects is the validation context key holding the list
// of objects allowed by the plan for the active step.
const ContextKeyPlanObjects = "planObjects"
