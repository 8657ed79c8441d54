package domain

import "github.com/a-simacov/synncore/internal/constants"

// ActionTemplate defines how one planned action is executed: the
// declared object types for each side and the ordered steps that
// capture them. Templates are immutable configuration loaded from the
// backend together with the task type.
type ActionTemplate struct {
	// ID is the unique identifier of the template.
	ID string `json:"id"`

	// Name is the display name of the template.
	Name string `json:"name"`

	// Kind is the WMS operation semantics the template implements.
	Kind constants.ActionKind `json:"kind"`

	// StorageObjectType is the object type the storage side captures.
	// Empty when the template has no storage side.
	StorageObjectType constants.ObjectType `json:"storage_object_type,omitempty"`

	// PlacementObjectType is the object type the placement side
	// captures. Empty when the template has no placement side.
	PlacementObjectType constants.ObjectType `json:"placement_object_type,omitempty"`

	// StorageSteps are the ordered steps of the storage side.
	StorageSteps []ActionStep `json:"storage_steps,omitempty"`

	// PlacementSteps are the ordered steps of the placement side.
	PlacementSteps []ActionStep `json:"placement_steps,omitempty"`

	// RequiresSync requests a best-effort push of the fact action to
	// the server after local persistence.
	RequiresSync bool `json:"requires_sync,omitempty"`

	// SyncEndpoint is the server endpoint for the sync push.
	SyncEndpoint string `json:"sync_endpoint,omitempty"`
}

// StepCount returns the total number of steps across both sides.
func (t *ActionTemplate) StepCount() int {
	return len(t.StorageSteps) + len(t.PlacementSteps)
}

// Clone creates a deep copy of the template. Value types are copied via
// struct assignment, while step slices are explicitly deep copied to
// prevent shared references.
func (t *ActionTemplate) Clone() *ActionTemplate {
	clone := *t

	if t.StorageSteps != nil {
		clone.StorageSteps = make([]ActionStep, len(t.StorageSteps))
		for i, s := range t.StorageSteps {
			clone.StorageSteps[i] = s.Clone()
		}
	}
	if t.PlacementSteps != nil {
		clone.PlacementSteps = make([]ActionStep, len(t.PlacementSteps))
		for i, s := range t.PlacementSteps {
			clone.PlacementSteps[i] = s.Clone()
		}
	}

	return &clone
}

// ActionStep describes a single interaction within an action template:
// what object the user must supply and how it is validated.
type ActionStep struct {
	// ID identifies this step definition.
	ID string `json:"id"`

	// Order is the position of this step within its side.
	Order int `json:"order"`

	// Name identifies the step (e.g. "scan_bin", "confirm_product").
	Name string `json:"name"`

	// Prompt is the user-facing instruction for this step.
	Prompt string `json:"prompt,omitempty"`

	// ObjectType is the kind of object this step captures.
	ObjectType constants.ObjectType `json:"object_type"`

	// Rule is the validation rule applied to submitted values.
	Rule ValidationRule `json:"rule"`

	// Required indicates whether this step must produce a value.
	Required bool `json:"required"`

	// CanSkip allows the user to explicitly skip this step without
	// validation and without storing a value.
	CanSkip bool `json:"can_skip,omitempty"`

	// SaveToStore persists the validated value into the savable-object
	// store for auto-fill in later steps and actions.
	SaveToStore bool `json:"save_to_store,omitempty"`

	// AutoAdvance skips the explicit confirm interaction; hosts should
	// submit the candidate immediately after capture.
	AutoAdvance bool `json:"auto_advance,omitempty"`

	// AlwaysPrompt suppresses auto-fill for this step even when a
	// matching object is available.
	AlwaysPrompt bool `json:"always_prompt,omitempty"`
}

// Clone creates a deep copy of the step definition.
func (s ActionStep) Clone() ActionStep {
	clone := s
	clone.Rule = s.Rule.Clone()
	return clone
}

// ValidationRule is a named, ordered set of rule items. Items are
// evaluated in declared order and the first failure wins.
type ValidationRule struct {
	// Name identifies the rule for diagnostics.
	Name string `json:"name,omitempty"`

	// Items are the ordered rule items.
	Items []ValidationRuleItem `json:"items,omitempty"`
}

// Clone creates a deep copy of the rule.
func (r ValidationRule) Clone() ValidationRule {
	clone := r
	if r.Items != nil {
		clone.Items = make([]ValidationRuleItem, len(r.Items))
		copy(clone.Items, r.Items)
	}
	return clone
}

// ValidationRuleItem is one check within a rule.
type ValidationRuleItem struct {
	// Kind selects the check behavior.
	Kind constants.RuleKind `json:"kind"`

	// Parameter carries kind-specific configuration (the pattern for
	// matches_regex).
	Parameter string `json:"parameter,omitempty"`

	// ErrorMessage is the user-facing message surfaced on failure.
	// Every failure path must carry a displayable message.
	ErrorMessage string `json:"error_message"`
}
