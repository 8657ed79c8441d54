package domain

import "github.com/a-simacov/synncore/internal/constants"

// TaskType is immutable configuration loaded from the backend. It
// declares the action templates available for the task and the ordered
// searchable-field descriptors the search engine walks.
type TaskType struct {
	// ID is the unique identifier of the task type.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Templates are the action templates available to this task type.
	Templates []ActionTemplate `json:"templates,omitempty"`

	// SearchFields are the ordered searchable-field descriptors.
	// An empty list means search is not configured for this task type.
	SearchFields []SearchableField `json:"search_fields,omitempty"`
}

// TemplateByID returns the template with the given id, or nil.
func (tt *TaskType) TemplateByID(id string) *ActionTemplate {
	for i := range tt.Templates {
		if tt.Templates[i].ID == id {
			return &tt.Templates[i]
		}
	}
	return nil
}

// SearchableField describes one field the search engine may resolve a
// scan value against.
type SearchableField struct {
	// Field is the planned-action field this descriptor targets.
	Field constants.SearchFieldKind `json:"field"`

	// Remote enables the remote lookup for this field.
	Remote bool `json:"remote,omitempty"`

	// Endpoint is the remote search endpoint. A remote descriptor with
	// a blank endpoint contributes nothing (not an error).
	Endpoint string `json:"endpoint,omitempty"`

	// CacheToBuffer copies locally matched objects into the
	// quick-recall buffer for later auto-fill.
	CacheToBuffer bool `json:"cache_to_buffer,omitempty"`
}

// Task is a warehouse task: a plan of ordered actions of one task type.
type Task struct {
	// ID is the unique identifier of the task.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name,omitempty"`

	// Type is the resolved task type configuration.
	Type TaskType `json:"type"`

	// Actions is the ordered plan.
	Actions []*PlannedAction `json:"actions,omitempty"`
}

// ActionByID returns the planned action with the given id, or nil.
func (t *Task) ActionByID(id string) *PlannedAction {
	for _, a := range t.Actions {
		if a.ID == id {
			return a
		}
	}
	return nil
}
