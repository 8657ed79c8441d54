package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
	"github.com/a-simacov/synncore/internal/errors"
)

// TaskFile is the on-disk YAML description of one task: its type
// configuration (templates and search fields), the planned actions, and
// an optional execution script consumed by the run command.
//
// The file schema is deliberately separate from the domain types: the
// domain serializes as snake_case JSON for the backend, while the task
// file is hand-written YAML.
type TaskFile struct {
	TaskType fileTaskType      `yaml:"task_type"`
	Task     fileTask          `yaml:"task"`
	Script   []fileScriptEntry `yaml:"script,omitempty"`
}

type fileTaskType struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name,omitempty"`
	Templates    []fileTemplate    `yaml:"templates"`
	SearchFields []fileSearchField `yaml:"search_fields,omitempty"`
}

type fileTemplate struct {
	ID                  string     `yaml:"id"`
	Name                string     `yaml:"name,omitempty"`
	Kind                string     `yaml:"kind"`
	StorageObjectType   string     `yaml:"storage_object_type,omitempty"`
	PlacementObjectType string     `yaml:"placement_object_type,omitempty"`
	StorageSteps        []fileStep `yaml:"storage_steps,omitempty"`
	PlacementSteps      []fileStep `yaml:"placement_steps,omitempty"`
	RequiresSync        bool       `yaml:"requires_sync,omitempty"`
	SyncEndpoint        string     `yaml:"sync_endpoint,omitempty"`
}

type fileStep struct {
	ID           string   `yaml:"id,omitempty"`
	Name         string   `yaml:"name"`
	Prompt       string   `yaml:"prompt,omitempty"`
	ObjectType   string   `yaml:"object_type"`
	Rule         fileRule `yaml:"rule,omitempty"`
	Required     bool     `yaml:"required,omitempty"`
	CanSkip      bool     `yaml:"can_skip,omitempty"`
	SaveToStore  bool     `yaml:"save_to_store,omitempty"`
	AutoAdvance  bool     `yaml:"auto_advance,omitempty"`
	AlwaysPrompt bool     `yaml:"always_prompt,omitempty"`
}

type fileRule struct {
	Name  string         `yaml:"name,omitempty"`
	Items []fileRuleItem `yaml:"items,omitempty"`
}

type fileRuleItem struct {
	Kind         string `yaml:"kind"`
	Parameter    string `yaml:"parameter,omitempty"`
	ErrorMessage string `yaml:"error_message"`
}

type fileSearchField struct {
	Field         string `yaml:"field"`
	Remote        bool   `yaml:"remote,omitempty"`
	Endpoint      string `yaml:"endpoint,omitempty"`
	CacheToBuffer bool   `yaml:"cache_to_buffer,omitempty"`
}

type fileTask struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name,omitempty"`
	Actions []fileAction `yaml:"actions"`
}

type fileAction struct {
	ID                 string           `yaml:"id"`
	TemplateID         string           `yaml:"template_id"`
	Kind               string           `yaml:"kind,omitempty"`
	StorageTaskProduct *fileTaskProduct `yaml:"storage_task_product,omitempty"`
	StorageProduct     *fileProduct     `yaml:"storage_product,omitempty"`
	StoragePallet      *filePallet      `yaml:"storage_pallet,omitempty"`
	StorageBin         *fileBin         `yaml:"storage_bin,omitempty"`
	PlacementPallet    *filePallet      `yaml:"placement_pallet,omitempty"`
	PlacementBin       *fileBin         `yaml:"placement_bin,omitempty"`
	IsFinalAction      bool             `yaml:"is_final_action,omitempty"`
	PlannedQuantity    float64          `yaml:"planned_quantity,omitempty"`
}

type fileProduct struct {
	ID      string `yaml:"id"`
	Article string `yaml:"article,omitempty"`
	Name    string `yaml:"name,omitempty"`
}

type fileTaskProduct struct {
	ID       string      `yaml:"id"`
	Product  fileProduct `yaml:"product"`
	Quantity float64     `yaml:"quantity,omitempty"`
}

type filePallet struct {
	Code     string `yaml:"code"`
	IsClosed bool   `yaml:"is_closed,omitempty"`
}

type fileBin struct {
	Code string `yaml:"code"`
	Zone string `yaml:"zone,omitempty"`
}

type fileScriptEntry struct {
	Action string      `yaml:"action"`
	Inputs []fileInput `yaml:"inputs,omitempty"`
}

type fileInput struct {
	Value string `yaml:"value,omitempty"`
	Skip  bool   `yaml:"skip,omitempty"`
}

// LoadTaskFile reads and parses a task file, converting it into the
// domain task. Unknown YAML keys are rejected to catch typos early.
func LoadTaskFile(path string) (*TaskFile, *domain.Task, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // User-supplied task file path
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read task file %s", path)
	}

	var tf TaskFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", errors.ErrTaskFileInvalid, path, err)
	}

	task, err := tf.toDomain()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", errors.ErrTaskFileInvalid, path, err)
	}
	return &tf, task, nil
}

// toDomain converts the file schema into the domain task, checking the
// structural invariants a usable plan requires.
func (tf *TaskFile) toDomain() (*domain.Task, error) {
	if tf.Task.ID == "" {
		return nil, fmt.Errorf("task.id is required")
	}
	if len(tf.TaskType.Templates) == 0 {
		return nil, fmt.Errorf("task_type.templates is empty")
	}

	taskType := domain.TaskType{
		ID:   tf.TaskType.ID,
		Name: tf.TaskType.Name,
	}
	for _, t := range tf.TaskType.Templates {
		taskType.Templates = append(taskType.Templates, domain.ActionTemplate{
			ID:                  t.ID,
			Name:                t.Name,
			Kind:                constants.ActionKind(t.Kind),
			StorageObjectType:   constants.ObjectType(t.StorageObjectType),
			PlacementObjectType: constants.ObjectType(t.PlacementObjectType),
			StorageSteps:        toDomainSteps(t.StorageSteps),
			PlacementSteps:      toDomainSteps(t.PlacementSteps),
			RequiresSync:        t.RequiresSync,
			SyncEndpoint:        t.SyncEndpoint,
		})
	}
	for _, f := range tf.TaskType.SearchFields {
		taskType.SearchFields = append(taskType.SearchFields, domain.SearchableField{
			Field:         constants.SearchFieldKind(f.Field),
			Remote:        f.Remote,
			Endpoint:      f.Endpoint,
			CacheToBuffer: f.CacheToBuffer,
		})
	}

	task := &domain.Task{
		ID:   tf.Task.ID,
		Name: tf.Task.Name,
		Type: taskType,
	}
	for i, a := range tf.Task.Actions {
		if a.TemplateID == "" {
			return nil, fmt.Errorf("action %s has no template_id", a.ID)
		}
		if taskType.TemplateByID(a.TemplateID) == nil {
			return nil, fmt.Errorf("action %s references unknown template %s", a.ID, a.TemplateID)
		}

		kind := constants.ActionKind(a.Kind)
		if kind == "" {
			kind = taskType.TemplateByID(a.TemplateID).Kind
		}

		action := domain.NewPlannedAction(a.ID, i+1, a.TemplateID, kind)
		action.IsFinalAction = a.IsFinalAction
		action.PlannedQuantity = a.PlannedQuantity
		if a.StorageTaskProduct != nil {
			action.StorageTaskProduct = &domain.TaskProduct{
				ID:       a.StorageTaskProduct.ID,
				Product:  a.StorageTaskProduct.Product.toDomain(),
				Quantity: a.StorageTaskProduct.Quantity,
			}
		}
		if a.StorageProduct != nil {
			p := a.StorageProduct.toDomain()
			action.StorageProduct = &p
		}
		if a.StoragePallet != nil {
			action.StoragePallet = &domain.Pallet{Code: a.StoragePallet.Code, IsClosed: a.StoragePallet.IsClosed}
		}
		if a.StorageBin != nil {
			action.StorageBin = &domain.Bin{Code: a.StorageBin.Code, Zone: a.StorageBin.Zone}
		}
		if a.PlacementPallet != nil {
			action.PlacementPallet = &domain.Pallet{Code: a.PlacementPallet.Code, IsClosed: a.PlacementPallet.IsClosed}
		}
		if a.PlacementBin != nil {
			action.PlacementBin = &domain.Bin{Code: a.PlacementBin.Code, Zone: a.PlacementBin.Zone}
		}

		task.Actions = append(task.Actions, action)
	}

	return task, nil
}

func (p fileProduct) toDomain() domain.Product {
	return domain.Product{ID: p.ID, Article: p.Article, Name: p.Name}
}

// toDomainSteps converts file steps, numbering them by position.
func toDomainSteps(steps []fileStep) []domain.ActionStep {
	out := make([]domain.ActionStep, 0, len(steps))
	for i, s := range steps {
		rule := domain.ValidationRule{Name: s.Rule.Name}
		for _, it := range s.Rule.Items {
			rule.Items = append(rule.Items, domain.ValidationRuleItem{
				Kind:         constants.RuleKind(it.Kind),
				Parameter:    it.Parameter,
				ErrorMessage: it.ErrorMessage,
			})
		}
		out = append(out, domain.ActionStep{
			ID:           s.ID,
			Order:        i + 1,
			Name:         s.Name,
			Prompt:       s.Prompt,
			ObjectType:   constants.ObjectType(s.ObjectType),
			Rule:         rule,
			Required:     s.Required,
			CanSkip:      s.CanSkip,
			SaveToStore:  s.SaveToStore,
			AutoAdvance:  s.AutoAdvance,
			AlwaysPrompt: s.AlwaysPrompt,
		})
	}
	return out
}

// planSource adapts an in-memory task to the wizard's PlanProvider.
type planSource struct {
	task *domain.Task
}

// PlannedAction implements wizard.PlanProvider.
func (p *planSource) PlannedAction(_ context.Context, taskID, actionID string) (*domain.PlannedAction, error) {
	if taskID != p.task.ID {
		return nil, fmt.Errorf("%w: %s", errors.ErrTaskNotFound, taskID)
	}
	action := p.task.ActionByID(actionID)
	if action == nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrActionNotFound, actionID)
	}
	return action, nil
}

// TaskType implements wizard.PlanProvider.
func (p *planSource) TaskType(_ context.Context, taskID string) (*domain.TaskType, error) {
	if taskID != p.task.ID {
		return nil, fmt.Errorf("%w: %s", errors.ErrTaskNotFound, taskID)
	}
	return &p.task.Type, nil
}
