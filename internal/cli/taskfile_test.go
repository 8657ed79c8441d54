package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
	"github.com/a-simacov/synncore/internal/errors"
)

const sampleTaskYAML = `
task_type:
  id: tt-receive
  name: Receiving
  templates:
    - id: tpl-receive
      kind: receive
      storage_object_type: bin
      placement_object_type: pallet
      storage_steps:
        - name: scan_bin
          object_type: bin
          required: true
          save_to_store: true
          rule:
            name: bin-from-plan
            items:
              - kind: from_plan
                error_message: scanned bin is not on the plan
        - name: enter_quantity
          object_type: quantity
          required: true
          rule:
            items:
              - kind: not_empty
                error_message: quantity required
      placement_steps:
        - name: scan_pallet
          object_type: pallet
          can_skip: true
          rule:
            items:
              - kind: not_empty
                error_message: pallet required
  search_fields:
    - field: storage_bin
      cache_to_buffer: true
task:
  id: task-1
  name: Morning receiving
  actions:
    - id: pa-001
      template_id: tpl-receive
      storage_bin:
        code: A01
        zone: Z1
      planned_quantity: 12
script:
  - action: pa-001
    inputs:
      - value: A01
      - value: "7"
      - skip: true
`

func writeTaskFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "task.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTaskFile(t *testing.T) {
	path := writeTaskFile(t, sampleTaskYAML)

	tf, task, err := LoadTaskFile(path)
	require.NoError(t, err)

	assert.Equal(t, "task-1", task.ID)
	require.Len(t, task.Actions, 1)

	action := task.Actions[0]
	assert.Equal(t, "pa-001", action.ID)
	assert.Equal(t, 1, action.Order)
	assert.Equal(t, constants.ActionKindReceive, action.Kind)
	require.NotNil(t, action.StorageBin)
	assert.Equal(t, "A01", action.StorageBin.Code)
	assert.Equal(t, 12.0, action.PlannedQuantity)

	template := task.Type.TemplateByID("tpl-receive")
	require.NotNil(t, template)
	assert.Equal(t, 3, template.StepCount())
	assert.Equal(t, constants.RuleKindFromPlan, template.StorageSteps[0].Rule.Items[0].Kind)
	assert.Equal(t, 2, template.StorageSteps[1].Order)

	require.Len(t, task.Type.SearchFields, 1)
	assert.Equal(t, constants.SearchFieldStorageBin, task.Type.SearchFields[0].Field)
	assert.True(t, task.Type.SearchFields[0].CacheToBuffer)

	require.Len(t, tf.Script, 1)
	assert.Equal(t, "pa-001", tf.Script[0].Action)
	require.Len(t, tf.Script[0].Inputs, 3)
	assert.True(t, tf.Script[0].Inputs[2].Skip)
}

func TestLoadTaskFileRejectsUnknownKeys(t *testing.T) {
	path := writeTaskFile(t, `
task_type:
  id: tt-1
  templates:
    - id: tpl-1
      kind: receive
      typo_field: oops
task:
  id: task-1
`)

	_, _, err := LoadTaskFile(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTaskFileInvalid)
}

func TestLoadTaskFileRejectsUnknownTemplateReference(t *testing.T) {
	path := writeTaskFile(t, `
task_type:
  id: tt-1
  templates:
    - id: tpl-1
      kind: receive
task:
  id: task-1
  actions:
    - id: pa-001
      template_id: tpl-missing
`)

	_, _, err := LoadTaskFile(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTaskFileInvalid)
	assert.Contains(t, err.Error(), "tpl-missing")
}

func TestLoadTaskFileMissingFile(t *testing.T) {
	_, _, err := LoadTaskFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestActionKindDefaultsFromTemplate(t *testing.T) {
	path := writeTaskFile(t, `
task_type:
  id: tt-1
  templates:
    - id: tpl-1
      kind: expense
      storage_steps:
        - name: s1
          object_type: bin
task:
  id: task-1
  actions:
    - id: pa-001
      template_id: tpl-1
`)

	_, task, err := LoadTaskFile(path)
	require.NoError(t, err)
	assert.Equal(t, constants.ActionKindExpense, task.Actions[0].Kind)
}

func TestPlanSource(t *testing.T) {
	task := &domain.Task{
		ID: "task-1",
		Type: domain.TaskType{
			ID: "tt-1",
		},
		Actions: []*domain.PlannedAction{{ID: "pa-001"}},
	}
	src := &planSource{task: task}
	ctx := context.Background()

	action, err := src.PlannedAction(ctx, "task-1", "pa-001")
	require.NoError(t, err)
	assert.Equal(t, "pa-001", action.ID)

	_, err = src.PlannedAction(ctx, "task-1", "pa-404")
	assert.ErrorIs(t, err, errors.ErrActionNotFound)

	_, err = src.PlannedAction(ctx, "task-2", "pa-001")
	assert.ErrorIs(t, err, errors.ErrTaskNotFound)

	tt, err := src.TaskType(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, "tt-1", tt.ID)
}
