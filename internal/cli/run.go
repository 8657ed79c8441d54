package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
	"github.com/a-simacov/synncore/internal/errors"
	"github.com/a-simacov/synncore/internal/factstore"
	"github.com/a-simacov/synncore/internal/savable"
	"github.com/a-simacov/synncore/internal/validation"
	"github.com/a-simacov/synncore/internal/wizard"
)

// AddRunCommand adds the run command to the parent command.
// The run command executes the task file's scripted actions through the
// wizard and records the resulting fact actions.
func AddRunCommand(parent *cobra.Command) {
	var filePath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the scripted actions of a task file",
		Long: `Run loads a task file and executes its script: each entry names a
planned action and the step inputs to feed the wizard. Validated
values are remembered for auto-fill, and every completed action is
recorded as a fact action in the local store.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTaskFile(cmd, filePath)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "task.yaml", "task file to execute")
	parent.AddCommand(cmd)
}

// runTaskFile executes all scripted actions of the task file.
func runTaskFile(cmd *cobra.Command, filePath string) error {
	ctx := cmd.Context()
	logger := GetLogger()
	cfg := GetConfig()

	tf, task, err := LoadTaskFile(filePath)
	if err != nil {
		return err
	}
	if len(tf.Script) == 0 {
		return fmt.Errorf("%w: %s declares no script entries", errors.ErrTaskFileInvalid, filePath)
	}

	facts, err := factstore.Open(cfg.Storage.DBPath, logger)
	if err != nil {
		return err
	}
	defer func() { _ = facts.Close() }()

	// Store and buffer are shared across all actions of the run so that
	// values captured by one action auto-fill the next.
	store := savable.NewStore(logger)
	buffer := savable.NewBuffer(cfg.Buffer.Capacity, logger)
	validator := validation.NewEngine(logger)
	plans := &planSource{task: task}

	for _, entry := range tf.Script {
		if err := runScriptedAction(ctx, cmd, entry, task, plans, facts, validator, store, buffer); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "done: %d action(s) executed\n", len(tf.Script))
	return nil
}

// runScriptedAction drives one wizard session from scripted inputs.
func runScriptedAction(
	ctx context.Context,
	cmd *cobra.Command,
	entry fileScriptEntry,
	task *domain.Task,
	plans wizard.PlanProvider,
	facts wizard.FactSaver,
	validator *validation.Engine,
	store *savable.Store,
	buffer *savable.Buffer,
) error {
	logger := GetLogger()
	out := cmd.OutOrStdout()

	w := wizard.New(plans, facts, validator, store, buffer, logger)
	if err := w.Load(ctx, task.ID, entry.Action); err != nil {
		return err
	}

	inputs := entry.Inputs
	for w.State() == constants.WizardStateStepActive {
		step, _, _ := w.CurrentStep()

		if len(inputs) == 0 {
			// Scripted runs fall back to the prefill candidate before
			// giving up on a step.
			if candidate, ok := w.Prefill(); ok {
				result, err := w.Submit(ctx, candidate)
				if err != nil {
					return err
				}
				if result.Valid {
					fmt.Fprintf(out, "  [%s] %s: auto-filled\n", entry.Action, step.Name)
					continue
				}
			}
			return fmt.Errorf("%w: action %s stuck on step %s", errors.ErrScriptExhausted, entry.Action, step.Name)
		}

		input := inputs[0]
		inputs = inputs[1:]

		if input.Skip {
			if err := w.Skip(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out, "  [%s] %s: skipped\n", entry.Action, step.Name)
			continue
		}

		value := resolveInput(step, w, input.Value)
		result, err := w.Submit(ctx, value)
		if err != nil {
			return err
		}
		if !result.Valid {
			fmt.Fprintf(out, "  [%s] %s: rejected %q: %s\n", entry.Action, step.Name, input.Value, result.ErrorMessage)
			continue
		}
		fmt.Fprintf(out, "  [%s] %s: %s\n", entry.Action, step.Name, input.Value)
	}

	if w.State() != constants.WizardStateSummary {
		return fmt.Errorf("%w: action %s ended in state %s", errors.ErrInvalidTransition, entry.Action, w.State())
	}

	fact, err := w.Confirm(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "completed %s: fact %s (quantity %.2f)\n", entry.Action, fact.ID, fact.Quantity)
	return nil
}

// resolveInput converts a scripted scalar into the typed value the step
// expects. Object-typed inputs are resolved against the plan first so
// that a matching scan carries the plan's full object, not just the
// scanned code.
func resolveInput(step domain.ActionStep, w *wizard.Wizard, raw string) any {
	switch step.ObjectType {
	case constants.ObjectTypeQuantity:
		if q, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return q
		}
		return raw
	case constants.ObjectTypeBin:
		return domain.Bin{Code: raw}
	case constants.ObjectTypePallet:
		return domain.Pallet{Code: raw}
	case constants.ObjectTypeTaskProduct:
		if tp, ok := planTaskProduct(w, raw); ok {
			return tp
		}
		return domain.TaskProduct{Product: domain.Product{ID: raw}}
	case constants.ObjectTypeClassifierProduct:
		if p, ok := planProduct(w, raw); ok {
			return p
		}
		return domain.Product{ID: raw}
	}
	return raw
}

// planTaskProduct resolves a scan against the plan's task products.
func planTaskProduct(w *wizard.Wizard, raw string) (domain.TaskProduct, bool) {
	for _, obj := range w.PlanObjectsForCurrentStep() {
		if tp, ok := obj.(domain.TaskProduct); ok && tp.Product.Matches(raw) {
			return tp, true
		}
	}
	return domain.TaskProduct{}, false
}

// planProduct resolves a scan against the plan's classifier products.
func planProduct(w *wizard.Wizard, raw string) (domain.Product, bool) {
	for _, obj := range w.PlanObjectsForCurrentStep() {
		if p, ok := obj.(domain.Product); ok && p.Matches(raw) {
			return p, true
		}
	}
	return domain.Product{}, false
}
