package cli

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
	"github.com/a-simacov/synncore/internal/errors"
)

// AddLintCommand adds the lint command to the parent command.
// The lint command checks a task file's templates for configuration
// mistakes before the file is used for execution.
func AddLintCommand(parent *cobra.Command) {
	var filePath string

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check a task file's templates for configuration mistakes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return lintTaskFile(cmd, filePath)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "task.yaml", "task file to check")
	parent.AddCommand(cmd)
}

// validObjectTypes are the object types a step may capture.
//
//nolint:gochecknoglobals // Read-only lookup table
var validObjectTypes = map[constants.ObjectType]bool{
	constants.ObjectTypePallet:            true,
	constants.ObjectTypeBin:               true,
	constants.ObjectTypeTaskProduct:       true,
	constants.ObjectTypeClassifierProduct: true,
	constants.ObjectTypeQuantity:          true,
}

// validRuleKinds are the supported validation behaviors.
//
//nolint:gochecknoglobals // Read-only lookup table
var validRuleKinds = map[constants.RuleKind]bool{
	constants.RuleKindFromPlan:     true,
	constants.RuleKindNotEmpty:     true,
	constants.RuleKindMatchesRegex: true,
}

// lintTaskFile reports all problems found in the task file's templates.
func lintTaskFile(cmd *cobra.Command, filePath string) error {
	out := cmd.OutOrStdout()

	_, task, err := LoadTaskFile(filePath)
	if err != nil {
		return err
	}

	var problems []string
	for i := range task.Type.Templates {
		problems = append(problems, lintTemplate(&task.Type.Templates[i])...)
	}
	for _, f := range task.Type.SearchFields {
		if f.Field.ObjectType() == "" {
			problems = append(problems, fmt.Sprintf("search field %q: unknown field kind", f.Field))
		}
		if f.Remote && f.Endpoint == "" {
			problems = append(problems, fmt.Sprintf("search field %q: remote without endpoint contributes nothing", f.Field))
		}
	}

	if len(problems) == 0 {
		fmt.Fprintf(out, "%s: %d template(s) ok\n", filePath, len(task.Type.Templates))
		return nil
	}

	for _, p := range problems {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return fmt.Errorf("%w: %d problem(s) found", errors.ErrTemplateInvalid, len(problems))
}

// lintTemplate checks one template and its steps.
func lintTemplate(t *domain.ActionTemplate) []string {
	var problems []string
	label := func(msg string, args ...any) {
		problems = append(problems, fmt.Sprintf("template %s: ", t.ID)+fmt.Sprintf(msg, args...))
	}

	if t.StepCount() == 0 {
		label("declares no steps")
	}
	if t.RequiresSync && t.SyncEndpoint == "" {
		label("requires_sync without sync_endpoint")
	}

	for _, s := range t.StorageSteps {
		problems = append(problems, lintStep(t, s, "storage")...)
	}
	for _, s := range t.PlacementSteps {
		problems = append(problems, lintStep(t, s, "placement")...)
	}

	return problems
}

// lintStep checks one step's object type and rule items.
func lintStep(t *domain.ActionTemplate, s domain.ActionStep, side string) []string {
	var problems []string
	label := func(msg string, args ...any) {
		problems = append(problems,
			fmt.Sprintf("template %s, %s step %q: ", t.ID, side, s.Name)+fmt.Sprintf(msg, args...))
	}

	if !validObjectTypes[s.ObjectType] {
		label("unknown object type %q", s.ObjectType)
	}
	if s.Required && s.CanSkip {
		label("required steps cannot be skippable")
	}
	if s.SaveToStore && s.ObjectType == constants.ObjectTypeQuantity {
		label("quantity values are not savable")
	}

	for i, item := range s.Rule.Items {
		if !validRuleKinds[item.Kind] {
			label("rule item %d: unknown kind %q", i, item.Kind)
			continue
		}
		if item.ErrorMessage == "" {
			label("rule item %d: missing error_message", i)
		}
		if item.Kind == constants.RuleKindMatchesRegex {
			if item.Parameter == "" {
				label("rule item %d: matches_regex without pattern", i)
			} else if _, err := regexp.Compile(item.Parameter); err != nil {
				label("rule item %d: invalid pattern %q: %v", i, item.Parameter, err)
			}
		}
	}

	return problems
}
