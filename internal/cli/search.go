package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a-simacov/synncore/internal/savable"
	"github.com/a-simacov/synncore/internal/search"
)

// AddSearchCommand adds the search command to the parent command.
// The search command resolves a scan value to planned actions of the
// task file using the configured searchable fields.
func AddSearchCommand(parent *cobra.Command) {
	var filePath string

	cmd := &cobra.Command{
		Use:   "search <value>",
		Short: "Resolve a scan value to planned actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return searchTaskFile(cmd, filePath, args[0])
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "task.yaml", "task file to search")
	parent.AddCommand(cmd)
}

// searchTaskFile runs one search against the task file's plan.
func searchTaskFile(cmd *cobra.Command, filePath, value string) error {
	logger := GetLogger()
	cfg := GetConfig()
	out := cmd.OutOrStdout()

	_, task, err := LoadTaskFile(filePath)
	if err != nil {
		return err
	}

	buffer := savable.NewBuffer(cfg.Buffer.Capacity, logger)
	engine := search.NewEngine(logger,
		search.WithBuffer(buffer),
		search.WithRemoteFailureMode(search.RemoteFailureMode(cfg.Search.RemoteFailureMode)),
		search.WithRemoteTimeout(cfg.Search.RemoteTimeout),
	)

	result := engine.SearchActions(cmd.Context(), task, value)
	switch result.Outcome {
	case search.OutcomeSingle:
		fmt.Fprintf(out, "matched action: %s\n", result.ActionID)
	case search.OutcomeMultiple:
		fmt.Fprintf(out, "matched %d actions:\n", len(result.ActionIDs))
		for _, id := range result.ActionIDs {
			fmt.Fprintf(out, "  %s\n", id)
		}
	case search.OutcomeNotFound:
		fmt.Fprintln(out, result.Message)
	case search.OutcomeError:
		return fmt.Errorf("search failed: %s", result.Message)
	}
	return nil
}
