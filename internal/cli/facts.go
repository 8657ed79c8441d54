package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/a-simacov/synncore/internal/domain"
	"github.com/a-simacov/synncore/internal/factstore"
)

// AddFactsCommand adds the facts command to the parent command.
// The facts command lists fact actions recorded for a task in the local
// store.
func AddFactsCommand(parent *cobra.Command) {
	var (
		taskID     string
		failedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "facts",
		Short: "List recorded fact actions of a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listFacts(cmd, taskID, failedOnly)
		},
	}

	cmd.Flags().StringVarP(&taskID, "task", "t", "", "task id to list facts for")
	cmd.Flags().BoolVar(&failedOnly, "send-failed", false, "only facts whose server push is pending retry")
	_ = cmd.MarkFlagRequired("task")
	parent.AddCommand(cmd)
}

// listFacts prints the task's recorded facts.
func listFacts(cmd *cobra.Command, taskID string, failedOnly bool) error {
	logger := GetLogger()
	cfg := GetConfig()
	out := cmd.OutOrStdout()

	store, err := factstore.Open(cfg.Storage.DBPath, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	var facts []*domain.FactAction
	if failedOnly {
		facts, err = store.ListSendFailed(ctx, taskID)
	} else {
		facts, err = store.ListByTask(ctx, taskID)
	}
	if err != nil {
		return err
	}

	if len(facts) == 0 {
		fmt.Fprintf(out, "no facts recorded for task %s\n", taskID)
		return nil
	}

	for _, f := range facts {
		flag := ""
		if f.SendFailed {
			flag = " [send failed]"
		}
		fmt.Fprintf(out, "%s  %s  action=%s  quantity=%.2f  %s%s\n",
			f.ID, f.Kind, f.PlannedActionID, f.Quantity,
			f.CompletedAt.Format(time.RFC3339), flag)
	}
	return nil
}
