package main

import (
	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due <id> <date>",
	Short: "Set a task's due date (YYYY-MM-DD)",
	Args:  cobra.ExactArgs(2),
	RunE:  runDue,
}

func runDue(cmd *cobra.Command, args []string) error {
	a, ctx, err := refreshed()
	if err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	return a.ctrl.SetDueDate(ctx, id, args[1])
}
