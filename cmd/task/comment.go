package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment <id> <text>",
	Short: "Append a comment to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runComment,
}

func runComment(cmd *cobra.Command, args []string) error {
	a, ctx, err := refreshed()
	if err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	return a.ctrl.AddComment(ctx, id, strings.Join(args[1:], " "))
}
