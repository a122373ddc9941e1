package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/model"
)

var moveCmd = &cobra.Command{
	Use:   "move <id> <status>",
	Short: "Move a task to another column",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Move a task to the complete column",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

func runMove(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	status, err := parseStatus(args[1])
	if err != nil {
		return err
	}
	return setStatus(id, status)
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	return setStatus(id, model.StatusComplete)
}

func setStatus(id int, status model.Status) error {
	a, ctx, err := refreshed()
	if err != nil {
		return err
	}
	if err := a.ctrl.SetStatus(ctx, id, status); err != nil {
		return err
	}
	fmt.Printf("Task %d → %s\n", id, statusLabel(status))
	return nil
}
