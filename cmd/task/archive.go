package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a task (removes it from the board without deleting)",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchive,
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Return an archived task to its status column",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnarchive,
}

func runArchive(cmd *cobra.Command, args []string) error {
	a, ctx, err := refreshed()
	if err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	if err := a.ctrl.Archive(ctx, id); err != nil {
		return err
	}
	// Archiving does not stop a running timer; say so instead of
	// silently leaving it ticking.
	if a.registry.Running(id) {
		fmt.Printf("Note: task %d still has a running timer. Use 'task stop %d' to commit it.\n", id, id)
	}
	return nil
}

func runUnarchive(cmd *cobra.Command, args []string) error {
	a, ctx, err := refreshed()
	if err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	return a.ctrl.Unarchive(ctx, id)
}
