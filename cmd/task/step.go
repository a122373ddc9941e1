package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Manage a task's checklist steps",
}

var stepAddCmd = &cobra.Command{
	Use:   "add <id> <text>",
	Short: "Append a step",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := refreshed()
		if err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		return a.ctrl.AddStep(ctx, id, strings.Join(args[1:], " "))
	},
}

var stepToggleCmd = &cobra.Command{
	Use:   "toggle <id> <index>",
	Short: "Flip a step's completed flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := refreshed()
		if err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		idx, err := parseStepIndex(args[1])
		if err != nil {
			return err
		}
		if err := a.ctrl.ToggleStep(ctx, id, idx); err != nil {
			return err
		}
		if t, ok := a.store.Get(id); ok {
			done, total := t.StepProgress()
			fmt.Printf("Task %d progress: %d/%d\n", id, done, total)
		}
		return nil
	},
}

var stepEditCmd = &cobra.Command{
	Use:   "edit <id> <index> <text>",
	Short: "Replace a step's text",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := refreshed()
		if err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		idx, err := parseStepIndex(args[1])
		if err != nil {
			return err
		}
		return a.ctrl.UpdateStepText(ctx, id, idx, strings.Join(args[2:], " "))
	},
}

var stepRmCmd = &cobra.Command{
	Use:   "rm <id> <index>",
	Short: "Delete a step",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := refreshed()
		if err != nil {
			return err
		}
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		idx, err := parseStepIndex(args[1])
		if err != nil {
			return err
		}
		return a.ctrl.DeleteStep(ctx, id, idx)
	},
}

func init() {
	stepCmd.AddCommand(stepAddCmd)
	stepCmd.AddCommand(stepToggleCmd)
	stepCmd.AddCommand(stepEditCmd)
	stepCmd.AddCommand(stepRmCmd)
}
