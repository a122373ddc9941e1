package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/model"
)

var (
	addDetails string
	addDue     string
	addSteps   []string
	addLabels  []string
)

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addDetails, "details", "", "Free-form details text")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringArrayVar(&addSteps, "step", nil, "Checklist step (repeatable)")
	addCmd.Flags().StringArrayVar(&addLabels, "label", nil, "Label as name:color (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, ctx, err := refreshed()
	if err != nil {
		return err
	}

	draft := model.TaskDraft{
		Description: args[0],
		Steps:       addSteps,
	}
	if addDetails != "" {
		draft.Details = &addDetails
	}
	if addDue != "" {
		draft.DueDate = &addDue
	}
	for _, l := range addLabels {
		label, err := parseLabel(l)
		if err != nil {
			return err
		}
		draft.Labels = append(draft.Labels, label)
	}

	task, err := a.ctrl.Create(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Printf("Created task %d: %s\n", task.ID, task.Description)
	return nil
}
