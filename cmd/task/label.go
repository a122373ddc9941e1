package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/model"
)

var labelCmd = &cobra.Command{
	Use:   "label <id> [name:color ...]",
	Short: "Replace a task's label set (no labels clears it)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLabel,
}

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the shared label namespace",
	Args:  cobra.NoArgs,
	RunE:  runLabels,
}

func runLabel(cmd *cobra.Command, args []string) error {
	a, ctx, err := refreshed()
	if err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	labels := []model.Label{}
	for _, arg := range args[1:] {
		l, err := parseLabel(arg)
		if err != nil {
			return err
		}
		// An already-known name keeps its original color regardless of
		// what was passed.
		if known, ok := a.store.Label(l.Name); ok {
			l = known
		}
		labels = append(labels, l)
	}
	return a.ctrl.SetLabels(ctx, id, labels)
}

func runLabels(cmd *cobra.Command, args []string) error {
	a, _, err := refreshed()
	if err != nil {
		return err
	}
	labels := a.store.Labels()
	if len(labels) == 0 {
		fmt.Println("No labels yet.")
		return nil
	}
	for _, l := range labels {
		fmt.Printf("  %-20s %s\n", l.Name, l.Color)
	}
	return nil
}
