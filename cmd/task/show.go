package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/lifecycle"
	"taskboard/internal/timeutil"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	a, _, err := refreshed()
	if err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	t, ok := a.store.Get(id)
	if !ok {
		return lifecycle.ErrNotFound
	}

	fmt.Printf("#%d %s [%s]%s\n", t.ID, t.Description, statusLabel(t.Status), formatDue(t.DueDate))
	if t.Archived {
		fmt.Println("  archived")
	}
	if t.Details != nil && *t.Details != "" {
		fmt.Printf("  %s\n", *t.Details)
	}
	if len(t.Labels) > 0 {
		fmt.Print("  labels:")
		for _, l := range t.Labels {
			fmt.Printf(" %s(%s)", l.Name, l.Color)
		}
		fmt.Println()
	}
	if len(t.Steps) > 0 {
		done, total := t.StepProgress()
		fmt.Printf("  steps (%d/%d):\n", done, total)
		for i, s := range t.Steps {
			mark := " "
			if s.Completed {
				mark = "x"
			}
			fmt.Printf("    %d. [%s] %s\n", i, mark, s.Text)
		}
	}
	if len(t.Comments) > 0 {
		fmt.Println("  comments:")
		for _, c := range t.Comments {
			fmt.Printf("    %s  %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"), c.Text)
		}
	}
	elapsed := a.ctrl.Elapsed(t.ID)
	if elapsed > 0 || a.registry.Running(t.ID) {
		line := "  time: " + timeutil.FormatDurationHHMMSS(elapsed)
		if a.registry.Running(t.ID) {
			line += " (running)"
		}
		fmt.Println(line)
	}
	return nil
}
