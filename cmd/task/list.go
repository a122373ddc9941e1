package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/board"
	"taskboard/internal/timeutil"
)

var listArchived bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the kanban board",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "Show archived tasks instead of the board")
}

func runList(cmd *cobra.Command, args []string) error {
	a, _, err := refreshed()
	if err != nil {
		return err
	}
	tasks := a.store.List()

	if listArchived {
		archived := board.Archived(tasks)
		if len(archived) == 0 {
			fmt.Println("No archived tasks.")
			return nil
		}
		for _, t := range archived {
			fmt.Printf("  #%-4d %s [%s]\n", t.ID, t.Description, statusLabel(t.Status))
		}
		return nil
	}

	cols := board.Columns(tasks, board.Options{HideCompleted: a.prefs.HideCompleted})
	for _, col := range cols {
		fmt.Printf("%s (%d)\n", statusLabel(col.Status), len(col.Tasks))
		for _, t := range col.Tasks {
			line := fmt.Sprintf("  #%-4d %s", t.ID, t.Description)
			if done, total := t.StepProgress(); total > 0 {
				line += fmt.Sprintf(" [%d/%d]", done, total)
			}
			line += formatDue(t.DueDate)
			if elapsed := a.ctrl.Elapsed(t.ID); elapsed > 0 {
				line += " ⏱ " + timeutil.FormatDuration(elapsed)
				if a.registry.Running(t.ID) {
					line += " (running)"
				}
			}
			fmt.Println(line)
		}
	}
	return nil
}
