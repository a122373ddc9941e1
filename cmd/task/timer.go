package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/timeutil"
)

var startCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Start a work timer for a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

var stopCmd = &cobra.Command{
	Use:   "stop <id>",
	Short: "Stop a task's timer and commit the elapsed time",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show running timers",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStart(cmd *cobra.Command, args []string) error {
	a, _, err := refreshed()
	if err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	if err := a.ctrl.StartTimer(id); err != nil {
		return err
	}
	fmt.Printf("Started timer for task %d.\n", id)
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	a, ctx, err := refreshed()
	if err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	delta, err := a.ctrl.StopTimer(ctx, id)
	if err != nil {
		return err
	}
	t, _ := a.store.Get(id)
	fmt.Printf("Stopped timer for task %d. Committed %s (total %s).\n",
		id, timeutil.FormatDuration(delta), timeutil.FormatDuration(t.TimeSpent))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, _, err := refreshed()
	if err != nil {
		return err
	}
	ids := a.registry.RunningIDs()
	if len(ids) == 0 {
		fmt.Println("No running timers.")
		return nil
	}
	for _, id := range ids {
		t, ok := a.store.Get(id)
		if !ok {
			fmt.Printf("  #%-4d (unknown task) timer running\n", id)
			continue
		}
		fmt.Printf("  #%-4d %s  %s\n", id, t.Description,
			timeutil.FormatDurationHHMMSS(a.ctrl.Elapsed(id)))
	}
	return nil
}
