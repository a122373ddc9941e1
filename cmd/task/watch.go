package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/sync"
	"taskboard/internal/timer"
	"taskboard/internal/timeutil"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of running timers, refreshing every second",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, _, err := refreshed()
	if err != nil {
		return err
	}

	committed := func(id int) (int64, bool) {
		t, ok := a.store.Get(id)
		if !ok {
			return 0, false
		}
		return t.TimeSpent, true
	}
	ticker := timer.NewTicker(a.ctrl.Reconciler(), committed, func(ticks []timer.Tick) {
		for _, tk := range ticks {
			desc := ""
			if t, ok := a.store.Get(tk.TaskID); ok {
				desc = t.Description
			}
			fmt.Printf("\r⏱ #%d %s  %s ", tk.TaskID, desc, timeutil.FormatDurationHHMMSS(tk.Elapsed))
		}
	})
	ticker.Start(time.Second)
	defer ticker.Stop()

	poller := sync.NewPoller(a.ctrl.Refresh)
	poller.Start(time.Duration(a.prefs.AutoRefreshSeconds) * time.Second)
	defer poller.Stop()

	fmt.Println("Watching timers. Ctrl-C to exit.")
	if len(a.registry.RunningIDs()) == 0 {
		fmt.Println("(no timers currently running)")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println()
	return nil
}
