package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rmYes bool

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rmCmd.Flags().BoolVar(&rmYes, "yes", false, "Skip the confirmation prompt")
}

func runRm(cmd *cobra.Command, args []string) error {
	a, ctx, err := refreshed()
	if err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	if a.prefs.ConfirmDelete && !rmYes {
		t, ok := a.store.Get(id)
		if ok {
			fmt.Printf("Delete task %d (%q)? [y/N] ", id, t.Description)
		} else {
			fmt.Printf("Delete task %d? [y/N] ", id)
		}
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := a.ctrl.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted task %d.\n", id)
	return nil
}
