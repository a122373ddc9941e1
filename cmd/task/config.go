package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taskboard/internal/prefs"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change preferences",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print all preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		p := a.prefs
		fmt.Printf("hide_completed       %t\n", p.HideCompleted)
		fmt.Printf("confirm_delete       %t\n", p.ConfirmDelete)
		fmt.Printf("auto_refresh_seconds %d\n", p.AutoRefreshSeconds)
		fmt.Printf("sound_enabled        %t\n", p.SoundEnabled)
		fmt.Printf("theme                %s\n", p.Theme)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		p := a.prefs
		key, value := args[0], args[1]
		switch key {
		case "hide_completed", "confirm_delete", "sound_enabled":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s expects true or false", key)
			}
			switch key {
			case "hide_completed":
				p.HideCompleted = b
			case "confirm_delete":
				p.ConfirmDelete = b
			case "sound_enabled":
				p.SoundEnabled = b
			}
		case "auto_refresh_seconds":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("auto_refresh_seconds expects a non-negative integer (0 disables)")
			}
			p.AutoRefreshSeconds = n
		case "theme":
			p.Theme = value
		default:
			return fmt.Errorf("unknown preference %q", key)
		}
		return prefs.Save(prefsPath(a.cfg), p)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
