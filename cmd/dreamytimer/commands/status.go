package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	core "dreamytimer/internal/app"
	"dreamytimer/internal/core/viewsync"
)

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the saved settings and today's session count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp(application)

			printStatus(cmd.OutOrStdout(), application)
			return nil
		},
	}
}

func printStatus(out io.Writer, application *core.App) {
	config := application.Config()
	sound := "off"
	if config.SoundEnabled {
		sound = "on"
	}

	fmt.Fprintf(out, "Settings:       %s\n", application.SettingsPath())
	fmt.Fprintf(out, "Work:           %s\n", viewsync.FormatRemaining(config.WorkDurationSeconds))
	fmt.Fprintf(out, "Break:          %s\n", viewsync.FormatRemaining(config.BreakDurationSeconds))
	fmt.Fprintf(out, "Theme:          %s\n", config.Theme.Title())
	fmt.Fprintf(out, "Sound:          %s\n", sound)
	fmt.Fprintf(out, "Sessions today: %d\n", application.SessionsToday())

	goals := application.SavedGoals()
	if len(goals) == 0 {
		fmt.Fprintln(out, "Saved goals:    none")
		return
	}
	fmt.Fprintln(out, "Saved goals:")
	for i, goal := range goals {
		fmt.Fprintf(out, "  %d. %s\n", i+1, goal)
	}
}
