package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dreamytimer/internal/platform"
	"dreamytimer/internal/tui"
)

// NewTUICommand creates the terminal timer command.
func NewTUICommand() *cobra.Command {
	var inline bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Long: `Run the timer in the terminal.

Press s to start (you will be asked for a goal), p to pause, r to reset,
m to toggle the one-line view and c to copy the current status.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp(platform.BellStrategy(os.Stdout))
			if err != nil {
				return err
			}
			defer closeApp(application)

			var options []tea.ProgramOption
			if !inline {
				options = append(options, tea.WithAltScreen())
			}
			if err := tui.Run(cmd.Context(), application, options...); err != nil {
				return fmt.Errorf("terminal timer: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&inline, "inline", false, "Draw below the prompt instead of using the full screen")
	return cmd
}
