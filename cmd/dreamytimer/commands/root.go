package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	core "dreamytimer/internal/app"
	"dreamytimer/internal/platform"
)

type globalFlags struct {
	settingsPath string
	soundPath    string
	verbose      bool
}

var flags globalFlags

// NewRootCommand creates the root command. Without a subcommand it opens
// the desktop timer.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dreamytimer",
		Short: "A gentle work and break timer",
		Long: `dreamytimer alternates focused work sessions with short breaks.

Running it without a subcommand opens the desktop window and tray icon.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(flags.verbose)
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&flags.settingsPath, "settings", "", "Settings file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&flags.soundPath, "sound", "", "MP3 or WAV file played when a session ends")
	rootCmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Log with file and line numbers")

	rootCmd.AddCommand(NewTUICommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewAutostartCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configureLogging(verbose bool) {
	log.SetPrefix("dreamytimer: ")
	if verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		return
	}
	log.SetFlags(log.LstdFlags)
}

// openApp builds the timer core. The sound file, when given, is tried
// before the other strategies.
func openApp(strategies ...platform.Strategy) (*core.App, error) {
	if flags.soundPath != "" {
		strategies = append([]platform.Strategy{platform.NewSoundFileStrategy(flags.soundPath, 0)}, strategies...)
	}
	application, err := core.New(core.Options{
		SettingsPath: flags.settingsPath,
		Logger:       log.Default(),
		Strategies:   strategies,
	})
	if err != nil {
		return nil, fmt.Errorf("open timer: %w", err)
	}
	return application, nil
}
