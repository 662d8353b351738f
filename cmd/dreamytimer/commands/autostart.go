package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	core "dreamytimer/internal/app"
	"dreamytimer/internal/platform"
)

// NewAutostartCommand creates the autostart command group.
func NewAutostartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Open the timer when you log in",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Register the timer as a login item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := loginItem()
			if err != nil {
				return err
			}
			if err := platform.NewService().EnableAutostart(item); err != nil {
				return fmt.Errorf("enable autostart: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Autostart enabled")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Remove the login item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := platform.NewService().DisableAutostart(core.Name); err != nil {
				return fmt.Errorf("disable autostart: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether the login item exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := platform.NewService().AutostartEnabled(core.Name)
			if err != nil {
				return fmt.Errorf("autostart status: %w", err)
			}
			if enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Autostart is enabled")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Autostart is disabled")
			}
			return nil
		},
	})
	return cmd
}

// loginItem points the login item at this executable, keeping a custom
// settings file if one was given.
func loginItem() (platform.LoginItem, error) {
	executable, err := os.Executable()
	if err != nil {
		return platform.LoginItem{}, fmt.Errorf("locate executable: %w", err)
	}
	item := platform.LoginItem{Name: core.Name, ExecPath: executable}
	if flags.settingsPath != "" {
		item.Args = append(item.Args, "--settings", flags.settingsPath)
	}
	if flags.soundPath != "" {
		item.Args = append(item.Args, "--sound", flags.soundPath)
	}
	return item, nil
}
