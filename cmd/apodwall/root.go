// Package main provides the entry point for the apodwall CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for apodwall.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apodwall",
		Short: "Set the Astronomy Picture of the Day as your desktop wallpaper",
		Long: `apodwall fetches the current Astronomy Picture of the Day page, finds
the full-resolution image, downloads it, and sets it as the desktop
background, centered at native resolution.

Each invocation performs one run. Schedule it (Task Scheduler, cron)
to get a fresh wallpaper every day.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
