package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or initialise configuration",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective settings to the config file",
	Args:  cobra.NoArgs,
	RunE:  runSettingsInit,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	s := appSettings

	cmd.Println("[Server]")
	cmd.Printf("  Address:         %s\n", s.Server.Addr)
	cmd.Printf("  Allowed origins: %s\n", strings.Join(s.Server.AllowedOrigins, ", "))
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Data dir:  %s\n", s.Storage.DataDir)
	cmd.Printf("  Media dir: %s\n", s.Storage.MediaDir)
	cmd.Println()

	cmd.Println("[Upload]")
	cmd.Printf("  Max bytes: %d\n", s.Upload.MaxBytes)
	if s.Upload.RatePerSecond > 0 {
		cmd.Printf("  Rate:      %g/s (burst %d)\n", s.Upload.RatePerSecond, s.Upload.Burst)
	} else {
		cmd.Println("  Rate:      unlimited")
	}
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Verbose: %t\n", s.Verbose)
	return nil
}

func runSettingsInit(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured
	}

	s := appSettings
	if err := settingsService.Save(&s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings saved.")
	return nil
}
