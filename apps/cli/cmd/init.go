package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Venkat-18/jest/packages/core/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default jest configuration file",
	Long: `Create a jest.config.json with default settings in the current
directory.

Examples:
  jest init
  jest init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config file")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, "jest.config.json")
	if !forceInit {
		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configFile)
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.SaveConfig(configFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFile)
	return nil
}
