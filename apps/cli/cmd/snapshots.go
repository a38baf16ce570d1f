package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Venkat-18/jest/packages/output"
	"github.com/Venkat-18/jest/packages/snapshot"
)

var snapshotsResultsFlag string

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Manage stored test snapshots",
}

var snapshotsPruneCmd = &cobra.Command{
	Use:   "prune <snapshot-dir>",
	Short: "Remove snapshot entries no test in the last run still uses",
	Long: `Remove stored snapshot entries that do not belong to any test in a
saved run document.

Examples:
  jest snapshots prune . --results out/results.json`,
	Args: cobra.ExactArgs(1),
	RunE: snapshotsPruneCommand,
}

func init() {
	snapshotsPruneCmd.Flags().StringVar(&snapshotsResultsFlag, "results", "results.json", "Run document listing the tests still in use")
	snapshotsCmd.AddCommand(snapshotsPruneCmd)
}

func snapshotsPruneCommand(cmd *cobra.Command, args []string) error {
	file, err := os.Open(snapshotsResultsFlag)
	if err != nil {
		return fmt.Errorf("opening run document: %w", err)
	}
	defer file.Close()

	doc, err := output.Load(file)
	if err != nil {
		return fmt.Errorf("parsing run document: %w", err)
	}

	manager := snapshot.NewManager(args[0], false)
	for _, t := range doc.Tests {
		if err := manager.TouchTest(doc.Suite, t.Name); err != nil {
			return err
		}
	}

	removed, err := manager.PruneObsolete()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d obsolete snapshot(s)\n", removed)
	return nil
}
