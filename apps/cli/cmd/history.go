package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Venkat-18/jest/packages/history"
)

var (
	historyDBFlag    string
	historyLimitFlag int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past suite runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs from the history database",
	Long: `List recent suite runs, newest first.

Examples:
  jest history list --db .jest/history.db
  jest history list --db .jest/history.db --limit 50`,
	RunE: historyListCommand,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run's test records",
	Args:  cobra.ExactArgs(1),
	RunE:  historyShowCommand,
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDBFlag, "db", ".jest/history.db", "Path to the history database")
	historyListCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Maximum number of runs to list")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
}

func historyListCommand(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDBFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(historyLimitFlag)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, r := range runs {
		status := green("pass")
		if r.Failed > 0 {
			status = red("fail")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-20s %s  %d passed, %d failed, %d skipped  (%dms, p95 %dms)\n",
			r.ID, status, r.Suite, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Passed, r.Failed, r.Skipped, r.DurationMs, r.P95Ms)
	}
	return nil
}

func historyShowCommand(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDBFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	run, tests, err := store.RunDetail(args[0])
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(cmd.OutOrStdout(), "Run %s (suite %q) at %s\n\n",
		run.ID, run.Suite, run.StartedAt.Format("2006-01-02 15:04:05"))

	for _, t := range tests {
		var symbol string
		switch t.Status {
		case "passed":
			symbol = green("✓")
		case "skipped":
			symbol = yellow("-")
		default:
			symbol = red("✗")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s (%dms)\n", symbol, t.Name, t.DurationMs)
		if t.Message != "" && t.Status != "passed" {
			fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", t.Message)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d passed, %d failed, %d skipped\n",
		run.Passed, run.Failed, run.Skipped)
	return nil
}
