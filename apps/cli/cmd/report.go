package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Venkat-18/jest/packages/output"
)

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	reportOutputFlag  string
	reportNoColorFlag bool
	reportVerboseFlag bool
	reportWatchFlag   bool
)

var reportCmd = &cobra.Command{
	Use:   "report <results.json>",
	Short: "Render a saved run document through a reporter",
	Long: `Render a results.json document written by a suite run.

Examples:
  jest report out/results.json
  jest report out/results.json --output junit > junit.xml
  jest report out/results.json --output tap
  jest report out/results.json --watch`,
	Args: cobra.ExactArgs(1),
	RunE: reportCommand,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutputFlag, "output", "o", "console", "Output format: console, json, junit, tap")
	reportCmd.Flags().BoolVar(&reportNoColorFlag, "no-color", false, "Disable colored output")
	reportCmd.Flags().BoolVarP(&reportVerboseFlag, "verbose", "v", false, "Verbose output")
	reportCmd.Flags().BoolVarP(&reportWatchFlag, "watch", "w", false, "Re-render when the document changes")
}

func reportCommand(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := renderDocument(cmd, path); err != nil {
		return err
	}
	if !reportWatchFlag {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes... (press Ctrl+C to stop)\n\n", path)

	// Debounce timer for rapid file changes
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) && filepath.Clean(event.Name) == filepath.Clean(path) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\nDocument changed, re-rendering...\n")
					if err := renderDocument(cmd, path); err != nil {
						fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					}
				})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

func renderDocument(cmd *cobra.Command, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening run document: %w", err)
	}
	defer file.Close()

	doc, err := output.Load(file)
	if err != nil {
		return fmt.Errorf("parsing run document: %w", err)
	}
	result := output.ToRunResult(doc)

	w := cmd.OutOrStdout()
	var formatter output.Formatter
	switch strings.ToLower(reportOutputFlag) {
	case "json":
		formatter = output.NewJSONFormatter(output.JSONWithWriter(w))
	case "junit":
		formatter = output.NewJUnitFormatter(output.JUnitWithWriter(w))
	case "tap":
		formatter = output.NewTAPFormatter(output.TAPWithWriter(w))
	default:
		formatter = output.NewConsoleFormatter(
			output.WithWriter(w),
			output.WithVerbose(reportVerboseFlag),
			output.WithNoColor(reportNoColorFlag),
		)
	}

	formatter.FormatResult(result)
	if flushable, ok := formatter.(output.Flushable); ok {
		return flushable.Flush(result.Duration)
	}
	return nil
}
