// Package cmd implements the jest CLI commands using Cobra.
//
// Available commands:
//   - report: Render a saved JSON run document through any reporter
//   - history: List and inspect past runs from the history database
//   - snapshots: Prune stored snapshots no test still uses
//   - init: Create a default jest configuration file
//   - version: Show jest version information
//
// Suites themselves run in the test program via the jest package; the CLI
// operates on the artifacts those runs produce.
package cmd
