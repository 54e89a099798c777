// Package cmd implements the formpost CLI commands using Cobra.
//
// Available commands:
//   - upload: Submit one file as a multipart/form-data POST
//   - batch: Run every upload listed in a YAML manifest
//   - watch: Upload files as they appear in a spool directory
//   - history: Show previously recorded upload attempts
//   - version: Show formpost version information
package cmd
