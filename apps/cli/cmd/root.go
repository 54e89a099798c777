package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "formpost",
	Short: "Browser-style multipart file uploads from the command line.",
	Long: `formpost submits a local file plus a set of form fields to an HTTP
endpoint as a single multipart/form-data POST, the way a browser
submits a file-upload form. The server signals acceptance with an
exact 200; anything else counts as a failed upload.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsageError)
	}
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
