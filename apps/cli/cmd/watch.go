package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/formpost/packages/core/config"
	"github.com/abdul-hamid-achik/formpost/packages/output"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Upload files as they appear in a spool directory",
	Long: `Watch a directory and upload each new file as it appears, the way a
crash reporter drains its spool of pending reports.

Examples:
  formpost watch ./spool --url https://crashes.example.com/submit
  formpost watch ./spool --url ... --field prod=myapp --delete
  formpost watch ./spool --url ... --rate 1`,
	Args: cobra.ExactArgs(1),
	RunE: watchCommand,
}

var deleteFlag bool

// watchSettleDelay gives a newly created file time to be fully
// written before it is read and uploaded.
const watchSettleDelay = 500 * time.Millisecond

func init() {
	registerTargetFlags(watchCmd)
	registerClientFlags(watchCmd)
	watchCmd.Flags().Float64VarP(&rateFlag, "rate", "r", 0, "Maximum uploads per second (0 = unlimited)")
	watchCmd.Flags().BoolVar(&deleteFlag, "delete", false, "Remove files after a successful upload")
}

func watchCommand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot watch %s: not a directory", dir)
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	targetURL := urlFlag
	if targetURL == "" {
		targetURL = cfg.URL
	}
	if targetURL == "" {
		return fmt.Errorf("no target URL: pass --url or set \"url\" in the config file")
	}

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}
	formatter := newFormatter(cfg)

	var limiter *rate.Limiter
	if rateFlag > 0 {
		limiter = rate.NewLimiter(rate.Limit(rateFlag), 1)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s... (press Ctrl+C to stop)\n\n", dir)

	// Files already handled; Create is often followed by Write events
	// for the same path.
	handled := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if handled[event.Name] || !uploadableFile(event.Name) {
				continue
			}
			handled[event.Name] = true

			// Let the writer finish before reading the file.
			time.Sleep(watchSettleDelay)

			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return nil
				}
			}

			fields, err := collectFields(cfg)
			if err != nil {
				formatter.FormatError(err)
				continue
			}

			result, uploadErr := client.Upload(ctx, targetURL, fields,
				event.Name, resolvePartName(cfg))
			report := &output.Report{
				URL:    targetURL,
				File:   event.Name,
				Result: result,
				Err:    uploadErr,
			}
			formatter.FormatReport(report)
			recordHistory(cfg, report)

			if !report.Failed() && deleteFlag {
				if err := os.Remove(event.Name); err != nil {
					fmt.Fprintf(os.Stderr, "warning: cannot remove %s: %v\n", event.Name, err)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			formatter.FormatError(err)
		}
	}
}

// uploadableFile filters out directories, hidden files and editor
// temp files.
func uploadableFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
