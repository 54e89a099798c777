package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abdul-hamid-achik/formpost/packages/core/config"
	"github.com/abdul-hamid-achik/formpost/packages/manifest"
	"github.com/abdul-hamid-achik/formpost/packages/output"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Run every upload listed in a YAML manifest",
	Long: `Run the uploads described in a YAML manifest, one after another.
File paths in the manifest are resolved relative to the manifest.

Examples:
  formpost batch uploads.yaml
  formpost batch uploads.yaml --rate 2
  formpost batch uploads.yaml --bail --history uploads.db`,
	Args: cobra.ExactArgs(1),
	RunE: batchCommand,
}

var (
	rateFlag float64
	bailFlag bool
)

func init() {
	registerClientFlags(batchCmd)
	batchCmd.Flags().Float64VarP(&rateFlag, "rate", "r", 0, "Maximum uploads per second (0 = unlimited)")
	batchCmd.Flags().BoolVar(&bailFlag, "bail", false, "Stop on first failed upload")
}

func batchCommand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	m, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	entries := m.Resolved()
	baseDir := filepath.Dir(args[0])

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}
	formatter := newFormatter(cfg)

	var limiter *rate.Limiter
	if rateFlag > 0 {
		limiter = rate.NewLimiter(rate.Limit(rateFlag), 1)
	}

	ctx := context.Background()
	ok, failed := 0, 0
	start := time.Now()

	for _, e := range entries {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}

		filePath := e.File
		if !filepath.IsAbs(filePath) {
			filePath = filepath.Join(baseDir, filePath)
		}

		result, uploadErr := client.Upload(ctx, e.URL, e.Fields, filePath, e.PartName)
		report := &output.Report{
			Name:   e.Name,
			URL:    e.URL,
			File:   filePath,
			Result: result,
			Err:    uploadErr,
		}
		formatter.FormatReport(report)
		recordHistory(cfg, report)

		if report.Failed() {
			failed++
			if bailFlag {
				break
			}
		} else {
			ok++
		}
	}

	formatter.FormatSummary(ok, failed, time.Since(start))

	if failed > 0 {
		os.Exit(ExitUploadFailure)
	}
	return nil
}
