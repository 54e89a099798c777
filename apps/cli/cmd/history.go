package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/abdul-hamid-achik/formpost/packages/core/config"
	"github.com/abdul-hamid-achik/formpost/packages/history"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously recorded upload attempts",
	Long: `List upload attempts recorded in the history database, newest first.
Recording happens when --history (or "history" in the config file) is
set on upload, batch or watch.`,
	Args: cobra.NoArgs,
	RunE: historyCommand,
}

var limitFlag int

func init() {
	historyCmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum entries to show (0 = all)")
	historyCmd.Flags().StringVar(&historyFlag, "history", getEnvString("FORMPOST_HISTORY", ""), "Path to the history database (env: FORMPOST_HISTORY)")
	historyCmd.Flags().StringVar(&configFlag, "config", getEnvString("FORMPOST_CONFIG", ""), "Path to config file (env: FORMPOST_CONFIG)")
	historyCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("FORMPOST_NO_COLOR", false), "Disable colored output (env: FORMPOST_NO_COLOR)")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	path := historyFlag
	if path == "" {
		path = cfg.History
	}
	if path == "" {
		return fmt.Errorf("no history database: pass --history or set \"history\" in the config file")
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := store.List(ctx, limitFlag)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No uploads recorded.")
		return nil
	}

	if noColorFlag || cfg.GetNoColor() {
		color.NoColor = true
	}
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, e := range entries {
		symbol := green("✓")
		if !e.OK {
			symbol = red("✗")
		}
		status := "---"
		if e.Status != 0 {
			status = fmt.Sprintf("%d", e.Status)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s  %s  %s -> %s\n",
			symbol,
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			status,
			e.File,
			e.URL)
	}

	return nil
}
