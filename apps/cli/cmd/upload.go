package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/formpost/packages/core/config"
	"github.com/abdul-hamid-achik/formpost/packages/history"
	"github.com/abdul-hamid-achik/formpost/packages/output"
	"github.com/abdul-hamid-achik/formpost/packages/upload"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Submit one file as a multipart/form-data POST",
	Long: `Upload a local file to an HTTP endpoint, with optional form fields,
exactly the way a browser submits a file-upload form.

Examples:
  formpost upload crash.dmp --url https://crashes.example.com/submit
  formpost upload crash.dmp --url ... --field prod=myapp --field ver=1.2.3
  formpost upload crash.dmp --url ... --part-name upload_file_minidump
  formpost upload crash.dmp --url ... --guid-field guid --extract report_id`,
	Args: cobra.ExactArgs(1),
	RunE: uploadCommand,
}

var (
	urlFlag       string
	fieldFlags    []string
	partNameFlag  string
	timeoutFlag   string
	insecureFlag  bool
	userAgentFlag string
	headerFlags   []string
	guidFieldFlag string
	extractFlag   string
	historyFlag   string
	configFlag    string
	noColorFlag   bool
	verboseFlag   bool
)

func init() {
	registerTargetFlags(uploadCmd)
	registerClientFlags(uploadCmd)
}

// registerTargetFlags binds the flags naming where and what to upload.
// Only one command runs per invocation, so commands share the backing
// variables.
func registerTargetFlags(c *cobra.Command) {
	c.Flags().StringVarP(&urlFlag, "url", "u", getEnvString("FORMPOST_URL", ""), "Target URL (env: FORMPOST_URL)")
	c.Flags().StringArrayVarP(&fieldFlags, "field", "F", nil, "Form field as name=value (repeatable)")
	c.Flags().StringVar(&partNameFlag, "part-name", "", "Form field the file is attached under (default \"file\")")
	c.Flags().StringVar(&guidFieldFlag, "guid-field", "", "Add a generated GUID under this field name")
}

// registerClientFlags binds the transport and output flags shared by
// upload, batch and watch.
func registerClientFlags(c *cobra.Command) {
	c.Flags().StringVar(&timeoutFlag, "timeout", getEnvString("FORMPOST_TIMEOUT", ""), "Request timeout (e.g. 30s, 1m); empty = transport default (env: FORMPOST_TIMEOUT)")
	c.Flags().BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("FORMPOST_INSECURE", false), "Disable SSL certificate validation (env: FORMPOST_INSECURE)")
	c.Flags().StringVar(&userAgentFlag, "user-agent", "", "Override the User-Agent header")
	c.Flags().StringArrayVarP(&headerFlags, "header", "H", nil, "Extra header as \"Name: value\" (repeatable)")
	c.Flags().StringVar(&extractFlag, "extract", "", "Print this gjson path from JSON response bodies")
	c.Flags().StringVar(&historyFlag, "history", getEnvString("FORMPOST_HISTORY", ""), "Record attempts in this SQLite database (env: FORMPOST_HISTORY)")
	c.Flags().StringVar(&configFlag, "config", getEnvString("FORMPOST_CONFIG", ""), "Path to config file (env: FORMPOST_CONFIG)")
	c.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("FORMPOST_NO_COLOR", false), "Disable colored output (env: FORMPOST_NO_COLOR)")
	c.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
}

func uploadCommand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

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

	fields, err := collectFields(cfg)
	if err != nil {
		return err
	}

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}
	formatter := newFormatter(cfg)

	filePath := args[0]
	result, uploadErr := client.Upload(context.Background(), targetURL, fields,
		filePath, resolvePartName(cfg))

	report := &output.Report{
		URL:    targetURL,
		File:   filePath,
		Result: result,
		Err:    uploadErr,
	}
	formatter.FormatReport(report)
	recordHistory(cfg, report)

	if report.Failed() {
		os.Exit(ExitUploadFailure)
	}
	return nil
}

// collectFields merges config-file fields, --field pairs, and the
// optional generated GUID, in that order of precedence.
func collectFields(cfg *config.Config) (map[string]string, error) {
	fields := make(map[string]string, len(cfg.Fields)+len(fieldFlags)+1)
	for k, v := range cfg.Fields {
		fields[k] = v
	}
	for _, pair := range fieldFlags {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --field %q: expected name=value", pair)
		}
		fields[name] = value
	}
	if guidFieldFlag != "" {
		fields[guidFieldFlag] = uuid.NewString()
	}
	return fields, nil
}

func resolvePartName(cfg *config.Config) string {
	if partNameFlag != "" {
		return partNameFlag
	}
	if cfg.PartName != "" {
		return cfg.PartName
	}
	return "file"
}

func buildClient(cfg *config.Config) (*upload.Client, error) {
	opts := []upload.ClientOption{}

	switch {
	case timeoutFlag != "":
		timeout, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout value %q: %w (use format like 30s, 1m, 500ms)", timeoutFlag, err)
		}
		opts = append(opts, upload.WithTimeout(timeout))
	case cfg.Timeout > 0:
		opts = append(opts, upload.WithTimeout(time.Duration(cfg.Timeout)*time.Millisecond))
	}

	if userAgentFlag != "" {
		opts = append(opts, upload.WithUserAgent(userAgentFlag))
	} else if cfg.UserAgent != "" {
		opts = append(opts, upload.WithUserAgent(cfg.UserAgent))
	}

	validateSSL := cfg.GetValidateSSL()
	if insecureFlag {
		validateSSL = false
	}
	opts = append(opts, upload.WithValidateSSL(validateSSL))

	if len(cfg.Headers) > 0 {
		opts = append(opts, upload.WithHeaders(cfg.Headers))
	}
	for _, h := range headerFlags {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --header %q: expected \"Name: value\"", h)
		}
		opts = append(opts, upload.WithHeader(strings.TrimSpace(name), strings.TrimSpace(value)))
	}

	return upload.NewClient(opts...), nil
}

func newFormatter(cfg *config.Config) *output.ConsoleFormatter {
	return output.NewConsoleFormatter(
		output.WithNoColor(noColorFlag || cfg.GetNoColor()),
		output.WithVerbose(verboseFlag),
		output.WithExtract(extractFlag),
	)
}

// recordHistory appends the attempt to the history database when one
// is configured. History problems never fail the upload itself.
func recordHistory(cfg *config.Config, report *output.Report) {
	path := historyFlag
	if path == "" {
		path = cfg.History
	}
	if path == "" {
		return
	}

	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open history database: %v\n", err)
		return
	}
	defer store.Close()

	entry := history.Entry{
		URL:  report.URL,
		File: report.File,
	}
	if report.Result != nil {
		entry.Status = report.Result.StatusCode
		entry.OK = report.Result.OK()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Record(ctx, entry); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot record upload: %v\n", err)
	}
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
