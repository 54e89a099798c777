// Package output renders upload outcomes on the console.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/formpost/packages/upload"
	"github.com/fatih/color"
	"github.com/tidwall/gjson"
)

// Report is one upload outcome ready for display. Err is set when the
// request never completed; Result is set when the server answered.
type Report struct {
	Name   string
	URL    string
	File   string
	Result *upload.Result
	Err    error
}

// Failed reports whether the attempt should count as a failure.
func (r *Report) Failed() bool {
	return r.Err != nil || r.Result == nil || !r.Result.OK()
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
	extract string // gjson path pulled from JSON response bodies
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// WithExtract prints the value at the given gjson path from the
// response body of each successful upload. Crash servers typically
// answer with the assigned report id.
func WithExtract(path string) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.extract = path
	}
}

func (f *ConsoleFormatter) FormatReport(r *Report) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	name := r.Name
	if name == "" {
		name = r.File
	}

	if r.Err != nil {
		fmt.Fprintf(f.writer, "  %s %s %s\n", red("x"), name, red(fmt.Sprintf("(%v)", r.Err)))
		return
	}

	symbol := green("✓")
	if !r.Result.OK() {
		symbol = red("✗")
	}
	fmt.Fprintf(f.writer, "  %s %s %s %s\n",
		symbol, name,
		statusLabel(r),
		cyan(fmt.Sprintf("(%dms)", r.Result.DurationMs())))

	if f.verbose {
		fmt.Fprintf(f.writer, "    URL: %s\n", r.URL)
		fmt.Fprintf(f.writer, "    Response: %d bytes\n", len(r.Result.Body))
	}

	if f.extract != "" {
		if v := gjson.GetBytes(r.Result.Body, f.extract); v.Exists() {
			fmt.Fprintf(f.writer, "    %s: %s\n", f.extract, v.String())
		}
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("error:"), err)
}

func (f *ConsoleFormatter) FormatSummary(ok, failed int, total time.Duration) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s %s uploaded, %s failed %s\n",
		bold("Done:"),
		green(fmt.Sprintf("%d", ok)),
		red(fmt.Sprintf("%d", failed)),
		fmt.Sprintf("(%.1fs)", total.Seconds()))
}

func statusLabel(r *Report) string {
	if r.Result.Status != "" {
		return r.Result.Status
	}
	return fmt.Sprintf("%d", r.Result.StatusCode)
}
