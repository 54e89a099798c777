package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/formpost/packages/upload"
	"github.com/stretchr/testify/assert"
)

func newBufferFormatter(buf *bytes.Buffer, opts ...ConsoleOption) *ConsoleFormatter {
	opts = append([]ConsoleOption{WithWriter(buf), WithNoColor(true)}, opts...)
	return NewConsoleFormatter(opts...)
}

func TestFormatReport_Success(t *testing.T) {
	var buf bytes.Buffer
	f := newBufferFormatter(&buf)

	f.FormatReport(&Report{
		File: "crash.dmp",
		URL:  "https://crashes.example.com/submit",
		Result: &upload.Result{
			StatusCode: 200,
			Status:     "200 OK",
			Duration:   42 * time.Millisecond,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "crash.dmp")
	assert.Contains(t, out, "200 OK")
	assert.Contains(t, out, "(42ms)")
}

func TestFormatReport_Rejected(t *testing.T) {
	var buf bytes.Buffer
	f := newBufferFormatter(&buf)

	f.FormatReport(&Report{
		File:   "crash.dmp",
		Result: &upload.Result{StatusCode: 500, Status: "500 Internal Server Error"},
	})

	out := buf.String()
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "500")
}

func TestFormatReport_TransportError(t *testing.T) {
	var buf bytes.Buffer
	f := newBufferFormatter(&buf)

	f.FormatReport(&Report{
		File: "crash.dmp",
		Err:  errors.New("connection refused"),
	})

	out := buf.String()
	assert.Contains(t, out, "x crash.dmp")
	assert.Contains(t, out, "connection refused")
}

func TestFormatReport_Extract(t *testing.T) {
	var buf bytes.Buffer
	f := newBufferFormatter(&buf, WithExtract("report_id"))

	f.FormatReport(&Report{
		File: "crash.dmp",
		Result: &upload.Result{
			StatusCode: 200,
			Body:       []byte(`{"report_id": "abc-123"}`),
		},
	})

	assert.Contains(t, buf.String(), "report_id: abc-123")
}

func TestFormatReport_ExtractMissingPath(t *testing.T) {
	var buf bytes.Buffer
	f := newBufferFormatter(&buf, WithExtract("report_id"))

	f.FormatReport(&Report{
		File:   "crash.dmp",
		Result: &upload.Result{StatusCode: 200, Body: []byte(`not json`)},
	})

	assert.NotContains(t, buf.String(), "report_id:")
}

func TestFormatSummary(t *testing.T) {
	var buf bytes.Buffer
	f := newBufferFormatter(&buf)

	f.FormatSummary(3, 1, 2*time.Second)

	out := buf.String()
	assert.Contains(t, out, "3 uploaded")
	assert.Contains(t, out, "1 failed")
}

func TestReport_Failed(t *testing.T) {
	assert.True(t, (&Report{Err: errors.New("boom")}).Failed())
	assert.True(t, (&Report{Result: &upload.Result{StatusCode: 404}}).Failed())
	assert.True(t, (&Report{}).Failed())
	assert.False(t, (&Report{Result: &upload.Result{StatusCode: 200}}).Failed())
}
