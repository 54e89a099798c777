package upload

import (
	"net/http"
	"time"
)

// Result describes a completed round-trip: the request was sent and a
// status line came back. A Result whose OK method returns false is not
// an error in the Go sense; the transport worked, the server declined.
type Result struct {
	StatusCode int
	Status     string
	Body       []byte
	Duration   time.Duration
}

// OK reports whether the server accepted the upload. Only an exact 200
// counts; other 2xx codes are failures, matching servers that signal
// acceptance solely with 200.
func (r *Result) OK() bool {
	return r.StatusCode == http.StatusOK
}

// BodyString returns the response body as a string.
func (r *Result) BodyString() string {
	return string(r.Body)
}

// DurationMs returns the round-trip time in milliseconds.
func (r *Result) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
