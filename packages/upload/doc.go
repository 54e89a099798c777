// Package upload submits a local file plus string form fields to an
// HTTP endpoint as a single browser-style multipart/form-data POST.
//
// One call, one request: no retries, no redirect tuning, no shared
// state between calls. Success means the server answered exactly 200.
package upload
