package upload

import "errors"

var (
	// ErrUnsupportedScheme reports a target URL whose scheme is
	// neither http nor https.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")

	// ErrMalformedURL reports a target URL that cannot be decomposed
	// into scheme, host and path.
	ErrMalformedURL = errors.New("malformed URL")

	// ErrTransport reports a failure at the HTTP layer: building the
	// request, connecting, sending, or reading the response.
	ErrTransport = errors.New("transport failure")
)
