package multipart

import "errors"

var (
	// ErrInvalidFieldName reports a form field name that is empty or
	// contains characters that cannot appear in a Content-Disposition
	// header.
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrEmptyFile reports a zero-length upload file.
	ErrEmptyFile = errors.New("upload file is empty")

	// ErrEncoding reports a string that could not be converted to the
	// UTF-8 wire encoding, or that encoded to nothing.
	ErrEncoding = errors.New("cannot encode for wire")
)
