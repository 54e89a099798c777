package multipart

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"unicode/utf8"
)

// BuildBody assembles the complete request body for one upload: each
// field as a form-data part in sorted name order, then the file as an
// application/octet-stream part carrying its path as the filename,
// then the closing boundary marker.
//
// The file is read whole; a missing, unreadable or empty file fails
// the build before any bytes are produced. Field values and the file
// path are inserted verbatim: embedded quotes or boundary sequences
// are neither escaped nor detected.
func BuildBody(fields map[string]string, filePath, filePartName, boundary string) ([]byte, error) {
	contents, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, filePath)
	}

	filename, err := wireEncode(filePath)
	if err != nil {
		return nil, err
	}
	if len(filename) == 0 {
		return nil, fmt.Errorf("%w: empty file path", ErrEncoding)
	}

	partName, err := wireEncode(filePartName)
	if err != nil {
		return nil, err
	}
	if len(partName) == 0 {
		return nil, fmt.Errorf("%w: empty file part name", ErrEncoding)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var body bytes.Buffer
	for _, name := range names {
		encName, err := wireEncode(name)
		if err != nil {
			return nil, err
		}
		encValue, err := wireEncode(fields[name])
		if err != nil {
			return nil, err
		}
		body.WriteString("--" + boundary + "\r\n")
		body.WriteString(`Content-Disposition: form-data; name="`)
		body.Write(encName)
		body.WriteString("\"\r\n\r\n")
		body.Write(encValue)
		body.WriteString("\r\n")
	}

	body.WriteString("--" + boundary + "\r\n")
	body.WriteString(`Content-Disposition: form-data; name="`)
	body.Write(partName)
	body.WriteString(`"; filename="`)
	body.Write(filename)
	body.WriteString("\"\r\n")
	body.WriteString("Content-Type: application/octet-stream\r\n")
	body.WriteString("\r\n")
	body.Write(contents)
	body.WriteString("\r\n")
	body.WriteString("--" + boundary + "--\r\n")

	return body.Bytes(), nil
}

// wireEncode converts a native string to the UTF-8 bytes that go on
// the wire. Go strings are UTF-8 already, so this only rejects invalid
// sequences rather than transcoding; keeping it as the single choke
// point keeps encoding concerns out of body assembly.
func wireEncode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: %q", ErrEncoding, s)
	}
	return []byte(s), nil
}
