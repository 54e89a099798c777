package multipart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name string, contents []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, contents, 0644))
	return path
}

func TestBuildBody_WireFormat(t *testing.T) {
	path := writeTempFile(t, "payload.bin", []byte("XYZ"))

	body, err := BuildBody(map[string]string{"a": "b"}, path, "upload", "BOUND")
	require.NoError(t, err)

	want := "--BOUND\r\n" +
		"Content-Disposition: form-data; name=\"a\"\r\n" +
		"\r\n" +
		"b\r\n" +
		"--BOUND\r\n" +
		"Content-Disposition: form-data; name=\"upload\"; filename=\"" + path + "\"\r\n" +
		"Content-Type: application/octet-stream\r\n" +
		"\r\n" +
		"XYZ\r\n" +
		"--BOUND--\r\n"
	assert.Equal(t, want, string(body))
}

func TestBuildBody_FieldOrderIsSorted(t *testing.T) {
	path := writeTempFile(t, "payload.bin", []byte("data"))

	fields := map[string]string{"zeta": "3", "alpha": "1", "mid": "2"}
	body, err := BuildBody(fields, path, "file", "BOUND")
	require.NoError(t, err)

	s := string(body)
	alpha := strings.Index(s, `name="alpha"`)
	mid := strings.Index(s, `name="mid"`)
	zeta := strings.Index(s, `name="zeta"`)
	file := strings.Index(s, `name="file"`)

	assert.True(t, alpha < mid, "alpha should precede mid")
	assert.True(t, mid < zeta, "mid should precede zeta")
	assert.True(t, zeta < file, "fields should precede the file part")
}

func TestBuildBody_NoFields(t *testing.T) {
	path := writeTempFile(t, "payload.bin", []byte("data"))

	body, err := BuildBody(nil, path, "file", "BOUND")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(body), "--BOUND\r\nContent-Disposition: form-data; name=\"file\""))
	assert.True(t, strings.HasSuffix(string(body), "--BOUND--\r\n"))
}

func TestBuildBody_BinarySafe(t *testing.T) {
	raw := []byte{0x00, 0xFF, 0x0D, 0x0A, 0x80, 0x01}
	path := writeTempFile(t, "payload.bin", raw)

	body, err := BuildBody(nil, path, "file", "BOUND")
	require.NoError(t, err)

	assert.Contains(t, string(body), string(raw))
}

func TestBuildBody_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.bin", nil)

	body, err := BuildBody(nil, path, "file", "BOUND")
	assert.ErrorIs(t, err, ErrEmptyFile)
	assert.Nil(t, body)
}

func TestBuildBody_MissingFile(t *testing.T) {
	body, err := BuildBody(nil, filepath.Join(t.TempDir(), "nope.bin"), "file", "BOUND")
	assert.Error(t, err)
	assert.Nil(t, body)
}

func TestBuildBody_EmptyPartName(t *testing.T) {
	path := writeTempFile(t, "payload.bin", []byte("data"))

	_, err := BuildBody(nil, path, "", "BOUND")
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestBuildBody_InvalidUTF8Value(t *testing.T) {
	path := writeTempFile(t, "payload.bin", []byte("data"))

	_, err := BuildBody(map[string]string{"a": "\xff\xfe"}, path, "file", "BOUND")
	assert.ErrorIs(t, err, ErrEncoding)
}
