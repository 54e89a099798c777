package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAndLoadConfig_NoFile(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.PartName)
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetNoColor())
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".formpost.config.json")
	contents := `{
		"url": "https://crashes.example.com/submit",
		"timeout": 5000,
		"partName": "upload_file_minidump",
		"validateSSL": false,
		"fields": {"prod": "myapp"},
		"headers": {"Authorization": "token-123"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://crashes.example.com/submit", cfg.URL)
	assert.Equal(t, 5000, cfg.Timeout)
	assert.Equal(t, "upload_file_minidump", cfg.PartName)
	assert.False(t, cfg.GetValidateSSL())
	assert.Equal(t, "myapp", cfg.Fields["prod"])
	assert.Equal(t, "token-123", cfg.Headers["Authorization"])
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Merge(t *testing.T) {
	base := &Config{
		URL:     "https://base.example.com",
		Timeout: 1000,
		Fields:  map[string]string{"prod": "myapp", "ver": "1.0"},
	}
	override := &Config{
		URL:         "https://override.example.com",
		ValidateSSL: boolPtrForTest(false),
		Fields:      map[string]string{"ver": "2.0"},
	}

	merged := base.Merge(override)

	assert.Equal(t, "https://override.example.com", merged.URL)
	assert.Equal(t, 1000, merged.Timeout)
	assert.False(t, merged.GetValidateSSL())
	assert.Equal(t, "myapp", merged.Fields["prod"])
	assert.Equal(t, "2.0", merged.Fields["ver"])

	// Base is untouched.
	assert.Equal(t, "https://base.example.com", base.URL)
	assert.Equal(t, "1.0", base.Fields["ver"])
}

func TestConfig_MergeNil(t *testing.T) {
	base := &Config{URL: "https://base.example.com"}
	assert.Equal(t, base, base.Merge(nil))
}

func boolPtrForTest(b bool) *bool {
	return &b
}
