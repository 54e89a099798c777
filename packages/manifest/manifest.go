// Package manifest loads YAML batch manifests describing a sequence
// of multipart uploads.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPartName is the form field the file is attached under when an
// entry does not name one.
const DefaultPartName = "file"

// Entry is a single upload in a manifest.
type Entry struct {
	Name     string            `yaml:"name,omitempty"`
	URL      string            `yaml:"url,omitempty"`
	File     string            `yaml:"file"`
	PartName string            `yaml:"partName,omitempty"`
	Fields   map[string]string `yaml:"fields,omitempty"`
}

// Manifest is a batch of uploads. Top-level url and fields act as
// defaults for every entry; entry fields win on conflict.
type Manifest struct {
	URL     string            `yaml:"url,omitempty"`
	Fields  map[string]string `yaml:"fields,omitempty"`
	Uploads []Entry           `yaml:"uploads"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if len(m.Uploads) == 0 {
		return nil, fmt.Errorf("manifest %s lists no uploads", path)
	}
	for i, e := range m.Uploads {
		if e.File == "" {
			return nil, fmt.Errorf("manifest %s: upload %d has no file", path, i+1)
		}
		if e.URL == "" && m.URL == "" {
			return nil, fmt.Errorf("manifest %s: upload %d has no url and no top-level url is set", path, i+1)
		}
	}

	return &m, nil
}

// Resolved returns the entries with manifest-level defaults applied:
// the top-level URL where an entry has none, merged fields, a default
// part name, and a display name derived from the file when unset.
func (m *Manifest) Resolved() []Entry {
	resolved := make([]Entry, len(m.Uploads))
	for i, e := range m.Uploads {
		if e.URL == "" {
			e.URL = m.URL
		}
		if e.PartName == "" {
			e.PartName = DefaultPartName
		}
		if e.Name == "" {
			e.Name = e.File
		}

		fields := make(map[string]string, len(m.Fields)+len(e.Fields))
		for k, v := range m.Fields {
			fields[k] = v
		}
		for k, v := range e.Fields {
			fields[k] = v
		}
		e.Fields = fields

		resolved[i] = e
	}
	return resolved
}
