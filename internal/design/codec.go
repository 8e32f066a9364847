package design

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/merchkit/internal/overlay"
)

// Format is a design file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension, defaulting to JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Marshal encodes d.
func Marshal(d Design, f Format) ([]byte, error) {
	if d.Overlays == nil {
		d.Overlays = []overlay.Record{}
	}
	switch f {
	case FormatYAML:
		data, err := yaml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return data, nil
	case FormatTOML:
		data, err := toml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown design format %q", f)
	}
}

// Unmarshal decodes a design and validates its header fields. Overlay
// records are validated later by Snapshot so one bad entry does not lose
// the whole design.
func Unmarshal(data []byte, f Format) (Design, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Design{}, ErrEmptyDesign
	}

	var d Design
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	case FormatTOML:
		err = toml.Unmarshal(data, &d)
	case FormatJSON:
		err = json.Unmarshal(data, &d)
	default:
		return Design{}, fmt.Errorf("unknown design format %q", f)
	}
	if err != nil {
		return Design{}, fmt.Errorf("decoding %s design: %w", f, err)
	}

	g, err := ParseGarment(string(d.Garment))
	if err != nil {
		return Design{}, err
	}
	d.Garment = g
	return d, nil
}

// Load reads a design file, picking the format from its extension.
func Load(path string) (Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Design{}, fmt.Errorf("reading design: %w", err)
	}
	return Unmarshal(data, FormatFor(path))
}

// Save writes d to path in the format implied by its extension.
func Save(path string, d Design) error {
	data, err := Marshal(d, FormatFor(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating design directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing design: %w", err)
	}
	return nil
}
