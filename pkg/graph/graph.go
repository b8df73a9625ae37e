package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Formats
// =============================================================================

// Format is an on-disk encoding for maps and layouts.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Files ending in
// .yaml or .yml are YAML; everything else is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// =============================================================================
// Map Serialization API
// =============================================================================

// MarshalMap encodes a map in the given format. JSON output is indented
// with two spaces.
func MarshalMap(m Map, f Format) ([]byte, error) {
	return marshal(m, f)
}

// UnmarshalMap decodes a map and checks its kind.
func UnmarshalMap(data []byte, f Format) (Map, error) {
	return readMapFrom(bytes.NewReader(data), f)
}

// ReadMap decodes a map from r.
func ReadMap(r io.Reader, f Format) (Map, error) {
	return readMapFrom(r, f)
}

// ReadMapFile reads a map file, choosing the format from its extension.
func ReadMapFile(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return Map{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readMapFrom(f, FormatFromPath(path))
}

// WriteMapFile writes a map file, choosing the format from its extension.
func WriteMapFile(m Map, path string) error {
	return writeFile(m, path)
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout encodes a layout in the given format.
func MarshalLayout(l Layout, f Format) ([]byte, error) {
	return marshal(l, f)
}

// UnmarshalLayout decodes a layout in the given format.
func UnmarshalLayout(data []byte, f Format) (Layout, error) {
	var l Layout
	if err := decode(bytes.NewReader(data), f, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayout encodes a layout to w.
func WriteLayout(l Layout, w io.Writer, f Format) error {
	data, err := marshal(l, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteLayoutFile writes a layout file, choosing the format from its extension.
func WriteLayoutFile(l Layout, path string) error {
	return writeFile(l, path)
}

// ReadLayoutFile reads a layout file, choosing the format from its extension.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data, FormatFromPath(path))
}

// =============================================================================
// Internal Implementation
// =============================================================================

func readMapFrom(r io.Reader, f Format) (Map, error) {
	var m Map
	if err := decode(r, f, &m); err != nil {
		return Map{}, fmt.Errorf("decode: %w", err)
	}
	if _, err := ParseKind(string(m.Kind)); err != nil {
		return Map{}, err
	}
	return m, nil
}

func decode(r io.Reader, f Format, v any) error {
	switch f {
	case FormatYAML:
		err := yaml.NewDecoder(r).Decode(v)
		if err == io.EOF {
			return nil
		}
		return err
	case FormatJSON, "":
		return json.NewDecoder(r).Decode(v)
	default:
		return fmt.Errorf("unsupported format: %q", f)
	}
}

func marshal(v any, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %q", f)
	}
}

func writeFile(v any, path string) error {
	data, err := marshal(v, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
