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

	errs "github.com/matzehuels/strata/pkg/errors"
)

// Format names a serialization format.
type Format string

// Supported formats. DOT is input only.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatDOT  Format = "dot"
)

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".dot", ".gv":
		return FormatDOT, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unknown graph format for %s (want .json, .yaml, .yml, .dot or .gv)", path)
}

// =============================================================================
// Reading
// =============================================================================

// ReadJSON decodes and validates a JSON graph.
func ReadJSON(r io.Reader) (*Graph, error) {
	var g Graph
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&g); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode json")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// ReadYAML decodes and validates a YAML graph.
func ReadYAML(r io.Reader) (*Graph, error) {
	var g Graph
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&g); err != nil && err != io.EOF {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode yaml")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Read decodes a graph in the given format.
func Read(r io.Reader, format Format) (*Graph, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatDOT:
		return ReadDOT(r)
	}
	return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported input format %q", format)
}

// ReadFile reads a graph file, picking the format from its extension.
func ReadFile(path string) (*Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// =============================================================================
// Writing
// =============================================================================

// WriteJSON encodes g as indented JSON.
func WriteJSON(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes g as YAML.
func WriteYAML(g *Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Write encodes g in the given format.
func Write(g *Graph, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(g, w)
	case FormatYAML:
		return WriteYAML(g, w)
	}
	return errs.New(errs.ErrCodeInvalidFormat, "unsupported output format %q", format)
}

// Marshal encodes g in the given format.
func Marshal(g *Graph, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a graph in the given format.
func Unmarshal(data []byte, format Format) (*Graph, error) {
	return Read(bytes.NewReader(data), format)
}

// WriteFile writes g to path, picking the format from its extension.
func WriteFile(g *Graph, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(g, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
