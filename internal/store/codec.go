package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"docvault/internal/domain"
)

// Codec serialises the top-level mapping of a store file.
type Codec interface {
	// Name identifies the codec, e.g. "json".
	Name() string
	Marshal(v map[string]any) ([]byte, error)
	// Unmarshal parses b and returns its top-level mapping.
	Unmarshal(b []byte) (map[string]any, error)
}

// Extensions lists the recognised document file extensions.
var Extensions = []string{".json", ".yaml", ".yml"}

// CodecFor picks the Codec for path from its extension.
func CodecFor(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONCodec{}, nil
	case ".yaml", ".yml":
		return YAMLCodec{}, nil
	}
	return nil, fmt.Errorf("%w: %q must end in one of %s", domain.ErrConfig, path, strings.Join(Extensions, ", "))
}

// JSONCodec reads and writes indented JSON.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v map[string]any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTypeMismatch, err)
	}
	return append(b, '\n'), nil
}

func (JSONCodec) Unmarshal(b []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedStore, err)
	}
	return asMapping(v)
}

// YAMLCodec reads and writes YAML.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Marshal(v map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTypeMismatch, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTypeMismatch, err)
	}
	return buf.Bytes(), nil
}

func (YAMLCodec) Unmarshal(b []byte) (map[string]any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedStore, err)
	}
	n, err := domain.Normalize(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedStore, err)
	}
	return asMapping(n)
}

func asMapping(v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value must be a mapping, got %s", domain.ErrMalformedStore, describe(v))
	}
	return m, nil
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
