// Package config loads project settings from sdw.toml or sdw.json.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

const (
	EmitIR   Emit = "ir"
	EmitTree Emit = "tree"
)

type Format string

// Emit selects what `sdw build` writes.
type Emit string

type Settings struct {
	Emit      Emit         `json:"emit"       toml:"emit"`
	OutputDir string       `json:"output_dir" toml:"output_dir"`
	Color     bool         `json:"color"      toml:"color"`
	Verify    bool         `json:"verify"     toml:"verify"`
	Test      TestSettings `json:"test"       toml:"test"`
}

type TestSettings struct {
	Dir    string `json:"dir"    toml:"dir"`
	Update bool   `json:"update" toml:"update"`
}

// Source records where settings came from. Path is empty for defaults.
type Source struct {
	Path   string
	Format Format
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Emit:  EmitIR,
		Color: true,
		Test:  TestSettings{Dir: "testdata"},
	}
}

// Load tries sdw.toml, then sdw.json in dir. Missing files fall through to
// the next candidate and finally to defaults; a file that exists but does
// not parse is an error.
func Load(dir string) (Settings, Source, error) {
	candidates := []Source{
		{Path: filepath.Join(dir, "sdw.toml"), Format: FormatTOML},
		{Path: filepath.Join(dir, "sdw.json"), Format: FormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(accumulated, fmt.Errorf("read settings %q: %w", candidate.Path, err))
			continue
		}

		settings, err := Decode(data, candidate.Format)
		if err != nil {
			return Settings{}, Source{}, fmt.Errorf("parse settings %q: %w", candidate.Path, err)
		}
		return settings, candidate, nil
	}

	if accumulated != nil {
		return Settings{}, Source{}, accumulated
	}
	return Default(), Source{}, nil
}

// LoadFile reads settings from an explicit path, picking the format from
// its extension.
func LoadFile(path string) (Settings, Source, error) {
	format := FormatTOML
	if filepath.Ext(path) == ".json" {
		format = FormatJSON
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, Source{}, fmt.Errorf("read settings %q: %w", path, err)
	}
	settings, err := Decode(data, format)
	if err != nil {
		return Settings{}, Source{}, fmt.Errorf("parse settings %q: %w", path, err)
	}
	return settings, Source{Path: path, Format: format}, nil
}

// Decode parses data on top of the defaults, so absent keys keep their
// default values. Unknown keys are rejected.
func Decode(data []byte, format Format) (Settings, error) {
	settings := Default()
	switch format {
	case FormatTOML:
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&settings); err != nil {
			return Settings{}, err
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&settings); err != nil {
			return Settings{}, err
		}
	default:
		return Settings{}, fmt.Errorf("unsupported settings format %q", format)
	}
	if err := settings.validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s Settings) validate() error {
	switch s.Emit {
	case EmitIR, EmitTree:
		return nil
	}
	return fmt.Errorf("emit must be %q or %q, got %q", EmitIR, EmitTree, s.Emit)
}

// Encode renders settings as TOML, the format `sdw` writes by default.
func Encode(s Settings) ([]byte, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return data, nil
}
