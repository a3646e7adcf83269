// Package config holds the settings that control an image import and the
// rules for turning user input into valid settings.
//
// Bad input never fails an import: each unparseable or out-of-range field
// falls back to its default independently.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults applied to missing or invalid fields.
const (
	DefaultStep        = 0
	DefaultVisualScale = 0.1
	DefaultTolerance   = 5
	DefaultAutoSafety  = true
	DefaultMerge       = true
)

// maxFileSize caps settings files read by Load.
const maxFileSize = 1 * 1024 * 1024

// Settings controls one import.
type Settings struct {
	// Step is the pixel distance between samples. It is ignored when
	// AutoSafety is set; otherwise values below 1 sample every pixel.
	Step int `json:"step"`

	// VisualScale multiplies the editor's base tile size. Must be > 0.
	VisualScale float64 `json:"visual_scale"`

	// Tolerance is the per-channel color difference allowed inside one
	// merged block. Must be >= 0.
	Tolerance int `json:"tolerance"`

	// AutoSafety picks the step so the sampled-cell count stays bounded.
	AutoSafety bool `json:"auto_safety"`

	// Merge combines neighbouring cells of similar color into one object.
	Merge bool `json:"merge"`
}

// Default returns the settings used when the user changes nothing.
func Default() Settings {
	return Settings{
		Step:        DefaultStep,
		VisualScale: DefaultVisualScale,
		Tolerance:   DefaultTolerance,
		AutoSafety:  DefaultAutoSafety,
		Merge:       DefaultMerge,
	}
}

// Validate returns s with every out-of-range field replaced by its default.
func (s Settings) Validate() Settings {
	if s.Step < 0 {
		s.Step = DefaultStep
	}
	if s.VisualScale <= 0 || math.IsNaN(s.VisualScale) || math.IsInf(s.VisualScale, 0) {
		s.VisualScale = DefaultVisualScale
	}
	if s.Tolerance < 0 {
		s.Tolerance = DefaultTolerance
	}
	return s
}

// Parse builds settings from raw text fields as typed into a form.
// Each field that does not parse falls back to its default.
func Parse(step, visualScale, tolerance string, autoSafety, merge bool) Settings {
	s := Default()
	s.AutoSafety = autoSafety
	s.Merge = merge

	if v, err := strconv.Atoi(strings.TrimSpace(step)); err == nil {
		s.Step = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(visualScale), 64); err == nil {
		s.VisualScale = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(tolerance)); err == nil {
		s.Tolerance = v
	}
	return s.Validate()
}

// fileSettings mirrors Settings with optional fields so a settings file can
// override only some values.
type fileSettings struct {
	Step        *int     `json:"step,omitempty"`
	VisualScale *float64 `json:"visual_scale,omitempty"`
	Tolerance   *int     `json:"tolerance,omitempty"`
	AutoSafety  *bool    `json:"auto_safety,omitempty"`
	Merge       *bool    `json:"merge,omitempty"`
}

// Load reads settings from a JSON file. Fields omitted from the file keep
// their defaults, so partial files are safe.
func Load(path string) (Settings, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Settings{}, fmt.Errorf("settings file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to stat settings file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return Settings{}, fmt.Errorf("settings file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var fs fileSettings
	if err := json.Unmarshal(data, &fs); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return fs.apply(Default()), nil
}

func (fs fileSettings) apply(s Settings) Settings {
	if fs.Step != nil {
		s.Step = *fs.Step
	}
	if fs.VisualScale != nil {
		s.VisualScale = *fs.VisualScale
	}
	if fs.Tolerance != nil {
		s.Tolerance = *fs.Tolerance
	}
	if fs.AutoSafety != nil {
		s.AutoSafety = *fs.AutoSafety
	}
	if fs.Merge != nil {
		s.Merge = *fs.Merge
	}
	return s.Validate()
}
