package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, 0, s.Step)
	assert.Equal(t, 0.1, s.VisualScale)
	assert.Equal(t, 5, s.Tolerance)
	assert.True(t, s.AutoSafety)
	assert.True(t, s.Merge)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name                   string
		step, scale, tolerance string
		wantStep               int
		wantScale              float64
		wantTolerance          int
	}{
		{"all valid", "3", "0.5", "10", 3, 0.5, 10},
		{"whitespace", " 2 ", " 1.25", "0 ", 2, 1.25, 0},
		{"empty fields", "", "", "", 0, 0.1, 5},
		{"non-numeric", "abc", "big", "x", 0, 0.1, 5},
		{"negative values", "-3", "-1", "-2", 0, 0.1, 5},
		{"zero scale", "1", "0", "1", 1, 0.1, 1},
		{"nan scale", "1", "NaN", "1", 1, 0.1, 1},
		{"infinite scale", "1", "+Inf", "1", 1, 0.1, 1},
		{"float step", "1.5", "1", "1", 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Parse(tt.step, tt.scale, tt.tolerance, false, true)
			assert.Equal(t, tt.wantStep, s.Step)
			assert.Equal(t, tt.wantScale, s.VisualScale)
			assert.Equal(t, tt.wantTolerance, s.Tolerance)
			assert.False(t, s.AutoSafety)
			assert.True(t, s.Merge)
		})
	}
}

func writeSettings(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Partial(t *testing.T) {
	path := writeSettings(t, "settings.json", `{"step": 4, "merge": false}`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Step)
	assert.False(t, s.Merge)
	assert.Equal(t, DefaultVisualScale, s.VisualScale)
	assert.Equal(t, DefaultTolerance, s.Tolerance)
	assert.True(t, s.AutoSafety)
}

func TestLoad_Full(t *testing.T) {
	path := writeSettings(t, "settings.json",
		`{"step": 2, "visual_scale": 0.25, "tolerance": 12, "auto_safety": false, "merge": true}`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{Step: 2, VisualScale: 0.25, Tolerance: 12, AutoSafety: false, Merge: true}, s)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	path := writeSettings(t, "settings.json", `{"visual_scale": -2, "tolerance": -1}`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultVisualScale, s.VisualScale)
	assert.Equal(t, DefaultTolerance, s.Tolerance)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("wrong extension", func(t *testing.T) {
		_, err := Load(writeSettings(t, "settings.yaml", `{}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ".json")
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
	})
	t.Run("malformed json", func(t *testing.T) {
		_, err := Load(writeSettings(t, "settings.json", `{"step": "four"}`))
		require.Error(t, err)
	})
	t.Run("too large", func(t *testing.T) {
		body := `{"step": 1, "pad": "` + strings.Repeat("x", maxFileSize) + `"}`
		_, err := Load(writeSettings(t, "settings.json", body))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})
}
