package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/vesti/codegen"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "vesti.toml",
			content: `engine = "xelatex"
banner = false
output_dir = "build"
watch_debounce = "250ms"
`,
		},
		{
			name: "yaml",
			file: "vesti.yaml",
			content: `engine: xelatex
banner: false
output_dir: build
watch_debounce: 250ms
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)

			cfg, err := Load(path)
			assert.NoError(t, err)
			assert.Equal(t, path, cfg.Path)
			assert.Equal(t, "build", cfg.OutputDir)
			assert.False(t, cfg.BannerEnabled())

			engine, err := cfg.EngineValue()
			assert.NoError(t, err)
			assert.Equal(t, codegen.XeLatex, engine)

			debounce, err := cfg.Debounce()
			assert.NoError(t, err)
			assert.Equal(t, 250*time.Millisecond, debounce)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unknown engine", "vesti.toml", `engine = "context"`, "unknown LaTeX engine"},
		{"bad debounce", "vesti.toml", `watch_debounce = "soon"`, "invalid watch_debounce"},
		{"negative debounce", "vesti.yml", "watch_debounce: -1s\n", "must not be negative"},
		{"unknown toml key", "vesti.toml", `colour = "red"`, `unknown key "colour"`},
		{"unknown yaml key", "vesti.yaml", "colour: red\n", "colour"},
		{"broken toml", "vesti.toml", `engine = `, "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)

			_, err := Load(path)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "vesti.toml"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "vesti.yml", "")

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "pdflatex", cfg.Engine)
}

func TestFind(t *testing.T) {
	t.Run("no project file", func(t *testing.T) {
		cfg, err := Find(t.TempDir())
		assert.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.True(t, cfg.BannerEnabled())
	})

	t.Run("toml preferred over yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "vesti.yaml", "engine: lualatex\n")
		writeFile(t, dir, "vesti.toml", `engine = "latex"`)

		cfg, err := Find(dir)
		assert.NoError(t, err)
		assert.Equal(t, "latex", cfg.Engine)
		assert.Equal(t, filepath.Join(dir, "vesti.toml"), cfg.Path)
	})

	t.Run("yml fallback", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "vesti.yml", "output_dir: out\n")

		cfg, err := Find(dir)
		assert.NoError(t, err)
		assert.Equal(t, "out", cfg.OutputDir)
	})
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	engine, err := cfg.EngineValue()
	assert.NoError(t, err)
	assert.Equal(t, codegen.Pdflatex, engine)

	debounce, err := cfg.Debounce()
	assert.NoError(t, err)
	assert.Equal(t, DefaultDebounce, debounce)
}

