package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/nvr-ai/go-cvkit/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cvkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultMaxElements, cfg.Split.MaxElements)
	assert.Equal(t, images.DefaultOffset, cfg.Stitch.OffsetX)

	c, err := cfg.Draw.RGBA()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
listing:
  extensions: [".png"]
split:
  max_elements: 100
  shuffle: true
  seed: 42
read:
  color: false
  resize: {height: 224, width: 224}
stitch:
  rows: 2
  cols: 3
  offset_x: 4
draw:
  color: "#ff0000"
  thickness: -1
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{".png"}, cfg.Listing.Extensions)
	assert.Equal(t, SplitConfig{MaxElements: 100, Shuffle: true, Seed: 42}, cfg.Split)
	assert.False(t, cfg.Read.Color)
	assert.Equal(t, images.Size{Height: 224, Width: 224}, cfg.Read.Resize)
	assert.Equal(t, 2, cfg.Stitch.Rows)
	assert.Equal(t, 3, cfg.Stitch.Cols)
	assert.Equal(t, 4, cfg.Stitch.OffsetX)
	assert.Equal(t, images.DefaultOffset, cfg.Stitch.OffsetY, "unset keys keep their defaults")

	c, err := cfg.Draw.RGBA()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, c)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"max elements": "split: {max_elements: 0}\n",
		"layout":       "stitch: {rows: 0}\n",
		"thickness":    "draw: {thickness: 0}\n",
		"color":        "draw: {color: not-a-color}\n",
		"syntax":       "split: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
