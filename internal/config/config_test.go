package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEOPLOT_OFFSET", "")
	t.Setenv("GEOPLOT_PROJECTION", "")
	t.Setenv("GEOPLOT_FIGSIZE", "")

	cfg := Load()
	assert.Equal(t, 5.0, cfg.Offset)
	assert.Equal(t, "PlateCarree", cfg.Projection)
	assert.Equal(t, 80, cfg.FigWidth)
	assert.Equal(t, 24, cfg.FigHeight)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GEOPLOT_OFFSET", "10")
	t.Setenv("GEOPLOT_PROJECTION", "Miller")
	t.Setenv("GEOPLOT_FIGSIZE", "120x40")

	cfg := Load()
	assert.Equal(t, 10.0, cfg.Offset)
	assert.Equal(t, "Miller", cfg.Projection)
	assert.Equal(t, 120, cfg.FigWidth)
	assert.Equal(t, 40, cfg.FigHeight)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("GEOPLOT_OFFSET", "five")
	t.Setenv("GEOPLOT_FIGSIZE", "huge")

	cfg := Load()
	assert.Equal(t, 5.0, cfg.Offset)
	assert.Equal(t, 80, cfg.FigWidth)
	assert.Equal(t, 24, cfg.FigHeight)
}

func TestParseFigsize(t *testing.T) {
	tests := []struct {
		in     string
		w, h   int
		wantOK bool
	}{
		{"80x24", 80, 24, true},
		{"120X40", 120, 40, true},
		{"0x24", 0, 0, false},
		{"80x", 0, 0, false},
		{"x24", 0, 0, false},
		{"8024", 0, 0, false},
		{"axb", 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			w, h, ok := parseFigsize(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.w, w)
				assert.Equal(t, tc.h, h)
			}
		})
	}
}
