// Package config loads figure defaults from the environment. Command-line
// flags always win; these values only fill in what the flags leave unset.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"geoplot/internal/geomap"
)

// Config holds the environment-derived defaults for a plot run.
//
// Recognized variables:
//   - GEOPLOT_OFFSET: extent margin in degrees
//   - GEOPLOT_PROJECTION: map projection name
//   - GEOPLOT_FIGSIZE: figure size as "WIDTHxHEIGHT" in terminal cells
type Config struct {
	Offset     float64
	Projection string
	FigWidth   int
	FigHeight  int
}

// Load reads an optional .env file and then the process environment.
// Unparseable values fall back to the defaults rather than failing: a bad
// environment should not break an otherwise valid command line.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Offset:     geomap.DefaultOffset,
		Projection: "PlateCarree",
		FigWidth:   80,
		FigHeight:  24,
	}
	if v := os.Getenv("GEOPLOT_OFFSET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Offset = f
		}
	}
	if v := os.Getenv("GEOPLOT_PROJECTION"); v != "" {
		cfg.Projection = v
	}
	if v := os.Getenv("GEOPLOT_FIGSIZE"); v != "" {
		if w, h, ok := parseFigsize(v); ok {
			cfg.FigWidth = w
			cfg.FigHeight = h
		}
	}
	return cfg
}

func parseFigsize(s string) (int, int, bool) {
	var w, h int
	for i := 0; i < len(s); i++ {
		if s[i] == 'x' || s[i] == 'X' {
			a, err1 := strconv.Atoi(s[:i])
			b, err2 := strconv.Atoi(s[i+1:])
			if err1 != nil || err2 != nil || a < 1 || b < 1 {
				return 0, 0, false
			}
			w, h = a, b
			return w, h, true
		}
	}
	return 0, 0, false
}
