// Package plot draws dataset data series and composes them with the site
// map into a complete figure. The generic series plotter and the map are
// separate capabilities consumed by the Figure orchestrator; neither knows
// about the other.
package plot

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoplot/internal/canvas"
	"geoplot/internal/geomap"
	"geoplot/internal/proj"
	"geoplot/internal/render"
)

// Series is one dataset column pair ready for plotting.
type Series struct {
	X     []float64
	Y     []float64
	Label string
	Style render.Style
}

// SeriesPlotter renders data series as a braille line or scatter chart.
type SeriesPlotter struct {
	Width  int
	Height int

	XLabel string
	YLabel string

	InvertX bool
	InvertY bool

	// Scatter suppresses the connecting lines between samples.
	Scatter bool
}

// Render draws every series into one chart frame. Series are drawn in order,
// so later series overprint earlier ones where they overlap.
func (p SeriesPlotter) Render(series []Series) string {
	w, h := p.Width, p.Height
	if w < 16 {
		w = 16
	}
	if h < 6 {
		h = 6
	}

	ext, ok := dataExtent(series)
	if !ok {
		return lipgloss.NewStyle().Width(w).Height(h).Render("no data")
	}

	c := canvas.New(w, h-2)
	c.SetView(ext, proj.Default())
	for _, s := range series {
		p.drawSeries(c, ext, s)
	}

	loY, hiY := ext.Bottom, ext.Top
	if p.InvertY {
		loY, hiY = hiY, loY
	}
	loX, hiX := ext.Left, ext.Right
	if p.InvertX {
		loX, hiX = hiX, loX
	}

	top := fmt.Sprintf("%s  %g", p.YLabel, hiY)
	bottom := fmt.Sprintf("%g  %s  [%g .. %g]", loY, p.XLabel, loX, hiX)
	return strings.Join([]string{
		dimStyle.Render(truncate(top, w)),
		c.String(),
		dimStyle.Render(truncate(bottom, w)),
	}, "\n")
}

func (p SeriesPlotter) drawSeries(c *canvas.Canvas, ext geomap.Extent, s Series) {
	n := len(s.X)
	if len(s.Y) < n {
		n = len(s.Y)
	}
	st := s.Style
	if st.Marker == "" {
		st.Marker = "."
	}
	var prevX, prevY float64
	havePrev := false
	for i := 0; i < n; i++ {
		x, y := s.X[i], s.Y[i]
		if p.InvertX {
			x = ext.Left + ext.Right - x
		}
		if p.InvertY {
			y = ext.Bottom + ext.Top - y
		}
		if p.Scatter || !havePrev {
			c.DrawPoint(x, y, st)
		} else {
			c.DrawLine(prevX, prevY, x, y, st)
		}
		prevX, prevY = x, y
		havePrev = true
	}
}

// dataExtent is the min/max window over every series, with a small pad so
// extreme samples don't sit on the frame edge.
func dataExtent(series []Series) (geomap.Extent, bool) {
	var ext geomap.Extent
	seen := false
	for _, s := range series {
		n := len(s.X)
		if len(s.Y) < n {
			n = len(s.Y)
		}
		for i := 0; i < n; i++ {
			x, y := s.X[i], s.Y[i]
			if !seen {
				ext = geomap.Extent{Left: x, Right: x, Bottom: y, Top: y}
				seen = true
				continue
			}
			ext.Left = min(ext.Left, x)
			ext.Right = max(ext.Right, x)
			ext.Bottom = min(ext.Bottom, y)
			ext.Top = max(ext.Top, y)
		}
	}
	if !seen {
		return geomap.Extent{}, false
	}
	padX := ext.Width() * 0.02
	padY := ext.Height() * 0.02
	if padX == 0 {
		padX = 0.5
	}
	if padY == 0 {
		padY = 0.5
	}
	ext.Left -= padX
	ext.Right += padX
	ext.Bottom -= padY
	ext.Top += padY
	return ext, true
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return string(r[:w])
}
