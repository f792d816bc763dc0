package tui

import (
	"geoplot/internal/canvas"
	"geoplot/internal/geomap"
	"geoplot/internal/plot"
	"geoplot/internal/proj"
	"geoplot/internal/render"
)

// viewExtent derives the visible window from the resolved extent, the zoom
// factor and the pan offsets (in degrees).
func (m Model) viewExtent() (geomap.Extent, bool) {
	if !(m.extent.Width() > 0 && m.extent.Height() > 0) {
		return geomap.Extent{}, false
	}
	cLon := (m.extent.Left+m.extent.Right)/2 + m.panLon
	cLat := (m.extent.Bottom+m.extent.Top)/2 + m.panLat
	halfW := m.extent.Width() / (2 * m.zoom)
	halfH := m.extent.Height() / (2 * m.zoom)
	return geomap.Extent{
		Left:   cLon - halfW,
		Right:  cLon + halfW,
		Bottom: cLat - halfH,
		Top:    cLat + halfH,
	}, true
}

// renderMap draws the dataset sites into a fresh canvas for this frame.
func (m Model) renderMap(w, h int) string {
	view, ok := m.viewExtent()
	if !ok {
		return dimStyle.Render("no datasets loaded - open a file from the sidebar")
	}
	c := canvas.New(w, h)
	c.SetGridlines(m.gridlines)
	c.SetView(view, proj.Default())
	for i, ds := range m.datasets {
		st := render.Style{Color: render.ColorAt(i)}
		// a dataset that classifies to neither family was already reported
		// at load time; skip it here instead of aborting the frame
		if err := render.RenderSite(c, ds, geomap.DefaultXKey, geomap.DefaultXMinKey, plot.SiteKey, st); err != nil {
			continue
		}
	}
	return c.String()
}

// cellToLonLat converts a map cell coordinate back to lon/lat through the
// current view.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	view, ok := m.viewExtent()
	if !ok || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	nx := float64(cx) / float64(w-1)
	ny := 1.0 - float64(cy)/float64(h-1)
	return view.Left + nx*view.Width(), view.Bottom + ny*view.Height(), true
}
