// Package render draws dataset site markers onto a Drawable surface,
// dispatching on the same point/bbox classification the extent resolver uses.
package render

import (
	"geoplot/internal/geomap"
	"geoplot/internal/proj"
)

// Drawable is the rendering target. The renderer never constructs one; it
// receives a surface already configured by the caller. Draw calls mutate the
// surface in issue order, which fixes z-order.
type Drawable interface {
	// SetView fixes the geographic window and projection all later draw
	// calls are transformed through.
	SetView(extent geomap.Extent, projection proj.Projection)

	DrawPoint(x, y float64, style Style)
	DrawPolygon(points [][2]float64, style Style)
	DrawText(x, y float64, text string, style Style)
}
