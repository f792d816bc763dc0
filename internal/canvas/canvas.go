// Package canvas renders geographic draw calls into a colored braille frame
// suitable for a terminal or a plain-text file.
package canvas

import (
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoplot/internal/geomap"
	"geoplot/internal/proj"
	"geoplot/internal/render"
)

// cycleColors maps the C0..C9 cycle onto concrete terminal colors.
var cycleColors = map[string]string{
	"C0": "#1F77B4",
	"C1": "#FF7F0E",
	"C2": "#2CA02C",
	"C3": "#D62728",
	"C4": "#9467BD",
	"C5": "#8C564B",
	"C6": "#E377C2",
	"C7": "#7F7F7F",
	"C8": "#BCBD22",
	"C9": "#17BECF",
}

const gridColor = "#243141"

var markerGlyphs = map[string]rune{
	"o": '●',
	"x": '×',
	"+": '+',
	"*": '*',
}

// Canvas is a terminal map surface implementing render.Drawable. Draw calls
// land in issue order; later calls overwrite earlier ones cell by cell.
type Canvas struct {
	w, h int

	extent     geomap.Extent
	projection proj.Projection
	// projected window corners
	pLeft, pRight, pBottom, pTop float64
	viewSet                      bool

	gridlines bool

	br *brailleBuf
	// text and marker overlay: cell runes win over braille pixels
	runes  [][]rune
	colors [][]string
}

// New returns a canvas of w x h terminal cells.
func New(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{w: w, h: h, br: newBrailleBuf(w, h), projection: proj.Default()}
	c.runes = make([][]rune, h)
	c.colors = make([][]string, h)
	for i := range c.runes {
		c.runes[i] = make([]rune, w)
		c.colors[i] = make([]string, w)
	}
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int { return c.w }

// Height returns the canvas height in cells.
func (c *Canvas) Height() int { return c.h }

// SetGridlines toggles 10-degree meridian/parallel gridlines, drawn lazily
// on the next SetView.
func (c *Canvas) SetGridlines(on bool) { c.gridlines = on }

// SetView fixes the geographic window and projection for all later draw
// calls.
func (c *Canvas) SetView(extent geomap.Extent, projection proj.Projection) {
	if projection == nil {
		projection = proj.Default()
	}
	c.extent = extent
	c.projection = projection
	c.pLeft, c.pBottom = projection.Project(extent.Left, extent.Bottom)
	c.pRight, c.pTop = projection.Project(extent.Right, extent.Top)
	c.viewSet = true
	if c.gridlines {
		c.drawGridlines()
	}
}

// Extent returns the geographic window set by SetView.
func (c *Canvas) Extent() geomap.Extent { return c.extent }

// DrawPoint plots a marker glyph at the projected cell for (x, y).
func (c *Canvas) DrawPoint(x, y float64, style render.Style) {
	mx, my, ok := c.micro(x, y)
	if !ok {
		return
	}
	color := resolveColor(style.Color)
	glyph, known := markerGlyphs[style.Marker]
	if !known {
		// "." and unknown markers render as a single braille pixel
		c.br.setPixel(mx, my, color)
		return
	}
	c.setCell(mx/2, my/4, glyph, color)
}

// DrawPolygon fills the polygon with an even-odd scanline pass whose density
// follows the style alpha, then traces the edges.
func (c *Canvas) DrawPolygon(points [][2]float64, style render.Style) {
	if len(points) < 3 {
		return
	}
	color := resolveColor(style.Color)
	ring := make([][2]int, 0, len(points))
	for _, p := range points {
		mx, my, ok := c.micro(p[0], p[1])
		if !ok {
			return
		}
		ring = append(ring, [2]int{mx, my})
	}

	stride := fillStride(style.Alpha)
	hMic := c.h * 4
	for yMic := 0; yMic < hMic; yMic += stride {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			if (yMic >= a[1] && yMic < b[1]) || (yMic >= b[1] && yMic < a[1]) {
				t := float64(yMic-a[1]) / float64(b[1]-a[1])
				xs = append(xs, a[0]+int(t*float64(b[0]-a[0])))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xstart, xend := xs[i], xs[i+1]
			if xstart > xend {
				xstart, xend = xend, xstart
			}
			for xMic := max(0, xstart); xMic <= xend; xMic += stride {
				c.br.setPixel(xMic, yMic, color)
			}
		}
	}
	for i := 0; i < len(ring); i++ {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		c.br.drawLineMicro(a[0], a[1], b[0], b[1], color)
	}
}

// DrawLine traces a segment between two geographic points. Not part of the
// render.Drawable contract; the series plotter uses it for line charts.
func (c *Canvas) DrawLine(x0, y0, x1, y1 float64, style render.Style) {
	mx0, my0, ok0 := c.micro(x0, y0)
	mx1, my1, ok1 := c.micro(x1, y1)
	if !ok0 || !ok1 {
		return
	}
	c.br.drawLineMicro(mx0, my0, mx1, my1, resolveColor(style.Color))
}

// DrawText writes a label whose anchor cell is the projected (x, y).
// Horizontal alignment shifts the run relative to the anchor.
func (c *Canvas) DrawText(x, y float64, text string, style render.Style) {
	if text == "" {
		return
	}
	mx, my, ok := c.micro(x, y)
	if !ok {
		return
	}
	cx, cy := mx/2, my/4
	runes := []rune(text)
	switch style.HAlign {
	case "center":
		cx -= len(runes) / 2
	case "right":
		cx -= len(runes) - 1
	}
	color := resolveColor(style.Color)
	for i, r := range runes {
		c.setCell(cx+i, cy, r, color)
	}
}

// String composes the styled frame for terminal output.
func (c *Canvas) String() string {
	return c.compose(true)
}

// Plain composes the frame without color escapes.
func (c *Canvas) Plain() string {
	return c.compose(false)
}

// WriteFile saves the uncolored frame.
func (c *Canvas) WriteFile(path string) error {
	return os.WriteFile(path, []byte(c.Plain()+"\n"), 0o644)
}

func (c *Canvas) compose(styled bool) string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var sb strings.Builder
		for x := 0; x < c.w; x++ {
			r := c.runes[y][x]
			color := c.colors[y][x]
			if r == 0 {
				r = c.br.cellRune(x, y)
				color = c.br.color[y][x]
			}
			if !styled || color == "" || r == ' ' {
				sb.WriteRune(r)
				continue
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) setCell(cx, cy int, r rune, color string) {
	if cx < 0 || cx >= c.w || cy < 0 || cy >= c.h {
		return
	}
	c.runes[cy][cx] = r
	c.colors[cy][cx] = color
}

// micro maps geographic coordinates into the 2x4 microgrid through the
// current view.
func (c *Canvas) micro(lon, lat float64) (int, int, bool) {
	if !c.viewSet || !(c.pRight > c.pLeft && c.pTop > c.pBottom) {
		return 0, 0, false
	}
	px, py := c.projection.Project(lon, lat)
	nx := (px - c.pLeft) / (c.pRight - c.pLeft)
	ny := (py - c.pBottom) / (c.pTop - c.pBottom)
	wMic := c.w * 2
	hMic := c.h * 4
	sx := int(nx * float64(wMic-1))
	sy := int((1.0 - ny) * float64(hMic-1))
	if sx < 0 || sx >= wMic || sy < 0 || sy >= hMic {
		return 0, 0, false
	}
	return sx, sy, true
}

// drawGridlines traces meridians and parallels every 10 degrees across the
// current view.
func (c *Canvas) drawGridlines() {
	const step = 10.0
	if c.extent.Width() <= 0 || c.extent.Height() <= 0 {
		return
	}
	for lon := nextMultiple(c.extent.Left, step); lon <= c.extent.Right; lon += step {
		var prev *[2]int
		for lat := c.extent.Bottom; lat <= c.extent.Top; lat += c.extent.Height() / float64(c.h*4) {
			mx, my, ok := c.micro(lon, lat)
			if !ok {
				prev = nil
				continue
			}
			if prev != nil {
				c.br.drawLineMicro(prev[0], prev[1], mx, my, gridColor)
			}
			prev = &[2]int{mx, my}
		}
	}
	for lat := nextMultiple(c.extent.Bottom, step); lat <= c.extent.Top; lat += step {
		var prev *[2]int
		for lon := c.extent.Left; lon <= c.extent.Right; lon += c.extent.Width() / float64(c.w*2) {
			mx, my, ok := c.micro(lon, lat)
			if !ok {
				prev = nil
				continue
			}
			if prev != nil {
				c.br.drawLineMicro(prev[0], prev[1], mx, my, gridColor)
			}
			prev = &[2]int{mx, my}
		}
	}
}

func nextMultiple(v, step float64) float64 {
	n := float64(int(v / step))
	m := n * step
	for m < v {
		m += step
	}
	return m
}

// fillStride converts a fill alpha into a dither stride on the microgrid so
// overlapping boxes stay readable.
func fillStride(alpha float64) int {
	switch {
	case alpha >= 0.75:
		return 1
	case alpha >= 0.5:
		return 2
	case alpha >= 0.25:
		return 3
	default:
		return 4
	}
}

// CycleHex resolves a C0..C9 cycle name to its terminal hex color. Other
// values pass through untouched.
func CycleHex(name string) string {
	if hex, ok := cycleColors[name]; ok {
		return hex
	}
	return name
}

func resolveColor(name string) string { return CycleHex(name) }
