package canvas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoplot/internal/geomap"
	"geoplot/internal/proj"
	"geoplot/internal/render"
)

func testView() geomap.Extent {
	return geomap.Extent{Left: 0, Right: 10, Bottom: 0, Top: 10}
}

func plainLines(c *Canvas) []string {
	return strings.Split(c.Plain(), "\n")
}

func TestNewClampsSize(t *testing.T) {
	c := New(0, -3)
	assert.Equal(t, 1, c.Width())
	assert.Equal(t, 1, c.Height())
}

func TestDrawPointMarkerGlyph(t *testing.T) {
	c := New(10, 10)
	c.SetView(testView(), proj.Default())
	c.DrawPoint(5, 5, render.Style{Marker: "o", Color: "C0"})

	lines := plainLines(c)
	require.Len(t, lines, 10)
	// center of a 10x10 view lands in the middle cell block
	assert.Equal(t, '●', []rune(lines[4])[4])
}

func TestDrawPointBraillePixel(t *testing.T) {
	c := New(10, 10)
	c.SetView(testView(), proj.Default())
	c.DrawPoint(5, 5, render.Style{Marker: ".", Color: "C1"})

	out := c.Plain()
	assert.NotContains(t, out, "●")
	// a lone braille pixel, not a blank frame
	assert.NotEqual(t, strings.Repeat(" ", 10), strings.Split(out, "\n")[4])
}

func TestDrawPointOutsideViewIsDropped(t *testing.T) {
	c := New(10, 10)
	c.SetView(testView(), proj.Default())
	c.DrawPoint(50, 50, render.Style{Marker: "o"})
	assert.Equal(t, strings.TrimRight(c.Plain(), " \n"), "")
}

func TestDrawPointBeforeSetView(t *testing.T) {
	c := New(10, 10)
	c.DrawPoint(5, 5, render.Style{Marker: "o"})
	assert.NotContains(t, c.Plain(), "●")
}

func TestDrawPolygonFillsInterior(t *testing.T) {
	c := New(20, 20)
	c.SetView(testView(), proj.Default())
	c.DrawPolygon([][2]float64{
		{2, 2}, {8, 2}, {8, 8}, {2, 8},
	}, render.Style{Alpha: 0.9, Color: "C2"})

	// dense fill: a mid-height row crosses the box interior
	lines := plainLines(c)
	mid := lines[10]
	assert.NotEqual(t, strings.TrimSpace(mid), "")
}

func TestDrawPolygonDegenerate(t *testing.T) {
	c := New(10, 10)
	c.SetView(testView(), proj.Default())
	c.DrawPolygon([][2]float64{{1, 1}, {2, 2}}, render.Style{})
	assert.Equal(t, "", strings.TrimSpace(c.Plain()))
}

func TestDrawTextAlignment(t *testing.T) {
	find := func(c *Canvas) (row string, ok bool) {
		for _, l := range plainLines(c) {
			if strings.Contains(l, "AB") {
				return l, true
			}
		}
		return "", false
	}

	left := New(20, 10)
	left.SetView(testView(), proj.Default())
	left.DrawText(5, 5, "AB", render.Style{HAlign: "left"})
	lRow, ok := find(left)
	require.True(t, ok)

	right := New(20, 10)
	right.SetView(testView(), proj.Default())
	right.DrawText(5, 5, "AB", render.Style{HAlign: "right"})
	rRow, ok := find(right)
	require.True(t, ok)

	// right alignment starts one cell earlier for a two-rune label
	assert.Equal(t, strings.Index(lRow, "AB")-1, strings.Index(rRow, "AB"))
}

func TestDrawTextOverwritesBraille(t *testing.T) {
	c := New(20, 10)
	c.SetView(testView(), proj.Default())
	c.DrawPoint(5, 5, render.Style{Marker: "."})
	c.DrawText(5, 5, "X", render.Style{})
	assert.Contains(t, c.Plain(), "X")
}

func TestGridlines(t *testing.T) {
	view := geomap.Extent{Left: -25, Right: 25, Bottom: -25, Top: 25}

	bare := New(40, 20)
	bare.SetView(view, proj.Default())
	assert.Equal(t, "", strings.TrimSpace(bare.Plain()))

	gridded := New(40, 20)
	gridded.SetGridlines(true)
	gridded.SetView(view, proj.Default())
	assert.NotEqual(t, "", strings.TrimSpace(gridded.Plain()))
}

func TestStringKeepsGlyphs(t *testing.T) {
	c := New(10, 10)
	c.SetView(testView(), proj.Default())
	c.DrawPoint(5, 5, render.Style{Marker: "o", Color: "C3"})
	// glyphs survive styling regardless of the active color profile
	assert.Contains(t, c.String(), "●")
}

func TestWriteFile(t *testing.T) {
	c := New(10, 5)
	c.SetView(testView(), proj.Default())
	c.DrawText(5, 5, "hi", render.Style{})

	path := filepath.Join(t.TempDir(), "map.txt")
	require.NoError(t, c.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hi")
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestCycleHex(t *testing.T) {
	assert.Equal(t, "#1F77B4", CycleHex("C0"))
	assert.Equal(t, "#17BECF", CycleHex("C9"))
	assert.Equal(t, "#ABCDEF", CycleHex("#ABCDEF"))
}

func TestFillStride(t *testing.T) {
	assert.Equal(t, 1, fillStride(1.0))
	assert.Equal(t, 2, fillStride(0.5))
	assert.Equal(t, 3, fillStride(0.3))
	assert.Equal(t, 4, fillStride(0.1))
}

func TestNextMultiple(t *testing.T) {
	assert.Equal(t, -80.0, nextMultiple(-83.16, 10))
	assert.Equal(t, 10.0, nextMultiple(2.3, 10))
	assert.Equal(t, 10.0, nextMultiple(10.0, 10))
}
