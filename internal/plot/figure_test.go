package plot

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoplot/internal/geomap"
	"geoplot/internal/render"
	"geoplot/internal/xcsv"
)

func TestMain(m *testing.M) {
	// plain output so substring assertions see the text, not escape codes
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func pointDataset(t *testing.T, id, site, lon, lat string) *xcsv.Dataset {
	t.Helper()
	d := xcsv.NewDataset()
	d.Path = site + ".csv"
	d.AddMetadataItem("id", id)
	d.AddMetadataItem("title", "The title")
	d.AddMetadataItem("summary", "The summary")
	d.AddMetadataItem("site", site)
	d.AddMetadataItem("longitude", lon+" (degree_east)")
	d.AddMetadataItem("latitude", lat+" (degree_north)")
	d.Columns = []string{"time (year) [a]", "depth (m)"}
	for _, row := range [][2]string{{"2012", "0.575"}, {"2011", "1.125"}, {"2010", "2.225"}} {
		d.AddRow(row[:])
	}
	return d
}

func TestPlotDatasets(t *testing.T) {
	f := NewFigure()
	datasets := []*xcsv.Dataset{
		pointDataset(t, "1", "alpha", "-78.16", "-74.45"),
		pointDataset(t, "2", "charlie", "-65.46", "-73.86"),
	}

	out, err := f.PlotDatasets(datasets, Options{YIdx: 1})
	require.NoError(t, err)
	assert.Contains(t, out, "The title")
	assert.Contains(t, out, "The summary")
	// legend entries from the id header item
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "2")
	// site labels land on the map
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "charlie")
}

func TestPlotDatasetsEmpty(t *testing.T) {
	f := NewFigure()
	_, err := f.PlotDatasets(nil, Options{})
	assert.ErrorIs(t, err, geomap.ErrEmptyInput)
}

func TestPlotDatasetsMapOnly(t *testing.T) {
	f := NewFigure()
	f.MapOnly = true

	out, err := f.PlotDatasets([]*xcsv.Dataset{pointDataset(t, "1", "alpha", "-78.16", "-74.45")}, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	// no axis footer in map-only layout
	assert.NotContains(t, out, "index")
}

func TestPlotDatasetsOverrides(t *testing.T) {
	f := NewFigure()
	datasets := []*xcsv.Dataset{pointDataset(t, "1", "alpha", "-78.16", "-74.45")}

	out, err := f.PlotDatasets(datasets, Options{
		YIdx:    1,
		Title:   "Custom title",
		Caption: "Custom caption",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Custom title")
	assert.Contains(t, out, "Custom caption")
	assert.NotContains(t, out, "The title")
}

func TestPlotDatasetsBadColumn(t *testing.T) {
	f := NewFigure()
	datasets := []*xcsv.Dataset{pointDataset(t, "1", "alpha", "-78.16", "-74.45")}

	_, err := f.PlotDatasets(datasets, Options{YCol: "salinity"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salinity")
}

func TestPlotDatasetsUnclassifiable(t *testing.T) {
	f := NewFigure()
	d := xcsv.NewDataset()
	d.AddMetadataItem("title", "no geo")

	_, err := f.PlotDatasets([]*xcsv.Dataset{d}, Options{})
	var clsErr *geomap.ClassificationError
	assert.ErrorAs(t, err, &clsErr)
}

func TestSeriesForColumnSelection(t *testing.T) {
	f := NewFigure()
	ds := pointDataset(t, "1", "alpha", "-78.16", "-74.45")

	t.Run("by column label", func(t *testing.T) {
		s, err := f.seriesFor(ds, Options{XCol: "time (year) [a]", YCol: "depth (m)"}, render.Style{})
		require.NoError(t, err)
		assert.Equal(t, []float64{2012, 2011, 2010}, s.X)
		assert.Equal(t, []float64{0.575, 1.125, 2.225}, s.Y)
	})

	t.Run("by index", func(t *testing.T) {
		zero := 0
		s, err := f.seriesFor(ds, Options{XIdx: &zero, YIdx: 1}, render.Style{})
		require.NoError(t, err)
		assert.Equal(t, []float64{2012, 2011, 2010}, s.X)
	})

	t.Run("default x is sample index", func(t *testing.T) {
		s, err := f.seriesFor(ds, Options{YIdx: 1}, render.Style{})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 2}, s.X)
	})
}

func TestAxisLabels(t *testing.T) {
	f := NewFigure()
	ds := pointDataset(t, "1", "alpha", "-78.16", "-74.45")

	t.Run("from columns", func(t *testing.T) {
		zero := 0
		x, y := f.axisLabels(ds, Options{XIdx: &zero, YIdx: 1})
		assert.Equal(t, "time (year) [a]", x)
		assert.Equal(t, "depth (m)", y)
	})

	t.Run("index fallback", func(t *testing.T) {
		x, _ := f.axisLabels(ds, Options{YIdx: 1})
		assert.Equal(t, "index", x)
	})

	t.Run("explicit labels win", func(t *testing.T) {
		x, y := f.axisLabels(ds, Options{XLabel: "year", YLabel: "depth"})
		assert.Equal(t, "year", x)
		assert.Equal(t, "depth", y)
	})
}

func TestSplit(t *testing.T) {
	f := NewFigure()
	plotW, mapW := f.split()
	assert.Equal(t, f.Width-1, plotW+mapW)

	f.WidthRatios = [2]int{3, 1}
	plotW, mapW = f.split()
	assert.Greater(t, plotW, mapW)

	f.MapOnly = true
	plotW, mapW = f.split()
	assert.Equal(t, 0, plotW)
	assert.Equal(t, f.Width, mapW)
}

func TestSeriesPlotterRender(t *testing.T) {
	sp := SeriesPlotter{Width: 40, Height: 12, XLabel: "year", YLabel: "depth"}
	out := sp.Render([]Series{{
		X: []float64{2010, 2011, 2012},
		Y: []float64{2.225, 1.125, 0.575},
	}})
	assert.Contains(t, out, "depth")
	assert.Contains(t, out, "year")
	// footer annotates the x range lo..hi
	assert.Contains(t, out, "2009.96 .. 2012.04")
}

func TestSeriesPlotterNoData(t *testing.T) {
	sp := SeriesPlotter{Width: 40, Height: 12}
	out := sp.Render(nil)
	assert.Contains(t, out, "no data")
}

func TestSeriesPlotterInvertedLabels(t *testing.T) {
	sp := SeriesPlotter{Width: 40, Height: 12, InvertX: true}
	out := sp.Render([]Series{{X: []float64{0, 10}, Y: []float64{0, 1}}})
	// inverted x annotates hi..lo
	assert.Contains(t, out, "[10.2 .. -0.2]")
}

func TestDataExtent(t *testing.T) {
	t.Run("pads the window", func(t *testing.T) {
		ext, ok := dataExtent([]Series{{X: []float64{0, 100}, Y: []float64{0, 50}}})
		require.True(t, ok)
		assert.InDelta(t, -2, ext.Left, 1e-9)
		assert.InDelta(t, 102, ext.Right, 1e-9)
		assert.InDelta(t, -1, ext.Bottom, 1e-9)
		assert.InDelta(t, 51, ext.Top, 1e-9)
	})

	t.Run("degenerate span gets a fixed pad", func(t *testing.T) {
		ext, ok := dataExtent([]Series{{X: []float64{5}, Y: []float64{7}}})
		require.True(t, ok)
		assert.Equal(t, geomap.Extent{Left: 4.5, Right: 5.5, Bottom: 6.5, Top: 7.5}, ext)
	})

	t.Run("no samples", func(t *testing.T) {
		_, ok := dataExtent([]Series{{X: nil, Y: nil}})
		assert.False(t, ok)
	})
}
