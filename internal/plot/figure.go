package plot

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoplot/internal/canvas"
	"geoplot/internal/geomap"
	"geoplot/internal/proj"
	"geoplot/internal/render"
	"geoplot/internal/xcsv"
)

// Header item keys consulted when figure annotations are not overridden.
const (
	TitleKey   = "title"
	CaptionKey = "summary"
	LabelKey   = "id"
	SiteKey    = "site"
)

// Options selects data columns and annotations for a figure. Column
// selection mirrors the CLI: either an index or a label for each axis; a nil
// XIdx with an empty XCol plots the y-values against sample indices.
type Options struct {
	XIdx *int
	XCol string
	YIdx int
	YCol string

	XLabel string
	YLabel string

	InvertX bool
	InvertY bool

	Title    string
	Caption  string
	LabelKey string

	Offset  float64
	Style   render.Style
	Scatter bool
}

// Figure lays out a data plot and a site map side by side, or the map alone.
type Figure struct {
	Width  int
	Height int
	// WidthRatios splits Width between the data plot and the map.
	WidthRatios [2]int

	Projection proj.Projection
	Gridlines  bool

	// MapOnly drops the data plot and renders the sites directly on a
	// full-width map.
	MapOnly bool
}

// NewFigure returns a figure with the default 80x24 frame and a 1:1 split.
func NewFigure() *Figure {
	return &Figure{
		Width:       80,
		Height:      24,
		WidthRatios: [2]int{1, 1},
		Projection:  proj.Default(),
		Gridlines:   true,
	}
}

// PlotDatasets renders the datasets into a complete frame: title, data plot
// and site map, caption, legend. Datasets are drawn in collection order, one
// full draw per dataset, so legend order, series z-order and marker z-order
// all agree.
func (f *Figure) PlotDatasets(datasets []*xcsv.Dataset, opts Options) (string, error) {
	if len(datasets) == 0 {
		return "", geomap.ErrEmptyInput
	}

	title := opts.Title
	if title == "" {
		title, _ = datasets[0].MetadataItemValue(TitleKey)
	}
	caption := opts.Caption
	if caption == "" {
		caption, _ = datasets[0].MetadataItemValue(CaptionKey)
	}
	labelKey := opts.LabelKey
	if labelKey == "" {
		labelKey = LabelKey
	}
	offset := opts.Offset
	if offset == 0 {
		offset = geomap.DefaultOffset
	}

	extent, err := geomap.ResolveExtent(asGeomap(datasets), geomap.DefaultXKey, geomap.DefaultXMinKey, offset)
	if err != nil {
		return "", err
	}

	plotW, mapW := f.split()
	innerH := f.Height - 3 // title, caption, legend rows

	m := canvas.New(mapW, innerH)
	m.SetGridlines(f.Gridlines)
	m.SetView(extent, f.Projection)

	var series []Series
	for i, ds := range datasets {
		st := opts.Style
		if st.Color == "" {
			st.Color = render.ColorAt(i)
		}
		if err := render.RenderSite(m, ds, geomap.DefaultXKey, geomap.DefaultXMinKey, SiteKey, st); err != nil {
			return "", err
		}
		if f.MapOnly {
			continue
		}
		s, err := f.seriesFor(ds, opts, st)
		if err != nil {
			return "", err
		}
		s.Label, _ = ds.MetadataItemValue(labelKey)
		series = append(series, s)
	}

	var body string
	if f.MapOnly {
		body = m.String()
	} else {
		xlabel, ylabel := f.axisLabels(datasets[0], opts)
		sp := SeriesPlotter{
			Width:   plotW,
			Height:  innerH,
			XLabel:  xlabel,
			YLabel:  ylabel,
			InvertX: opts.InvertX,
			InvertY: opts.InvertY,
			Scatter: opts.Scatter,
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, sp.Render(series), " ", m.String())
	}

	rows := []string{titleStyle.Render(truncate(title, f.Width)), body}
	if caption != "" {
		rows = append(rows, captionStyle.Render(truncate(caption, f.Width)))
	}
	if legend := f.legend(datasets, labelKey); legend != "" {
		rows = append(rows, legend)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...), nil
}

// seriesFor extracts the x/y sample vectors for one dataset.
func (f *Figure) seriesFor(ds *xcsv.Dataset, opts Options, st render.Style) (Series, error) {
	yIdx := opts.YIdx
	if opts.YCol != "" {
		yIdx = ds.ColumnIndex(opts.YCol)
		if yIdx < 0 {
			return Series{}, fmt.Errorf("plot: %s: no column %q", ds.Path, opts.YCol)
		}
	}
	ys := ds.Series(yIdx)
	if ys == nil {
		return Series{}, fmt.Errorf("plot: %s: no y-axis data at column %d", ds.Path, yIdx)
	}

	var xs []float64
	switch {
	case opts.XCol != "":
		xIdx := ds.ColumnIndex(opts.XCol)
		if xIdx < 0 {
			return Series{}, fmt.Errorf("plot: %s: no column %q", ds.Path, opts.XCol)
		}
		xs = ds.Series(xIdx)
	case opts.XIdx != nil:
		xs = ds.Series(*opts.XIdx)
		if xs == nil {
			return Series{}, fmt.Errorf("plot: %s: no x-axis data at column %d", ds.Path, *opts.XIdx)
		}
	default:
		// plot against sample indices
		xs = make([]float64, len(ys))
		for i := range xs {
			xs[i] = float64(i)
		}
	}
	return Series{X: xs, Y: ys, Style: st}, nil
}

func (f *Figure) axisLabels(first *xcsv.Dataset, opts Options) (string, string) {
	xlabel := opts.XLabel
	ylabel := opts.YLabel
	if xlabel == "" {
		switch {
		case opts.XCol != "":
			xlabel = opts.XCol
		case opts.XIdx != nil && *opts.XIdx < len(first.Columns):
			xlabel = first.Columns[*opts.XIdx]
		default:
			xlabel = "index"
		}
	}
	if ylabel == "" {
		if opts.YCol != "" {
			ylabel = opts.YCol
		} else if opts.YIdx < len(first.Columns) {
			ylabel = first.Columns[opts.YIdx]
		}
	}
	return xlabel, ylabel
}

func (f *Figure) legend(datasets []*xcsv.Dataset, labelKey string) string {
	var parts []string
	for i, ds := range datasets {
		label, ok := ds.MetadataItemValue(labelKey)
		if !ok || label == "" {
			continue
		}
		sw := lipgloss.NewStyle().Foreground(lipgloss.Color(cycleHex(i))).Render("■")
		parts = append(parts, sw+" "+label)
	}
	return strings.Join(parts, "   ")
}

func (f *Figure) split() (plotW, mapW int) {
	if f.MapOnly {
		return 0, f.Width
	}
	ra, rb := f.WidthRatios[0], f.WidthRatios[1]
	if ra <= 0 || rb <= 0 {
		ra, rb = 1, 1
	}
	plotW = (f.Width - 1) * ra / (ra + rb)
	mapW = f.Width - 1 - plotW
	return plotW, mapW
}

func asGeomap(datasets []*xcsv.Dataset) []geomap.Dataset {
	out := make([]geomap.Dataset, len(datasets))
	for i, d := range datasets {
		out[i] = d
	}
	return out
}

func cycleHex(i int) string {
	return canvas.CycleHex(render.ColorAt(i))
}
