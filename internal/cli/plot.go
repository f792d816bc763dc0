package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"geoplot/internal/config"
	"geoplot/internal/plot"
	"geoplot/internal/proj"
	"geoplot/internal/render"
	"geoplot/internal/xcsv"
)

var plotFlags struct {
	xidx int
	xcol string
	yidx int
	ycol string

	xlabel string
	ylabel string

	invertX bool
	invertY bool

	title    string
	caption  string
	labelKey string

	figsize    []int
	projection string
	plotOnMap  bool

	styleJSON string
	scatter   bool

	offset  float64
	outFile string
}

var plotCmd = &cobra.Command{
	Use:   "plot [flags] FILE...",
	Short: "Plot the given files and locate their sites on a map",
	Long: `Plots the selected data column of each input file, with the map beside it
showing every dataset's site. With -m the plot is dropped and the sites are
drawn directly on a full-width map.

Input files are extended CSV: "# key: value" header lines, then a column
header row and data rows. Site coordinates come from the header, either as
longitude/latitude or as the geospatial_lon_min/... bounding-box family.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		datasets, err := xcsv.ReadAll(args)
		if err != nil {
			return err
		}

		style, err := render.ParseStyle(plotFlags.styleJSON)
		if err != nil {
			return err
		}
		if plotFlags.scatter {
			style.Marker = "."
		}

		projName := plotFlags.projection
		if projName == "" {
			projName = cfg.Projection
		}
		projection, err := proj.Get(projName)
		if err != nil {
			return err
		}

		fig := plot.NewFigure()
		fig.Width, fig.Height = cfg.FigWidth, cfg.FigHeight
		if len(plotFlags.figsize) == 2 {
			fig.Width, fig.Height = plotFlags.figsize[0], plotFlags.figsize[1]
		}
		fig.Projection = projection
		fig.MapOnly = plotFlags.plotOnMap

		opts := plot.Options{
			XCol:     plotFlags.xcol,
			YIdx:     plotFlags.yidx,
			YCol:     plotFlags.ycol,
			XLabel:   plotFlags.xlabel,
			YLabel:   plotFlags.ylabel,
			InvertX:  plotFlags.invertX,
			InvertY:  plotFlags.invertY,
			Title:    plotFlags.title,
			Caption:  plotFlags.caption,
			LabelKey: plotFlags.labelKey,
			Offset:   plotFlags.offset,
			Style:    style,
			Scatter:  plotFlags.scatter,
		}
		if cmd.Flags().Changed("x-idx") {
			xidx := plotFlags.xidx
			opts.XIdx = &xidx
		}
		if !cmd.Flags().Changed("offset") {
			opts.Offset = cfg.Offset
		}

		out, err := fig.PlotDatasets(datasets, opts)
		if err != nil {
			return err
		}

		if plotFlags.outFile != "" {
			return os.WriteFile(plotFlags.outFile, []byte(out+"\n"), 0o644)
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	f := plotCmd.Flags()

	f.IntVarP(&plotFlags.xidx, "x-idx", "x", 0, "column index (zero-based) containing values for the x-axis")
	f.StringVarP(&plotFlags.xcol, "x-column", "X", "", "column label containing values for the x-axis")
	f.IntVarP(&plotFlags.yidx, "y-idx", "y", 0, "column index (zero-based) containing values for the y-axis")
	f.StringVarP(&plotFlags.ycol, "y-column", "Y", "", "column label containing values for the y-axis")

	f.StringVar(&plotFlags.xlabel, "x-label", "", "text to be used for the plot x-axis label")
	f.StringVar(&plotFlags.ylabel, "y-label", "", "text to be used for the plot y-axis label")

	f.BoolVar(&plotFlags.invertX, "invert-x-axis", false, "invert the x-axis")
	f.BoolVar(&plotFlags.invertY, "invert-y-axis", false, "invert the y-axis")

	f.StringVar(&plotFlags.title, "title", "", "text to be used for the plot title")
	f.StringVar(&plotFlags.caption, "caption", "", "text to be used for the plot caption")
	f.StringVar(&plotFlags.labelKey, "label-key", "", "header item key whose value labels each data series in the legend")

	f.IntSliceVarP(&plotFlags.figsize, "figsize", "s", nil, "size of the figure as width,height in terminal cells")
	f.StringVarP(&plotFlags.projection, "map-projection", "p", "", "projection for the site map (one of: "+projNames()+")")
	f.BoolVarP(&plotFlags.plotOnMap, "plot-on-map", "m", false, "show just a map and plot the site data directly on it")

	f.StringVarP(&plotFlags.styleJSON, "plot-options", "P", "", "style options for the plot, as a simple JSON object")
	f.BoolVarP(&plotFlags.scatter, "scatter-plot", "S", false, "produce a scatter plot instead of a line plot")

	f.Float64Var(&plotFlags.offset, "offset", 0, "margin in degrees applied around the site map extent")
	f.StringVarP(&plotFlags.outFile, "out-file", "o", "", "output plot file")

	plotCmd.MarkFlagsMutuallyExclusive("x-idx", "x-column")
	plotCmd.MarkFlagsMutuallyExclusive("y-idx", "y-column")
	plotCmd.MarkFlagsMutuallyExclusive("plot-options", "scatter-plot")

	rootCmd.AddCommand(plotCmd)
}

func projNames() string {
	out := ""
	for i, n := range proj.Names() {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
