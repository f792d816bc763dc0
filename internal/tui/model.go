package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"geoplot/internal/geomap"
	"geoplot/internal/index"
	"geoplot/internal/xcsv"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	gridlines   bool

	zoom   float64
	panLon float64
	panLat float64

	status string

	// File explorer
	cwd   string
	l     list.Model
	items []list.Item

	// Data
	datasets []*xcsv.Dataset
	extent   geomap.Extent
	siteIdx  *index.SiteIndex

	// last rendered map size (for inspect and hover)
	mapW int
	mapH int

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// metadata table
	showAttrs bool
	tbl       table.Model
}

func New() Model {
	m := Model{
		showSidebar: true,
		helpVisible: true,
		gridlines:   true,
		zoom:        1.0,
		status:      "geoplot ready",
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// metadata table setup
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPaths preloads a dataset collection at launch.
func NewWithPaths(paths []string) Model {
	m := New()
	m.showSidebar = false
	m.loadPaths(paths)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
