package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geoplot/internal/geomap"
	"geoplot/internal/index"
	"geoplot/internal/plot"
	"geoplot/internal/xcsv"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.ToLower(filepath.Ext(name)) != ".csv" {
			continue
		}
		items = append(items, fileItem{title: name, desc: ".csv", path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no extended CSV files in current directory"
	}
}

// loadPaths reads a dataset collection and resolves its combined map extent.
func (m *Model) loadPaths(paths []string) {
	datasets, err := xcsv.ReadAll(paths)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	extent, err := geomap.ResolveExtent(asGeomap(datasets), geomap.DefaultXKey, geomap.DefaultXMinKey, geomap.DefaultOffset)
	if err != nil {
		m.status = "extent error: " + err.Error()
		return
	}
	siteIdx, err := index.Build(asGeomap(datasets), geomap.DefaultXKey, geomap.DefaultXMinKey, plot.SiteKey)
	if err != nil {
		m.status = "index error: " + err.Error()
		return
	}

	m.datasets = datasets
	m.extent = extent
	m.siteIdx = siteIdx
	m.zoom = 1.0
	m.panLon, m.panLat = 0, 0
	m.status = fmt.Sprintf("loaded %d dataset(s)  extent: %s", len(datasets), extent)
	if m.showAttrs {
		m.refreshAttrs()
	}
}

func asGeomap(datasets []*xcsv.Dataset) []geomap.Dataset {
	out := make([]geomap.Dataset, len(datasets))
	for i, d := range datasets {
		out[i] = d
	}
	return out
}
