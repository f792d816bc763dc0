package tui

import (
	"path/filepath"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrs rebuilds the metadata table from the loaded datasets: one row
// per extended header item, tagged with its dataset.
func (m *Model) refreshAttrs() {
	if len(m.datasets) == 0 {
		m.showAttrs = false
		m.status = "no datasets loaded"
		return
	}
	cols := []table.Column{
		{Title: "dataset", Width: 18},
		{Title: "key", Width: 22},
		{Title: "value", Width: 36},
	}
	var rows []table.Row
	for _, ds := range m.datasets {
		name := filepath.Base(ds.Path)
		for _, key := range ds.MetadataKeys() {
			value, _ := ds.MetadataItemValue(key)
			rows = append(rows, table.Row{name, key, value})
		}
	}
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no header items in current datasets"
		return
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}
