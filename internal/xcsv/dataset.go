package xcsv

import (
	"strconv"
	"strings"
)

// Dataset holds one extended CSV file: an ordered header of metadata items
// plus a table of named numeric columns.
type Dataset struct {
	Path string

	metaKeys []string
	meta     map[string]string

	Columns []string
	cells   [][]string
}

// NewDataset returns an empty dataset, useful for building test fixtures.
func NewDataset() *Dataset {
	return &Dataset{meta: make(map[string]string)}
}

// AddMetadataItem records a header item, preserving insertion order.
// Setting an existing key overwrites its value in place.
func (d *Dataset) AddMetadataItem(key, value string) {
	if _, ok := d.meta[key]; !ok {
		d.metaKeys = append(d.metaKeys, key)
	}
	d.meta[key] = value
}

// MetadataItemValue looks up a header item. It never fails: a missing key
// reports ok=false rather than an error.
func (d *Dataset) MetadataItemValue(key string) (string, bool) {
	v, ok := d.meta[key]
	return v, ok
}

// HasMetadataItem reports whether the header contains the given key.
func (d *Dataset) HasMetadataItem(key string) bool {
	_, ok := d.meta[key]
	return ok
}

// MetadataKeys returns header keys in file order.
func (d *Dataset) MetadataKeys() []string {
	out := make([]string, len(d.metaKeys))
	copy(out, d.metaKeys)
	return out
}

// AddRow appends a data row, useful for building fixtures.
func (d *Dataset) AddRow(cells []string) {
	d.cells = append(d.cells, cells)
}

// ColumnIndex returns the index of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Series returns the numeric values of column i; non-numeric cells are
// skipped. Returns nil when the index is out of range.
func (d *Dataset) Series(i int) []float64 {
	if i < 0 || i >= len(d.Columns) {
		return nil
	}
	var out []float64
	for _, row := range d.cells {
		if i >= len(row) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Rows returns the number of data rows.
func (d *Dataset) Rows() int { return len(d.cells) }
