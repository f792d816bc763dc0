package xcsv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read parses an extended CSV file: any number of leading "# key: value"
// header lines, then a column-header row, then data rows.
//
//	# id: 1
//	# latitude: -73.86 (degree_north)
//	# longitude: -65.46 (degree_east)
//	time (year) [a],depth (m)
//	2012,0.575
func Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := NewDataset()
	d.Path = path

	br := bufio.NewReader(f)
	var table strings.Builder
	inHeader := true
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if inHeader && strings.HasPrefix(line, "#") {
				key, value, perr := parseHeaderLine(line)
				if perr != nil {
					return nil, fmt.Errorf("%s: %w", path, perr)
				}
				d.AddMetadataItem(key, value)
			} else {
				inHeader = false
				table.WriteString(line)
			}
		}
		if err != nil {
			break
		}
	}

	r := csv.NewReader(strings.NewReader(table.String()))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: no column header row", path)
	}
	d.Columns = recs[0]
	d.cells = recs[1:]
	return d, nil
}

// ReadAll reads every path in order. A single unreadable file fails the
// whole batch.
func ReadAll(paths []string) ([]*Dataset, error) {
	datasets := make([]*Dataset, 0, len(paths))
	for _, p := range paths {
		d, err := Read(p)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}

func parseHeaderLine(line string) (string, string, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "#"))
	key, value, ok := strings.Cut(s, ":")
	if !ok {
		return "", "", errors.New("header item missing ':' separator: " + s)
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), nil
}
