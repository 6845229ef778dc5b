package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// LoadCSV builds a Dataset from long-format records: a header row naming
// the axes followed by a final "value" column, then one row per cell.
// Axis labels are taken in first-appearance order. Cells never mentioned
// stay NaN.
func LoadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrBadRecord, err)
	}
	if len(header) < 2 || header[len(header)-1] != "value" {
		return nil, fmt.Errorf("%w: header must end with a value column", ErrBadRecord)
	}
	names := header[: len(header)-1 : len(header)-1]

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}

	// First pass fixes label order per axis.
	labels := make([][]string, len(names))
	seen := make([]map[string]bool, len(names))
	for i := range names {
		seen[i] = make(map[string]bool)
	}
	for _, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: want %d fields, got %d", ErrBadRecord, len(header), len(row))
		}
		for i := range names {
			if !seen[i][row[i]] {
				seen[i][row[i]] = true
				labels[i] = append(labels[i], row[i])
			}
		}
	}

	axes := make([]Axis, len(names))
	for i, name := range names {
		axes[i] = Axis{Name: name, Labels: labels[i]}
	}
	d, err := New(axes...)
	if err != nil {
		return nil, err
	}

	indices := make([]int, len(names))
	for _, row := range rows {
		for i := range names {
			ix, err := d.LabelIndex(names[i], row[i])
			if err != nil {
				return nil, err
			}
			indices[i] = ix
		}
		v, err := strconv.ParseFloat(row[len(row)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad value %q: %v", ErrBadRecord, row[len(row)-1], err)
		}
		d.Set(v, indices...)
	}

	return d, nil
}
