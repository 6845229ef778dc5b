package dataset

import (
	"fmt"
	"math"
)

// Axis is one named dimension of a Dataset with its ordered labels.
// Label order is storage order; the pipeline never re-sorts it.
type Axis struct {
	Name   string
	Labels []string
}

// FixedCoord records an axis that was fixed to a single label by slicing,
// the way a scalar coordinate survives selection in labeled-array libraries.
type FixedCoord struct {
	Axis  string
	Label string
}

// Dataset is a labeled n-dimensional array of float64 values, stored
// row-major over its axes in declaration order. New values are NaN until
// set, so sparse ingestion leaves holes renderers can recognise.
type Dataset struct {
	axes    []Axis
	strides []int
	data    []float64
	fixed   []FixedCoord
}

// New creates a Dataset spanning the given axes, filled with NaN.
func New(axes ...Axis) (*Dataset, error) {
	if len(axes) == 0 {
		return nil, ErrNoAxes
	}
	seen := make(map[string]bool, len(axes))
	size := 1
	for _, ax := range axes {
		if ax.Name == "" || len(ax.Labels) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyAxis, ax.Name)
		}
		if seen[ax.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDupAxis, ax.Name)
		}
		seen[ax.Name] = true
		size *= len(ax.Labels)
	}

	d := new(Dataset)
	d.axes = make([]Axis, len(axes))
	for i, ax := range axes {
		labels := make([]string, len(ax.Labels))
		copy(labels, ax.Labels)
		d.axes[i] = Axis{Name: ax.Name, Labels: labels}
	}
	d.strides = strides(d.axes)
	d.data = make([]float64, size)
	for i := range d.data {
		d.data[i] = math.NaN()
	}

	return d, nil
}

func strides(axes []Axis) []int {
	s := make([]int, len(axes))
	acc := 1
	for i := len(axes) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= len(axes[i].Labels)
	}
	return s
}

// Rank returns the number of axes.
func (d *Dataset) Rank() int {
	return len(d.axes)
}

// Axes returns the axes in storage order.
func (d *Dataset) Axes() []Axis {
	out := make([]Axis, len(d.axes))
	copy(out, d.axes)
	return out
}

// HasAxis reports whether the named axis exists.
func (d *Dataset) HasAxis(name string) bool {
	_, err := d.axisPos(name)
	return err == nil
}

func (d *Dataset) axisPos(name string) (int, error) {
	for i, ax := range d.axes {
		if ax.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrAxisNotFound, name)
}

// Len returns the cardinality of the named axis.
func (d *Dataset) Len(name string) (int, error) {
	pos, err := d.axisPos(name)
	if err != nil {
		return 0, err
	}
	return len(d.axes[pos].Labels), nil
}

// Labels returns the ordered labels of the named axis.
func (d *Dataset) Labels(name string) ([]string, error) {
	pos, err := d.axisPos(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(d.axes[pos].Labels))
	copy(out, d.axes[pos].Labels)
	return out, nil
}

// LabelIndex returns the position of label on the named axis.
func (d *Dataset) LabelIndex(axis, label string) (int, error) {
	pos, err := d.axisPos(axis)
	if err != nil {
		return 0, err
	}
	for i, l := range d.axes[pos].Labels {
		if l == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q on %q", ErrLabelNotFound, label, axis)
}

func (d *Dataset) offset(indices []int) (int, error) {
	if len(indices) != len(d.axes) {
		return 0, fmt.Errorf("%w: got %d indices for rank %d", ErrIndexRange, len(indices), len(d.axes))
	}
	off := 0
	for i, ix := range indices {
		if ix < 0 || ix >= len(d.axes[i].Labels) {
			return 0, fmt.Errorf("%w: %d on %q", ErrIndexRange, ix, d.axes[i].Name)
		}
		off += ix * d.strides[i]
	}
	return off, nil
}

// At returns the value at the given indices, one per axis in storage
// order. It panics on a rank mismatch or out-of-range index; renderers
// resolve axis positions once and then iterate within bounds.
func (d *Dataset) At(indices ...int) float64 {
	off, err := d.offset(indices)
	if err != nil {
		panic(err)
	}
	return d.data[off]
}

// Set stores a value at the given indices, one per axis in storage order.
func (d *Dataset) Set(v float64, indices ...int) {
	off, err := d.offset(indices)
	if err != nil {
		panic(err)
	}
	d.data[off] = v
}

// Value looks a value up by axis-name coordinates. Every axis must be
// named exactly once.
func (d *Dataset) Value(coords map[string]int) (float64, error) {
	if len(coords) != len(d.axes) {
		return 0, fmt.Errorf("%w: got %d coords for rank %d", ErrIndexRange, len(coords), len(d.axes))
	}
	indices := make([]int, len(d.axes))
	for name, ix := range coords {
		pos, err := d.axisPos(name)
		if err != nil {
			return 0, err
		}
		indices[pos] = ix
	}
	off, err := d.offset(indices)
	if err != nil {
		return 0, err
	}
	return d.data[off], nil
}

// Isel fixes the named axis at index i and returns the sub-dataset with
// that axis dropped. The fixed label is retained as a scalar coordinate,
// retrievable through FixedLabel. The result owns a copy of the values.
func (d *Dataset) Isel(axis string, i int) (*Dataset, error) {
	pos, err := d.axisPos(axis)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(d.axes[pos].Labels) {
		return nil, fmt.Errorf("%w: %d on %q", ErrIndexRange, i, axis)
	}

	rest := make([]Axis, 0, len(d.axes)-1)
	for j, ax := range d.axes {
		if j != pos {
			rest = append(rest, ax)
		}
	}

	var out *Dataset
	if len(rest) == 0 {
		// Slicing a 1-d dataset leaves a scalar; represent it as a
		// single-cell dataset on a synthetic axis.
		out, err = New(Axis{Name: "value", Labels: []string{"value"}})
		if err != nil {
			return nil, err
		}
		out.data[0] = d.data[i*d.strides[pos]]
	} else {
		out, err = New(rest...)
		if err != nil {
			return nil, err
		}
		src := make([]int, len(d.axes))
		src[pos] = i
		for off := 0; off < len(out.data); off++ {
			rem := off
			k := 0
			for j := range d.axes {
				if j == pos {
					continue
				}
				src[j] = rem / out.strides[k]
				rem %= out.strides[k]
				k++
			}
			from, err := d.offset(src)
			if err != nil {
				return nil, err
			}
			out.data[off] = d.data[from]
		}
	}

	out.fixed = make([]FixedCoord, 0, len(d.fixed)+1)
	out.fixed = append(out.fixed, d.fixed...)
	out.fixed = append(out.fixed, FixedCoord{Axis: axis, Label: d.axes[pos].Labels[i]})

	return out, nil
}

// FixedLabel returns the label an ancestor slice fixed the named axis to.
func (d *Dataset) FixedLabel(axis string) (string, bool) {
	for _, f := range d.fixed {
		if f.Axis == axis {
			return f.Label, true
		}
	}
	return "", false
}

// Range returns the smallest and largest finite values in the dataset.
// ok is false when every value is NaN.
func (d *Dataset) Range() (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range d.data {
		if math.IsNaN(v) {
			continue
		}
		ok = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}
