package anim

import (
	"github.com/gpdwatkins/RSG-Space-Weather/dataset"
)

// FrameSource produces the ordered sequence of slices to render: one per
// label of the iteration axis, in storage order. It is restartable;
// Slice can be called for any index any number of times.
type FrameSource struct {
	ds   *dataset.Dataset
	axis string
	n    int
}

// NewFrameSource wraps ds for iteration along the named axis. It fails
// with dataset.ErrAxisNotFound when the axis is absent.
func NewFrameSource(ds *dataset.Dataset, axis string) (*FrameSource, error) {
	n, err := ds.Len(axis)
	if err != nil {
		return nil, err
	}

	s := new(FrameSource)
	s.ds = ds
	s.axis = axis
	s.n = n
	return s, nil
}

// Len returns the number of frames, the cardinality of the axis.
func (s *FrameSource) Len() int {
	return s.n
}

// Axis returns the iteration axis name.
func (s *FrameSource) Axis() string {
	return s.axis
}

// Label returns the axis label at index i.
func (s *FrameSource) Label(i int) string {
	labels, err := s.ds.Labels(s.axis)
	if err != nil {
		panic(err) // axis checked at construction
	}
	return labels[i]
}

// Slice returns the sub-dataset with the iteration axis fixed at i.
func (s *FrameSource) Slice(i int) (*dataset.Dataset, error) {
	return s.ds.Isel(s.axis, i)
}
