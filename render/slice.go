package render

import (
	"fmt"

	"github.com/gpdwatkins/RSG-Space-Weather/dataset"
)

// reduce2D collapses slice down to exactly the two named axes, fixing
// every other axis. A "lag" axis is fixed at its zero label when one
// exists (the zero-lag plane is what the pair plots show), any other
// leftover axis at its first label.
func reduce2D(slice *dataset.Dataset, rowAxis, colAxis string) (*dataset.Dataset, error) {
	if !slice.HasAxis(rowAxis) {
		return nil, fmt.Errorf("%w: %q", ErrMissingAxis, rowAxis)
	}
	if !slice.HasAxis(colAxis) {
		return nil, fmt.Errorf("%w: %q", ErrMissingAxis, colAxis)
	}

	out := slice
	for _, ax := range out.Axes() {
		if ax.Name == rowAxis || ax.Name == colAxis {
			continue
		}
		i := 0
		if ax.Name == "lag" {
			if zero, err := out.LabelIndex("lag", "0"); err == nil {
				i = zero
			}
		}
		var err error
		out, err = out.Isel(ax.Name, i)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// alignedWindow fixes a leftover win_start axis at the window matching
// the slice's fixed time_win label, so the lag matrix for window i shows
// window i's data. The slice passes through untouched when either axis
// is absent or the label does not appear on win_start.
func alignedWindow(slice *dataset.Dataset) (*dataset.Dataset, error) {
	label, ok := slice.FixedLabel("time_win")
	if !ok || !slice.HasAxis("win_start") {
		return slice, nil
	}
	i, err := slice.LabelIndex("win_start", label)
	if err != nil {
		return slice, nil
	}
	return slice.Isel("win_start", i)
}

// frameTitle builds a "axis: label" heading from the first fixed axis
// the slice knows about.
func frameTitle(slice *dataset.Dataset, axes ...string) string {
	for _, ax := range axes {
		if label, ok := slice.FixedLabel(ax); ok {
			return fmt.Sprintf("%s: %s", ax, label)
		}
	}
	return ""
}
