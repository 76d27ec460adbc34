// Copyright 2024 The Aggplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fig provides a minimal figure model for stacked chart
// panels and an SVG renderer for it.
//
// A Figure is an ordered list of Panels. Each Panel draws one series
// over an ordinal X axis (one slot per label) and a linear Y axis.
// Panels are rendered stacked vertically, top to bottom, each with
// its own scales, ticks, and axis labels.
package fig

// Kind selects the mark a panel draws for its series.
type Kind int

const (
	// Bar draws one vertical bar per label, anchored at zero.
	Bar Kind = iota
	// Points draws one dot per label.
	Points
	// Lines connects consecutive values with a path.
	Lines
)

// A Panel is a single chart region: one series of values keyed by
// ordinal labels.
//
// Labels and Values must have equal length. An empty panel (no
// labels) still renders its frame and axis labels.
type Panel struct {
	// Title is drawn centered above the panel. Empty means no
	// title strip.
	Title string

	// XLabel and YLabel are the axis labels. Empty labels take no
	// space.
	XLabel, YLabel string

	// Kind is the mark to draw. The zero value is Bar.
	Kind Kind

	// Labels are the ordinal X values, in display order.
	Labels []string

	// Values are the Y values, parallel to Labels.
	Values []float64
}

// A Figure is an ordered collection of panels that render as one SVG
// image, stacked vertically.
type Figure struct {
	Panels []*Panel
}

// New returns an empty figure.
func New() *Figure {
	return new(Figure)
}

// Add appends panels to the figure and returns the figure.
func (f *Figure) Add(panels ...*Panel) *Figure {
	f.Panels = append(f.Panels, panels...)
	return f
}
