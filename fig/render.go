// Copyright 2024 The Aggplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fig

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/aclements/go-moremath/scale"
	"github.com/ajstarks/svgo"
)

// fontSize is the font size in pixels.
const fontSize float64 = 14

// labelHeight is the height of title and axis label strips, as a
// multiple of the font size.
const labelHeight = 1.3

const xTickSep = 5

const yTickSep = 5

// maxYTicks is the maximum number of major ticks on a Y axis.
const maxYTicks = 6

// seriesColor is the fill/stroke color for marks.
const seriesColor = "#4682b4"

// plotMargin returns the data margin inside a plot area of the given
// size. It keeps marks and the topmost grid line off the plot border.
func plotMargin(w, h float64) float64 {
	return 0.05 * math.Min(w, h)
}

// WriteSVG renders the figure as a width x height SVG image. Panels
// split the height evenly in order.
func (f *Figure) WriteSVG(w io.Writer, width, height int) error {
	out := svg.New(w)
	out.Start(width, height, fmt.Sprintf(`font-size="%.6gpx" font-family="Roboto,&quot;Helvetica Neue&quot;,Helvetica,Arial,sans-serif"`, fontSize))
	defer out.End()

	if len(f.Panels) == 0 {
		return nil
	}
	ph := float64(height) / float64(len(f.Panels))
	for i, p := range f.Panels {
		p.render(out, 0, float64(i)*ph, float64(width), ph)
	}
	return nil
}

// yTicks holds computed Y axis ticks in both data and pixel space.
type yTicks struct {
	major, minor []float64
	labels       []string
}

func (p *Panel) render(out *svg.SVG, x, y, w, h float64) {
	// Compute the Y scale and its ticks up front; the tick labels
	// determine the left gutter width.
	ls := p.yScale()
	var t yTicks
	t.major, t.minor = ls.Ticks(scale.TickOptions{Max: maxYTicks})
	t.labels = make([]string, len(t.major))
	labelW := 0.0
	for i, v := range t.major {
		t.labels[i] = fmt.Sprintf("%.6g", v)
		labelW = math.Max(labelW, measureString(fontSize, t.labels[i]))
	}

	// Carve label strips off the panel bounds.
	top := y
	if p.Title != "" {
		top += labelHeight * fontSize
	}
	left := x
	if p.YLabel != "" {
		left += labelHeight * fontSize
	}
	left += labelW + yTickSep
	bottom := y + h - 1.5*fontSize - float64(xTickSep)
	if p.XLabel != "" {
		bottom -= labelHeight * fontSize
	}
	right := x + w - plotMargin(w, h)

	// Round the plot area rectangle in.
	xi, yi := int(math.Ceil(left)), int(math.Ceil(top))
	x2i, y2i := int(right), int(bottom)
	wi, hi := x2i-xi, y2i-yi
	if wi <= 0 || hi <= 0 {
		return
	}
	m := plotMargin(float64(wi), float64(hi))

	// py maps a data value to a pixel Y coordinate. Zero maps to
	// the bottom border when the scale includes only nonnegative
	// values; a data margin keeps the top clear.
	py := func(v float64) float64 {
		return float64(y2i) - ls.Map(v)*(float64(hi)-m)
	}

	// Background and grid.
	out.Rect(xi, yi, wi, hi, "fill:#eee")
	var grid []string
	for _, v := range t.major {
		grid = append(grid, fmt.Sprintf("M%d %.6gh%d", xi, round(py(v)), wi))
	}
	out.Path(wrapPath(strings.Join(grid, "")), "stroke:#fff; stroke-width:2")

	p.renderMarks(out, xi, x2i, py)

	// Border along the left and bottom edges.
	out.Path(fmt.Sprintf("M%d %dV%dH%d", xi, yi, y2i, x2i), "stroke:#888; fill:none; stroke-width:2")

	p.renderAxes(out, t, py, x, y, w, h, xi, yi, x2i, y2i)
}

// renderMarks draws the panel's series into the plot area.
func (p *Panel) renderMarks(out *svg.SVG, xi, x2i int, py func(float64) float64) {
	if len(p.Labels) == 0 {
		return
	}
	slot := float64(x2i-xi) / float64(len(p.Labels))
	cx := func(i int) float64 {
		return float64(xi) + (float64(i)+0.5)*slot
	}

	switch p.Kind {
	case Bar:
		bw := 0.8 * slot
		base := py(0)
		for i, v := range p.Values {
			yv := py(v)
			top, height := math.Min(yv, base), math.Abs(base-yv)
			out.Rect(int(round(cx(i)-bw/2)), int(round(top)), int(round(bw)), int(round(height)), "fill:"+seriesColor)
		}

	case Points:
		for i, v := range p.Values {
			out.Circle(int(round(cx(i))), int(round(py(v))), 3, "fill:"+seriesColor)
		}

	case Lines:
		var path []string
		for i, v := range p.Values {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			path = append(path, fmt.Sprintf("%s%.6g %.6g", cmd, round(cx(i)), round(py(v))))
		}
		out.Path(wrapPath(strings.Join(path, "")), "stroke:"+seriesColor+"; fill:none; stroke-width:2")
	}
}

// renderAxes draws tick marks, tick labels, axis labels, and the
// title around the plot area.
func (p *Panel) renderAxes(out *svg.SVG, t yTicks, py func(float64) float64, x, y, w, h float64, xi, yi, x2i, y2i int) {
	const tickLen = 4

	// Y ticks point into the plot area; minor ticks are half
	// length.
	var path strings.Builder
	for _, v := range t.major {
		fmt.Fprintf(&path, "M%d %.6gh%d", xi, round(py(v)), 2*tickLen)
	}
	for _, v := range t.minor {
		fmt.Fprintf(&path, "M%d %.6gh%d", xi, round(py(v)), tickLen)
	}
	for i := range p.Labels {
		slot := float64(x2i-xi) / float64(len(p.Labels))
		cx := float64(xi) + (float64(i)+0.5)*slot
		fmt.Fprintf(&path, "M%.6g %dv%d", round(cx), y2i, -2*tickLen)
	}
	out.Path(wrapPath(path.String()), "stroke:#888; stroke-width:2")

	// Tick labels.
	for i, label := range t.labels {
		out.Text(xi-yTickSep, int(round(py(t.major[i]))), label, `text-anchor="end" dy=".3em" fill="#666"`)
	}
	for i, label := range p.Labels {
		slot := float64(x2i-xi) / float64(len(p.Labels))
		cx := float64(xi) + (float64(i)+0.5)*slot
		out.Text(int(round(cx)), y2i+xTickSep, label, `text-anchor="middle" dy="1em" fill="#666"`)
	}

	// Axis labels and title. Vertical centering is very poorly
	// supported; dy is the best chance.
	mid := (xi + x2i) / 2
	if p.XLabel != "" {
		out.Text(mid, int(y+h-labelHeight*fontSize/2), p.XLabel, `text-anchor="middle" dy=".3em"`)
	}
	if p.YLabel != "" {
		lx, ly := int(x+labelHeight*fontSize/2), (yi+y2i)/2
		style := fmt.Sprintf(`text-anchor="middle" dy=".3em" transform="rotate(-90 %d %d)"`, lx, ly)
		out.Text(lx, ly, p.YLabel, style)
	}
	if p.Title != "" {
		out.Text(mid, int(y+labelHeight*fontSize/2), p.Title, `text-anchor="middle" dy=".3em" font-weight="bold"`)
	}
}

// yScale returns the linear Y scale for the panel's values. The scale
// always includes zero so bars have a stable base, and degrades to
// [0, 1] for empty or degenerate data.
func (p *Panel) yScale() scale.Linear {
	lo, hi := math.NaN(), math.NaN()
	for _, v := range p.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo || math.IsNaN(lo) {
			lo = v
		}
		if v > hi || math.IsNaN(hi) {
			hi = v
		}
	}
	if math.IsNaN(lo) {
		return scale.Linear{Min: 0, Max: 1}
	}
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	if lo == hi {
		hi = lo + 1
	}
	return scale.Linear{Min: lo, Max: hi}
}

// measureString estimates the width in pixels of s rendered at pxSize.
func measureString(pxSize float64, s string) float64 {
	return 0.5 * pxSize * float64(utf8.RuneCountInString(s))
}

func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// wrapPath wraps path data p to avoid exceeding SVG's recommended
// line length limit of 255 characters.
func wrapPath(p string) string {
	const width = 70
	if len(p) <= width {
		return p
	}
	parts := make([]string, 0, 16)
	for len(p) > width {
		// Find the last command or space before exceeding width.
		lastCmd, lastSpace := 0, 0
		for i, ch := range p {
			if i >= width && (lastCmd != 0 || lastSpace != 0) {
				break
			}
			if 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' {
				lastCmd = i
			} else if ch == ' ' {
				lastSpace = i
			}
		}
		split := len(p)
		if lastCmd != 0 {
			split = lastCmd
		} else if lastSpace != 0 {
			split = lastSpace
		}
		parts, p = append(parts, p[:split]), p[split:]
	}
	if len(p) > 0 {
		parts = append(parts, p)
	}
	return strings.Join(parts, "\n")
}
