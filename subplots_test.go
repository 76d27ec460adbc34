// Copyright 2024 The Aggplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aggplot

import (
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aggplot/aggplot/fig"
)

// sales has three distinct cities: Oslo (3 rows), Reno (2), Lima (1).
func sales() *table.Table {
	return new(table.Builder).
		Add("city", []string{"Oslo", "Reno", "Oslo", "Lima", "Reno", "Oslo"}).
		Add("price", []float64{10, 40, 20, 35, 20, 30}).
		Done()
}

func TestSubplotsDerivedTable(t *testing.T) {
	_, derived := subplotsOf(t, Options{})

	require.Equal(t, []string{"city", "visits", "avg"}, derived.Columns())
	assert.Equal(t, 3, derived.Len())
	assert.Equal(t, []string{"Lima", "Oslo", "Reno"}, derived.MustColumn("city"))
	assert.Equal(t, []float64{1, 3, 2}, derived.MustColumn("visits"))
	assert.Equal(t, []float64{35, 20, 30}, derived.MustColumn("avg"))
}

func TestSubplotsPanels(t *testing.T) {
	f, _ := subplotsOf(t, Options{})

	require.Len(t, f.Panels, 2)

	// Non-numeric groups: each panel sorts by its own aggregate,
	// descending.
	assert.Equal(t, []string{"Oslo", "Reno", "Lima"}, f.Panels[0].Labels)
	assert.Equal(t, []float64{3, 2, 1}, f.Panels[0].Values)
	assert.Equal(t, []string{"Lima", "Reno", "Oslo"}, f.Panels[1].Labels)
	assert.Equal(t, []float64{35, 30, 20}, f.Panels[1].Values)
}

func TestSubplotsAxisLabels(t *testing.T) {
	f, _ := Subplots(sales(), "city", "price", Options{}, Agg{"AVG", Mean})

	require.Len(t, f.Panels, 1)
	assert.Equal(t, "city", f.Panels[0].XLabel)
	assert.Equal(t, "Avg price", f.Panels[0].YLabel)
}

func TestSubplotsTitles(t *testing.T) {
	f, _ := Subplots(sales(), "city", "price",
		Options{Titles: []string{"Visits", "Average price"}},
		Agg{"visits", Count}, Agg{"avg", Mean})
	assert.Equal(t, "Visits", f.Panels[0].Title)
	assert.Equal(t, "Average price", f.Panels[1].Title)

	assert.Panics(t, func() {
		Subplots(sales(), "city", "price",
			Options{Titles: []string{"only one"}},
			Agg{"visits", Count}, Agg{"avg", Mean})
	})
}

func TestSubplotsNumericGroups(t *testing.T) {
	tab := new(table.Builder).
		Add("year", []int{2021, 2019, 2021, 2020}).
		Add("sales", []float64{5, 2, 7, 3}).
		Done()
	f, derived := Subplots(tab, "year", "sales",
		Options{NumericGroups: true}, Agg{"total", Sum})

	// Natural ascending group order, both in the derived table and
	// in the panel.
	assert.Equal(t, []int{2019, 2020, 2021}, derived.MustColumn("year"))
	assert.Equal(t, []float64{2, 3, 12}, derived.MustColumn("total"))
	require.Len(t, f.Panels, 1)
	assert.Equal(t, []string{"2019", "2020", "2021"}, f.Panels[0].Labels)
	assert.Equal(t, []float64{2, 3, 12}, f.Panels[0].Values)
}

func TestSubplotsEmptyInput(t *testing.T) {
	tab := new(table.Builder).
		Add("city", []string{}).
		Add("price", []float64{}).
		Done()
	f, derived := Subplots(tab, "city", "price", Options{}, Agg{"first", First})

	assert.Equal(t, 0, derived.Len())
	require.Equal(t, []string{"city", "first"}, derived.Columns())
	require.Len(t, f.Panels, 1)
	assert.Empty(t, f.Panels[0].Labels)
	assert.Empty(t, f.Panels[0].Values)
}

func TestSubplotsTiesKeepGroupOrder(t *testing.T) {
	tab := new(table.Builder).
		Add("city", []string{"c", "a", "b"}).
		Add("price", []float64{1, 1, 1}).
		Done()
	f, _ := Subplots(tab, "city", "price", Options{}, Agg{"n", Count})

	// All aggregates tie, so the descending sort keeps the
	// ascending group order.
	assert.Equal(t, []string{"a", "b", "c"}, f.Panels[0].Labels)
}

func TestSubplotsKind(t *testing.T) {
	f, _ := Subplots(sales(), "city", "price",
		Options{Kind: fig.Lines}, Agg{"n", Count})
	assert.Equal(t, fig.Lines, f.Panels[0].Kind)
}

func TestSubplotsMissingColumn(t *testing.T) {
	assert.Panics(t, func() {
		Subplots(sales(), "nope", "price", Options{}, Agg{"n", Count})
	})
	assert.Panics(t, func() {
		Subplots(sales(), "city", "nope", Options{}, Agg{"n", Count})
	})
}

func TestSubplotsGroupedInput(t *testing.T) {
	// Pre-grouped input is flattened before grouping by the group
	// column.
	g := table.GroupBy(sales(), "price")
	_, derived := Subplots(g, "city", "price", Options{}, Agg{"visits", Count})
	assert.Equal(t, 3, derived.Len())
}

func subplotsOf(t *testing.T, o Options) (*fig.Figure, *table.Table) {
	t.Helper()
	return Subplots(sales(), "city", "price", o,
		Agg{"visits", Count}, Agg{"avg", Mean})
}
