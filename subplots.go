// Copyright 2024 The Aggplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aggplot summarizes a column of a data table per group and
// renders the summaries as a figure of stacked chart panels.
//
// Subplots is the entry point: given a go-gg table, a grouping
// column, an operate column, and a list of named aggregation
// functions, it produces a derived table with one row per group and
// one column per aggregation, plus a figure with one panel per
// aggregation.
package aggplot

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"

	"github.com/aggplot/aggplot/fig"
)

// An Agg is a named aggregation of the operate column. Its name
// becomes a derived-table column and a panel of the figure.
type Agg struct {
	Name string
	Func Func
}

// Options configures Subplots.
type Options struct {
	// NumericGroups indicates the grouping column holds numeric
	// values. Numeric groups keep their natural ascending order in
	// every panel; otherwise each panel is re-sorted by its own
	// aggregate, descending.
	NumericGroups bool

	// Kind is the mark each panel draws. The zero value is a bar
	// chart.
	Kind fig.Kind

	// Titles are optional per-panel titles, in aggregation order.
	Titles []string
}

// Subplots groups g by groupCol, applies every aggregation to
// operateCol within each group, and returns the resulting figure and
// derived table.
//
// The derived table has groupCol first (original value type
// preserved), one float64 column per aggregation name, and one row
// per distinct group value, sorted ascending by group value. The
// figure has one panel per aggregation, in argument order; panel i
// carries Titles[i] when titles are given.
//
// Inputs are not validated: a missing column, an aggregation applied
// to an inconvertible column, or too few titles panic where the
// underlying table machinery fails.
func Subplots(g table.Grouping, groupCol, operateCol string, o Options, aggs ...Agg) (*fig.Figure, *table.Table) {
	flat := table.Flatten(g)
	keyType := table.ColType(flat, groupCol).Elem()
	groups := table.GroupBy(flat, groupCol)

	// One row per group, one result column per aggregation.
	gids := groups.Tables()
	keys := reflect.MakeSlice(reflect.SliceOf(keyType), len(gids), len(gids))
	results := make([][]float64, len(aggs))
	for j := range results {
		results[j] = make([]float64, len(gids))
	}
	for i, gid := range gids {
		t := groups.Table(gid)
		keys.Index(i).Set(reflect.ValueOf(t.MustColumn(groupCol)).Index(0))
		col := t.MustColumn(operateCol)
		for j, a := range aggs {
			results[j][i] = a.Func(col)
		}
	}

	order := ascOrder(keys.Interface())
	b := new(table.Builder).Add(groupCol, slice.Select(keys.Interface(), order))
	for j, a := range aggs {
		b.Add(a.Name, slice.Select(results[j], order).([]float64))
	}
	derived := b.Done()

	f := fig.New()
	labels := formatLabels(derived.MustColumn(groupCol))
	for i, a := range aggs {
		vals := derived.MustColumn(a.Name).([]float64)
		panelLabels, panelVals := labels, vals
		if !o.NumericGroups {
			ord := descOrder(vals)
			panelLabels = slice.Select(labels, ord).([]string)
			panelVals = slice.Select(vals, ord).([]float64)
		}
		p := &fig.Panel{
			Kind:   o.Kind,
			XLabel: groupCol,
			YLabel: capitalize(a.Name) + " " + strings.ToLower(operateCol),
			Labels: panelLabels,
			Values: panelVals,
		}
		if o.Titles != nil {
			p.Title = o.Titles[i]
		}
		f.Add(p)
	}
	return f, derived
}

// ascOrder returns a permutation of keys' indexes that sorts keys
// ascending. Numeric keys sort numerically, strings lexically, and
// anything else by its formatted text.
func ascOrder(keys table.Slice) []int {
	rv := reflect.ValueOf(keys)
	order := make([]int, rv.Len())
	for i := range order {
		order[i] = i
	}
	switch k := rv.Type().Elem().Kind(); {
	case isNumeric(k):
		var xs []float64
		slice.Convert(&xs, keys)
		sort.SliceStable(order, func(i, j int) bool {
			return xs[order[i]] < xs[order[j]]
		})
	case k == reflect.String:
		sort.SliceStable(order, func(i, j int) bool {
			return rv.Index(order[i]).String() < rv.Index(order[j]).String()
		})
	default:
		ss := make([]string, rv.Len())
		for i := range ss {
			ss[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		sort.SliceStable(order, func(i, j int) bool {
			return ss[order[i]] < ss[order[j]]
		})
	}
	return order
}

// descOrder returns a permutation of vals' indexes that sorts vals
// descending. Ties keep their prior order.
func descOrder(vals []float64) []int {
	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return vals[order[i]] > vals[order[j]]
	})
	return order
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// formatLabels renders a column of group values as axis labels.
func formatLabels(col table.Slice) []string {
	rv := reflect.ValueOf(col)
	out := make([]string, rv.Len())
	for i := range out {
		switch v := rv.Index(i).Interface().(type) {
		case float64:
			out[i] = fmt.Sprintf("%.6g", v)
		case float32:
			out[i] = fmt.Sprintf("%.6g", v)
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

// capitalize lower-cases s and upper-cases its first rune, giving Y
// axis labels like "Mean price".
func capitalize(s string) string {
	s = strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
