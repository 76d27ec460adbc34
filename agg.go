// Copyright 2024 The Aggplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aggplot

import (
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// A Func reduces a column of values to a single summary value.
//
// The numeric aggregators convert the column to []float64 first and
// panic if the column cannot be converted. Count works on columns of
// any type.
type Func func(col table.Slice) float64

// Count returns the number of values in the column.
func Count(col table.Slice) float64 {
	return float64(reflect.ValueOf(col).Len())
}

// Sum returns the sum of the column.
func Sum(col table.Slice) float64 {
	sum := 0.0
	for _, v := range floats(col) {
		sum += v
	}
	return sum
}

// Mean returns the arithmetic mean of the column.
func Mean(col table.Slice) float64 {
	return stats.Mean(floats(col))
}

// GeoMean returns the geometric mean of the column.
func GeoMean(col table.Slice) float64 {
	return stats.GeoMean(floats(col))
}

// Min returns the smallest value in the column.
func Min(col table.Slice) float64 {
	min, _ := stats.Bounds(floats(col))
	return min
}

// Max returns the largest value in the column.
func Max(col table.Slice) float64 {
	_, max := stats.Bounds(floats(col))
	return max
}

// Median returns the median of the column.
func Median(col table.Slice) float64 {
	return Quantile(0.5)(col)
}

// First returns the first value in the column.
func First(col table.Slice) float64 {
	return floats(col)[0]
}

// Quantile returns an aggregator computing the q'th quantile of the
// column, with linear interpolation between values.
func Quantile(q float64) Func {
	return func(col table.Slice) float64 {
		xs := append([]float64(nil), floats(col)...)
		if len(xs) == 0 {
			return math.NaN()
		}
		sort.Float64s(xs)
		rank := q * float64(len(xs)-1)
		if rank <= 0 {
			return xs[0]
		} else if rank >= float64(len(xs)-1) {
			return xs[len(xs)-1]
		}
		lo := int(rank)
		return xs[lo] + (xs[lo+1]-xs[lo])*(rank-float64(lo))
	}
}

func floats(col table.Slice) []float64 {
	var xs []float64
	slice.Convert(&xs, col)
	return xs
}
