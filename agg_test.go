// Copyright 2024 The Aggplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aggplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggFuncs(t *testing.T) {
	xs := []float64{4, 1, 3, 2}

	assert.Equal(t, 4.0, Count(xs))
	assert.Equal(t, 10.0, Sum(xs))
	assert.Equal(t, 2.5, Mean(xs))
	assert.Equal(t, 1.0, Min(xs))
	assert.Equal(t, 4.0, Max(xs))
	assert.Equal(t, 4.0, First(xs))
	assert.InDelta(t, 2.5, Median(xs), 1e-9)
	assert.InDelta(t, 2.5, Quantile(0.5)(xs), 1e-9)
	assert.InDelta(t, 2.0, GeoMean([]float64{1, 4}), 1e-9)
}

func TestAggColumnTypes(t *testing.T) {
	// Count works on any column type; the numeric aggregators
	// convert what they can and panic on the rest.
	assert.Equal(t, 2.0, Count([]string{"a", "b"}))
	assert.Equal(t, 2.0, Mean([]int{1, 3}))
	assert.Panics(t, func() { Mean([]string{"a", "b"}) })
}
