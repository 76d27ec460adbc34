// Copyright 2024 The Aggplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aggplot

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/hashicorp/go-bexpr"
)

// Filter returns the rows of g matching a go-bexpr boolean
// expression such as `city == "Oslo" and price != 10`. Column names
// are the expression's selectors. Grouping structure is preserved and
// rows within each group keep their order.
func Filter(g table.Grouping, expr string) (table.Grouping, error) {
	ev, err := bexpr.CreateEvaluator(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing filter %q: %w", expr, err)
	}

	var evalErr error
	out := table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		if evalErr != nil {
			return t
		}
		cols := t.Columns()
		vals := make([]reflect.Value, len(cols))
		for i, c := range cols {
			vals[i] = reflect.ValueOf(t.Column(c))
		}
		row := make(map[string]interface{}, len(cols))
		keep := []int{}
		for i := 0; i < t.Len(); i++ {
			for j, c := range cols {
				row[c] = vals[j].Index(i).Interface()
			}
			ok, err := ev.Evaluate(row)
			if err != nil {
				evalErr = fmt.Errorf("evaluating filter %q: %w", expr, err)
				return t
			}
			if ok {
				keep = append(keep, i)
			}
		}
		b := table.NewBuilder(nil)
		for j, c := range cols {
			b.Add(c, slice.Select(vals[j].Interface(), keep))
		}
		return b.Done()
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return out, nil
}
