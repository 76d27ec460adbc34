// Copyright 2024 The Aggplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqltable loads go-gg tables from database/sql query
// results.
package sqltable

import (
	"database/sql"
	"fmt"

	"github.com/aclements/go-gg/table"
)

// Query runs query against db and converts the result set into a
// table with one column per result column. Cells are rendered to
// strings and then coerced the same way CSV input is: a column where
// every value parses as an int or a float becomes []int or
// []float64, anything else stays []string. NULL becomes the empty
// string.
func Query(db *sql.DB, query string, args ...interface{}) (*table.Table, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying table: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var recs [][]string
	for rows.Next() {
		cells := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make([]string, len(cols))
		for i, c := range cells {
			switch v := c.(type) {
			case nil:
				rec[i] = ""
			case []byte:
				rec[i] = string(v)
			default:
				rec[i] = fmt.Sprint(v)
			}
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table.TableFromStrings(cols, recs, true), nil
}
