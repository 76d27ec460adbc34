// Copyright 2024 The Aggplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command aggplot groups tabular data, applies one or more
// aggregation functions to a column, and renders the results as a
// stacked multi-panel SVG chart.
//
// Input is CSV with a header row, read from file arguments or from
// stdin, or a SQLite database selected with -db and -query. For
// example:
//
//	aggplot -group city -col price -agg "visits=count,mean" sales.csv
//
// renders two bar panels: visit counts per city and mean price per
// city. With -table the derived table is printed instead of a chart.
package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/aclements/go-gg/table"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aggplot/aggplot"
	"github.com/aggplot/aggplot/fig"
	"github.com/aggplot/aggplot/sqltable"
)

var aggFuncs = map[string]aggplot.Func{
	"count":   aggplot.Count,
	"sum":     aggplot.Sum,
	"mean":    aggplot.Mean,
	"geomean": aggplot.GeoMean,
	"min":     aggplot.Min,
	"max":     aggplot.Max,
	"median":  aggplot.Median,
	"first":   aggplot.First,
	"p90":     aggplot.Quantile(0.90),
	"p95":     aggplot.Quantile(0.95),
	"p99":     aggplot.Quantile(0.99),
}

func main() {
	log.SetPrefix("aggplot: ")
	log.SetFlags(0)

	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagMemProfile = flag.String("memprofile", "", "write heap profile to `file`")
		flagGroup      = flag.String("group", "", "group rows by `column` (required)")
		flagCol        = flag.String("col", "", "aggregate values of `column` (required)")
		flagAgg        = flag.String("agg", "count,mean", "comma-separated `aggregations`, each func or name=func")
		flagTitles     = flag.String("titles", "", "comma-separated panel `titles`")
		flagNumeric    = flag.Bool("numeric", false, "group column is numeric; keep natural group order")
		flagKind       = flag.String("kind", "bar", "panel `kind`: bar, points, or lines")
		flagFilter     = flag.String("filter", "", "keep only rows matching boolean `expression`")
		flagDB         = flag.String("db", "", "read input from SQLite database `file` instead of CSV")
		flagQuery      = flag.String("query", "", "SQL `query` selecting the input table from -db")
		flagOut        = flag.String("o", "", "write output to `file` (default: stdout)")
		flagTable      = flag.Bool("table", false, "output the derived table instead of a plot")
		flagWidth      = flag.Int("width", 500, "panel width in `pixels`")
		flagHeight     = flag.Int("height", 300, "panel height in `pixels`")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [inputs...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *flagGroup == "" || *flagCol == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(*flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	aggs, err := parseAggs(*flagAgg)
	if err != nil {
		log.Fatal(err)
	}
	kind, err := parseKind(*flagKind)
	if err != nil {
		log.Fatal(err)
	}
	var titles []string
	if *flagTitles != "" {
		titles = strings.Split(*flagTitles, ",")
		if len(titles) != len(aggs) {
			log.Fatalf("%d titles for %d aggregations", len(titles), len(aggs))
		}
	}

	// Load the input table.
	var tab table.Grouping
	if *flagDB != "" {
		if *flagQuery == "" {
			log.Fatal("-db requires -query")
		}
		db, err := sql.Open("sqlite3", *flagDB)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		t, err := sqltable.Query(db, *flagQuery)
		if err != nil {
			log.Fatal(err)
		}
		tab = t
	} else {
		tab = readCSVs(flag.Args())
	}

	if *flagFilter != "" {
		tab, err = aggplot.Filter(tab, *flagFilter)
		if err != nil {
			log.Fatal(err)
		}
	}

	figure, derived := aggplot.Subplots(tab, *flagGroup, *flagCol,
		aggplot.Options{NumericGroups: *flagNumeric, Kind: kind, Titles: titles},
		aggs...)

	// Prepare for output.
	out := os.Stdout
	if *flagOut != "" {
		var err error
		out, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()
	}

	if *flagTable {
		table.Fprint(out, derived)
		return
	}

	if err := figure.WriteSVG(out, *flagWidth, *flagHeight*len(aggs)); err != nil {
		log.Fatal(err)
	}
}

// parseAggs parses the -agg list. Each element is an aggregation
// function name, optionally prefixed with a result name: "mean" or
// "avg price=mean".
func parseAggs(spec string) ([]aggplot.Agg, error) {
	var aggs []aggplot.Agg
	for _, part := range strings.Split(spec, ",") {
		name, fn := part, part
		if i := strings.Index(part, "="); i >= 0 {
			name, fn = part[:i], part[i+1:]
		}
		name, fn = strings.TrimSpace(name), strings.TrimSpace(fn)
		f, ok := aggFuncs[strings.ToLower(fn)]
		if !ok {
			return nil, fmt.Errorf("unknown aggregation %q", fn)
		}
		aggs = append(aggs, aggplot.Agg{Name: name, Func: f})
	}
	return aggs, nil
}

func parseKind(name string) (fig.Kind, error) {
	switch name {
	case "bar":
		return fig.Bar, nil
	case "points":
		return fig.Points, nil
	case "lines":
		return fig.Lines, nil
	}
	return 0, fmt.Errorf("unknown kind %q", name)
}

// readCSVs reads one table from the named CSV files ("-" or no
// arguments means stdin). Every file must carry the same header row;
// data rows are concatenated. Column values are coerced to ints or
// floats where the whole column parses.
func readCSVs(paths []string) table.Grouping {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	var header []string
	var recs [][]string
	for _, path := range paths {
		func() {
			f := os.Stdin
			if path != "-" {
				var err error
				f, err = os.Open(path)
				if err != nil {
					log.Fatal(err)
				}
				defer f.Close()
			}

			rows, err := csv.NewReader(f).ReadAll()
			if err != nil {
				log.Fatal(err)
			}
			if len(rows) == 0 {
				return
			}
			if header == nil {
				header = rows[0]
			} else if !equalStrings(header, rows[0]) {
				log.Fatalf("%s: header does not match first input", path)
			}
			recs = append(recs, rows[1:]...)
		}()
	}
	if header == nil {
		log.Fatal("no input data")
	}
	return table.TableFromStrings(header, recs, true)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
