// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package attrition calculates the loss of sequences between the start and
// end of a pipeline run.
package attrition

import (
	"math"
	"sort"

	"github.com/biogo/pipereport/seqfile"
)

// Row is the attrition of a single sample file.
//
// Percentages are rounded to two decimal places and are zero for a file
// that had no sequences before the pipeline.
type Row struct {
	Filename string  `json:"filename"`
	Pre      int     `json:"pre"`
	Post     int     `json:"post"`
	PctLost  float64 `json:"pct_lost"`
	NumLost  int     `json:"num_lost"`
	PctKept  float64 `json:"pct_kept"`
}

// Columns is the column order of a Row.
var Columns = []string{"filename", "pre", "post", "pct_lost", "num_lost", "pct_kept"}

// Compute returns the attrition of every file in pp, sorted by ascending
// post count and then by file name.
func Compute(pp *seqfile.PrePost) []Row {
	idx := make(map[string]int, len(pp.Files))
	rows := make([]Row, 0, len(pp.Files))
	for _, f := range pp.Files {
		idx[f] = len(rows)
		rows = append(rows, Row{Filename: f})
	}
	for _, s := range pp.Sequences {
		i, ok := idx[s.Filename]
		if !ok {
			i = len(rows)
			idx[s.Filename] = i
			rows = append(rows, Row{Filename: s.Filename})
		}
		switch s.Point {
		case seqfile.Pre:
			rows[i].Pre++
		case seqfile.Post:
			rows[i].Post++
		}
	}

	for i := range rows {
		r := &rows[i]
		r.NumLost = r.Pre - r.Post
		if r.Pre != 0 {
			r.PctLost = round2(float64(r.Pre-r.Post) / float64(r.Pre) * 100)
			r.PctKept = round2(float64(r.Post) / float64(r.Pre) * 100)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Post != rows[j].Post {
			return rows[i].Post < rows[j].Post
		}
		return rows[i].Filename < rows[j].Filename
	})
	return rows
}

// Total is the run-wide attrition.
type Total struct {
	Files   int     `json:"files"`
	Pre     int     `json:"pre"`
	Post    int     `json:"post"`
	NumLost int     `json:"num_lost"`
	PctLost float64 `json:"pct_lost"`
	PctKept float64 `json:"pct_kept"`
}

// Totals sums the attrition of rows.
func Totals(rows []Row) Total {
	t := Total{Files: len(rows)}
	for _, r := range rows {
		t.Pre += r.Pre
		t.Post += r.Post
	}
	t.NumLost = t.Pre - t.Post
	if t.Pre != 0 {
		t.PctLost = round2(float64(t.NumLost) / float64(t.Pre) * 100)
		t.PctKept = round2(float64(t.Post) / float64(t.Pre) * 100)
	}
	return t
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
