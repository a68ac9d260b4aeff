// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attrition

import (
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/biogo/pipereport/seqfile"
)

// Lengths holds the sequence length statistics of a file at one point of a
// pipeline run.
type Lengths struct {
	TotalSeqs  int     `json:"total_seqs"`
	AverageLen float64 `json:"average_len"`
	MinLength  int     `json:"min_length"`
	MaxLen     int     `json:"max_len"`
}

// LengthRow holds the length statistics of a file before and after a
// pipeline run. Pre or Post is nil if the file held no sequences at that
// point.
type LengthRow struct {
	Filename string   `json:"filename"`
	Pre      *Lengths `json:"pre"`
	Post     *Lengths `json:"post"`
}

// LengthSummaries returns the length statistics of every file in pp that
// held sequences, sorted by file name.
func LengthSummaries(pp *seqfile.PrePost) []LengthRow {
	type key struct {
		file  string
		point seqfile.Point
	}
	type acc struct {
		n, sum, min, max int
	}
	accs := make(map[key]*acc)
	for _, s := range pp.Sequences {
		k := key{s.Filename, s.Point}
		a, ok := accs[k]
		if !ok {
			a = &acc{min: s.Length, max: s.Length}
			accs[k] = a
		}
		a.n++
		a.sum += s.Length
		if s.Length < a.min {
			a.min = s.Length
		}
		if s.Length > a.max {
			a.max = s.Length
		}
	}

	byFile := make(map[string]*LengthRow)
	for k, a := range accs {
		r, ok := byFile[k.file]
		if !ok {
			r = &LengthRow{Filename: k.file}
			byFile[k.file] = r
		}
		l := &Lengths{
			TotalSeqs:  a.n,
			AverageLen: float64(a.sum) / float64(a.n),
			MinLength:  a.min,
			MaxLen:     a.max,
		}
		switch k.point {
		case seqfile.Pre:
			r.Pre = l
		case seqfile.Post:
			r.Post = l
		}
	}
	rows := make([]LengthRow, 0, len(byFile))
	for _, r := range byFile {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Filename < rows[j].Filename })
	return rows
}

// Statistics is the order of the statistics reported by Describe.
var Statistics = []string{"count", "null_count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// lengthColumn is a column of the pivoted length statistics.
type lengthColumn struct {
	name  string
	point seqfile.Point
	get   func(*Lengths) float64
}

var lengthColumns = []lengthColumn{
	{"total_seqs_pre", seqfile.Pre, func(l *Lengths) float64 { return float64(l.TotalSeqs) }},
	{"total_seqs_post", seqfile.Post, func(l *Lengths) float64 { return float64(l.TotalSeqs) }},
	{"average_len_pre", seqfile.Pre, func(l *Lengths) float64 { return l.AverageLen }},
	{"average_len_post", seqfile.Post, func(l *Lengths) float64 { return l.AverageLen }},
	{"min_length_pre", seqfile.Pre, func(l *Lengths) float64 { return float64(l.MinLength) }},
	{"min_length_post", seqfile.Post, func(l *Lengths) float64 { return float64(l.MinLength) }},
	{"max_len_pre", seqfile.Pre, func(l *Lengths) float64 { return float64(l.MaxLen) }},
	{"max_len_post", seqfile.Post, func(l *Lengths) float64 { return float64(l.MaxLen) }},
}

// LengthColumns returns the names of the columns summarised by Describe.
func LengthColumns() []string {
	names := make([]string, len(lengthColumns))
	for i, c := range lengthColumns {
		names[i] = c.name
	}
	return names
}

// Description is a single summary statistic over each length column.
// An undefined value is nil.
type Description struct {
	Statistic string
	Values    map[string]*float64
}

// MarshalJSON implements json.Marshaler, flattening the values alongside
// the statistic name.
func (d Description) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(d.Values)+1)
	for k, v := range d.Values {
		m[k] = v
	}
	m["statistic"] = d.Statistic
	return json.Marshal(m)
}

// Describe returns summary statistics of the length columns of rows in
// Statistics order. Quantiles are the empirical quantiles of the present
// values.
func Describe(rows []LengthRow) []Description {
	desc := make([]Description, len(Statistics))
	for i, s := range Statistics {
		desc[i] = Description{Statistic: s, Values: make(map[string]*float64, len(lengthColumns))}
	}
	for _, col := range lengthColumns {
		vals := describe(col.values(rows))
		for i, s := range Statistics {
			desc[i].Values[col.name] = vals[s]
		}
	}
	return desc
}

func describe(x []float64, nulls int) map[string]*float64 {
	v := map[string]*float64{
		"count":      value(float64(len(x))),
		"null_count": value(float64(nulls)),
	}
	if len(x) == 0 {
		return v
	}
	sort.Float64s(x)
	v["mean"] = value(stat.Mean(x, nil))
	if len(x) > 1 {
		v["std"] = value(stat.StdDev(x, nil))
	}
	v["min"] = value(floats.Min(x))
	v["25%"] = value(stat.Quantile(0.25, stat.Empirical, x, nil))
	v["50%"] = value(stat.Quantile(0.5, stat.Empirical, x, nil))
	v["75%"] = value(stat.Quantile(0.75, stat.Empirical, x, nil))
	v["max"] = value(floats.Max(x))
	return v
}

func value(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// values returns the present values of col over rows and the number of
// rows where it is absent.
func (col lengthColumn) values(rows []LengthRow) (x []float64, nulls int) {
	for _, r := range rows {
		l := r.Pre
		if col.point == seqfile.Post {
			l = r.Post
		}
		if l == nil {
			nulls++
			continue
		}
		x = append(x, col.get(l))
	}
	return x, nulls
}
