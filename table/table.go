// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table holds the tabular outputs of a pipeline report and writes
// them as CSV files and spreadsheet workbooks.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/biogo/pipereport/attrition"
	"github.com/biogo/pipereport/filter"
	"github.com/biogo/pipereport/seqfile"
)

// Table is a named set of rows sharing a header. Cells are strings, ints,
// float64s, bools, filter.NullInt or filter.NullFloat values.
type Table struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// PrePost returns the per-sequence table of seqs.
func PrePost(seqs []seqfile.Sequence) Table {
	t := Table{
		Name:   "pre_post",
		Header: []string{"name", "length", "pool", "visit", "participant", "pipeline_point", "filename"},
		Rows:   make([][]interface{}, len(seqs)),
	}
	for i, s := range seqs {
		t.Rows[i] = []interface{}{s.Name, s.Length, s.Pool, s.Visit, s.Participant, string(s.Point), s.Filename}
	}
	return t
}

// FunctionalFilter returns the table of functional filter records.
func FunctionalFilter(recs []filter.Record) Table {
	t := Table{
		Name:   "functional_filter",
		Header: append(append([]string(nil), filter.Columns...), filter.SampleColumns...),
		Rows:   make([][]interface{}, len(recs)),
	}
	for i, r := range recs {
		t.Rows[i] = []interface{}{
			r.SeqName,
			r.NumStopCodons,
			r.NtLengthUngapped,
			r.NtLengthGapped,
			r.DivisibleBy3,
			r.EarliestStopCodon,
			r.EarliestStopPct,
			r.LossFromMedian,
			r.LongestGapLength,
			r.LongestGapLocation,
			r.PassesFrameshiftFilter,
			r.PassesMinimumLengthFilter,
			r.PassesNoStopCodonFilter,
			r.PassesEarlyStopCodonFilter,
			r.Flag,
			r.PassesFilter,
			r.SampleID.ID,
			r.CapID,
			r.VisitID,
			r.Pool,
		}
	}
	return t
}

// Attrition returns the attrition table of rows.
func Attrition(rows []attrition.Row) Table {
	t := Table{
		Name:   "attrition",
		Header: attrition.Columns,
		Rows:   make([][]interface{}, len(rows)),
	}
	for i, r := range rows {
		t.Rows[i] = []interface{}{r.Filename, r.Pre, r.Post, r.PctLost, r.NumLost, r.PctKept}
	}
	return t
}

// SampleSummary returns the per-sample filter summary table.
func SampleSummary(sums []filter.SampleSummary) Table {
	t := Table{
		Name:   "summary_filter",
		Header: []string{"sample_id", "len", "num_stop_codons_gt_3", "num_earliest_stop_lt_90", "passes_filter", "contains_frameshift"},
		Rows:   make([][]interface{}, len(sums)),
	}
	for i, s := range sums {
		t.Rows[i] = []interface{}{s.SampleID, s.Len, s.NumStopCodonsGT3, s.NumEarliestStopLT90, s.PassesFilter, s.ContainsFrameshift}
	}
	return t
}

// Abridged returns the summary statistics table of desc.
func Abridged(desc []attrition.Description) Table {
	cols := attrition.LengthColumns()
	t := Table{
		Name:   "abridged_summary",
		Header: append([]string{"statistic"}, cols...),
		Rows:   make([][]interface{}, len(desc)),
	}
	for i, d := range desc {
		row := []interface{}{d.Statistic}
		for _, c := range cols {
			v := filter.NullFloat{}
			if p := d.Values[c]; p != nil {
				v = filter.NullFloat{Value: *p, Valid: true}
			}
			row = append(row, v)
		}
		t.Rows[i] = row
	}
	return t
}

// WriteCSV writes t to w as CSV with a header row. Null values are written
// as empty fields.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	rec := make([]string, len(t.Header))
	for _, row := range t.Rows {
		if len(row) != len(t.Header) {
			return fmt.Errorf("table %s: row has %d cells, want %d", t.Name, len(row), len(t.Header))
		}
		for i, v := range row {
			rec[i] = format(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes t to the file at path.
func WriteCSVFile(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = WriteCSV(f, t)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func format(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
