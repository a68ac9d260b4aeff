// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filter reads the per-sample functional filter reports produced by a
// pipeline run and summarises them.
package filter

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ReportSuffix is the file name suffix of a functional filter report.
const ReportSuffix = ".functional_report.csv"

var (
	// ErrNoReports is returned when a directory holds no reports.
	ErrNoReports = errors.New("filter: no functional filter reports")

	// ErrFieldCount is returned for a report row with the wrong number
	// of fields.
	ErrFieldCount = errors.New("filter: wrong number of fields")
)

// Columns is the column order of a functional filter report.
var Columns = []string{
	"seq_name",
	"num_stop_codons",
	"nt_length_ungapped",
	"nt_length_gapped",
	"divisible_by_3",
	"earliest_stop_codon",
	"earliest_stop_pct",
	"loss_from_median",
	"longest_gap_length",
	"longest_gap_location",
	"passes_frameshift_filter",
	"passes_minimum_length_filter",
	"passes_no_stop_codon_filter",
	"passes_early_stop_codon_filter",
	"flag",
	"passes_filter",
}

// Record is a row of a functional filter report with the sample metadata of
// the report it came from.
type Record struct {
	SeqName                    string    `json:"seq_name"`
	NumStopCodons              NullInt   `json:"num_stop_codons"`
	NtLengthUngapped           NullInt   `json:"nt_length_ungapped"`
	NtLengthGapped             NullInt   `json:"nt_length_gapped"`
	DivisibleBy3               bool      `json:"divisible_by_3"`
	EarliestStopCodon          NullInt   `json:"earliest_stop_codon"`
	EarliestStopPct            NullFloat `json:"earliest_stop_pct"`
	LossFromMedian             NullFloat `json:"loss_from_median"`
	LongestGapLength           NullFloat `json:"longest_gap_length"`
	LongestGapLocation         NullFloat `json:"longest_gap_location"`
	PassesFrameshiftFilter     bool      `json:"passes_frameshift_filter"`
	PassesMinimumLengthFilter  bool      `json:"passes_minimum_length_filter"`
	PassesNoStopCodonFilter    bool      `json:"passes_no_stop_codon_filter"`
	PassesEarlyStopCodonFilter bool      `json:"passes_early_stop_codon_filter"`
	Flag                       string    `json:"flag"`
	PassesFilter               bool      `json:"passes_filter"`

	SampleID
}

// ReadReport returns the records of the report read from r. The first row
// is a header and is skipped; fields are taken in Columns order.
func ReadReport(r io.Reader, sampleID string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	sample := ParseSampleID(sampleID)
	var (
		recs   []Record
		header = true
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(row) != len(Columns) {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrFieldCount, line, len(row), len(Columns))
		}
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec.SampleID = sample
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseRecord(row []string) (Record, error) {
	p := fieldParser{row: row}
	rec := Record{
		SeqName:                    row[0],
		NumStopCodons:              p.intAt(1),
		NtLengthUngapped:           p.intAt(2),
		NtLengthGapped:             p.intAt(3),
		DivisibleBy3:               p.boolAt(4),
		EarliestStopCodon:          p.intAt(5),
		EarliestStopPct:            p.floatAt(6),
		LossFromMedian:             p.floatAt(7),
		LongestGapLength:           p.floatAt(8),
		LongestGapLocation:         p.floatAt(9),
		PassesFrameshiftFilter:     p.boolAt(10),
		PassesMinimumLengthFilter:  p.boolAt(11),
		PassesNoStopCodonFilter:    p.boolAt(12),
		PassesEarlyStopCodonFilter: p.boolAt(13),
		Flag:                       row[14],
		PassesFilter:               p.boolAt(15),
	}
	return rec, p.err
}

// fieldParser parses typed fields of a row, retaining the first error.
type fieldParser struct {
	row []string
	err error
}

func (p *fieldParser) fail(i int, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("column %s: %w", Columns[i], err)
	}
}

func (p *fieldParser) intAt(i int) NullInt {
	v, err := parseNullInt(p.row[i])
	if err != nil {
		p.fail(i, err)
	}
	return v
}

func (p *fieldParser) floatAt(i int) NullFloat {
	v, err := parseNullFloat(p.row[i])
	if err != nil {
		p.fail(i, err)
	}
	return v
}

func (p *fieldParser) boolAt(i int) bool {
	v, err := parseBool(p.row[i])
	if err != nil {
		p.fail(i, err)
	}
	return v
}

// Loader reads functional filter reports. The zero value is ready to use.
type Loader struct {
	// Log receives progress messages. Nil disables logging.
	Log *zap.Logger
}

// LoadReports returns the records of every report in dir, concatenated in
// file name order. The sample ID of a report is its file name up to the
// first dot.
func (l *Loader) LoadReports(ctx context.Context, dir string) ([]Record, error) {
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read report directory: %w", err)
	}
	log.Info("loading reports", zap.String("dir", dir))
	var (
		recs []Record
		n    int
	)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ReportSuffix) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, e.Name())
		sampleID, _, _ := strings.Cut(e.Name(), ".")
		log.Debug("loading report", zap.String("path", path))
		r, err := readReportFile(path, sampleID)
		if err != nil {
			return nil, err
		}
		log.Debug("loaded report", zap.String("sample", sampleID), zap.Int("records", len(r)))
		recs = append(recs, r...)
		n++
	}
	if n == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoReports, dir)
	}
	log.Info("loaded reports", zap.Int("reports", n), zap.Int("records", len(recs)))
	return recs, nil
}

func readReportFile(path, sampleID string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := ReadReport(f, sampleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
