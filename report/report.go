// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report assembles the summary data of a pipeline run and writes
// it as JSON alongside a Typst document that typesets it.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/biogo/pipereport/attrition"
	"github.com/biogo/pipereport/filter"
	"github.com/biogo/pipereport/seqfile"
)

// DataFile is the name of the JSON summary within a report directory.
const DataFile = "report_data.json"

// Options describes the run a report is made for.
type Options struct {
	RunName         string
	RunDate         time.Time
	PipelineVersion string
	CommitHash      string
	ImageFormat     string

	// NextflowParams is the path to the pipeline parameters as a JSON
	// file. It is optional.
	NextflowParams string
}

// Inputs holds the computed results a report summarises.
type Inputs struct {
	Attrition []attrition.Row
	Lengths   []attrition.LengthRow
	Records   []filter.Record
	PreStats  map[string]seqfile.Stats
	PostStats map[string]seqfile.Stats

	// Plots maps plot names to file paths relative to the report.
	Plots map[string]string

	// IncludeRecords adds every functional filter record to the report.
	IncludeRecords bool
}

// Data is the JSON summary of a pipeline run.
type Data struct {
	ReportID        string          `json:"report_id"`
	ReportTitle     string          `json:"report_title"`
	RunName         string          `json:"run_name"`
	RunDate         string          `json:"run_date"`
	ReportDate      string          `json:"report_date"`
	PipelineVersion string          `json:"pipeline_version,omitempty"`
	CommitHash      string          `json:"pipeline_commit_hash,omitempty"`
	NextflowParams  json.RawMessage `json:"nextflow_params,omitempty"`
	ImageFormat     string          `json:"image_format"`

	Plots               map[string]string        `json:"plots"`
	Totals              attrition.Total          `json:"totals"`
	AttritionData       []attrition.Row          `json:"attrition_data"`
	AbridgedSummary     []attrition.Description  `json:"abridged_summary"`
	SummaryFilterReport []filter.SampleSummary   `json:"summary_filter_report"`
	Intersections       []filter.Intersection    `json:"filter_intersections"`
	ReportTable         []filter.Record          `json:"report_table,omitempty"`
	PreStats            map[string]seqfile.Stats `json:"pre_stats"`
	PostStats           map[string]seqfile.Stats `json:"post_stats"`
}

const dateLayout = "2006-01-02"

// Build returns the summary of a run described by opts with results in.
// The report date is taken from now.
func Build(opts Options, in Inputs, now time.Time) (*Data, error) {
	if opts.RunName == "" {
		return nil, fmt.Errorf("report: missing run name")
	}
	runDate := opts.RunDate
	if runDate.IsZero() {
		runDate = now
	}
	d := &Data{
		ReportID:            uuid.NewString(),
		ReportTitle:         fmt.Sprintf("Pipeline report: %s", opts.RunName),
		RunName:             opts.RunName,
		RunDate:             runDate.Format(dateLayout),
		ReportDate:          now.Format(dateLayout),
		PipelineVersion:     opts.PipelineVersion,
		CommitHash:          opts.CommitHash,
		ImageFormat:         opts.ImageFormat,
		Plots:               in.Plots,
		Totals:              attrition.Totals(in.Attrition),
		AttritionData:       in.Attrition,
		AbridgedSummary:     attrition.Describe(in.Lengths),
		SummaryFilterReport: filter.Summarise(in.Records),
		Intersections:       filter.Intersections(in.Records),
		PreStats:            in.PreStats,
		PostStats:           in.PostStats,
	}
	if in.IncludeRecords {
		d.ReportTable = in.Records
	}
	if d.Plots == nil {
		d.Plots = map[string]string{}
	}
	if opts.NextflowParams != "" {
		params, err := readParams(opts.NextflowParams)
		if err != nil {
			return nil, err
		}
		d.NextflowParams = params
	}
	return d, nil
}

// readParams returns the compacted JSON content of the file at path.
func readParams(path string) (json.RawMessage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read nextflow params: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return nil, fmt.Errorf("invalid nextflow params %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes d as indented JSON to the file at path.
func WriteJSON(path string, d *Data) error {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write report data: %w", err)
	}
	return nil
}
