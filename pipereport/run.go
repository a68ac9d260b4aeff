// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/biogo/pipereport/attrition"
	"github.com/biogo/pipereport/filter"
	"github.com/biogo/pipereport/plots"
	"github.com/biogo/pipereport/report"
	"github.com/biogo/pipereport/seqfile"
	"github.com/biogo/pipereport/table"
)

// Output file names within the output directory.
const (
	prePostFile   = "pre_post.csv"
	filterFile    = "functional_filter.csv"
	attritionFile = "attrition.csv"
	workbookFile  = "report_tables.xlsx"
)

// run performs the steps of a single pipereport invocation.
type run struct {
	cfg Config
	log *zap.Logger

	// now returns the report time; time.Now if nil.
	now func() time.Time
}

// results holds the loaded and computed data of a run.
type results struct {
	pp        *seqfile.PrePost
	recs      []filter.Record
	attrition []attrition.Row
	lengths   []attrition.LengthRow
}

func (r *run) logger() *zap.Logger {
	if r.log == nil {
		return zap.NewNop()
	}
	return r.log
}

// load reads the functional filter reports and sequence files and
// calculates attrition.
func (r *run) load(ctx context.Context) (*results, error) {
	log := r.logger()
	log.Info("reading data")
	fl := filter.Loader{Log: log}
	recs, err := fl.LoadReports(ctx, r.cfg.FilterDir)
	if err != nil {
		return nil, err
	}
	sl := seqfile.Loader{Log: log, Parallel: r.cfg.Parallel}
	pp, err := sl.LoadPrePost(ctx, r.cfg.PreDir, r.cfg.PostDir)
	if err != nil {
		return nil, err
	}

	log.Info("calculating lost data between pre and post")
	return &results{
		pp:        pp,
		recs:      recs,
		attrition: attrition.Compute(pp),
		lengths:   attrition.LengthSummaries(pp),
	}, nil
}

// writeTables writes the CSV tables of res and, if requested, the workbook.
func (r *run) writeTables(res *results) error {
	if err := mkdir(r.cfg.OutDir); err != nil {
		return err
	}
	log := r.logger()
	tables := []struct {
		file  string
		table table.Table
	}{
		{prePostFile, table.PrePost(res.pp.Sequences)},
		{filterFile, table.FunctionalFilter(res.recs)},
		{attritionFile, table.Attrition(res.attrition)},
	}
	for _, t := range tables {
		path := filepath.Join(r.cfg.OutDir, t.file)
		log.Info("writing table", zap.String("table", t.table.Name), zap.String("path", path))
		if err := table.WriteCSVFile(path, t.table); err != nil {
			return err
		}
	}
	if !r.cfg.Workbook {
		return nil
	}
	path := filepath.Join(r.cfg.OutDir, workbookFile)
	log.Info("writing workbook", zap.String("path", path))
	return table.WriteWorkbook(path,
		table.Attrition(res.attrition),
		table.SampleSummary(filter.Summarise(res.recs)),
		table.Abridged(attrition.Describe(res.lengths)),
		table.FunctionalFilter(res.recs),
		table.PrePost(res.pp.Sequences),
	)
}

// plot draws the diagnostic plots of res and returns their file names
// keyed by plot name.
func (r *run) plot(res *results) (map[string]string, error) {
	log := r.logger()
	ext := "." + r.cfg.ImageFormat
	type job struct {
		name, file string
		draw       func(path string) error
	}
	jobs := []job{
		{"seq_count_bubble", "seq_count_bubbleplot", func(p string) error { return plots.SeqCountBubble(res.attrition, p) }},
		{"seq_count_bar", "seq_count_barplot", func(p string) error { return plots.SeqCountBar(res.attrition, p) }},
		{"seq_length_box", "seq_length_boxplot", func(p string) error { return plots.SeqLengthBox(res.recs, p) }},
		{"filter_upset", "filter_upset", func(p string) error {
			return plots.FilterUpset(filter.Intersections(res.recs), p)
		}},
	}
	if r.cfg.MSADir != "" {
		jobs = append(jobs, job{"msa_grid", "msa_grid", func(p string) error {
			return plots.MSAGrid(r.cfg.MSADir, p, r.cfg.MSAColumns)
		}})
	}

	files := make(map[string]string, len(jobs))
	for _, j := range jobs {
		file := j.file + ext
		path := filepath.Join(r.cfg.OutDir, file)
		log.Info("producing plot", zap.String("plot", j.name), zap.String("path", path))
		if err := j.draw(path); err != nil {
			return nil, fmt.Errorf("plot %s: %w", j.name, err)
		}
		files[j.name] = file
	}
	return files, nil
}

// render writes every output of a run.
func (r *run) render(ctx context.Context) error {
	log := r.logger()
	runDate, err := r.cfg.runDate()
	if err != nil {
		return err
	}
	res, err := r.load(ctx)
	if err != nil {
		return err
	}
	if err := r.writeTables(res); err != nil {
		return err
	}
	files, err := r.plot(res)
	if err != nil {
		return err
	}

	log.Info("summarising sequence files")
	pre, err := seqfile.ProcessDirectory(ctx, r.cfg.PreDir, "", log)
	if err != nil {
		return err
	}
	post, err := seqfile.ProcessDirectory(ctx, r.cfg.PostDir, "", log)
	if err != nil {
		return err
	}

	now := time.Now
	if r.now != nil {
		now = r.now
	}
	d, err := report.Build(report.Options{
		RunName:         r.cfg.RunName,
		RunDate:         runDate,
		PipelineVersion: r.cfg.PipelineVersion,
		CommitHash:      r.cfg.CommitHash,
		ImageFormat:     r.cfg.ImageFormat,
		NextflowParams:  r.cfg.NextflowParams,
	}, report.Inputs{
		Attrition:      res.attrition,
		Lengths:        res.lengths,
		Records:        res.recs,
		PreStats:       pre,
		PostStats:      post,
		Plots:          files,
		IncludeRecords: r.cfg.IncludeRecords,
	}, now())
	if err != nil {
		return err
	}

	dataPath := filepath.Join(r.cfg.OutDir, report.DataFile)
	log.Info("writing report data", zap.String("path", dataPath))
	if err := report.WriteJSON(dataPath, d); err != nil {
		return err
	}
	doc, err := report.WriteTemplate(r.cfg.OutDir, d)
	if err != nil {
		return err
	}
	log.Info("wrote report document", zap.String("path", doc))

	if r.cfg.Compile {
		return r.compile(doc)
	}
	log.Info("done")
	return nil
}

// compile typesets the report document at doc into a PDF beside it.
func (r *run) compile(doc string) error {
	log := r.logger()
	out := strings.TrimSuffix(doc, filepath.Ext(doc)) + ".pdf"
	cmd, err := report.Typst{
		Cmd:     r.cfg.Typst,
		Root:    r.cfg.OutDir,
		InFile:  doc,
		OutFile: out,
	}.BuildCommand()
	if err != nil {
		return err
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	log.Info("rendering report", zap.Strings("command", cmd.Args))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("typst failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	log.Info("done", zap.String("report", out))
	return nil
}
