// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/biogo/pipereport/plots"
	"github.com/biogo/pipereport/seqfile"
)

// app carries the state shared by the commands of a single invocation.
type app struct {
	configPath string
	v          *viper.Viper
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "pipereport",
		Short: "Summarise sequence attrition and filter outcomes of a pipeline run",
		Long: `Summarise sequence attrition and filter outcomes of a pipeline run.

pipereport compares the FASTA files handed to a pipeline with those at its
last point, reads the functional filter report of each sample, and writes
the resulting tables, plots and report to an output directory.

Settings may also be given in a YAML config file (--config) or as
PIPEREPORT_ environment variables, e.g. PIPEREPORT_IMAGE_FORMAT=svg.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := newViper(a.configPath)
			if err != nil {
				return err
			}
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			a.v = v
			a.log, err = newLogger(v.GetBool("debug"))
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().Bool("debug", false, "log debugging information")

	root.AddCommand(a.dataCmd(), a.renderCmd(), a.statsCmd())
	return root
}

// setDirs stores the positional directory arguments common to data and
// render.
func (a *app) setDirs(args []string) {
	for i, key := range []string{"pre-dir", "post-dir", "filter-dir", "out-dir"} {
		a.v.Set(key, args[i])
	}
}

func (a *app) dataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data PRE_DIR POST_DIR FILTER_DIR OUT_DIR",
		Short: "Compute attrition and write the tabular outputs",
		Long: `Compute attrition and write the tabular outputs.

data reads the input, output and functional filter directories of a run and
writes the per-sequence, functional filter and attrition tables as CSV files
to OUT_DIR.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.setDirs(args)
			cfg, err := newConfig(a.v)
			if err != nil {
				return err
			}
			r := &run{cfg: cfg, log: a.log}
			res, err := r.load(cmd.Context())
			if err != nil {
				return err
			}
			return r.writeTables(res)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func (a *app) renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render PRE_DIR POST_DIR FILTER_DIR OUT_DIR RUN_NAME",
		Short: "Write the tables, plots, JSON summary and report document",
		Long: `Write the tables, plots, JSON summary and report document.

render does everything data does, then draws the diagnostic plots, writes
the JSON summary used by the report and the Typst source of the report.
With --compile the report is typeset by the typst binary.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.setDirs(args)
			a.v.Set("run-name", args[4])
			cfg, err := newConfig(a.v)
			if err != nil {
				return err
			}
			r := &run{cfg: cfg, log: a.log}
			return r.render(cmd.Context())
		},
	}
	addRunFlags(cmd)
	f := cmd.Flags()
	f.String("pipeline-version", "", "version of the pipeline")
	f.String("pipeline-commit-hash", "", "git commit hash that the pipeline was run with")
	f.String("run-date", "", "date the pipeline was run (YYYY-MM-DD or RFC 3339), defaults to today")
	f.String("nextflow-params", "", "path to the nextflow params as a JSON file")
	f.String("image-format", "png", "plot image format: png, svg or jpg")
	f.String("msa-dir", "", "directory of final alignments to draw as a grid")
	f.Int("msa-columns", plots.DefaultGridColumns, "number of columns in the alignment grid")
	f.Bool("include-records", false, "include every functional filter record in the JSON summary")
	f.Bool("compile", false, "typeset the report with typst")
	f.String("typst", "", "path to the typst binary, defaults to typst on PATH")
	return cmd
}

// addRunFlags adds the flags shared by data and render.
func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("parallel", 0, "number of files read concurrently, defaults to GOMAXPROCS")
	f.Bool("workbook", false, "also write the tables to an XLSX workbook")
}

func (a *app) statsCmd() *cobra.Command {
	var ext string
	cmd := &cobra.Command{
		Use:   "stats DIR",
		Short: "Print per-file sequence statistics as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := seqfile.ProcessDirectory(cmd.Context(), args[0], ext, a.log)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
			return err
		},
	}
	cmd.Flags().StringVar(&ext, "ext", ".fasta", "file name suffix of the sequence files")
	return cmd
}

// mkdir creates dir and its parents if they do not exist.
func mkdir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
