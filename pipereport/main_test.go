// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

const reportHeader = "seq_name,num_stop_codons,nt_length_ungapped,nt_length_gapped,divisible_by_3," +
	"earliest_stop_codon,earliest_stop_pct,loss_from_median,longest_gap_length,longest_gap_location," +
	"passes_frameshift_filter,passes_minimum_length_filter,passes_no_stop_codon_filter," +
	"passes_early_stop_codon_filter,flag,passes_filter\n"

// fixture writes a small pipeline run and returns its directories.
func fixture(c *check.C) (pre, post, reports, out string) {
	root := c.MkDir()
	pre = filepath.Join(root, "pre")
	post = filepath.Join(root, "post")
	reports = filepath.Join(root, "reports")
	out = filepath.Join(root, "out")
	for _, d := range []string{pre, post, reports} {
		c.Assert(os.Mkdir(d, 0o755), check.IsNil)
	}
	files := map[string]string{
		filepath.Join(pre, "CAP001_1000-P1.fasta"):  ">a\nACGTACGTAC\n>b\nACGTACG\n>c\nACG\n>d\nACGTAC\n",
		filepath.Join(pre, "CAP002_3000-P2.fasta"):  ">a\nACGTACGTAC\n>b\nACGTACG\n",
		filepath.Join(pre, "CAP003_1000-P1.fasta"):  "",
		filepath.Join(post, "CAP001_1000-P1.fasta"): ">a\nACGTACGTAC\n",
		filepath.Join(post, "CAP002_3000-P2.fasta"): ">a\nACGTACGTAC\n>b\nACGTACG\n",
		filepath.Join(reports, "CAP001_1000-P1.functional_report.csv"): reportHeader +
			"a,0,10,10,false,,100,0,0,0,true,true,true,true,,true\n" +
			"b,4,7,7,false,3,42.8,0.3,,,false,true,false,false,stops,false\n",
		filepath.Join(reports, "CAP002_3000-P2.functional_report.csv"): reportHeader +
			"a,0,10,10,false,,100,0,0,0,true,true,true,true,,true\n",
	}
	for p, content := range files {
		c.Assert(os.WriteFile(p, []byte(content), 0o644), check.IsNil)
	}
	return pre, post, reports, out
}

func execute(c *check.C, args ...string) (string, error) {
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func (s *S) TestRunDate(c *check.C) {
	for i, t := range []struct {
		in   string
		want time.Time
		err  bool
	}{
		{in: "", want: time.Time{}},
		{in: "2026-10-01", want: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2026-10-01T12:00:00Z", want: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)},
		{in: "yesterday", err: true},
	} {
		got, err := Config{RunDate: t.in}.runDate()
		if t.err {
			c.Check(err, check.NotNil, check.Commentf("Test %d", i))
			continue
		}
		c.Check(err, check.IsNil, check.Commentf("Test %d", i))
		c.Check(got.Equal(t.want), check.Equals, true, check.Commentf("Test %d", i))
	}
}

func (s *S) TestNewConfig(c *check.C) {
	pre, post, reports, out := fixture(c)
	v, err := newViper("")
	c.Assert(err, check.IsNil)
	v.Set("pre-dir", pre)
	v.Set("post-dir", post)
	v.Set("filter-dir", reports)
	v.Set("out-dir", out)
	cfg, err := newConfig(v)
	c.Assert(err, check.IsNil)
	c.Check(cfg.ImageFormat, check.Equals, "png")
	c.Check(cfg.PreDir, check.Equals, pre)

	v.Set("image-format", "bmp")
	_, err = newConfig(v)
	c.Check(err, check.ErrorMatches, "invalid config: .*ImageFormat.*")

	v.Set("image-format", "svg")
	v.Set("pre-dir", filepath.Join(pre, "missing"))
	_, err = newConfig(v)
	c.Check(err, check.ErrorMatches, "invalid config: .*PreDir.*")
}

func (s *S) TestConfigFile(c *check.C) {
	dir := c.MkDir()
	path := filepath.Join(dir, "pipereport.yaml")
	c.Assert(os.WriteFile(path, []byte("image-format: svg\nparallel: 2\n"), 0o644), check.IsNil)
	v, err := newViper(path)
	c.Assert(err, check.IsNil)
	c.Check(v.GetString("image-format"), check.Equals, "svg")
	c.Check(v.GetInt("parallel"), check.Equals, 2)

	_, err = newViper(filepath.Join(dir, "missing.yaml"))
	c.Check(err, check.NotNil)
}

func (s *S) TestData(c *check.C) {
	pre, post, reports, out := fixture(c)
	_, err := execute(c, "data", pre, post, reports, out, "--workbook")
	c.Assert(err, check.IsNil)

	b, err := os.ReadFile(filepath.Join(out, attritionFile))
	c.Assert(err, check.IsNil)
	c.Check(string(b), check.Equals, "filename,pre,post,pct_lost,num_lost,pct_kept\n"+
		"CAP003_1000-P1,0,0,0,0,0\n"+
		"CAP001_1000-P1,4,1,75,3,25\n"+
		"CAP002_3000-P2,2,2,0,0,100\n")

	for _, f := range []string{prePostFile, filterFile, workbookFile} {
		_, err := os.Stat(filepath.Join(out, f))
		c.Check(err, check.IsNil, check.Commentf("missing %s", f))
	}
}

func (s *S) TestRender(c *check.C) {
	pre, post, reports, out := fixture(c)
	_, err := execute(c, "render", pre, post, reports, out, "run1",
		"--pipeline-version", "2.0.1",
		"--run-date", "2026-10-01",
		"--msa-dir", post,
	)
	c.Assert(err, check.IsNil)

	b, err := os.ReadFile(filepath.Join(out, "report_data.json"))
	c.Assert(err, check.IsNil)
	var d struct {
		RunName         string            `json:"run_name"`
		RunDate         string            `json:"run_date"`
		PipelineVersion string            `json:"pipeline_version"`
		Plots           map[string]string `json:"plots"`
		Totals          struct {
			Files, Pre, Post int
		} `json:"totals"`
		SummaryFilterReport []struct {
			SampleID string `json:"sample_id"`
			Len      int    `json:"len"`
		} `json:"summary_filter_report"`
		PreStats map[string]json.RawMessage `json:"pre_stats"`
	}
	c.Assert(json.Unmarshal(b, &d), check.IsNil)
	c.Check(d.RunName, check.Equals, "run1")
	c.Check(d.RunDate, check.Equals, "2026-10-01")
	c.Check(d.PipelineVersion, check.Equals, "2.0.1")
	c.Check(d.Totals.Files, check.Equals, 3)
	c.Check(d.Totals.Pre, check.Equals, 6)
	c.Check(d.Totals.Post, check.Equals, 3)
	c.Check(d.SummaryFilterReport, check.HasLen, 2)
	c.Check(d.PreStats, check.HasLen, 3)
	c.Check(d.Plots, check.HasLen, 5)
	for name, file := range d.Plots {
		c.Check(strings.HasSuffix(file, ".png"), check.Equals, true, check.Commentf("plot %s", name))
		_, err := os.Stat(filepath.Join(out, file))
		c.Check(err, check.IsNil, check.Commentf("plot %s", name))
	}

	_, err = os.Stat(filepath.Join(out, "report.typ"))
	c.Check(err, check.IsNil)
}

func (s *S) TestRenderNonePassing(c *check.C) {
	pre, post, reports, out := fixture(c)
	for name, content := range map[string]string{
		"CAP001_1000-P1.functional_report.csv": reportHeader +
			"b,4,7,7,false,3,42.8,0.3,,,false,true,false,false,stops,false\n",
		"CAP002_3000-P2.functional_report.csv": reportHeader,
	} {
		c.Assert(os.WriteFile(filepath.Join(reports, name), []byte(content), 0o644), check.IsNil)
	}
	_, err := execute(c, "render", pre, post, reports, out, "run1")
	c.Assert(err, check.IsNil)

	for _, f := range []string{"seq_length_boxplot.png", "filter_upset.png", "report_data.json", "report.typ"} {
		_, err := os.Stat(filepath.Join(out, f))
		c.Check(err, check.IsNil, check.Commentf("missing %s", f))
	}
}

func (s *S) TestRenderEmptyReports(c *check.C) {
	pre, post, reports, out := fixture(c)
	for _, name := range []string{"CAP001_1000-P1.functional_report.csv", "CAP002_3000-P2.functional_report.csv"} {
		c.Assert(os.WriteFile(filepath.Join(reports, name), []byte(reportHeader), 0o644), check.IsNil)
	}
	_, err := execute(c, "render", pre, post, reports, out, "run1")
	c.Assert(err, check.IsNil)

	b, err := os.ReadFile(filepath.Join(out, "report_data.json"))
	c.Assert(err, check.IsNil)
	var d struct {
		SummaryFilterReport []json.RawMessage `json:"summary_filter_report"`
		Intersections       []json.RawMessage `json:"filter_intersections"`
	}
	c.Assert(json.Unmarshal(b, &d), check.IsNil)
	c.Check(d.SummaryFilterReport, check.HasLen, 0)
	c.Check(d.Intersections, check.HasLen, 0)
}

func (s *S) TestRenderArgs(c *check.C) {
	_, err := execute(c, "render", "a", "b")
	c.Check(err, check.NotNil)
}

func (s *S) TestStats(c *check.C) {
	pre, _, _, _ := fixture(c)
	stdout, err := execute(c, "stats", pre)
	c.Assert(err, check.IsNil)
	var stats map[string]struct {
		NumSequences int `json:"num_sequences"`
		MaxLength    int `json:"max_length"`
	}
	c.Assert(json.Unmarshal([]byte(stdout), &stats), check.IsNil)
	c.Check(stats, check.HasLen, 3)
	c.Check(stats["CAP001_1000-P1"].NumSequences, check.Equals, 4)
	c.Check(stats["CAP001_1000-P1"].MaxLength, check.Equals, 10)
	c.Check(stats["CAP003_1000-P1"].NumSequences, check.Equals, 0)
}
