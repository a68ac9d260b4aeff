// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

const header = "seq_name,num_stop_codons,nt_length_ungapped,nt_length_gapped,divisible_by_3," +
	"earliest_stop_codon,earliest_stop_pct,loss_from_median,longest_gap_length,longest_gap_location," +
	"passes_frameshift_filter,passes_minimum_length_filter,passes_no_stop_codon_filter," +
	"passes_early_stop_codon_filter,flag,passes_filter\n"

const report = header +
	"s1,0,900,930,true,,100.0,0.5,3,10,true,true,true,true,,true\n" +
	"s2,4,880,900,false,120,40.5,1.5,,,false,true,false,false,frameshift,false\n" +
	"s3,,850,870,True,300,95,,2.0,5.0,True,False,True,True,short,False\n"

func writeFile(c *check.C, dir, name, content string) {
	c.Assert(os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), check.IsNil)
}

func (s *S) TestParseSampleID(c *check.C) {
	for i, t := range []struct {
		id   string
		want SampleID
	}{
		{id: "CAP123_1000-P1", want: SampleID{ID: "CAP123_1000-P1", CapID: "CAP123", VisitID: "1000", Pool: "P1"}},
		{id: "CAP123_1000", want: SampleID{ID: "CAP123_1000", CapID: "CAP123", VisitID: "1000"}},
		{id: "CAP123-P1", want: SampleID{ID: "CAP123-P1", CapID: "CAP123", Pool: "P1"}},
		{id: "A_B_C-D-E", want: SampleID{ID: "A_B_C-D-E", CapID: "A", VisitID: "B", Pool: "D"}},
		{id: "", want: SampleID{}},
	} {
		c.Check(ParseSampleID(t.id), check.Equals, t.want, check.Commentf("Test %d", i))
	}
}

func (s *S) TestReadReport(c *check.C) {
	recs, err := ReadReport(strings.NewReader(report), "CAP1_1000-P1")
	c.Assert(err, check.IsNil)
	c.Assert(recs, check.HasLen, 3)

	r := recs[0]
	c.Check(r.SeqName, check.Equals, "s1")
	c.Check(r.NumStopCodons, check.Equals, NullInt{Value: 0, Valid: true})
	c.Check(r.EarliestStopCodon.Valid, check.Equals, false)
	c.Check(r.EarliestStopPct, check.Equals, NullFloat{Value: 100, Valid: true})
	c.Check(r.PassesFilter, check.Equals, true)
	c.Check(r.SampleID, check.Equals, SampleID{ID: "CAP1_1000-P1", CapID: "CAP1", VisitID: "1000", Pool: "P1"})

	r = recs[1]
	c.Check(r.DivisibleBy3, check.Equals, false)
	c.Check(r.LongestGapLength.Valid, check.Equals, false)
	c.Check(r.Flag, check.Equals, "frameshift")

	r = recs[2]
	c.Check(r.NumStopCodons.Valid, check.Equals, false)
	c.Check(r.DivisibleBy3, check.Equals, true)
	c.Check(r.PassesMinimumLengthFilter, check.Equals, false)
	c.Check(r.LongestGapLocation, check.Equals, NullFloat{Value: 5, Valid: true})
}

func (s *S) TestReadReportErrors(c *check.C) {
	_, err := ReadReport(strings.NewReader(header+"s1,0,900\n"), "x")
	c.Check(errors.Is(err, ErrFieldCount), check.Equals, true)
	c.Check(err, check.ErrorMatches, ".*line 2.*")

	_, err = ReadReport(strings.NewReader(header+"s1,zero,900,930,true,,100.0,0.5,3,10,true,true,true,true,,true\n"), "x")
	c.Check(err, check.ErrorMatches, ".*column num_stop_codons.*")

	recs, err := ReadReport(strings.NewReader(header), "x")
	c.Check(err, check.IsNil)
	c.Check(recs, check.HasLen, 0)
}

func (s *S) TestRecordJSON(c *check.C) {
	recs, err := ReadReport(strings.NewReader(report), "CAP1_1000-P1")
	c.Assert(err, check.IsNil)
	b, err := json.Marshal(recs[1])
	c.Assert(err, check.IsNil)
	var m map[string]interface{}
	c.Assert(json.Unmarshal(b, &m), check.IsNil)
	c.Check(m["num_stop_codons"], check.Equals, 4.0)
	c.Check(m["longest_gap_length"], check.IsNil)
	c.Check(m["sample_id"], check.Equals, "CAP1_1000-P1")
	c.Check(m["pool"], check.Equals, "P1")
}

func (s *S) TestLoadReports(c *check.C) {
	dir := c.MkDir()
	writeFile(c, dir, "CAP2_1000-P1.functional_report.csv", report)
	writeFile(c, dir, "CAP1_3000-P2.functional_report.csv", header+"a,0,1,1,true,1,1,1,1,1,true,true,true,true,,true\n")
	writeFile(c, dir, "other.csv", "ignored")

	var l Loader
	recs, err := l.LoadReports(context.Background(), dir)
	c.Assert(err, check.IsNil)
	c.Assert(recs, check.HasLen, 4)
	c.Check(recs[0].SampleID.ID, check.Equals, "CAP1_3000-P2")
	c.Check(recs[0].VisitID, check.Equals, "3000")
	c.Check(recs[1].SampleID.ID, check.Equals, "CAP2_1000-P1")

	_, err = l.LoadReports(context.Background(), c.MkDir())
	c.Check(errors.Is(err, ErrNoReports), check.Equals, true)
}

func (s *S) TestSummarise(c *check.C) {
	a, err := ReadReport(strings.NewReader(report), "B_1000-P1")
	c.Assert(err, check.IsNil)
	b, err := ReadReport(strings.NewReader(header+"a,5,1,1,true,1,89.9,1,1,1,true,true,true,true,,true\n"), "A_1000-P1")
	c.Assert(err, check.IsNil)

	got := Summarise(append(a, b...))
	c.Check(got, check.DeepEquals, []SampleSummary{
		{SampleID: "A_1000-P1", Len: 1, NumStopCodonsGT3: 1, NumEarliestStopLT90: 1, PassesFilter: 1},
		{SampleID: "B_1000-P1", Len: 3, NumStopCodonsGT3: 1, NumEarliestStopLT90: 1, PassesFilter: 1, ContainsFrameshift: 1},
	})
}

func (s *S) TestIntersections(c *check.C) {
	recs := []Record{
		{PassesFrameshiftFilter: true, PassesMinimumLengthFilter: true, PassesNoStopCodonFilter: true, PassesEarlyStopCodonFilter: true},
		{PassesFrameshiftFilter: true, PassesMinimumLengthFilter: true, PassesNoStopCodonFilter: true, PassesEarlyStopCodonFilter: true},
		{PassesMinimumLengthFilter: true},
		{PassesFrameshiftFilter: true},
	}
	got := Intersections(recs)
	c.Check(got, check.DeepEquals, []Intersection{
		{Passes: [4]bool{true, true, true, true}, Count: 2},
		{Passes: [4]bool{true, false, false, false}, Count: 1},
		{Passes: [4]bool{false, true, false, false}, Count: 1},
	})
	c.Check(got[0].Label(), check.Equals, "frameshift&minimum_length&no_stop_codon&early_stop_codon")
	c.Check(Intersection{}.Label(), check.Equals, "none")
}
