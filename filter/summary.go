// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import (
	"sort"
	"strings"
)

// Thresholds used by Summarise.
const (
	stopCodonLimit       = 3
	earliestStopPctLimit = 90
)

// SampleSummary holds per-sample counts of filter outcomes.
type SampleSummary struct {
	SampleID            string `json:"sample_id"`
	Len                 int    `json:"len"`
	NumStopCodonsGT3    int    `json:"num_stop_codons_gt_3"`
	NumEarliestStopLT90 int    `json:"num_earliest_stop_lt_90"`
	PassesFilter        int    `json:"passes_filter"`
	ContainsFrameshift  int    `json:"contains_frameshift"`
}

// Summarise returns the filter outcome counts of recs grouped by sample,
// sorted by sample ID. Null values never satisfy a threshold.
func Summarise(recs []Record) []SampleSummary {
	idx := make(map[string]int)
	var sums []SampleSummary
	for _, r := range recs {
		i, ok := idx[r.SampleID.ID]
		if !ok {
			i = len(sums)
			idx[r.SampleID.ID] = i
			sums = append(sums, SampleSummary{SampleID: r.SampleID.ID})
		}
		s := &sums[i]
		s.Len++
		if r.NumStopCodons.Valid && r.NumStopCodons.Value > stopCodonLimit {
			s.NumStopCodonsGT3++
		}
		if r.EarliestStopPct.Valid && r.EarliestStopPct.Value < earliestStopPctLimit {
			s.NumEarliestStopLT90++
		}
		if r.PassesFilter {
			s.PassesFilter++
		}
		if !r.DivisibleBy3 {
			s.ContainsFrameshift++
		}
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].SampleID < sums[j].SampleID })
	return sums
}

// Filters names the individual filters in the order used by Intersection.
var Filters = [4]string{
	"frameshift",
	"minimum_length",
	"no_stop_codon",
	"early_stop_codon",
}

// Intersection is the number of records sharing a combination of
// individual filter outcomes.
type Intersection struct {
	Passes [4]bool `json:"passes"`
	Count  int     `json:"count"`
}

// Label returns the names of the filters passed in the intersection joined
// by "&", or "none".
func (in Intersection) Label() string {
	var names []string
	for i, ok := range in.Passes {
		if ok {
			names = append(names, Filters[i])
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "&")
}

// Intersections returns the observed combinations of individual filter
// outcomes in recs, sorted by descending count.
func Intersections(recs []Record) []Intersection {
	counts := make(map[[4]bool]int)
	for _, r := range recs {
		counts[[4]bool{
			r.PassesFrameshiftFilter,
			r.PassesMinimumLengthFilter,
			r.PassesNoStopCodonFilter,
			r.PassesEarlyStopCodonFilter,
		}]++
	}
	ins := make([]Intersection, 0, len(counts))
	for p, n := range counts {
		ins = append(ins, Intersection{Passes: p, Count: n})
	}
	sort.Slice(ins, func(i, j int) bool {
		if ins[i].Count != ins[j].Count {
			return ins[i].Count > ins[j].Count
		}
		return less(ins[i].Passes, ins[j].Passes)
	})
	return ins
}

// less orders combinations with more passed filters first.
func less(a, b [4]bool) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i]
		}
	}
	return false
}
