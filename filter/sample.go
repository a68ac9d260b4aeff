// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import "strings"

// SampleColumns is the column order of the sample metadata of a Record.
var SampleColumns = []string{"sample_id", "cap_id", "visit_id", "pool"}

// SampleID is a sample identifier of the form <cap_id>_<visit_id>-<pool>
// and its parsed fields. Missing fields are empty.
type SampleID struct {
	ID      string `json:"sample_id"`
	CapID   string `json:"cap_id"`
	VisitID string `json:"visit_id"`
	Pool    string `json:"pool"`
}

// ParseSampleID splits id into its fields. Text following a second
// separator of either kind is discarded.
func ParseSampleID(id string) SampleID {
	idVisit, pool := splitPair(id, "-")
	capID, visitID := splitPair(idVisit, "_")
	return SampleID{ID: id, CapID: capID, VisitID: visitID, Pool: pool}
}

// splitPair returns the first two fields of s split by sep.
func splitPair(s, sep string) (first, second string) {
	first, rest, ok := strings.Cut(s, sep)
	if !ok {
		return first, ""
	}
	second, _, _ = strings.Cut(rest, sep)
	return first, second
}
