// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// pipereport summarises a sequencing pipeline run. It reads the FASTA files
// given to and produced by the pipeline and the functional filter reports of
// each sample, and writes attrition tables, diagnostic plots, a JSON summary
// and a Typst report document.
package main

import "log"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.SetFlags(0)
		log.Fatalf("pipereport: %v", err)
	}
}
