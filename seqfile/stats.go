// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Stats holds summary statistics of the sequences in a single file.
// Lengths are given in residues.
type Stats struct {
	Filename      string  `json:"filename"`
	NumSequences  int     `json:"num_sequences"`
	AverageLength float64 `json:"average_length"`
	MaxLength     int     `json:"max_length"`
	MinLength     int     `json:"min_length"`
	TotalLength   int     `json:"total_length"`
	N50           int     `json:"n50"`
}

// StatsForFile returns the sequence statistics of the FASTA file at path.
// Sequences sharing a header are counted once. All values are zero for an
// empty file.
func StatsForFile(path string, log *zap.Logger) (Stats, error) {
	seqs, err := ReadDict(path, log)
	if err != nil {
		return Stats{}, err
	}
	lengths := make([]int, 0, len(seqs))
	for _, s := range seqs {
		lengths = append(lengths, len(s))
	}
	st := statsOf(lengths)
	st.Filename = BaseName(path)
	return st, nil
}

func statsOf(lengths []int) Stats {
	var st Stats
	st.NumSequences = len(lengths)
	if len(lengths) == 0 {
		return st
	}

	// Sort in descending order of sequence length.
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	st.MaxLength = lengths[0]
	st.MinLength = lengths[len(lengths)-1]
	for _, l := range lengths {
		st.TotalLength += l
	}
	st.AverageLength = float64(st.TotalLength) / float64(len(lengths))
	st.N50 = n50(lengths, st.TotalLength)
	return st
}

// n50 returns the length of the sequence at which the cumulative length of
// lengths, sorted descending, reaches half of total.
func n50(lengths []int, total int) int {
	var csum int
	for _, l := range lengths {
		csum += l
		if 2*csum >= total {
			return l
		}
	}
	return 0
}

// ProcessDirectory returns the statistics of every file in dir with the
// given extension, keyed by file base name. An empty ext means ".fasta".
func ProcessDirectory(ctx context.Context, dir, ext string, log *zap.Logger) (map[string]Stats, error) {
	if ext == "" {
		ext = ".fasta"
	}
	paths, err := Glob(dir, ext)
	if err != nil {
		return nil, err
	}
	stats := make(map[string]Stats, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st, err := StatsForFile(p, log)
		if err != nil {
			return nil, err
		}
		stats[st.Filename] = st
	}
	return stats, nil
}

// Glob returns the regular files in dir whose names end in suffix, in
// lexical order.
func Glob(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
