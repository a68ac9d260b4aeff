// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package msa converts multiple sequence alignments to numeric matrices
// suitable for rendering as images.
package msa

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"gonum.org/v1/gonum/mat"
)

// Residue codes used in alignment matrices.
const (
	Gap = iota
	A
	C
	G
	T
	Other
)

func code(l alphabet.Letter) float64 {
	switch l {
	case '-', '.':
		return Gap
	case 'A', 'a':
		return A
	case 'C', 'c':
		return C
	case 'G', 'g':
		return G
	case 'T', 't', 'U', 'u':
		return T
	default:
		return Other
	}
}

// Read returns the names of the aligned sequences in r and a matrix with a
// row of residue codes per sequence. Rows shorter than the longest sequence
// are padded with gaps. Read returns a nil matrix if r holds no sequences.
func Read(r io.Reader) ([]string, *mat.Dense, error) {
	var (
		names []string
		rows  [][]alphabet.Letter
		cols  int
	)
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAgapped)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		names = append(names, s.Name())
		rows = append(rows, s.Seq)
		if len(s.Seq) > cols {
			cols = len(s.Seq)
		}
	}
	if err := sc.Error(); err != nil {
		return nil, nil, fmt.Errorf("failed during read: %w", err)
	}
	if len(rows) == 0 || cols == 0 {
		return names, nil, nil
	}

	m := mat.NewDense(len(rows), cols, nil)
	for i, row := range rows {
		for j, l := range row {
			m.Set(i, j, code(l))
		}
	}
	return names, m, nil
}

// ToMatrix returns the names and residue code matrix of the alignment in the
// FASTA file at path.
func ToMatrix(path string) ([]string, *mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	names, m, err := Read(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, m, nil
}

// NonEmpty returns the regular files in dir with non-zero size, in lexical
// order.
func NonEmpty(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, err
		}
		if fi.Size() > 0 {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
