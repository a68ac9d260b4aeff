// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqfile

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"go.uber.org/zap"
)

// Sequence is a single sequence record annotated with the metadata of the
// file it was read from.
type Sequence struct {
	Name        string `json:"name"`
	Length      int    `json:"length"`
	Pool        string `json:"pool"`
	Visit       string `json:"visit"`
	Participant string `json:"participant"`
	Point       Point  `json:"pipeline_point"`
	Filename    string `json:"filename"`
}

// newScanner returns a scanner over the FASTA records in r. Alignment gaps
// are accepted.
func newScanner(r io.Reader) *seqio.Scanner {
	return seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAgapped)))
}

// Read returns a Sequence for each FASTA record in r, annotated with info.
func Read(r io.Reader, info FileInfo) ([]Sequence, error) {
	var seqs []Sequence
	sc := newScanner(r)
	for sc.Next() {
		s := sc.Seq()
		seqs = append(seqs, Sequence{
			Name:        s.Name(),
			Length:      s.Len(),
			Pool:        info.Pool,
			Visit:       info.Visit,
			Participant: info.Participant,
			Point:       info.Point,
			Filename:    info.Name,
		})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("failed during read: %w", err)
	}
	return seqs, nil
}

// ReadFile returns a Sequence for each FASTA record in the file at path.
// An empty file holds no sequences.
func ReadFile(path string, info FileInfo) ([]Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	seqs, err := Read(f, info)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seqs, nil
}

// ReadDict returns the sequences in the FASTA file at path keyed by their
// full header line. A repeated header replaces the earlier sequence.
func ReadDict(path string, log *zap.Logger) (map[string]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seqs := make(map[string]string)
	sc := newScanner(f)
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		header := s.Name()
		if d := s.Description(); d != "" {
			header += " " + d
		}
		if _, dup := seqs[header]; dup {
			log.Warn("duplicate header will be overwritten",
				zap.String("file", path), zap.String("header", header))
		}
		seqs[header] = string(alphabet.LettersToBytes(s.Seq))
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("%s: failed during read: %w", path, err)
	}
	return seqs, nil
}
