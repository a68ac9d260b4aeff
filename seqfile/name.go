// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seqfile reads the FASTA files at either end of a pipeline run and
// derives per-file sample metadata and sequence statistics.
package seqfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Point is the stage of a pipeline run a file was taken from.
type Point string

const (
	Pre  Point = "pre"
	Post Point = "post"
)

// ErrNoPool is returned when a file name does not carry a pool suffix.
var ErrNoPool = errors.New("seqfile: no pool in file name")

// Visit identifiers occupy a fixed window of the file stem.
const (
	visitStart = 7
	visitEnd   = 11
)

// FileInfo holds the sample metadata encoded in a sequence file name.
// A name has the form <participant>_<visit>-<pool>[.<suffix>]...
type FileInfo struct {
	Name        string
	Pool        string
	Visit       string
	Participant string
	Path        string
	Point       Point
}

// ParseFileInfo returns the metadata held in the name of the file at path.
func ParseFileInfo(path string, point Point) (FileInfo, error) {
	stem := stem(path)

	i := strings.Index(stem, "-")
	if i < 0 {
		return FileInfo{}, fmt.Errorf("%w: %q", ErrNoPool, filepath.Base(path))
	}
	pool := stem[i+1:]
	if j := strings.IndexAny(pool, "-."); j >= 0 {
		pool = pool[:j]
	}

	return FileInfo{
		Name:        before(stem, "."),
		Pool:        pool,
		Visit:       window(stem, visitStart, visitEnd),
		Participant: before(stem, "_"),
		Path:        path,
		Point:       point,
	}, nil
}

// stem returns the base name of path without its final extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// BaseName returns the base name of path up to its first dot.
func BaseName(path string) string {
	return before(filepath.Base(path), ".")
}

func before(s, sep string) string {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i]
	}
	return s
}

// window returns s[start:end] clamped to the length of s.
func window(s string, start, end int) string {
	if start > len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
