// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqfile

import (
	"context"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PrePost holds the sequences read from both ends of a pipeline run.
type PrePost struct {
	// Sequences holds the pre sequences followed by the post
	// sequences, each in file name then file order.
	Sequences []Sequence

	// Files is the sorted set of file names seen at either point,
	// including files holding no sequences.
	Files []string
}

// Loader reads sequence files. The zero value is ready to use.
type Loader struct {
	// Log receives progress messages. Nil disables logging.
	Log *zap.Logger

	// Parallel limits the number of files read concurrently.
	// Values less than one mean GOMAXPROCS.
	Parallel int
}

func (l *Loader) log() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}

// LoadPrePost reads every .fasta file in preDir and postDir. A post file
// without a pre counterpart is reported and retained.
func (l *Loader) LoadPrePost(ctx context.Context, preDir, postDir string) (*PrePost, error) {
	log := l.log()

	log.Info("loading pre files", zap.String("dir", preDir))
	pre, err := l.loadPoint(ctx, preDir, Pre)
	if err != nil {
		return nil, err
	}
	log.Info("loading post files", zap.String("dir", postDir))
	post, err := l.loadPoint(ctx, postDir, Post)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var pp PrePost
	for _, f := range pre {
		seen[f.info.Name] = true
		pp.Sequences = append(pp.Sequences, f.seqs...)
	}
	for _, f := range post {
		if !seen[f.info.Name] {
			log.Error("post file has no matching pre file", zap.String("file", f.info.Name))
			seen[f.info.Name] = true
		}
		pp.Sequences = append(pp.Sequences, f.seqs...)
	}
	for name := range seen {
		pp.Files = append(pp.Files, name)
	}
	sort.Strings(pp.Files)

	log.Info("loaded sequences",
		zap.Int("files", len(pp.Files)),
		zap.Int("sequences", len(pp.Sequences)))
	return &pp, nil
}

type fileSeqs struct {
	info FileInfo
	seqs []Sequence
}

func (l *Loader) loadPoint(ctx context.Context, dir string, point Point) ([]fileSeqs, error) {
	paths, err := Glob(dir, ".fasta")
	if err != nil {
		return nil, err
	}
	files := make([]fileSeqs, len(paths))

	limit := l.Parallel
	if limit < 1 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			info, err := ParseFileInfo(p, point)
			if err != nil {
				return err
			}
			seqs, err := ReadFile(p, info)
			if err != nil {
				return err
			}
			l.log().Debug("read file",
				zap.String("point", string(point)),
				zap.String("file", info.Name),
				zap.Int("sequences", len(seqs)))
			files[i] = fileSeqs{info: info, seqs: seqs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
