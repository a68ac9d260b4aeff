// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/biogo/pipereport/msa"
)

// DefaultGridColumns is the number of columns in an MSA grid when none is
// given.
const DefaultGridColumns = 4

// titleLen is the number of file name characters used as a tile title.
const titleLen = 6

// matrixGrid adapts a residue code matrix to plotter.GridXYZ with the first
// sequence at the top.
type matrixGrid struct {
	m mat.Matrix
}

func (g matrixGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}
func (g matrixGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return -float64(r) }

// MSAGrid draws a zoomed out heat map of each non-empty alignment in dir,
// in cols columns filled top to bottom. A cols less than one means
// DefaultGridColumns.
// Files that hold no sequences leave no tile.
func MSAGrid(dir, path string, cols int) error {
	if cols < 1 {
		cols = DefaultGridColumns
	}
	files, err := msa.NonEmpty(dir)
	if err != nil {
		return err
	}

	var tiles []*plot.Plot
	for _, f := range files {
		_, m, err := msa.ToMatrix(f)
		if err != nil {
			return err
		}
		if m == nil {
			continue
		}
		tiles = append(tiles, msaTile(m, tileTitle(f)))
	}

	rows := (len(tiles) + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}
	t := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	w := vg.Length(cols) * 3.25 * vg.Inch
	h := vg.Length(rows) * 2.5 * vg.Inch
	return saveTiles(w, h, path, func(dc draw.Canvas) {
		for i, p := range tiles {
			x, y := tilePos(i, rows)
			p.Draw(t.At(dc, x, y))
		}
	})
}

// tilePos returns the column and row of the ith tile of a grid filled
// column by column.
func tilePos(i, rows int) (x, y int) {
	return i / rows, i % rows
}

func msaTile(m *mat.Dense, title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	h := plotter.NewHeatMap(matrixGrid{m}, palette.Heat(msa.Other+1, 1))
	h.Min = msa.Gap
	h.Max = msa.Other
	p.Add(h)
	return p
}

func tileTitle(path string) string {
	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]
	if len(name) > titleLen {
		name = name[:titleLen]
	}
	return name
}
