// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/biogo/pipereport/filter"
)

// SeqLengthBox plots the distribution of ungapped nucleotide length of the
// records passing the functional filter, one box per sample.
func SeqLengthBox(recs []filter.Record, path string) error {
	lengths := make(map[string]plotter.Values)
	for _, r := range recs {
		if !r.PassesFilter || !r.NtLengthUngapped.Valid {
			continue
		}
		lengths[r.SampleID.ID] = append(lengths[r.SampleID.ID], float64(r.NtLengthUngapped.Value))
	}
	samples := make([]string, 0, len(lengths))
	for s := range lengths {
		samples = append(samples, s)
	}
	sort.Strings(samples)

	p := plot.New()
	p.X.Label.Text = "Sample"
	p.Y.Label.Text = "Sequence Nucleotide Length (without gaps)"

	colors := newSampleColors(len(samples))
	for i, s := range samples {
		b, err := plotter.NewBoxPlot(vg.Points(16), float64(i), lengths[s])
		if err != nil {
			return fmt.Errorf("sample %s: %w", s, err)
		}
		b.BoxStyle.Color = colors[i]
		b.WhiskerStyle.Color = colors[i]
		b.MedianStyle.Color = colors[i]
		p.Add(b)
	}
	if len(samples) != 0 {
		p.NominalX(samples...)
	}

	width := vg.Length(len(samples)) * 0.4 * vg.Inch
	if width < 8.27*vg.Inch {
		width = 8.27 * vg.Inch
	}
	return save(p, width, 11.69*vg.Inch/2, path)
}

// newSampleColors returns n distinct colours.
func newSampleColors(n int) []color.Color {
	cm := newLossColors()
	c := make([]color.Color, n)
	for i := range c {
		if n == 1 {
			c[i] = cm.At(0)
			continue
		}
		c[i] = cm.At(100 * float64(i) / float64(n-1))
	}
	return c
}

// FilterUpset plots the sizes of the intersections of individual filter
// outcomes above a matrix showing which filters each intersection passes.
func FilterUpset(ins []filter.Intersection, path string) error {
	labels := make([]string, len(ins))
	for i, in := range ins {
		labels[i] = fmt.Sprint(in.Count)
	}

	bars := plot.New()
	bars.Y.Label.Text = "Intersection size"
	bars.X.Label.Text = ""
	if len(ins) != 0 {
		counts := make(plotter.Values, len(ins))
		for i, in := range ins {
			counts[i] = float64(in.Count)
		}
		b, err := plotter.NewBarChart(counts, vg.Points(20))
		if err != nil {
			return err
		}
		b.Color = color.Gray{Y: 0x40}
		bars.Add(b)
	}
	if len(labels) != 0 {
		bars.NominalX(labels...)
	}

	matrix := plot.New()
	matrix.X.Label.Text = "Filters passed"
	var on, off plotter.XYs
	for i, in := range ins {
		for j, pass := range in.Passes {
			xy := plotter.XY{X: float64(i), Y: float64(j)}
			if pass {
				on = append(on, xy)
			} else {
				off = append(off, xy)
			}
		}
	}
	for _, set := range []struct {
		xys   plotter.XYs
		color color.Color
	}{
		{off, color.Gray{Y: 0xd0}},
		{on, color.Black},
	} {
		if len(set.xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(set.xys)
		if err != nil {
			return err
		}
		s.GlyphStyle = draw.GlyphStyle{Color: set.color, Radius: vg.Points(5), Shape: draw.CircleGlyph{}}
		matrix.Add(s)
	}
	if len(ins) != 0 {
		matrix.NominalX(make([]string, len(ins))...)
	}
	matrix.NominalY(filter.Filters[:]...)

	return saveStack([]*plot.Plot{bars, matrix}, 8*vg.Inch, 6*vg.Inch, path)
}

// saveStack draws plots in equal height rows and writes them to path and
// its SVG sibling.
func saveStack(ps []*plot.Plot, w, h vg.Length, path string) error {
	t := draw.Tiles{Rows: len(ps), Cols: 1, PadY: vg.Millimeter}
	return saveTiles(w, h, path, func(dc draw.Canvas) {
		for i, p := range ps {
			p.Draw(t.At(dc, 0, i))
		}
	})
}

// saveTiles renders fn onto a canvas of the given size for each output
// file of path.
func saveTiles(w, h vg.Length, path string, fn func(draw.Canvas)) error {
	for _, f := range paths(path) {
		c, err := draw.NewFormattedCanvas(w, h, formatOf(f))
		if err != nil {
			return err
		}
		fn(draw.New(c))
		if err := writeCanvas(c, f); err != nil {
			return err
		}
	}
	return nil
}

// formatOf returns the image format named by the extension of path.
func formatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func writeCanvas(c vg.CanvasWriterTo, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	_, err = c.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}
