// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/biogo/pipereport/attrition"
)

// LabelPctLost is the percent lost at and above which a file is labelled
// in the sequence count bubble plot.
const LabelPctLost = 60

// SeqCountBubble plots the sequence count of each file before and after the
// pipeline run on logarithmic axes. Glyph size and colour show the percent
// lost. Files with no sequences at either point cannot be placed on the
// axes and are omitted.
func SeqCountBubble(rows []attrition.Row, path string) error {
	p := plot.New()
	p.X.Label.Text = "Sequence Count Pre-Pipeline"
	p.Y.Label.Text = "Sequence Count Post-Pipeline"
	p.Add(plotter.NewGrid())

	var (
		xys    plotter.XYs
		pct    []float64
		lxys   plotter.XYs
		labels []string
	)
	for _, r := range rows {
		if r.Pre == 0 || r.Post == 0 {
			continue
		}
		xy := plotter.XY{X: float64(r.Pre), Y: float64(r.Post)}
		xys = append(xys, xy)
		pct = append(pct, r.PctLost)
		if r.PctLost >= LabelPctLost {
			lxys = append(lxys, xy)
			labels = append(labels, r.Filename)
		}
	}

	if len(xys) != 0 {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{}
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{}

		s, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		colors := newLossColors()
		s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  colors.At(pct[i]),
				Radius: bubbleRadius(pct[i]),
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(s)
		widenLog(&p.X)
		widenLog(&p.Y)
	}
	if len(lxys) != 0 {
		l, err := plotter.NewLabels(plotter.XYLabels{XYs: lxys, Labels: labels})
		if err != nil {
			return err
		}
		l.XOffset, l.YOffset = vg.Points(4), vg.Points(4)
		p.Add(l)
	}

	return save(p, 8*vg.Inch, 6*vg.Inch, path)
}

// widenLog spreads a degenerate axis range over a decade so that it stays
// positive on a log scale.
func widenLog(a *plot.Axis) {
	if a.Min == a.Max {
		a.Min /= math.Sqrt(10)
		a.Max *= math.Sqrt(10)
	}
}

// bubbleRadius returns a glyph radius proportional to the square root of
// pct so that glyph area tracks percent lost.
func bubbleRadius(pct float64) vg.Length {
	if pct < 0 {
		pct = 0
	}
	return vg.Points(2 + math.Sqrt(pct))
}

// SeqCountBar plots one horizontal bar per file showing its sequence count
// after the pipeline run, ordered by that count and coloured by percent
// lost.
func SeqCountBar(rows []attrition.Row, path string) error {
	rows = append([]attrition.Row(nil), rows...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Post < rows[j].Post })

	p := plot.New()
	p.X.Label.Text = "Sequence Count"
	p.Y.Label.Text = "Sample"

	height := 11.69 * vg.Inch
	width := barWidth(len(rows), height)
	colors := newLossColors()
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Filename
		b, err := plotter.NewBarChart(plotter.Values{float64(r.Post)}, width)
		if err != nil {
			return err
		}
		b.Horizontal = true
		b.XMin = float64(i)
		b.Color = colors.At(r.PctLost)
		b.LineStyle.Width = 0
		p.Add(b)
	}
	if len(names) != 0 {
		p.NominalY(names...)
	}

	return save(p, 8.27*vg.Inch, height, path)
}

// barWidth returns a bar thickness that fits n bars into a plot of the
// given height.
func barWidth(n int, height vg.Length) vg.Length {
	if n == 0 {
		return vg.Points(1)
	}
	w := height / vg.Length(2*n)
	if w > vg.Points(20) {
		w = vg.Points(20)
	}
	return w
}
