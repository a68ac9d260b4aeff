// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plots renders the diagnostic plots of a pipeline report.
//
// Every plot is written to the named file, in the format given by its
// extension, and to an SVG file alongside it.
package plots

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"
)

// paths returns path and its SVG sibling, or path alone when it already
// names an SVG file.
func paths(path string) []string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".svg") {
		return []string{path}
	}
	return []string{path, strings.TrimSuffix(path, ext) + ".svg"}
}

// save writes p at the given size to path and its SVG sibling.
func save(p *plot.Plot, w, h vg.Length, path string) error {
	for _, f := range paths(path) {
		if err := p.Save(w, h, f); err != nil {
			return fmt.Errorf("failed to save plot %s: %w", f, err)
		}
	}
	return nil
}

// lossColors maps percent lost onto a diverging colour scale.
type lossColors struct {
	cm palette.ColorMap
}

func newLossColors() lossColors {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(100)
	return lossColors{cm: cm}
}

// At returns the colour of pct, clamped to [0, 100].
func (l lossColors) At(pct float64) color.Color {
	if math.IsNaN(pct) {
		pct = l.cm.Min()
	}
	switch {
	case pct < l.cm.Min():
		pct = l.cm.Min()
	case pct > l.cm.Max():
		pct = l.cm.Max()
	}
	c, err := l.cm.At(pct)
	if err != nil {
		return color.Gray{Y: 0x80}
	}
	return c
}
