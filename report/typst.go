// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"errors"
	"os/exec"

	"github.com/biogo/external"
)

// ErrMissingInput is returned when a Typst command has no input document.
var ErrMissingInput = errors.New("report: missing typst input")

// Typst compiles a Typst document.
//
// Usage: typst compile [--root <dir>] [--format <fmt>] <input> [output]
type Typst struct {
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}typst{{end}}"`
	Sub string `buildarg:"{{if .}}{{.}}{{else}}compile{{end}}"`

	// Root is the project root that file access is confined to.
	Root string `buildarg:"{{if .}}--root{{split}}{{.}}{{end}}"`

	// Format is the output format, one of pdf, png or svg.
	Format string `buildarg:"{{if .}}--format{{split}}{{.}}{{end}}"`

	// InFile is the document to compile and OutFile the
	// optional output path.
	InFile  string `buildarg:"{{.}}"`
	OutFile string `buildarg:"{{if .}}{{.}}{{end}}"`
}

// BuildCommand returns an exec.Cmd built from the parameters in t.
func (t Typst) BuildCommand() (*exec.Cmd, error) {
	if t.InFile == "" {
		return nil, ErrMissingInput
	}
	cl := external.Must(external.Build(t))
	return exec.Command(cl[0], cl[1:]...), nil
}
