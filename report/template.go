// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// DocumentFile is the name of the Typst source within a report directory.
const DocumentFile = "report.typ"

//go:embed templates/report.typ.tmpl
var templates embed.FS

var document = template.Must(template.ParseFS(templates, "templates/report.typ.tmpl"))

// WriteTemplate writes the Typst source of the report for d into dir and
// returns its path. The document reads every value it shows, d included,
// from DataFile in the same directory.
func WriteTemplate(dir string, d *Data) (string, error) {
	path := filepath.Join(dir, DocumentFile)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	err = document.Execute(f, struct{ DataFile string }{DataFile: DataFile})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write report document: %w", err)
	}
	return path, nil
}
