// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/biogo/pipereport/filter"
)

// maxSheetName is the longest sheet name a workbook accepts.
const maxSheetName = 31

// WriteWorkbook writes each table to its own sheet of a new workbook at
// path. Sheets are named by table and appear in argument order.
func WriteWorkbook(path string, tables ...Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to write to %s", path)
	}
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	for i, t := range tables {
		name := t.Name
		if len(name) > maxSheetName {
			name = name[:maxSheetName]
		}
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, t); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
	}
	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t Table) error {
	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = cellValue(v)
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return err
		}
	}
	return nil
}

// cellValue returns v in a form the workbook stores natively. Null values
// become empty cells.
func cellValue(v interface{}) interface{} {
	switch v := v.(type) {
	case filter.NullInt:
		if !v.Valid {
			return nil
		}
		return v.Value
	case filter.NullFloat:
		if !v.Valid {
			return nil
		}
		return v.Value
	default:
		return v
	}
}
