package importer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"Airflow/internal/calc/fan"
)

var sheetNames = map[fan.Role]string{
	fan.RoleIntake:   "Intake",
	fan.RoleExhaust:  "Exhaust",
	fan.RoleHardware: "Hardware",
}

// RowError points at a spreadsheet row that could not be read.
type RowError struct {
	Sheet string `json:"sheet"`
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type Workbook struct {
	Layout fan.Layout `json:"layout"`
	Errors []RowError `json:"errors,omitempty"`
}

// Read loads fans from a workbook. Sheets named Intake, Exhaust and Hardware
// map to groups; otherwise the first sheet is split positionally, counting
// rejected rows but not blank ones. Row 1 is a header.
func Read(f *excelize.File) (Workbook, error) {
	var wb Workbook
	bySheet := map[fan.Role]string{}
	for _, name := range f.GetSheetList() {
		for role, want := range sheetNames {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				bySheet[role] = name
			}
		}
	}

	if len(bySheet) == 0 {
		sheet := f.GetSheetName(0)
		if sheet == "" {
			return Workbook{}, fmt.Errorf("workbook has no sheets")
		}
		cells, err := readSheet(f, sheet)
		if err != nil {
			return Workbook{}, err
		}
		// A row that fails still holds its position, so later rows keep their group.
		wb.Layout = fan.Partition(nil)
		for i, c := range cells {
			if c.err != nil {
				wb.Errors = append(wb.Errors, *c.err)
				continue
			}
			role := fan.RoleAt(i)
			if err := wb.Layout.SetGroup(role, append(wb.Layout.Group(role), c.rec)); err != nil {
				return Workbook{}, err
			}
		}
		return wb, nil
	}

	wb.Layout = fan.Partition(nil)
	for _, role := range fan.Roles {
		sheet, ok := bySheet[role]
		if !ok {
			continue
		}
		cells, err := readSheet(f, sheet)
		if err != nil {
			return Workbook{}, err
		}
		records := make([]fan.Record, 0, len(cells))
		for _, c := range cells {
			if c.err != nil {
				wb.Errors = append(wb.Errors, *c.err)
				continue
			}
			records = append(records, c.rec)
		}
		if err := wb.Layout.SetGroup(role, records); err != nil {
			return Workbook{}, err
		}
	}
	return wb, nil
}

// sheetRow is one non-blank data row: a record, or the reason it was rejected.
type sheetRow struct {
	rec fan.Record
	err *RowError
}

func readSheet(f *excelize.File, sheet string) ([]sheetRow, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	out := make([]sheetRow, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		for len(row) < len(fan.Columns) {
			row = append(row, "")
		}
		rec, err := fan.ParseRow(row)
		if err != nil {
			out = append(out, sheetRow{err: &RowError{Sheet: sheet, Row: i + 1, Error: err.Error()}})
			continue
		}
		out = append(out, sheetRow{rec: rec})
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Export writes a layout as one sheet per group, in the format Read accepts.
func Export(l fan.Layout) (*excelize.File, error) {
	f := excelize.NewFile()
	header := make([]any, len(fan.Columns))
	for i, c := range fan.Columns {
		header[i] = c
	}
	for _, role := range fan.Roles {
		sheet := sheetNames[role]
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, err
		}
		for i, rec := range l.Group(role) {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, err
			}
			row := rec.Row()
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, err
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}
