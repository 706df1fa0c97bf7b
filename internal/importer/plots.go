// Package importer reads plot registers kept in spreadsheets.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"plotbook/internal/domain"
	"plotbook/internal/service"
)

// Column identifies a recognised column of a plot register.
type Column int

const (
	ColPlotNumber Column = iota
	ColArea
	ColLandRate
	ColDevRate
	ColDiscount
	ColCustomer
	ColPhone
	ColStatus
)

// headerAliases maps normalised header text to a column.
var headerAliases = map[string]Column{
	"plot":           ColPlotNumber,
	"plot no":        ColPlotNumber,
	"plot number":    ColPlotNumber,
	"area":           ColArea,
	"area vaar":      ColArea,
	"area (vaar)":    ColArea,
	"land rate":      ColLandRate,
	"rate":           ColLandRate,
	"dev rate":       ColDevRate,
	"development":    ColDevRate,
	"discount":       ColDiscount,
	"customer":       ColCustomer,
	"customer name":  ColCustomer,
	"phone":          ColPhone,
	"customer phone": ColPhone,
	"status":         ColStatus,
}

// RowError reports a sheet row that could not be read.
type RowError struct {
	Row int
	Err string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Err)
}

// PlotRow is a parsed sheet row with its 1-based row number.
type PlotRow struct {
	Row   int
	Input service.PlotInput
}

// ReadPlots parses the first sheet of an XLSX plot register. The first row
// holds headers; a plot number column is required. Blank rate cells are
// left unset so the project's rates apply. Blank rows are skipped.
func ReadPlots(r io.Reader) ([]PlotRow, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet is empty")
	}

	cols := mapHeader(rows[0])
	if _, ok := cols[ColPlotNumber]; !ok {
		return nil, nil, fmt.Errorf("no plot number column in header")
	}

	var plots []PlotRow
	var rowErrs []RowError
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		in, err := parseRow(row, cols)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Err: err.Error()})
			continue
		}
		plots = append(plots, PlotRow{Row: i + 1, Input: in})
	}
	return plots, rowErrs, nil
}

func mapHeader(header []string) map[Column]int {
	cols := make(map[Column]int)
	for i, h := range header {
		key := strings.ToLower(strings.Join(strings.Fields(h), " "))
		if col, ok := headerAliases[key]; ok {
			if _, seen := cols[col]; !seen {
				cols[col] = i
			}
		}
	}
	return cols
}

func parseRow(row []string, cols map[Column]int) (service.PlotInput, error) {
	cell := func(c Column) string {
		i, ok := cols[c]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	in := service.PlotInput{
		PlotNumber:    cell(ColPlotNumber),
		AreaVaar:      domain.ParseOptionalNumber(cell(ColArea)),
		Discount:      domain.ParseOptionalNumber(cell(ColDiscount)),
		CustomerName:  cell(ColCustomer),
		CustomerPhone: cell(ColPhone),
		Status:        domain.PlotStatus(strings.ToLower(cell(ColStatus))),
	}
	if in.PlotNumber == "" {
		return in, fmt.Errorf("plot number is blank")
	}
	if in.Status != "" && !domain.ValidPlotStatuses[in.Status] {
		return in, fmt.Errorf("unknown status %q", in.Status)
	}
	if v := cell(ColLandRate); v != "" {
		rate := domain.ParseOptionalNumber(v)
		in.CustomLandRate = &rate
	}
	if v := cell(ColDevRate); v != "" {
		rate := domain.ParseOptionalNumber(v)
		in.DevRate = &rate
	}
	return in, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
