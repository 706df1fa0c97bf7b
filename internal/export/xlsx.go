package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"plotbook/internal/domain"
)

const (
	scheduleSheet = "Schedule"
	summarySheet  = "Summary"
	amountFormat  = "#,##0.00"
)

// StatementXLSX renders a plot statement workbook with a Schedule sheet and a
// Summary sheet.
func StatementXLSX(w io.Writer, s *Statement, opts Options) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", scheduleSheet); err != nil {
		return renderErr("rename sheet", err)
	}
	if err := writeScheduleSheet(f, s); err != nil {
		return err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return renderErr("add summary sheet", err)
	}
	if err := writeSummarySheet(f, s, opts); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return renderErr("write workbook", err)
	}
	return nil
}

func writeScheduleSheet(f *excelize.File, s *Statement) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return renderErr("header style", err)
	}
	fmtStr := amountFormat
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &fmtStr})
	if err != nil {
		return renderErr("amount style", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
		CustomNumFmt: &fmtStr,
	})
	if err != nil {
		return renderErr("total style", err)
	}

	for i, col := range statementColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(scheduleSheet, cell, col); err != nil {
			return renderErr("header cell", err)
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(statementColumns), 1)
	if err := f.SetCellStyle(scheduleSheet, "A1", lastCol, headerStyle); err != nil {
		return renderErr("header style", err)
	}

	for i := range s.Schedule {
		row := &s.Schedule[i]
		values := []interface{}{
			i + 1,
			row.Label,
			row.DueDate.String(),
			row.ExpectedAmount,
			paidAmount(row),
			installmentStatus(row),
			paymentDateString(row.PaymentDate),
			string(row.PaymentMode),
			row.BankName,
			row.RefNumber,
			row.Remarks,
		}
		if err := setRow(f, scheduleSheet, i+2, values); err != nil {
			return err
		}
	}

	totalRow := len(s.Schedule) + 2
	if err := setRow(f, scheduleSheet, totalRow, []interface{}{
		"", "Total", "", s.Summary.TotalExpected, s.Summary.TotalPaid,
	}); err != nil {
		return err
	}

	if len(s.Schedule) > 0 {
		from, _ := excelize.CoordinatesToCellName(4, 2)
		to, _ := excelize.CoordinatesToCellName(5, totalRow-1)
		if err := f.SetCellStyle(scheduleSheet, from, to, amountStyle); err != nil {
			return renderErr("amount style", err)
		}
	}
	from, _ := excelize.CoordinatesToCellName(1, totalRow)
	to, _ := excelize.CoordinatesToCellName(len(statementColumns), totalRow)
	if err := f.SetCellStyle(scheduleSheet, from, to, totalStyle); err != nil {
		return renderErr("total style", err)
	}

	if err := f.SetPanes(scheduleSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return renderErr("freeze header", err)
	}
	if err := f.SetColWidth(scheduleSheet, "B", "B", 24); err != nil {
		return renderErr("column width", err)
	}
	if err := f.SetColWidth(scheduleSheet, "C", "K", 14); err != nil {
		return renderErr("column width", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s *Statement, opts Options) error {
	pairs := append(statementHeader(s, opts), statementTotals(s, opts)...)
	for i, kv := range pairs {
		if err := setRow(f, summarySheet, i+1, []interface{}{kv[0], kv[1]}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 24); err != nil {
		return renderErr("column width", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return renderErr("write row", err)
	}
	return nil
}

func paymentDateString(d *domain.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func renderErr(step string, err error) error {
	return fmt.Errorf("%w: xlsx %s: %v", domain.ErrRenderFailed, step, err)
}
