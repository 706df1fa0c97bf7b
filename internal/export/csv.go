package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"plotbook/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first for Excel on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// StatementCSV writes the statement schedule as CSV with a leading BOM and a
// trailing totals row.
func StatementCSV(w io.Writer, s *Statement) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("%w: csv bom: %v", domain.ErrRenderFailed, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(statementColumns); err != nil {
		return fmt.Errorf("%w: csv header: %v", domain.ErrRenderFailed, err)
	}
	for i := range s.Schedule {
		if err := cw.Write(installmentToRow(i, &s.Schedule[i])); err != nil {
			return fmt.Errorf("%w: csv row: %v", domain.ErrRenderFailed, err)
		}
	}

	total := make([]string, len(statementColumns))
	total[1] = "Total"
	total[3] = formatMoneyPlain(s.Summary.TotalExpected)
	total[4] = formatMoneyPlain(s.Summary.TotalPaid)
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("%w: csv total: %v", domain.ErrRenderFailed, err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: csv flush: %v", domain.ErrRenderFailed, err)
	}
	return nil
}

func installmentToRow(i int, row *domain.PaymentInstallment) []string {
	return []string{
		strconv.Itoa(i + 1),
		row.Label,
		row.DueDate.String(),
		formatMoneyPlain(row.ExpectedAmount),
		formatMoneyPlain(paidAmount(row)),
		installmentStatus(row),
		paymentDateString(row.PaymentDate),
		string(row.PaymentMode),
		row.BankName,
		row.RefNumber,
		row.Remarks,
	}
}

// formatMoneyPlain keeps CSV amounts machine-readable: two decimals, no grouping.
func formatMoneyPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
