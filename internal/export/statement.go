package export

import (
	"plotbook/internal/calculator"
	"plotbook/internal/domain"
)

// Statement is everything a plot statement shows.
type Statement struct {
	ProjectName string
	VillageName string
	Plot        domain.Plot
	Schedule    []domain.PaymentInstallment
	Summary     domain.TimelineSummary
	GeneratedOn domain.Date
}

// statementColumns is the schedule table header shared by every format.
var statementColumns = []string{
	"#",
	"Particulars",
	"Due Date",
	"Expected",
	"Paid",
	"Status",
	"Paid On",
	"Mode",
	"Bank",
	"Reference",
	"Remarks",
}

func installmentStatus(row *domain.PaymentInstallment) string {
	if row.IsPaid {
		return "Paid"
	}
	return "Pending"
}

func paidAmount(row *domain.PaymentInstallment) float64 {
	if row.IsPaid {
		return row.PaidAmount
	}
	return 0
}

// statementHeader is the key/value block above the schedule table.
func statementHeader(s *Statement, opts Options) [][2]string {
	p := &s.Plot
	return [][2]string{
		{"Project", orDash(s.ProjectName)},
		{"Village", orDash(s.VillageName)},
		{"Plot No.", orDash(p.PlotNumber)},
		{"Customer", orDash(p.CustomerName)},
		{"Phone", orDash(p.CustomerPhone)},
		{"Area (vaar)", formatQuantity(p.AreaVaar, 2)},
		{"Area (sq. mt)", formatQuantity(calculator.SqMtFromVaar(p.AreaVaar), 2)},
		{"Land Rate", opts.FormatMoney(p.CustomLandRate)},
		{"Development Rate", opts.FormatMoney(p.DevRate)},
		{"Discount", opts.FormatMoney(p.Discount)},
		{"Net Total", opts.FormatMoney(p.NetTotal())},
	}
}

// statementTotals is the key/value block below the schedule table.
func statementTotals(s *Statement, opts Options) [][2]string {
	next := "-"
	if s.Summary.NextDue != nil {
		next = s.Summary.NextDue.Label + " on " + FormatDate(s.Summary.NextDue.DueDate)
	}
	return [][2]string{
		{"Total Expected", opts.FormatMoney(s.Summary.TotalExpected)},
		{"Total Received", opts.FormatMoney(s.Summary.TotalPaid)},
		{"Outstanding", opts.FormatMoney(s.Summary.Outstanding)},
		{"Next Due", next},
	}
}
