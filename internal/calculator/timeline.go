package calculator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"plotbook/internal/domain"
)

// TimelineParams are the inputs of a plot payment timeline.
// DPAmount is a percentage of NetTotal when DPType is percent, otherwise an
// absolute amount.
type TimelineParams struct {
	NetTotal        float64
	DPType          domain.DownPaymentType
	DPAmount        float64
	DPWindow        domain.DurationWindow
	TotalWindow     domain.DurationWindow
	NumInstallments float64
	StartDate       domain.Date
}

// ParamsFromDeal rebuilds the timeline inputs saved on a plot.
func ParamsFromDeal(netTotal float64, s *domain.PlotDealState) TimelineParams {
	return TimelineParams{
		NetTotal:        netTotal,
		DPType:          s.DPType,
		DPAmount:        s.DPAmount,
		DPWindow:        s.DPDuration,
		TotalWindow:     s.TotalDuration,
		NumInstallments: s.NumInstallments,
		StartDate:       s.StartDate,
	}
}

// DownPaymentValue resolves the down payment rule to an amount.
func DownPaymentValue(p TimelineParams) float64 {
	if p.DPType == domain.DownPaymentPercent {
		return roundHalfUp(p.NetTotal * p.DPAmount / 100)
	}
	return p.DPAmount
}

// BuildTimeline generates the dated installment schedule of a plot. The same
// params always produce the same schedule.
func BuildTimeline(p TimelineParams) []domain.PaymentInstallment {
	dpValue := DownPaymentValue(p)
	balance := p.NetTotal - dpValue
	dpDue := p.DPWindow.From(p.StartDate)
	end := p.TotalWindow.From(p.StartDate)
	n := ClampInstallments(p.NumInstallments)

	if dpValue == 0 && n == 0 {
		return []domain.PaymentInstallment{
			pendingRow("full", "Full Payment", p.StartDate, p.NetTotal),
		}
	}

	schedule := []domain.PaymentInstallment{
		pendingRow("dp", "Down Payment", dpDue, dpValue),
	}

	switch {
	case n > 0:
		count := int(math.Ceil(n))
		step := end.Sub(dpDue.Time) / time.Duration(count)
		per := roundHalfUp(balance / n)
		running := balance
		for i := 1; i <= count; i++ {
			due := end
			amount := running
			if i < count {
				due = domain.DateOf(dpDue.Add(step * time.Duration(i)))
				amount = per
			}
			running -= amount
			schedule = append(schedule, pendingRow(
				fmt.Sprintf("inst-%d", i), fmt.Sprintf("Installment %d", i), due, amount))
		}
	case balance > 0:
		schedule = append(schedule, pendingRow("final", "Final Payment", end, balance))
	}

	return schedule
}

func pendingRow(id, label string, due domain.Date, amount float64) domain.PaymentInstallment {
	return domain.PaymentInstallment{
		ID:             id,
		Label:          label,
		DueDate:        due,
		ExpectedAmount: amount,
	}
}

// PaymentInput records an actual payment against a row. A nil PaidAmount
// means the expected amount was paid in full.
type PaymentInput struct {
	PaidAmount  *float64
	PaymentDate domain.Date
	PaymentMode domain.PaymentMode
	BankName    string
	RefNumber   string
	Remarks     string
}

// ConfirmPayment marks row index as paid and reallocates any difference.
// An underpayment inserts a "(Balance)" row due at endDate right after the
// row; an overpayment is absorbed by the following unpaid rows, none of which
// drops below zero. The input schedule is not modified.
func ConfirmPayment(schedule []domain.PaymentInstallment, index int, in PaymentInput, endDate domain.Date) ([]domain.PaymentInstallment, error) {
	if index < 0 || index >= len(schedule) {
		return nil, domain.ErrInstallmentNotFound
	}
	if schedule[index].IsPaid {
		return nil, domain.ErrInstallmentAlreadyPaid
	}

	out := cloneSchedule(schedule)
	row := &out[index]

	actualPaid := row.ExpectedAmount
	if in.PaidAmount != nil {
		actualPaid = *in.PaidAmount
	}
	remaining := row.ExpectedAmount - actualPaid

	row.IsPaid = true
	row.PaidAmount = actualPaid
	if !in.PaymentDate.IsZero() {
		d := in.PaymentDate
		row.PaymentDate = &d
	}
	row.PaymentMode = in.PaymentMode
	row.BankName = in.BankName
	row.RefNumber = in.RefNumber
	row.Remarks = in.Remarks

	switch {
	case remaining > 0:
		balanceRow := pendingRow(
			fmt.Sprintf("%s-bal-%d", row.ID, len(out)),
			row.Label+" (Balance)",
			endDate,
			remaining,
		)
		balanceRow.IsInterim = true
		out = append(out[:index+1], append([]domain.PaymentInstallment{balanceRow}, out[index+1:]...)...)
	case remaining < 0:
		excess := -remaining
		for j := index + 1; j < len(out) && excess > 0; j++ {
			if out[j].IsPaid || out[j].ExpectedAmount <= 0 {
				continue
			}
			absorbed := math.Min(excess, out[j].ExpectedAmount)
			out[j].ExpectedAmount -= absorbed
			excess -= absorbed
		}
	}

	return out, nil
}

// UndoPayment returns a paid row to pending. Balance rows and reductions made
// when the payment was confirmed are left as they are.
func UndoPayment(schedule []domain.PaymentInstallment, index int) ([]domain.PaymentInstallment, error) {
	if index < 0 || index >= len(schedule) {
		return nil, domain.ErrInstallmentNotFound
	}
	if !schedule[index].IsPaid {
		return nil, domain.ErrInstallmentNotPaid
	}
	out := cloneSchedule(schedule)
	out[index].IsPaid = false
	return out, nil
}

// InstallmentEdit is a partial update of a single row. Nil fields are kept.
type InstallmentEdit struct {
	Label          *string
	DueDate        *domain.Date
	ExpectedAmount *float64
	PaymentMode    *domain.PaymentMode
}

// EditInstallment applies edit to row index. Amounts of paid rows are frozen.
// Changing a due date re-sorts the schedule by due date.
func EditInstallment(schedule []domain.PaymentInstallment, index int, edit InstallmentEdit) ([]domain.PaymentInstallment, error) {
	if index < 0 || index >= len(schedule) {
		return nil, domain.ErrInstallmentNotFound
	}
	if edit.ExpectedAmount != nil {
		if schedule[index].IsPaid {
			return nil, domain.ErrInstallmentFrozen
		}
		if *edit.ExpectedAmount < 0 {
			return nil, domain.ErrNegativeAmount
		}
	}

	out := cloneSchedule(schedule)
	row := &out[index]
	if edit.Label != nil {
		row.Label = *edit.Label
	}
	if edit.ExpectedAmount != nil {
		row.ExpectedAmount = *edit.ExpectedAmount
	}
	if edit.PaymentMode != nil {
		row.PaymentMode = *edit.PaymentMode
	}
	if edit.DueDate != nil {
		row.DueDate = *edit.DueDate
		SortByDueDate(out)
	}
	return out, nil
}

// DeleteInstallment removes row index.
func DeleteInstallment(schedule []domain.PaymentInstallment, index int) ([]domain.PaymentInstallment, error) {
	if index < 0 || index >= len(schedule) {
		return nil, domain.ErrInstallmentNotFound
	}
	out := make([]domain.PaymentInstallment, 0, len(schedule)-1)
	out = append(out, schedule[:index]...)
	out = append(out, schedule[index+1:]...)
	return out, nil
}

// SortByDueDate orders rows by due date, keeping the relative order of rows
// due on the same day.
func SortByDueDate(schedule []domain.PaymentInstallment) {
	sort.SliceStable(schedule, func(i, j int) bool {
		return schedule[i].DueDate.Before(schedule[j].DueDate)
	})
}

// SummarizeTimeline totals a schedule.
func SummarizeTimeline(schedule []domain.PaymentInstallment) domain.TimelineSummary {
	var s domain.TimelineSummary
	for i := range schedule {
		row := &schedule[i]
		if !row.IsInterim {
			s.TotalExpected += row.ExpectedAmount
		}
		if row.IsPaid {
			s.TotalPaid += row.PaidAmount
			s.PaidRows++
			continue
		}
		s.Outstanding += row.ExpectedAmount
		s.PendingRows++
		if s.NextDue == nil {
			next := *row
			s.NextDue = &next
		}
	}
	return s
}

func cloneSchedule(schedule []domain.PaymentInstallment) []domain.PaymentInstallment {
	out := make([]domain.PaymentInstallment, len(schedule), len(schedule)+1)
	copy(out, schedule)
	return out
}
