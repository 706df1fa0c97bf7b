package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"plotbook/internal/calculator"
	"plotbook/internal/domain"
	"plotbook/internal/handler"
	"plotbook/internal/service"
	"plotbook/mocks"
)

func newTimelineHandler() (*handler.TimelineHandler, *mocks.MockPlotService) {
	svc := new(mocks.MockPlotService)
	return handler.NewTimelineHandler(svc), svc
}

func installmentParams(index string) gin.Params {
	return append(plotParams("1", "plot-1"), gin.Param{Key: "index", Value: index})
}

func TestTimelineHandler_Preview(t *testing.T) {
	h, svc := newTimelineHandler()
	svc.On("PreviewTimeline", mock.MatchedBy(func(in *service.PreviewTimelineInput) bool {
		return in.NetTotal == 1_000_000 &&
			in.DPType == domain.DownPaymentPercent &&
			in.DPAmount == 25 &&
			in.DPDuration == domain.DurationWindow{Value: 30, Unit: domain.DurationDays} &&
			in.NumInstallments == 3 &&
			in.StartDate == domain.NewDate(2024, time.January, 1)
	})).Return(&domain.PlotTimeline{NetTotal: 1_000_000})

	body := `{"net_total": "10,00,000", "start_date": "2024-01-01", "dp_type": "percent", "dp_amount": 25,
		"dp_duration": {"value": 30, "unit": "days"}, "total_duration": {"value": 12, "unit": "months"},
		"num_installments": "3"}`
	c, w := newContext(http.MethodPost, "/api/v1/timelines/preview", body, nil)

	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTimelineHandler_Preview_CoercesWindows(t *testing.T) {
	tests := []struct {
		name      string
		dp, total string
		wantDP    domain.DurationWindow
		wantTotal domain.DurationWindow
	}{
		{
			name:      "numeric strings",
			dp:        `{"value": "30", "unit": "days"}`,
			total:     `{"value": "12", "unit": "months"}`,
			wantDP:    domain.DurationWindow{Value: 30, Unit: domain.DurationDays},
			wantTotal: domain.DurationWindow{Value: 12, Unit: domain.DurationMonths},
		},
		{
			name:      "blank values",
			dp:        `{"value": "", "unit": "days"}`,
			total:     `{"value": null, "unit": "months"}`,
			wantDP:    domain.DurationWindow{Unit: domain.DurationDays},
			wantTotal: domain.DurationWindow{Unit: domain.DurationMonths},
		},
		{
			name:      "fractions truncate",
			dp:        `{"value": 1.5, "unit": "days"}`,
			total:     `{"value": "6.9", "unit": "months"}`,
			wantDP:    domain.DurationWindow{Value: 1, Unit: domain.DurationDays},
			wantTotal: domain.DurationWindow{Value: 6, Unit: domain.DurationMonths},
		},
		{
			name:      "blank window",
			dp:        `""`,
			total:     `null`,
			wantDP:    domain.DurationWindow{},
			wantTotal: domain.DurationWindow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTimelineHandler()
			svc.On("PreviewTimeline", mock.MatchedBy(func(in *service.PreviewTimelineInput) bool {
				return in.DPDuration == tt.wantDP && in.TotalDuration == tt.wantTotal
			})).Return(&domain.PlotTimeline{})

			body := `{"net_total": 1000, "dp_duration": ` + tt.dp + `, "total_duration": ` + tt.total + `}`
			c, w := newContext(http.MethodPost, "/api/v1/timelines/preview", body, nil)

			h.Preview(c)

			assert.Equal(t, http.StatusOK, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestTimelineHandler_Build_Conflict(t *testing.T) {
	h, svc := newTimelineHandler()
	svc.On("BuildTimeline", mock.Anything, int64(1), "plot-1", mock.MatchedBy(func(in *service.TimelineInput) bool {
		return !in.Force
	})).Return(nil, domain.ErrScheduleHasPayments)

	c, w := newContext(http.MethodPost, "/api/v1/projects/1/plots/plot-1/timeline", `{"dp_amount": 10}`, plotParams("1", "plot-1"))

	h.Build(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SCHEDULE_HAS_PAYMENTS", decode(t, w).Error.Code)
}

func TestTimelineHandler_Build_Force(t *testing.T) {
	h, svc := newTimelineHandler()
	svc.On("BuildTimeline", mock.Anything, int64(1), "plot-1", mock.MatchedBy(func(in *service.TimelineInput) bool {
		return in.Force
	})).Return(&domain.PlotTimeline{PlotID: "plot-1"}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/projects/1/plots/plot-1/timeline", `{"force": true}`, plotParams("1", "plot-1"))

	h.Build(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimelineHandler_Get_NotBuilt(t *testing.T) {
	h, svc := newTimelineHandler()
	svc.On("GetTimeline", mock.Anything, int64(1), "plot-1").Return(nil, domain.ErrTimelineNotBuilt)

	c, w := newContext(http.MethodGet, "/api/v1/projects/1/plots/plot-1/timeline", nil, plotParams("1", "plot-1"))

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TIMELINE_NOT_BUILT", decode(t, w).Error.Code)
}

func TestTimelineHandler_ConfirmPayment(t *testing.T) {
	h, svc := newTimelineHandler()
	svc.On("ConfirmPayment", mock.Anything, int64(1), "plot-1", 2, mock.MatchedBy(func(in *calculator.PaymentInput) bool {
		return in.PaidAmount != nil && *in.PaidAmount == 200_000 &&
			in.PaymentDate == domain.NewDate(2024, time.February, 3) &&
			in.PaymentMode == domain.PaymentModeCheque &&
			in.BankName == "HDFC"
	})).Return(&domain.PlotTimeline{PlotID: "plot-1"}, nil)

	body := `{"paid_amount": "2,00,000", "payment_date": "2024-02-03", "payment_mode": "cheque", "bank_name": "HDFC"}`
	c, w := newContext(http.MethodPost, "/x", body, installmentParams("2"))

	h.ConfirmPayment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTimelineHandler_ConfirmPayment_BlankAmountMeansFull(t *testing.T) {
	h, svc := newTimelineHandler()
	svc.On("ConfirmPayment", mock.Anything, int64(1), "plot-1", 0, mock.MatchedBy(func(in *calculator.PaymentInput) bool {
		return in.PaidAmount == nil && in.PaymentDate.IsZero()
	})).Return(&domain.PlotTimeline{}, nil)

	c, w := newContext(http.MethodPost, "/x", `{"paid_amount": ""}`, installmentParams("0"))

	h.ConfirmPayment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTimelineHandler_ConfirmPayment_EmptyBody(t *testing.T) {
	h, svc := newTimelineHandler()
	svc.On("ConfirmPayment", mock.Anything, int64(1), "plot-1", 0, mock.MatchedBy(func(in *calculator.PaymentInput) bool {
		return in.PaidAmount == nil && in.PaymentDate.IsZero() && in.PaymentMode == ""
	})).Return(&domain.PlotTimeline{}, nil)

	c, w := newContext(http.MethodPost, "/x", nil, installmentParams("0"))

	h.ConfirmPayment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTimelineHandler_ConfirmPayment_MalformedBody(t *testing.T) {
	h, svc := newTimelineHandler()

	c, w := newContext(http.MethodPost, "/x", `{"paid_amount":`, installmentParams("0"))

	h.ConfirmPayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ConfirmPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTimelineHandler_InvalidIndex(t *testing.T) {
	h, svc := newTimelineHandler()

	for _, idx := range []string{"-1", "two"} {
		c, w := newContext(http.MethodPost, "/x", `{}`, installmentParams(idx))
		h.UndoPayment(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INDEX", decode(t, w).Error.Code)
	}
	svc.AssertNotCalled(t, "UndoPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTimelineHandler_UndoPayment_NotPaid(t *testing.T) {
	h, svc := newTimelineHandler()
	svc.On("UndoPayment", mock.Anything, int64(1), "plot-1", 1).Return(nil, domain.ErrInstallmentNotPaid)

	c, w := newContext(http.MethodPost, "/x", nil, installmentParams("1"))

	h.UndoPayment(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTimelineHandler_EditInstallment(t *testing.T) {
	h, svc := newTimelineHandler()
	svc.On("EditInstallment", mock.Anything, int64(1), "plot-1", 1, mock.MatchedBy(func(e *calculator.InstallmentEdit) bool {
		return e.Label != nil && *e.Label == "Possession" &&
			e.DueDate == nil &&
			e.ExpectedAmount != nil && *e.ExpectedAmount == 300_000 &&
			e.PaymentMode == nil
	})).Return(&domain.PlotTimeline{}, nil)

	body := `{"label": "Possession", "due_date": "", "expected_amount": "300000"}`
	c, w := newContext(http.MethodPatch, "/x", body, installmentParams("1"))

	h.EditInstallment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTimelineHandler_EditInstallment_Frozen(t *testing.T) {
	h, svc := newTimelineHandler()
	svc.On("EditInstallment", mock.Anything, int64(1), "plot-1", 0, mock.Anything).Return(nil, domain.ErrInstallmentFrozen)

	c, w := newContext(http.MethodPatch, "/x", `{"expected_amount": 1}`, installmentParams("0"))

	h.EditInstallment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INSTALLMENT_FROZEN", decode(t, w).Error.Code)
}

func TestTimelineHandler_DeleteInstallment(t *testing.T) {
	h, svc := newTimelineHandler()
	svc.On("DeleteInstallment", mock.Anything, int64(1), "plot-1", 3).
		Return(&domain.PlotTimeline{Schedule: []domain.PaymentInstallment{}}, nil)

	c, w := newContext(http.MethodDelete, "/x", nil, installmentParams("3"))

	h.DeleteInstallment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
