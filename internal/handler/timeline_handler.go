package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"plotbook/internal/calculator"
	"plotbook/internal/domain"
	"plotbook/internal/service"
)

// TimelineHandler handles plot payment timeline endpoints.
type TimelineHandler struct {
	plotService service.PlotService
}

// NewTimelineHandler creates a new TimelineHandler.
func NewTimelineHandler(plotService service.PlotService) *TimelineHandler {
	return &TimelineHandler{plotService: plotService}
}

// Preview handles POST /api/v1/timelines/preview
// @Summary      Preview a payment timeline
// @Description  Generates a timeline for a net total without saving anything
// @Tags         timelines
// @Accept       json
// @Produce      json
// @Param        body body previewTimelineRequest true "Net total and payment plan"
// @Success      200 {object} APIResponse{data=domain.PlotTimeline}
// @Failure      400 {object} APIResponse
// @Router       /timelines/preview [post]
func (h *TimelineHandler) Preview(c *gin.Context) {
	var req previewTimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid timeline payload")
		return
	}

	RespondOK(c, h.plotService.PreviewTimeline(&service.PreviewTimelineInput{
		NetTotal:      req.NetTotal.Float(),
		TimelineInput: *req.toInput(),
	}))
}

// Get handles GET /api/v1/projects/:id/plots/:plotId/timeline
// @Summary      Get a plot's payment timeline
// @Tags         timelines
// @Produce      json
// @Param        id path int true "Project ID"
// @Param        plotId path string true "Plot ID"
// @Success      200 {object} APIResponse{data=domain.PlotTimeline}
// @Failure      404 {object} APIResponse
// @Router       /projects/{id}/plots/{plotId}/timeline [get]
func (h *TimelineHandler) Get(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	tl, err := h.plotService.GetTimeline(c.Request.Context(), id, c.Param("plotId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tl)
}

// Build handles POST /api/v1/projects/:id/plots/:plotId/timeline
// @Summary      Build a plot's payment timeline
// @Description  Replaces any existing timeline. Refused with 409 when payments are recorded, unless force is set.
// @Tags         timelines
// @Accept       json
// @Produce      json
// @Param        id path int true "Project ID"
// @Param        plotId path string true "Plot ID"
// @Param        body body timelineRequest true "Payment plan"
// @Success      200 {object} APIResponse{data=domain.PlotTimeline}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Router       /projects/{id}/plots/{plotId}/timeline [post]
func (h *TimelineHandler) Build(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req timelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid timeline payload")
		return
	}

	tl, err := h.plotService.BuildTimeline(c.Request.Context(), id, c.Param("plotId"), req.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tl)
}

// ConfirmPayment handles POST /api/v1/projects/:id/plots/:plotId/installments/:index/confirm
// @Summary      Confirm a payment
// @Description  A blank paid amount means the expected amount was paid in full
// @Tags         timelines
// @Accept       json
// @Produce      json
// @Param        id path int true "Project ID"
// @Param        plotId path string true "Plot ID"
// @Param        index path int true "Row index"
// @Param        body body confirmPaymentRequest true "Payment details"
// @Success      200 {object} APIResponse{data=domain.PlotTimeline}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Router       /projects/{id}/plots/{plotId}/installments/{index}/confirm [post]
func (h *TimelineHandler) ConfirmPayment(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}
	index, ok := parseInstallmentIndex(c)
	if !ok {
		return
	}

	// An empty body confirms the row as paid in full today.
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid payment payload")
		return
	}

	tl, err := h.plotService.ConfirmPayment(c.Request.Context(), id, c.Param("plotId"), index, &calculator.PaymentInput{
		PaidAmount:  req.PaidAmount.Ptr(),
		PaymentDate: req.PaymentDate,
		PaymentMode: req.PaymentMode,
		BankName:    req.BankName,
		RefNumber:   req.RefNumber,
		Remarks:     req.Remarks,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tl)
}

// UndoPayment handles POST /api/v1/projects/:id/plots/:plotId/installments/:index/undo
// @Summary      Undo a payment
// @Description  Clears the paid flag only. Balance rows and reallocations stay.
// @Tags         timelines
// @Produce      json
// @Param        id path int true "Project ID"
// @Param        plotId path string true "Plot ID"
// @Param        index path int true "Row index"
// @Success      200 {object} APIResponse{data=domain.PlotTimeline}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Router       /projects/{id}/plots/{plotId}/installments/{index}/undo [post]
func (h *TimelineHandler) UndoPayment(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}
	index, ok := parseInstallmentIndex(c)
	if !ok {
		return
	}

	tl, err := h.plotService.UndoPayment(c.Request.Context(), id, c.Param("plotId"), index)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tl)
}

// EditInstallment handles PATCH /api/v1/projects/:id/plots/:plotId/installments/:index
// @Summary      Edit an installment
// @Description  Omitted fields are kept. Amounts of paid rows cannot change.
// @Tags         timelines
// @Accept       json
// @Produce      json
// @Param        id path int true "Project ID"
// @Param        plotId path string true "Plot ID"
// @Param        index path int true "Row index"
// @Param        body body editInstallmentRequest true "Changes"
// @Success      200 {object} APIResponse{data=domain.PlotTimeline}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /projects/{id}/plots/{plotId}/installments/{index} [patch]
func (h *TimelineHandler) EditInstallment(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}
	index, ok := parseInstallmentIndex(c)
	if !ok {
		return
	}

	var req editInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid installment payload")
		return
	}

	edit := &calculator.InstallmentEdit{
		Label:          req.Label,
		ExpectedAmount: req.ExpectedAmount.Ptr(),
		PaymentMode:    req.PaymentMode,
	}
	if req.DueDate != nil && !req.DueDate.IsZero() {
		edit.DueDate = req.DueDate
	}

	tl, err := h.plotService.EditInstallment(c.Request.Context(), id, c.Param("plotId"), index, edit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tl)
}

// DeleteInstallment handles DELETE /api/v1/projects/:id/plots/:plotId/installments/:index
// @Summary      Delete an installment
// @Tags         timelines
// @Produce      json
// @Param        id path int true "Project ID"
// @Param        plotId path string true "Plot ID"
// @Param        index path int true "Row index"
// @Success      200 {object} APIResponse{data=domain.PlotTimeline}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /projects/{id}/plots/{plotId}/installments/{index} [delete]
func (h *TimelineHandler) DeleteInstallment(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}
	index, ok := parseInstallmentIndex(c)
	if !ok {
		return
	}

	tl, err := h.plotService.DeleteInstallment(c.Request.Context(), id, c.Param("plotId"), index)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, tl)
}

type timelineRequest struct {
	StartDate              domain.Date            `json:"start_date"`
	DPType                 domain.DownPaymentType `json:"dp_type"`
	DPAmount               domain.Number          `json:"dp_amount"`
	DPDuration             domain.DurationWindow  `json:"dp_duration"`
	TotalDuration          domain.DurationWindow  `json:"total_duration"`
	NumInstallments        domain.Number          `json:"num_installments"`
	AgentName              string                 `json:"agent_name"`
	AgentPhone             string                 `json:"agent_phone"`
	AgentCommissionPercent domain.Number          `json:"agent_commission_percent"`
	Force                  bool                   `json:"force"`
}

func (r *timelineRequest) toInput() *service.TimelineInput {
	return &service.TimelineInput{
		StartDate:              r.StartDate,
		DPType:                 r.DPType,
		DPAmount:               r.DPAmount.Float(),
		DPDuration:             r.DPDuration,
		TotalDuration:          r.TotalDuration,
		NumInstallments:        r.NumInstallments.Float(),
		AgentName:              r.AgentName,
		AgentPhone:             r.AgentPhone,
		AgentCommissionPercent: r.AgentCommissionPercent.Float(),
		Force:                  r.Force,
	}
}

type previewTimelineRequest struct {
	NetTotal domain.Number `json:"net_total"`
	timelineRequest
}

type confirmPaymentRequest struct {
	PaidAmount  domain.OptionalNumber `json:"paid_amount"`
	PaymentDate domain.Date           `json:"payment_date"`
	PaymentMode domain.PaymentMode    `json:"payment_mode"`
	BankName    string                `json:"bank_name"`
	RefNumber   string                `json:"ref_number"`
	Remarks     string                `json:"remarks"`
}

type editInstallmentRequest struct {
	Label          *string               `json:"label"`
	DueDate        *domain.Date          `json:"due_date"`
	ExpectedAmount domain.OptionalNumber `json:"expected_amount"`
	PaymentMode    *domain.PaymentMode   `json:"payment_mode"`
}
