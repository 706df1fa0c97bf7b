package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plotbook/internal/domain"
	"plotbook/internal/service"
)

// DealHandler handles deal structurer endpoints.
type DealHandler struct {
	dealService   service.DealService
	reportService service.ReportService
}

// NewDealHandler creates a new DealHandler.
func NewDealHandler(dealService service.DealService, reportService service.ReportService) *DealHandler {
	return &DealHandler{dealService: dealService, reportService: reportService}
}

// Calculate handles POST /api/v1/deals/calculate
// @Summary      Structure a land deal
// @Description  Computes aggregates and the payment schedule of a deal. Blank or malformed numbers read as 0.
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        body body domain.DealInput true "Deal form"
// @Success      200 {object} APIResponse{data=domain.CalculationResult}
// @Failure      400 {object} APIResponse
// @Router       /deals/calculate [post]
func (h *DealHandler) Calculate(c *gin.Context) {
	var in domain.DealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid deal payload")
		return
	}
	RespondOK(c, h.dealService.Calculate(&in))
}

// Report handles POST /api/v1/deals/report
// @Summary      Download a deal report
// @Tags         deals
// @Accept       json
// @Produce      application/pdf
// @Param        body body domain.DealInput true "Deal form"
// @Success      200 {file} binary
// @Failure      400 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Router       /deals/report [post]
func (h *DealHandler) Report(c *gin.Context) {
	var in domain.DealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid deal payload")
		return
	}

	file, err := h.reportService.DealReport(c.Request.Context(), &in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondFile(c, file.Filename, file.ContentType, file.Data)
}

// Save handles POST /api/v1/deals
// @Summary      Save a deal as a project
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        body body saveDealRequest true "Project name and deal form"
// @Success      201 {object} APIResponse{data=domain.ProjectDetail}
// @Failure      400 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Router       /deals [post]
func (h *DealHandler) Save(c *gin.Context) {
	var req saveDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid deal payload")
		return
	}

	detail, err := h.dealService.SaveAsProject(c.Request.Context(), &service.SaveDealInput{
		ProjectName: req.ProjectName,
		Deal:        req.Deal,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, detail)
}

type saveDealRequest struct {
	ProjectName string           `json:"project_name"`
	Deal        domain.DealInput `json:"deal"`
}
