package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"plotbook/internal/domain"
	"plotbook/internal/service"
)

// ReportHandler handles plot statement endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Statement handles GET /api/v1/projects/:id/plots/:plotId/statement
// @Summary      Download a plot statement
// @Tags         reports
// @Produce      application/pdf
// @Produce      text/csv
// @Param        id path int true "Project ID"
// @Param        plotId path string true "Plot ID"
// @Param        format query string false "pdf, xlsx or csv" default(pdf)
// @Success      200 {file} binary
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /projects/{id}/plots/{plotId}/statement [get]
func (h *ReportHandler) Statement(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}
	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportPDF))))

	file, err := h.reportService.Statement(c.Request.Context(), id, c.Param("plotId"), format)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondFile(c, file.Filename, file.ContentType, file.Data)
}

// ShareStatement handles POST /api/v1/projects/:id/plots/:plotId/statement/share
// @Summary      Share a plot statement
// @Description  Uploads the statement and returns a time-limited link, emailing it when an address is given
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        id path int true "Project ID"
// @Param        plotId path string true "Plot ID"
// @Param        body body shareStatementRequest true "Recipient and format"
// @Success      200 {object} APIResponse{data=service.SharedStatement}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      502 {object} APIResponse
// @Router       /projects/{id}/plots/{plotId}/statement/share [post]
func (h *ReportHandler) ShareStatement(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req shareStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "a valid email is required when given")
		return
	}

	shared, err := h.reportService.ShareStatement(c.Request.Context(), id, c.Param("plotId"), &service.ShareStatementInput{
		Email:  req.Email,
		Name:   req.Name,
		Format: domain.ExportFormat(strings.ToLower(req.Format)),
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, shared)
}

type shareStatementRequest struct {
	Email  string `json:"email" binding:"omitempty,email"`
	Name   string `json:"name"`
	Format string `json:"format"`
}
