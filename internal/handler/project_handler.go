package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plotbook/internal/domain"
	"plotbook/internal/service"
)

// ProjectHandler handles saved project and plot endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List handles GET /api/v1/projects
// @Summary      List saved projects
// @Description  Newest first
// @Tags         projects
// @Produce      json
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.ProjectSummary,meta=PagMeta}
// @Failure      500 {object} APIResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	projects, total, err := h.projectService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, projects, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/projects/:id
// @Summary      Open a project
// @Tags         projects
// @Produce      json
// @Param        id path int true "Project ID"
// @Success      200 {object} APIResponse{data=domain.ProjectDetail}
// @Failure      404 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	detail, err := h.projectService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, detail)
}

// Delete handles DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "project deleted"})
}

// UpdatePlotting handles PUT /api/v1/projects/:id/plotting
// @Summary      Update project plotting settings
// @Description  Omitted or blank fields are left unchanged
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path int true "Project ID"
// @Param        body body updatePlottingRequest true "Plotting settings"
// @Success      200 {object} APIResponse{data=domain.PlottingData}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /projects/{id}/plotting [put]
func (h *ProjectHandler) UpdatePlotting(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req updatePlottingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid plotting payload")
		return
	}

	input := &service.UpdatePlottingInput{
		LandRate:            req.LandRate.Ptr(),
		DevRate:             req.DevRate.Ptr(),
		DevelopmentExpenses: req.DevelopmentExpenses,
	}
	if req.TotalPlots.Set {
		n := int(req.TotalPlots.Value)
		input.TotalPlots = &n
	}

	plotting, err := h.projectService.UpdatePlotting(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, plotting)
}

// WeightedRate handles GET /api/v1/projects/:id/rate
// @Summary      Area-weighted land rate of a project
// @Tags         projects
// @Produce      json
// @Param        id path int true "Project ID"
// @Success      200 {object} APIResponse{data=weightedRateResponse}
// @Failure      404 {object} APIResponse
// @Router       /projects/{id}/rate [get]
func (h *ProjectHandler) WeightedRate(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	rate, err := h.projectService.WeightedRate(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, weightedRateResponse{WeightedRate: rate})
}

// AddPlot handles POST /api/v1/projects/:id/plots
// @Summary      Add a plot
// @Description  Rates left blank start from the project's current average and development rate
// @Tags         plots
// @Accept       json
// @Produce      json
// @Param        id path int true "Project ID"
// @Param        body body plotRequest true "Plot"
// @Success      201 {object} APIResponse{data=domain.Plot}
// @Failure      400 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Router       /projects/{id}/plots [post]
func (h *ProjectHandler) AddPlot(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req plotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid plot payload")
		return
	}

	plot, err := h.projectService.AddPlot(c.Request.Context(), id, req.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, plot)
}

// UpdatePlot handles PUT /api/v1/projects/:id/plots/:plotId
func (h *ProjectHandler) UpdatePlot(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req plotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid plot payload")
		return
	}

	plot, err := h.projectService.UpdatePlot(c.Request.Context(), id, c.Param("plotId"), req.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, plot)
}

// RemovePlot handles DELETE /api/v1/projects/:id/plots/:plotId
func (h *ProjectHandler) RemovePlot(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	if err := h.projectService.RemovePlot(c.Request.Context(), id, c.Param("plotId")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "plot removed"})
}

type updatePlottingRequest struct {
	LandRate            domain.OptionalNumber       `json:"land_rate"`
	DevRate             domain.OptionalNumber       `json:"dev_rate"`
	TotalPlots          domain.OptionalNumber       `json:"total_plots"`
	DevelopmentExpenses []domain.DevelopmentExpense `json:"development_expenses"`
}

type weightedRateResponse struct {
	WeightedRate float64 `json:"weighted_rate"`
}

type plotRequest struct {
	PlotNumber     string                `json:"plot_number"`
	AreaVaar       domain.Number         `json:"area_vaar"`
	CustomLandRate domain.OptionalNumber `json:"custom_land_rate"`
	DevRate        domain.OptionalNumber `json:"dev_rate"`
	Discount       domain.Number         `json:"discount"`
	CustomerName   string                `json:"customer_name"`
	CustomerPhone  string                `json:"customer_phone"`
	Status         domain.PlotStatus     `json:"status"`
}

func (r *plotRequest) toInput() *service.PlotInput {
	return &service.PlotInput{
		PlotNumber:     r.PlotNumber,
		AreaVaar:       r.AreaVaar.Float(),
		CustomLandRate: r.CustomLandRate.Ptr(),
		DevRate:        r.DevRate.Ptr(),
		Discount:       r.Discount.Float(),
		CustomerName:   r.CustomerName,
		CustomerPhone:  r.CustomerPhone,
		Status:         r.Status,
	}
}
