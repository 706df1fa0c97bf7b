package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"plotbook/internal/handler"
	"plotbook/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health   *handler.HealthHandler
	Deal     *handler.DealHandler
	Project  *handler.ProjectHandler
	Timeline *handler.TimelineHandler
	Report   *handler.ReportHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, logger *zap.Logger, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// Deal structurer
	deals := v1.Group("/deals")
	deals.POST("/calculate", h.Deal.Calculate)
	deals.POST("/report", h.Deal.Report)
	deals.POST("", h.Deal.Save)

	// Unsaved timeline preview
	v1.POST("/timelines/preview", h.Timeline.Preview)

	// Saved projects
	projects := v1.Group("/projects")
	projects.GET("", h.Project.List)
	projects.GET("/:id", h.Project.GetByID)
	projects.DELETE("/:id", h.Project.Delete)
	projects.PUT("/:id/plotting", h.Project.UpdatePlotting)
	projects.GET("/:id/rate", h.Project.WeightedRate)

	// Plots
	projects.POST("/:id/plots", h.Project.AddPlot)
	plot := projects.Group("/:id/plots/:plotId")
	plot.PUT("", h.Project.UpdatePlot)
	plot.DELETE("", h.Project.RemovePlot)

	// Plot payment timeline
	plot.GET("/timeline", h.Timeline.Get)
	plot.POST("/timeline", h.Timeline.Build)
	plot.POST("/installments/:index/confirm", h.Timeline.ConfirmPayment)
	plot.POST("/installments/:index/undo", h.Timeline.UndoPayment)
	plot.PATCH("/installments/:index", h.Timeline.EditInstallment)
	plot.DELETE("/installments/:index", h.Timeline.DeleteInstallment)

	// Statements
	plot.GET("/statement", h.Report.Statement)
	plot.POST("/statement/share", h.Report.ShareStatement)

	return r
}
