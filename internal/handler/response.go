package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"plotbook/internal/domain"
	"plotbook/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RespondFile sends a rendered document as an attachment.
func RespondFile(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found"
	case errors.Is(err, domain.ErrPlotNotFound):
		return http.StatusNotFound, "PLOT_NOT_FOUND", "plot not found"
	case errors.Is(err, domain.ErrInstallmentNotFound):
		return http.StatusNotFound, "INSTALLMENT_NOT_FOUND", "installment not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrProjectDataMissing):
		return http.StatusUnprocessableEntity, "PROJECT_DATA_MISSING", "project has no plotting data and cannot be opened"
	case errors.Is(err, domain.ErrTimelineNotBuilt):
		return http.StatusNotFound, "TIMELINE_NOT_BUILT", "no payment timeline has been built for this plot"
	case errors.Is(err, domain.ErrPlotNumberRequired):
		return http.StatusBadRequest, "PLOT_NUMBER_REQUIRED", "plot number is required"
	case errors.Is(err, domain.ErrDuplicatePlotNumber):
		return http.StatusConflict, "DUPLICATE_PLOT_NUMBER", "plot number already exists in this project"
	case errors.Is(err, domain.ErrInvalidPlotStatus):
		return http.StatusBadRequest, "INVALID_PLOT_STATUS", "invalid plot status; allowed: available, booked, sold"
	case errors.Is(err, domain.ErrScheduleHasPayments):
		return http.StatusConflict, "SCHEDULE_HAS_PAYMENTS", "timeline has recorded payments; rebuild with force to discard them"
	case errors.Is(err, domain.ErrInstallmentAlreadyPaid):
		return http.StatusConflict, "INSTALLMENT_ALREADY_PAID", "installment is already paid"
	case errors.Is(err, domain.ErrInstallmentNotPaid):
		return http.StatusConflict, "INSTALLMENT_NOT_PAID", "installment is not paid"
	case errors.Is(err, domain.ErrInstallmentFrozen):
		return http.StatusBadRequest, "INSTALLMENT_FROZEN", "amount of a paid installment cannot be changed"
	case errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusBadRequest, "NEGATIVE_AMOUNT", "amounts must not be negative"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported format; allowed: pdf, xlsx, csv"
	case errors.Is(err, domain.ErrRenderFailed):
		return http.StatusInternalServerError, "RENDER_FAILED", "document could not be rendered"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrEmailFailed):
		return http.StatusBadGateway, "EMAIL_FAILED", "statement email could not be sent"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		zap.L().Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("code", code),
			zap.Error(err))
	}
	RespondError(c, status, code, msg)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// parseProjectID reads the :id path param. Writes a 400 and returns false when invalid.
func parseProjectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid project ID")
		return 0, false
	}
	return id, true
}

// parseInstallmentIndex reads the :index path param.
func parseInstallmentIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil || idx < 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_INDEX", "invalid installment index")
		return 0, false
	}
	return idx, true
}
