package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrProjectNotFound        = errors.New("project not found")
	ErrProjectDataMissing     = errors.New("project has no saved plotting data")
	ErrPlotNotFound           = errors.New("plot not found")
	ErrPlotNumberRequired     = errors.New("plot number is required")
	ErrDuplicatePlotNumber    = errors.New("plot number already exists in project")
	ErrInvalidPlotStatus      = errors.New("invalid plot status")
	ErrTimelineNotBuilt       = errors.New("plot has no payment timeline")
	ErrScheduleHasPayments    = errors.New("schedule has recorded payments")
	ErrInstallmentNotFound    = errors.New("installment not found")
	ErrInstallmentAlreadyPaid = errors.New("installment is already paid")
	ErrInstallmentNotPaid     = errors.New("installment is not paid")
	ErrInstallmentFrozen      = errors.New("paid installment amounts cannot change")
	ErrNegativeAmount         = errors.New("amount cannot be negative")
	ErrUnsupportedFormat      = errors.New("unsupported export format")
	ErrRenderFailed           = errors.New("report rendering failed")
	ErrUploadFailed           = errors.New("report upload to storage failed")
	ErrEmailFailed            = errors.New("sending email failed")
)
