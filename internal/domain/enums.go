package domain

// StampDutyType selects the base that stamp duty is levied on.
type StampDutyType string

const (
	StampDutyOnDealPrice StampDutyType = "DealPrice"
	StampDutyOnJantri    StampDutyType = "Jantri"
)

// ScheduleItemType tags a row of a deal payment schedule.
type ScheduleItemType string

const (
	ScheduleItemToken       ScheduleItemType = "Token"
	ScheduleItemInstallment ScheduleItemType = "Installment"
	ScheduleItemJantri      ScheduleItemType = "Jantri"
	ScheduleItemTotal       ScheduleItemType = "Total"
)

// DownPaymentType says how a plot down payment is expressed.
type DownPaymentType string

const (
	DownPaymentPercent DownPaymentType = "percent"
	DownPaymentValue   DownPaymentType = "value"
)

// DurationUnit is the unit of a timeline window.
type DurationUnit string

const (
	DurationDays   DurationUnit = "days"
	DurationMonths DurationUnit = "months"
)

// PlotStatus represents the sales lifecycle of a plot.
type PlotStatus string

const (
	PlotStatusAvailable PlotStatus = "available"
	PlotStatusBooked    PlotStatus = "booked"
	PlotStatusSold      PlotStatus = "sold"
)

// ValidPlotStatuses lists the accepted plot statuses.
var ValidPlotStatuses = map[PlotStatus]bool{
	PlotStatusAvailable: true,
	PlotStatusBooked:    true,
	PlotStatusSold:      true,
}

// PaymentMode is how an installment was paid.
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeCheque PaymentMode = "cheque"
	PaymentModeRTGS   PaymentMode = "rtgs"
	PaymentModeUPI    PaymentMode = "upi"
)

// ExportFormat is a statement export format.
type ExportFormat string

const (
	ExportPDF  ExportFormat = "pdf"
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

// ExportContentTypes maps export formats to their MIME types.
var ExportContentTypes = map[ExportFormat]string{
	ExportPDF:  "application/pdf",
	ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	ExportCSV:  "text/csv; charset=utf-8",
}
