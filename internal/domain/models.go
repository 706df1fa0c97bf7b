package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Project is one saved land deal together with its plotting data.
// PlottingData and FullData are opaque JSON blobs; either may be absent.
type Project struct {
	ID            int64           `db:"id" json:"id"`
	ProjectName   string          `db:"project_name" json:"project_name"`
	VillageName   string          `db:"village_name" json:"village_name"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	TotalLandCost float64         `db:"total_land_cost" json:"total_land_cost"`
	PlottingData  json.RawMessage `db:"plotting_data" json:"plotting_data,omitempty"`
	FullData      json.RawMessage `db:"full_data" json:"full_data,omitempty"`
}

// HasData reports whether both persisted blobs are present.
func (p *Project) HasData() bool {
	return isPresent(p.PlottingData) && isPresent(p.FullData)
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// ProjectSummary is the list view of a project.
type ProjectSummary struct {
	ID            int64     `json:"id"`
	ProjectName   string    `json:"project_name"`
	VillageName   string    `json:"village_name"`
	CreatedAt     time.Time `json:"created_at"`
	TotalLandCost float64   `json:"total_land_cost"`
	TotalPlots    int       `json:"total_plots"`
	PlotsSold     int       `json:"plots_sold"`
}

// ProjectDetail is a decoded project ready for the plotting dashboard.
type ProjectDetail struct {
	ID            int64            `json:"id"`
	ProjectName   string           `json:"project_name"`
	VillageName   string           `json:"village_name"`
	CreatedAt     time.Time        `json:"created_at"`
	TotalLandCost float64          `json:"total_land_cost"`
	Plotting      PlottingData     `json:"plotting"`
	Snapshot      *ProjectSnapshot `json:"snapshot,omitempty"`
}

// PlottingData is the plotting_data blob of a project.
type PlottingData struct {
	LandRate            float64              `json:"landRate"`
	DevRate             float64              `json:"devRate"`
	CurrentAvgRate      float64              `json:"currentAvgRate"`
	TotalPlots          int                  `json:"totalPlots"`
	DevelopmentExpenses []DevelopmentExpense `json:"developmentExpenses"`
	PlotSales           []Plot               `json:"plotSales"`
}

// FindPlot returns the index of the plot with the given id, or -1.
func (p *PlottingData) FindPlot(plotID string) int {
	for i := range p.PlotSales {
		if p.PlotSales[i].ID == plotID {
			return i
		}
	}
	return -1
}

// TotalDevelopmentExpense sums all development expense lines.
func (p *PlottingData) TotalDevelopmentExpense() float64 {
	var total float64
	for _, e := range p.DevelopmentExpenses {
		total += e.Amount
	}
	return total
}

// DevelopmentExpense is a single project-level development cost line.
type DevelopmentExpense struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Plot is one plot of a subdivided project.
type Plot struct {
	ID             string         `json:"id"`
	PlotNumber     string         `json:"plotNumber"`
	AreaVaar       float64        `json:"areaVaar"`
	CustomLandRate float64        `json:"customLandRate"`
	DevRate        float64        `json:"devRate"`
	Discount       float64        `json:"discount"`
	CustomerName   string         `json:"customerName"`
	CustomerPhone  string         `json:"customerPhone"`
	Status         PlotStatus     `json:"status"`
	Deal           *PlotDealState `json:"deal,omitempty"`
}

// NetTotal is the plot's net sale value.
func (p *Plot) NetTotal() float64 {
	return p.AreaVaar*(p.CustomLandRate+p.DevRate) - p.Discount
}

// DurationWindow is a span expressed in days or months.
type DurationWindow struct {
	Value int          `json:"value"`
	Unit  DurationUnit `json:"unit"`
}

// maxWindowValue bounds window lengths so date arithmetic stays in range.
const maxWindowValue = 100_000

// UnmarshalJSON implements json.Unmarshaler. The value is coerced like a
// Number and truncated to an integer; anything that is not an object reads
// as the zero window.
func (w *DurationWindow) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value Number `json:"value"`
		Unit  string `json:"unit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*w = DurationWindow{}
		return nil
	}
	v := math.Trunc(raw.Value.Float())
	v = math.Max(-maxWindowValue, math.Min(v, maxWindowValue))
	*w = DurationWindow{Value: int(v), Unit: DurationUnit(raw.Unit)}
	return nil
}

// From returns the date the window ends at when started on d.
func (w DurationWindow) From(d Date) Date {
	if w.Unit == DurationMonths {
		return d.AddMonths(w.Value)
	}
	return d.AddDays(w.Value)
}

// PlotDealState is the sale agreement and payment timeline of one plot.
type PlotDealState struct {
	StartDate              Date                 `json:"startDate"`
	DPAmount               float64              `json:"dpAmount"`
	DPType                 DownPaymentType      `json:"dpType"`
	DPDuration             DurationWindow       `json:"dpDuration"`
	TotalDuration          DurationWindow       `json:"totalDuration"`
	NumInstallments        float64              `json:"numInstallments"`
	AgentName              string               `json:"agentName,omitempty"`
	AgentPhone             string               `json:"agentPhone,omitempty"`
	AgentCommissionPercent float64              `json:"agentCommissionPercent,omitempty"`
	Schedule               []PaymentInstallment `json:"schedule"`
}

// DPDueDate is the date the down payment falls due.
func (s *PlotDealState) DPDueDate() Date {
	return s.DPDuration.From(s.StartDate)
}

// EndDate is the date the whole plot price falls due.
func (s *PlotDealState) EndDate() Date {
	return s.TotalDuration.From(s.StartDate)
}

// HasPayments reports whether any row of the schedule is paid.
func (s *PlotDealState) HasPayments() bool {
	for i := range s.Schedule {
		if s.Schedule[i].IsPaid {
			return true
		}
	}
	return false
}

// PaymentInstallment is one row of a plot payment timeline.
type PaymentInstallment struct {
	ID             string      `json:"id"`
	Label          string      `json:"label"`
	DueDate        Date        `json:"dueDate"`
	ExpectedAmount float64     `json:"expectedAmount"`
	PaidAmount     float64     `json:"paidAmount"`
	IsPaid         bool        `json:"isPaid"`
	PaymentDate    *Date       `json:"paymentDate,omitempty"`
	PaymentMode    PaymentMode `json:"paymentMode,omitempty"`
	BankName       string      `json:"bankName,omitempty"`
	RefNumber      string      `json:"refNumber,omitempty"`
	Remarks        string      `json:"remarks,omitempty"`
	IsInterim      bool        `json:"isInterim,omitempty"`
}

// TimelineSummary aggregates a plot payment timeline.
type TimelineSummary struct {
	TotalExpected float64             `json:"total_expected"`
	TotalPaid     float64             `json:"total_paid"`
	Outstanding   float64             `json:"outstanding"`
	PaidRows      int                 `json:"paid_rows"`
	PendingRows   int                 `json:"pending_rows"`
	NextDue       *PaymentInstallment `json:"next_due,omitempty"`
}

// PlotTimeline is a plot's payment timeline together with its derived figures.
type PlotTimeline struct {
	PlotID    string               `json:"plot_id"`
	NetTotal  float64              `json:"net_total"`
	DPDueDate Date                 `json:"dp_due_date"`
	EndDate   Date                 `json:"end_date"`
	Schedule  []PaymentInstallment `json:"schedule"`
	Summary   TimelineSummary      `json:"summary"`
}

// ProjectSnapshot is the full_data blob: the complete in-memory state of a project.
type ProjectSnapshot struct {
	Deal     *DealInput         `json:"deal,omitempty"`
	Result   *CalculationResult `json:"result,omitempty"`
	Plotting *PlottingData      `json:"plotting,omitempty"`
}
