package domain

// LandIdentity describes the land parcel. Display only.
type LandIdentity struct {
	VillageName   string `json:"village_name"`
	SchemeName    string `json:"scheme_name"`
	SurveyNumbers string `json:"survey_numbers"`
	BlockNumber   string `json:"block_number"`
	Taluka        string `json:"taluka"`
	District      string `json:"district"`
	OwnerName     string `json:"owner_name"`
}

// Measurements holds the land area and its government (jantri) rate.
type Measurements struct {
	AreaSqMt   Number `json:"area_sq_mt"`
	JantriRate Number `json:"jantri_rate"`
}

// Financials holds the negotiated price and payment plan of a deal.
type Financials struct {
	TotalDealPrice       Number `json:"total_deal_price"`
	DownPaymentPercent   Number `json:"down_payment_percent"`
	NumberOfInstallments Number `json:"number_of_installments"`
	PurchaseDate         Date   `json:"purchase_date"`
}

// Overheads holds stamp duty settings and flat additional expenses.
type Overheads struct {
	StampDutyType    StampDutyType `json:"stamp_duty_type"`
	StampDutyPercent Number        `json:"stamp_duty_percent"`
	ArchitectFee     Number        `json:"architect_fee"`
	PlanPassFee      Number        `json:"plan_pass_fee"`
	NAExpense        Number        `json:"na_expense"`
	NAPremium        Number        `json:"na_premium"`
}

// DealInput is everything the deal structurer form captures.
type DealInput struct {
	Identity     LandIdentity `json:"identity"`
	Measurements Measurements `json:"measurements"`
	Financials   Financials   `json:"financials"`
	Overheads    Overheads    `json:"overheads"`
}

// PaymentScheduleItem is one row of a deal payment schedule.
type PaymentScheduleItem struct {
	ID          int              `json:"id"`
	Date        Date             `json:"date"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Type        ScheduleItemType `json:"type"`
}

// CalculationResult is derived from a DealInput and always recomputed whole.
type CalculationResult struct {
	VighaEquivalent   float64               `json:"vigha_equivalent"`
	TotalJantriValue  float64               `json:"total_jantri_value"`
	StampDuty         float64               `json:"stamp_duty"`
	DownPayment       float64               `json:"down_payment"`
	InstallmentPool   float64               `json:"installment_pool"`
	InstallmentAmount float64               `json:"installment_amount"`
	TotalOverheads    float64               `json:"total_overheads"`
	LandedCost        float64               `json:"landed_cost"`
	CostPerSqMt       float64               `json:"cost_per_sq_mt"`
	GrandTotalPayment float64               `json:"grand_total_payment"`
	Schedule          []PaymentScheduleItem `json:"schedule"`
}
