package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"plotbook/internal/calculator"
	"plotbook/internal/domain"
)

// pdfColor is an RGB color.
type pdfColor struct{ R, G, B int }

var (
	headerFill    = pdfColor{R: 31, G: 78, B: 121}
	alternateFill = pdfColor{R: 242, G: 242, B: 242}
	totalFill     = pdfColor{R: 221, G: 235, B: 247}
)

const (
	marginLeft   = 10.0
	marginTop    = 15.0
	marginRight  = 10.0
	marginBottom = 15.0
	fontFamily   = "Arial"
	rowHeight    = 7.0
)

// pdfDoc wraps gofpdf with the table and key/value helpers the reports share.
type pdfDoc struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPDFDoc(title string, opts Options) *pdfDoc {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle(title, true)
	pdf.SetCreator(opts.CompanyName, true)

	d := &pdfDoc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return d
}

func (d *pdfDoc) contentWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	return w - marginLeft - marginRight
}

func (d *pdfDoc) title(text, subtitle string) {
	d.pdf.SetFont(fontFamily, "B", 16)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.CellFormat(0, 10, d.tr(text), "", 1, "C", false, 0, "")
	if subtitle != "" {
		d.pdf.SetFont(fontFamily, "", 11)
		d.pdf.SetTextColor(100, 100, 100)
		d.pdf.CellFormat(0, 7, d.tr(subtitle), "", 1, "C", false, 0, "")
	}
	d.pdf.Ln(4)
}

func (d *pdfDoc) section(text string) {
	d.pdf.Ln(2)
	d.pdf.SetFont(fontFamily, "B", 11)
	d.pdf.SetTextColor(headerFill.R, headerFill.G, headerFill.B)
	d.pdf.CellFormat(0, 7, d.tr(text), "B", 1, "L", false, 0, "")
	d.pdf.Ln(1)
}

// keyValues lays pairs out in two columns of label/value.
func (d *pdfDoc) keyValues(pairs [][2]string) {
	half := d.contentWidth() / 2
	labelW := half * 0.45
	valueW := half - labelW
	d.pdf.SetTextColor(0, 0, 0)
	for i, kv := range pairs {
		ln := 0
		if i%2 == 1 || i == len(pairs)-1 {
			ln = 1
		}
		d.pdf.SetFont(fontFamily, "B", 9)
		d.pdf.CellFormat(labelW, 6, d.tr(kv[0]), "", 0, "L", false, 0, "")
		d.pdf.SetFont(fontFamily, "", 9)
		d.pdf.CellFormat(valueW, 6, d.tr(kv[1]), "", ln, "L", false, 0, "")
	}
}

type pdfColumn struct {
	label string
	width float64 // fraction of the content width
	align string
}

func (d *pdfDoc) tableHeader(cols []pdfColumn) {
	d.pdf.SetFont(fontFamily, "B", 8)
	d.pdf.SetFillColor(headerFill.R, headerFill.G, headerFill.B)
	d.pdf.SetTextColor(255, 255, 255)
	total := d.contentWidth()
	for _, c := range cols {
		d.pdf.CellFormat(c.width*total, rowHeight, c.label, "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)
}

// table draws rows with alternating fill, repeating the header after page breaks.
// Rows listed in bold are drawn as totals.
func (d *pdfDoc) table(cols []pdfColumn, rows [][]string, bold map[int]bool) {
	d.tableHeader(cols)
	total := d.contentWidth()
	_, pageH := d.pdf.GetPageSize()

	for i, row := range rows {
		if d.pdf.GetY()+rowHeight > pageH-marginBottom {
			d.pdf.AddPage()
			d.tableHeader(cols)
		}
		fill := pdfColor{R: 255, G: 255, B: 255}
		style := ""
		switch {
		case bold[i]:
			fill, style = totalFill, "B"
		case i%2 == 1:
			fill = alternateFill
		}
		d.pdf.SetFont(fontFamily, style, 8)
		d.pdf.SetTextColor(0, 0, 0)
		d.pdf.SetFillColor(fill.R, fill.G, fill.B)
		for j, c := range cols {
			text := ""
			if j < len(row) {
				text = d.tr(row[j])
			}
			w := c.width * total
			text = d.fit(text, w)
			d.pdf.CellFormat(w, rowHeight, text, "1", 0, c.align, true, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

// fit truncates text with an ellipsis so it stays inside a cell of width w.
func (d *pdfDoc) fit(text string, w float64) string {
	if d.pdf.GetStringWidth(text) <= w-2 {
		return text
	}
	for len(text) > 0 && d.pdf.GetStringWidth(text+"...") > w-2 {
		text = text[:len(text)-1]
	}
	return text + "..."
}

func (d *pdfDoc) write(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	return nil
}

var dealColumns = []pdfColumn{
	{label: "#", width: 0.08, align: "C"},
	{label: "Date", width: 0.17, align: "C"},
	{label: "Particulars", width: 0.35, align: "L"},
	{label: "Type", width: 0.15, align: "C"},
	{label: "Amount", width: 0.25, align: "R"},
}

// DealPDF renders the land deal report: inputs, derived figures and payment schedule.
func DealPDF(w io.Writer, in *domain.DealInput, res *domain.CalculationResult, generatedOn domain.Date, opts Options) error {
	id := in.Identity
	subtitle := id.VillageName
	if id.SurveyNumbers != "" {
		subtitle = fmt.Sprintf("%s, Survey No. %s", orDash(id.VillageName), id.SurveyNumbers)
	}
	d := newPDFDoc("Land Deal Report", opts)
	d.title(fallback(opts.CompanyName, "Land Deal Report"), subtitle)

	d.section("Land Details")
	d.keyValues([][2]string{
		{"Village", orDash(id.VillageName)},
		{"Scheme", orDash(id.SchemeName)},
		{"Survey No.", orDash(id.SurveyNumbers)},
		{"Block No.", orDash(id.BlockNumber)},
		{"Taluka", orDash(id.Taluka)},
		{"District", orDash(id.District)},
		{"Owner", orDash(id.OwnerName)},
		{"Purchase Date", FormatDate(in.Financials.PurchaseDate)},
	})

	d.section("Measurements")
	d.keyValues([][2]string{
		{"Area (sq. mt)", formatQuantity(in.Measurements.AreaSqMt.Float(), 2)},
		{"Area (vigha)", formatQuantity(res.VighaEquivalent, 4)},
		{"Jantri Rate", opts.FormatMoney(in.Measurements.JantriRate.Float())},
		{"Jantri Value", opts.FormatMoney(res.TotalJantriValue)},
	})

	d.section("Financials")
	d.keyValues([][2]string{
		{"Deal Price", opts.FormatMoney(in.Financials.TotalDealPrice.Float())},
		{"Down Payment", fmt.Sprintf("%s (%s%%)", opts.FormatMoney(res.DownPayment), formatQuantity(in.Financials.DownPaymentPercent.Float(), 2))},
		{"Installment Pool", opts.FormatMoney(res.InstallmentPool)},
		{"Installments", fmt.Sprintf("%d x %s", installmentRows(res), opts.FormatMoney(res.InstallmentAmount))},
	})

	stampBase := "Deal Price"
	if in.Overheads.StampDutyType == domain.StampDutyOnJantri {
		stampBase = "Jantri Value"
	}
	d.section("Overheads")
	d.keyValues([][2]string{
		{"Stamp Duty", fmt.Sprintf("%s (%s%% of %s)", opts.FormatMoney(res.StampDuty), formatQuantity(in.Overheads.StampDutyPercent.Float(), 2), stampBase)},
		{"Architect Fee", opts.FormatMoney(in.Overheads.ArchitectFee.Float())},
		{"Plan Pass Fee", opts.FormatMoney(in.Overheads.PlanPassFee.Float())},
		{"NA Expense", opts.FormatMoney(in.Overheads.NAExpense.Float())},
		{"NA Premium", opts.FormatMoney(in.Overheads.NAPremium.Float())},
		{"Total Overheads", opts.FormatMoney(res.TotalOverheads)},
	})

	d.section("Cost Summary")
	d.keyValues([][2]string{
		{"Landed Cost", opts.FormatMoney(res.LandedCost)},
		{"Cost per sq. mt", opts.FormatMoney(res.CostPerSqMt)},
	})

	d.section("Payment Schedule")
	rows := make([][]string, 0, len(res.Schedule)+1)
	for i := range res.Schedule {
		item := &res.Schedule[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			FormatDate(item.Date),
			item.Description,
			string(item.Type),
			opts.FormatMoney(item.Amount),
		})
	}
	total := calculator.TotalRow(res)
	rows = append(rows, []string{"", "", total.Description, "", opts.FormatMoney(total.Amount)})
	d.table(dealColumns, rows, map[int]bool{len(rows) - 1: true})

	d.pdf.Ln(4)
	d.pdf.SetFont(fontFamily, "I", 8)
	d.pdf.SetTextColor(128, 128, 128)
	d.pdf.CellFormat(0, 5, "Generated on "+FormatDate(generatedOn), "", 1, "R", false, 0, "")

	return d.write(w)
}

func installmentRows(res *domain.CalculationResult) int {
	var n int
	for i := range res.Schedule {
		if res.Schedule[i].Type == domain.ScheduleItemInstallment {
			n++
		}
	}
	return n
}

var statementPDFColumns = []pdfColumn{
	{label: "#", width: 0.05, align: "C"},
	{label: "Particulars", width: 0.21, align: "L"},
	{label: "Due Date", width: 0.12, align: "C"},
	{label: "Expected", width: 0.15, align: "R"},
	{label: "Paid", width: 0.15, align: "R"},
	{label: "Status", width: 0.09, align: "C"},
	{label: "Paid On", width: 0.12, align: "C"},
	{label: "Mode", width: 0.11, align: "C"},
}

// StatementPDF renders a plot payment statement.
func StatementPDF(w io.Writer, s *Statement, opts Options) error {
	d := newPDFDoc("Plot Payment Statement", opts)
	d.title(fallback(opts.CompanyName, "Payment Statement"), "Payment Statement: Plot "+orDash(s.Plot.PlotNumber))

	d.section("Plot Details")
	d.keyValues(statementHeader(s, opts))

	d.section("Payment Schedule")
	rows := make([][]string, 0, len(s.Schedule)+1)
	for i := range s.Schedule {
		row := &s.Schedule[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			row.Label,
			FormatDate(row.DueDate),
			opts.FormatMoney(row.ExpectedAmount),
			opts.FormatMoney(paidAmount(row)),
			installmentStatus(row),
			formatDatePtr(row.PaymentDate),
			string(row.PaymentMode),
		})
	}
	rows = append(rows, []string{"", "Total", "",
		opts.FormatMoney(s.Summary.TotalExpected), opts.FormatMoney(s.Summary.TotalPaid), "", "", ""})
	d.table(statementPDFColumns, rows, map[int]bool{len(rows) - 1: true})

	d.section("Summary")
	d.keyValues(statementTotals(s, opts))

	d.pdf.Ln(4)
	d.pdf.SetFont(fontFamily, "I", 8)
	d.pdf.SetTextColor(128, 128, 128)
	d.pdf.CellFormat(0, 5, "Generated on "+FormatDate(s.GeneratedOn), "", 1, "R", false, 0, "")

	return d.write(w)
}
