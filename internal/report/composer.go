// Package report renders monthly and overall transaction summaries as PDF
// documents with a fixed section layout.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pennywise-fin/pennywise/internal/domain"
	"github.com/pennywise-fin/pennywise/internal/normalize"
)

// Document is one rendered report, ready to be published.
type Document []byte

// chartLimit caps how many ranking entries the charts show.
const chartLimit = 8

type rgb struct{ r, g, b int }

var (
	darkBlue   = rgb{0, 0, 139}
	whiteSmoke = rgb{245, 245, 245}
	beige      = rgb{245, 245, 220}
	white      = rgb{255, 255, 255}
	lightBlue  = rgb{173, 216, 230}
	lightGreen = rgb{144, 238, 144}
	lightCoral = rgb{240, 128, 128}
)

// Composer renders summaries into documents. The clock is injectable and
// pins both the footer and the document's internal dates, so rendering is
// fully deterministic for identical input.
type Composer struct {
	now func() time.Time
}

func NewComposer() *Composer {
	return &Composer{now: time.Now}
}

// NewComposerAt creates a Composer with a fixed clock.
func NewComposerAt(now func() time.Time) *Composer {
	return &Composer{now: now}
}

// canvas bundles a document under construction with the translator that maps
// UTF-8 labels onto the code page of the built-in fonts.
type canvas struct {
	*fpdf.Fpdf
	tr func(string) string
}

func (c *Composer) newCanvas(title string) *canvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	// Catalog objects are emitted from maps; without sorting their order
	// varies between otherwise identical composes.
	pdf.SetCatalogSort(true)
	stamp := c.now()
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.AddPage()
	return &canvas{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// ComposeMonthly renders the report for a single month: title, financial
// summary table, category pie chart, merchant bar chart, transaction detail
// table and a generation-timestamp footer, in that order.
func (c *Composer) ComposeMonthly(summary *domain.MonthlySummary) (Document, error) {
	cv := c.newCanvas("Monthly Transaction Report")
	c.title(cv, "Monthly Transaction Report", normalize.MonthDisplay(summary.Month))

	c.heading(cv, "Financial Summary")
	c.styledTable(cv, tableSpec{
		headers:    []string{"Metric", "Amount"},
		widths:     []float64{50, 50},
		headerSize: 12,
		bodySize:   10,
		bodyFill:   beige,
	}, [][]string{
		{"Total Income", formatCurrency(summary.TotalIncome)},
		{"Total Expenses", formatCurrency(summary.TotalExpenses)},
		{"Net Income", formatCurrency(summary.NetIncome)},
		{"Total Transactions", fmt.Sprintf("%d", summary.TotalTransactions)},
	}, nil)

	if len(summary.TopCategories) > 0 {
		c.heading(cv, "Spending by Category")
		c.pieChart(cv, limit(summary.TopCategories, chartLimit))
	}

	if len(summary.TopMerchants) > 0 {
		c.heading(cv, "Spending by Merchant")
		c.barChart(cv, limit(summary.TopMerchants, chartLimit))
	}

	c.heading(cv, "Transaction Details")
	c.detailTable(cv, summary.Transactions)

	c.footer(cv)
	return cv.output()
}

func (c *Composer) detailTable(cv *canvas, txns []domain.Transaction) {
	// Sorted by the raw date string, byte-wise. Safe while a month's records
	// share one date format, which the store does not guarantee; a month that
	// mixes formats sorts oddly here.
	sorted := make([]domain.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	rows := make([][]string, 0, len(sorted))
	for _, txn := range sorted {
		rows = append(rows, []string{
			truncate(orUnknown(txn.Date), 10),
			truncate(orUnknown(txn.Merchant), 20),
			truncate(orUnknown(txn.Category), 15),
			formatCurrency(txn.Amount),
			truncate(orUnknown(txn.Type), 10),
			truncate(orUnknown(txn.PaymentMethod), 10),
		})
	}

	c.styledTable(cv, tableSpec{
		headers:    []string{"Date", "Merchant", "Category", "Amount", "Type", "Payment"},
		widths:     []float64{25, 46, 31, 26, 21, 21},
		headerSize: 10,
		bodySize:   8,
		bodyFill:   white,
		rightAlign: map[int]bool{3: true},
	}, rows, nil)
}

func (c *Composer) title(cv *canvas, lines ...string) {
	cv.SetFont("Helvetica", "B", 24)
	cv.SetTextColor(darkBlue.r, darkBlue.g, darkBlue.b)
	for _, line := range lines {
		cv.CellFormat(0, 12, cv.tr(line), "", 1, "C", false, 0, "")
	}
	cv.Ln(8)
}

func (c *Composer) heading(cv *canvas, text string) {
	cv.Ln(6)
	cv.SetFont("Helvetica", "B", 16)
	cv.SetTextColor(darkBlue.r, darkBlue.g, darkBlue.b)
	cv.CellFormat(0, 9, cv.tr(text), "", 1, "L", false, 0, "")
	cv.Ln(2)
}

func (c *Composer) footer(cv *canvas) {
	cv.Ln(8)
	cv.SetFont("Helvetica", "", 10)
	cv.SetTextColor(0, 0, 0)
	stamp := c.now().Format("2006-01-02 15:04:05")
	cv.CellFormat(0, 6, "Report generated on: "+stamp, "", 1, "L", false, 0, "")
}

// tableSpec describes the styling of one rendered table.
type tableSpec struct {
	headers    []string
	widths     []float64
	headerSize float64
	bodySize   float64
	bodyFill   rgb
	rightAlign map[int]bool
}

// styledTable renders a header row in dark blue plus body rows with grid
// borders. rowFill, when non-nil, can override the body fill per row.
func (c *Composer) styledTable(cv *canvas, spec tableSpec, rows [][]string, rowFill func(row int) (rgb, bool)) {
	cv.SetFont("Helvetica", "B", spec.headerSize)
	cv.SetFillColor(darkBlue.r, darkBlue.g, darkBlue.b)
	cv.SetTextColor(whiteSmoke.r, whiteSmoke.g, whiteSmoke.b)
	cv.SetDrawColor(0, 0, 0)
	for i, h := range spec.headers {
		cv.CellFormat(spec.widths[i], 8, cv.tr(h), "1", 0, "C", true, 0, "")
	}
	cv.Ln(-1)

	cv.SetFont("Helvetica", "", spec.bodySize)
	cv.SetTextColor(0, 0, 0)
	for r, row := range rows {
		fill := spec.bodyFill
		if rowFill != nil {
			if override, ok := rowFill(r); ok {
				fill = override
			}
		}
		cv.SetFillColor(fill.r, fill.g, fill.b)
		for i, cell := range row {
			align := "C"
			if spec.rightAlign[i] {
				align = "R"
			}
			cv.CellFormat(spec.widths[i], 7, cv.tr(cell), "1", 0, align, true, 0, "")
		}
		cv.Ln(-1)
	}
}

func (cv *canvas) output() (Document, error) {
	var buf bytes.Buffer
	if err := cv.Output(&buf); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return Document(buf.Bytes()), nil
}

func limit(ranked []domain.RankedTotal, n int) []domain.RankedTotal {
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}
