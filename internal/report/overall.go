package report

import (
	"fmt"

	"github.com/pennywise-fin/pennywise/internal/domain"
	"github.com/pennywise-fin/pennywise/internal/normalize"
)

// ComposeOverall renders the cross-month rollup: period overview, financial
// totals with monthly averages, and a per-month breakdown whose rows are
// tinted by their profit/loss classification.
func (c *Composer) ComposeOverall(overall *domain.OverallSummary) (Document, error) {
	if overall == nil || len(overall.Breakdown) == 0 {
		return nil, fmt.Errorf("ComposeOverall: empty overall summary")
	}

	cv := c.newCanvas("Overall Transaction Summary")
	c.title(cv, "Overall Transaction Summary")

	c.heading(cv, "Period Overview")
	c.overviewTable(cv, overall)

	c.heading(cv, "Financial Totals")
	c.styledTable(cv, tableSpec{
		headers:    []string{"Metric", "Amount"},
		widths:     []float64{63, 50},
		headerSize: 12,
		bodySize:   10,
		bodyFill:   beige,
		rightAlign: map[int]bool{1: true},
	}, [][]string{
		{"Total Income", formatCurrency(overall.TotalIncome)},
		{"Total Expenses", formatCurrency(overall.TotalExpenses)},
		{"Net Income", formatCurrency(overall.NetIncome)},
		{"Average Monthly Income", formatCurrency(overall.AverageMonthlyIncome)},
		{"Average Monthly Expenses", formatCurrency(overall.AverageMonthlyExpenses)},
	}, nil)

	c.heading(cv, "Monthly Breakdown")
	rows := make([][]string, 0, len(overall.Breakdown))
	for _, b := range overall.Breakdown {
		rows = append(rows, []string{
			normalize.MonthDisplayShort(b.Month),
			formatCurrency(b.Income),
			formatCurrency(b.Expenses),
			formatCurrency(b.Net),
			string(b.Status),
		})
	}
	c.styledTable(cv, tableSpec{
		headers:    []string{"Month", "Income", "Expenses", "Net", "Status"},
		widths:     []float64{38, 30, 30, 30, 26},
		headerSize: 10,
		bodySize:   9,
		bodyFill:   white,
		rightAlign: map[int]bool{1: true, 2: true, 3: true},
	}, rows, func(row int) (rgb, bool) {
		switch overall.Breakdown[row].Status {
		case domain.StatusProfit:
			return lightGreen, true
		case domain.StatusLoss:
			return lightCoral, true
		default:
			return rgb{}, false
		}
	})

	c.footer(cv)
	return cv.output()
}

func (c *Composer) overviewTable(cv *canvas, overall *domain.OverallSummary) {
	first := overall.Breakdown[0].Month
	last := overall.Breakdown[len(overall.Breakdown)-1].Month
	period := normalize.MonthDisplay(first) + " to " + normalize.MonthDisplay(last)

	cv.SetFillColor(lightBlue.r, lightBlue.g, lightBlue.b)
	cv.SetTextColor(0, 0, 0)
	cv.SetDrawColor(0, 0, 0)

	rows := [][]string{
		{"Period", period},
		{"Total Months", fmt.Sprintf("%d", overall.TotalMonths)},
	}
	for _, row := range rows {
		cv.SetFont("Helvetica", "B", 10)
		cv.CellFormat(50, 8, cv.tr(row[0]), "1", 0, "L", true, 0, "")
		cv.SetFont("Helvetica", "", 10)
		cv.CellFormat(76, 8, cv.tr(row[1]), "1", 1, "L", false, 0, "")
	}
}
