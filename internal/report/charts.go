package report

import (
	"math"

	"github.com/pennywise-fin/pennywise/internal/domain"
)

// chartPalette cycles across pie slices and legend swatches.
var chartPalette = []rgb{
	{0, 0, 255},     // blue
	{0, 128, 0},     // green
	{255, 0, 0},     // red
	{255, 165, 0},   // orange
	{128, 0, 128},   // purple
	{165, 42, 42},   // brown
	{255, 192, 203}, // pink
	{128, 128, 128}, // grey
}

// pieChart draws a proportional chart over the given totals: one filled
// slice per entry, a truncated label beside each slice and a legend with the
// full name and formatted amount.
func (c *Composer) pieChart(cv *canvas, data []domain.RankedTotal) {
	var total float64
	for _, d := range data {
		total += d.Amount
	}
	if total <= 0 {
		return
	}

	const radius = 28.0
	pageW, _ := cv.GetPageSize()
	cx := pageW / 2
	cy := cv.GetY() + radius + 4

	cv.SetDrawColor(0, 0, 0)
	cv.SetLineWidth(0.2)
	cv.SetFont("Helvetica", "", 7)
	cv.SetTextColor(0, 0, 0)

	angle := 0.0
	for i, d := range data {
		start := angle
		end := angle + d.Amount/total*360
		col := chartPalette[i%len(chartPalette)]

		cv.SetFillColor(col.r, col.g, col.b)
		cv.MoveTo(cx, cy)
		cv.ArcTo(cx, cy, radius, radius, 0, start, end)
		cv.ClosePath()
		cv.DrawPath("FD")

		// Slice label just outside the rim, at the mid angle.
		mid := (start + end) / 2 * math.Pi / 180
		lx := cx + (radius+4)*math.Cos(mid)
		ly := cy - (radius+4)*math.Sin(mid)
		label := cv.tr(truncate(d.Name, 15))
		if mid > math.Pi/2 && mid < 3*math.Pi/2 {
			lx -= cv.GetStringWidth(label)
		}
		cv.Text(lx, ly, label)

		angle = end
	}

	// Legend below the chart.
	cv.SetY(cy + radius + 6)
	cv.SetFont("Helvetica", "", 8)
	for i, d := range data {
		col := chartPalette[i%len(chartPalette)]
		x := cv.GetX()
		y := cv.GetY()
		cv.SetFillColor(col.r, col.g, col.b)
		cv.Rect(x, y+1, 3, 3, "F")
		cv.SetX(x + 5)
		cv.CellFormat(0, 5, cv.tr(d.Name+": "+formatCurrency(d.Amount)), "", 1, "L", false, 0, "")
	}
	cv.Ln(2)
}

// barChart draws a magnitude chart: one filled bar per entry scaled against
// the largest value, with a truncated label under each bar.
func (c *Composer) barChart(cv *canvas, data []domain.RankedTotal) {
	var max float64
	for _, d := range data {
		if d.Amount > max {
			max = d.Amount
		}
	}
	if max <= 0 {
		return
	}

	const (
		chartW = 160.0
		chartH = 55.0
	)
	left := cv.GetX() + 10
	baseline := cv.GetY() + chartH

	slot := chartW / float64(len(data))
	barW := slot * 0.7

	cv.SetDrawColor(0, 0, 0)
	cv.SetLineWidth(0.3)
	cv.SetFont("Helvetica", "", 6)
	cv.SetTextColor(0, 0, 0)

	for i, d := range data {
		h := d.Amount / max * chartH
		x := left + float64(i)*slot + (slot-barW)/2

		cv.SetFillColor(chartPalette[0].r, chartPalette[0].g, chartPalette[0].b)
		cv.Rect(x, baseline-h, barW, h, "FD")

		label := cv.tr(truncate(d.Name, 12))
		lx := x + barW/2 - cv.GetStringWidth(label)/2
		cv.Text(lx, baseline+4, label)
	}

	// Axis line under the bars.
	cv.Line(left, baseline, left+chartW, baseline)
	cv.SetY(baseline + 8)
}
