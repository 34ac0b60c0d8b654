package aggregate

import (
	"sort"

	"github.com/pennywise-fin/pennywise/internal/domain"
)

// MonthTotals carries the income and expense totals of one month into the
// cross-month rollup.
type MonthTotals struct {
	Income   float64
	Expenses float64
}

// TotalsByMonth groups every valid record by its canonical month key and
// accumulates income and expense totals, applying the same skip rules as
// Aggregate.
func (a *Aggregator) TotalsByMonth(records []domain.Record) map[string]MonthTotals {
	months := make(map[string]MonthTotals)
	for _, rec := range records {
		month, ok := a.monthOf(rec)
		if !ok {
			continue
		}
		txn, ok := a.normalizeRecord(rec)
		if !ok {
			continue
		}
		t := months[month]
		if txn.Type == "credit" {
			t.Income += txn.Amount
		} else {
			t.Expenses += txn.Amount
		}
		months[month] = t
	}
	return months
}

// BuildOverall derives the cross-month summary from per-month totals. The
// breakdown is ordered ascending by month key and each month is classified
// by the sign of its net. Returns nil when months is empty.
func BuildOverall(months map[string]MonthTotals) *domain.OverallSummary {
	if len(months) == 0 {
		return nil
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	overall := &domain.OverallSummary{TotalMonths: len(months)}
	for _, month := range keys {
		t := months[month]
		net := t.Income - t.Expenses
		overall.TotalIncome += t.Income
		overall.TotalExpenses += t.Expenses
		overall.Breakdown = append(overall.Breakdown, domain.MonthBreakdown{
			Month:    month,
			Income:   t.Income,
			Expenses: t.Expenses,
			Net:      net,
			Status:   classify(net),
		})
	}

	overall.NetIncome = overall.TotalIncome - overall.TotalExpenses
	overall.AverageMonthlyIncome = overall.TotalIncome / float64(len(months))
	overall.AverageMonthlyExpenses = overall.TotalExpenses / float64(len(months))
	return overall
}

func classify(net float64) domain.MonthStatus {
	switch {
	case net > 0:
		return domain.StatusProfit
	case net < 0:
		return domain.StatusLoss
	default:
		return domain.StatusBreakEven
	}
}
