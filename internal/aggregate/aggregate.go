// Package aggregate turns raw transaction records into the per-month and
// cross-month summaries the report composer consumes.
package aggregate

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pennywise-fin/pennywise/internal/domain"
	"github.com/pennywise-fin/pennywise/internal/normalize"
)

// ErrNoTransactions reports that the filtered set for the target month was
// empty. Callers treat it as a no-op outcome, not a failure: no summary means
// no report for that month.
var ErrNoTransactions = errors.New("no transactions for target month")

// topLimit caps the category and merchant rankings.
const topLimit = 10

// Aggregator filters, validates and summarizes scanned records.
type Aggregator struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Aggregator {
	return &Aggregator{log: log}
}

// Aggregate filters records down to targetMonth, validates them and computes
// the monthly summary. Records with unparseable dates, zero amounts or empty
// category/merchant fields are skipped with a log line; they never abort the
// run. Returns ErrNoTransactions when nothing survives the filter.
func (a *Aggregator) Aggregate(records []domain.Record, targetMonth string) (*domain.MonthlySummary, error) {
	txns := a.filterMonth(records, targetMonth)
	if len(txns) == 0 {
		return nil, fmt.Errorf("aggregate %s: %w", targetMonth, ErrNoTransactions)
	}

	var (
		totalIncome   float64
		totalExpenses float64
		categories    = newTotals()
		merchants     = newTotals()
	)

	for _, txn := range txns {
		if txn.Type == "credit" {
			totalIncome += txn.Amount
			continue
		}
		// Debit or any other type is treated as an expense.
		totalExpenses += txn.Amount
		categories.add(txn.Category, txn.Amount)
		merchants.add(txn.Merchant, txn.Amount)
	}

	return &domain.MonthlySummary{
		Month:             targetMonth,
		TotalTransactions: len(txns),
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
		NetIncome:         totalIncome - totalExpenses,
		TopCategories:     categories.top(topLimit),
		TopMerchants:      merchants.top(topLimit),
		Transactions:      txns,
	}, nil
}

// filterMonth normalizes every record whose extracted month equals
// targetMonth and passes validation. The month check runs first so records
// from other months never produce validation warnings.
func (a *Aggregator) filterMonth(records []domain.Record, targetMonth string) []domain.Transaction {
	var txns []domain.Transaction
	for _, rec := range records {
		month, ok := a.monthOf(rec)
		if !ok || month != targetMonth {
			continue
		}
		txn, ok := a.normalizeRecord(rec)
		if !ok {
			continue
		}
		txns = append(txns, txn)
	}
	return txns
}

// monthOf extracts the canonical month key of one record, warning when the
// date cannot be parsed.
func (a *Aggregator) monthOf(rec domain.Record) (string, bool) {
	dateStr := rec.Str("date")
	month, ok := normalize.ExtractMonth(dateStr)
	if !ok {
		a.log.Warn().
			Str("description", rec.Str("description")).
			Str("date", dateStr).
			Msg("Could not parse transaction date, skipping")
		return "", false
	}
	return month, true
}

// normalizeRecord converts one raw record into a validated transaction.
// Callers filter by month first; ok is false when the record must be skipped.
func (a *Aggregator) normalizeRecord(rec domain.Record) (domain.Transaction, bool) {
	dateStr := rec.Str("date")
	description := rec.Str("description")

	amount := math.Abs(normalize.ParseAmount(rec.Str("amount")))
	category := rec.StrOr("category", "Unknown")
	merchant := rec.StrOr("merchant", "Unknown")

	// A zero amount fails validation the same way a missing field does, so a
	// legitimately zero-amount transaction is indistinguishable from a parse
	// failure here. The exclusion is deliberate.
	if dateStr == "" || amount == 0 || category == "" || merchant == "" {
		a.log.Warn().
			Str("description", description).
			Msg("Skipping transaction with missing essential data")
		return domain.Transaction{}, false
	}

	return domain.Transaction{
		Date:          dateStr,
		Amount:        amount,
		Type:          strings.ToLower(rec.Str("transactionType")),
		Category:      category,
		Merchant:      merchant,
		Description:   description,
		PaymentMethod: rec.StrOr("paymentMethod", "Unknown"),
	}, true
}

// totals accumulates per-name magnitudes while remembering encounter order,
// so ranking ties resolve to whichever name appeared first.
type totals struct {
	amounts map[string]float64
	order   []string
}

func newTotals() *totals {
	return &totals{amounts: make(map[string]float64)}
}

func (t *totals) add(name string, amount float64) {
	if _, seen := t.amounts[name]; !seen {
		t.order = append(t.order, name)
	}
	t.amounts[name] += amount
}

func (t *totals) top(n int) []domain.RankedTotal {
	ranked := make([]domain.RankedTotal, 0, len(t.order))
	for _, name := range t.order {
		ranked = append(ranked, domain.RankedTotal{Name: name, Amount: t.amounts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Amount > ranked[j].Amount })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
