package domain

// Record is one raw transaction item as retrieved from the transaction store.
// The upstream extraction step controls the field set, so the shape is a
// schema-less mapping with optional-extraction accessors rather than a rigid
// struct; missing or extra fields are tolerated.
type Record map[string]any

// Str returns the string value for key, or "" when the field is missing or
// holds a non-string value.
func (r Record) Str(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// StrOr returns the string value for key, or fallback when the field is
// missing or holds a non-string value. A present-but-empty string is
// returned as-is.
func (r Record) StrOr(key, fallback string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// Transaction is one normalized transaction that passed validation for a
// report run. Amount is the non-negative magnitude; the direction is carried
// by Type. The raw date string is preserved for the detail table.
type Transaction struct {
	Date          string
	Amount        float64
	Type          string // lowercased transactionType; "credit" means income
	Category      string
	Merchant      string
	Description   string
	PaymentMethod string
}

// RankedTotal is one entry of a top-categories or top-merchants list.
type RankedTotal struct {
	Name   string
	Amount float64
}

// MonthlySummary is the aggregation result for a single target month.
// NetIncome is always TotalIncome - TotalExpenses.
type MonthlySummary struct {
	Month             string // canonical YYYY-MM key
	TotalTransactions int
	TotalIncome       float64
	TotalExpenses     float64
	NetIncome         float64
	TopCategories     []RankedTotal // <=10, descending by amount
	TopMerchants      []RankedTotal // <=10, descending by amount
	Transactions      []Transaction
}

// MonthStatus classifies a month by the sign of its net income.
type MonthStatus string

const (
	StatusProfit    MonthStatus = "Profit"
	StatusLoss      MonthStatus = "Loss"
	StatusBreakEven MonthStatus = "Break-even"
)

// MonthBreakdown is one row of the overall summary's per-month table.
type MonthBreakdown struct {
	Month    string
	Income   float64
	Expenses float64
	Net      float64
	Status   MonthStatus
}

// OverallSummary is the cross-month rollup. Derived from per-month totals,
// never persisted.
type OverallSummary struct {
	TotalMonths            int
	TotalIncome            float64
	TotalExpenses          float64
	NetIncome              float64
	AverageMonthlyIncome   float64
	AverageMonthlyExpenses float64
	Breakdown              []MonthBreakdown // ascending by month key
}
