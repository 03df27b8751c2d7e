// Package projection computes derived read-only views over the ledger.
// Every function is pure and deterministic given (ledger, now).
package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/citrushq/citrus-ledger/internal/model"
)

// Stats aggregates the ledger for the dashboard.
type Stats struct {
	TotalBalance    decimal.Decimal
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
}

// Bucket is one time slice of a spending series.
type Bucket struct {
	Label    string
	Start    time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// ComputeStats returns the total balance across all accounts and the
// income/expense sums for the calendar month of now. Transactions in the
// reserved Transfer category are balance-neutral and never counted.
func ComputeStats(accounts []model.Account, transactions []model.Transaction, now time.Time) Stats {
	stats := Stats{
		TotalBalance:    decimal.Zero,
		MonthlyIncome:   decimal.Zero,
		MonthlyExpenses: decimal.Zero,
	}

	for _, acc := range accounts {
		stats.TotalBalance = stats.TotalBalance.Add(acc.Balance)
	}

	for _, txn := range transactions {
		if txn.Category == model.CategoryTransfer {
			continue
		}
		if txn.Date.Year() != now.Year() || txn.Date.Month() != now.Month() {
			continue
		}
		switch txn.Type {
		case model.TypeIncome:
			stats.MonthlyIncome = stats.MonthlyIncome.Add(txn.Amount)
		case model.TypeExpense:
			stats.MonthlyExpenses = stats.MonthlyExpenses.Add(txn.Amount)
		}
	}

	return stats
}

// ComputeSeries produces bucketCount ordered buckets ending on the day of
// now, each spanning bucketSizeDays days. Labels use short weekday names
// for spans of a week or less and "Jan 2" style otherwise. The Transfer
// exclusion rule matches ComputeStats.
func ComputeSeries(transactions []model.Transaction, bucketCount, bucketSizeDays int, now time.Time) []Bucket {
	if bucketCount <= 0 || bucketSizeDays <= 0 {
		return nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	spanDays := bucketCount * bucketSizeDays
	buckets := make([]Bucket, bucketCount)

	for i := range buckets {
		start := today.AddDate(0, 0, -(bucketCount-1-i)*bucketSizeDays)
		label := start.Format("Jan 2")
		if spanDays <= 7 {
			label = start.Format("Mon")
		}
		buckets[i] = Bucket{
			Label:    label,
			Start:    start,
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
	}

	seriesStart := buckets[0].Start
	seriesEnd := today.AddDate(0, 0, bucketSizeDays)

	for _, txn := range transactions {
		if txn.Category == model.CategoryTransfer {
			continue
		}
		if txn.Date.Before(seriesStart) || !txn.Date.Before(seriesEnd) {
			continue
		}
		idx := int(txn.Date.Sub(seriesStart).Hours() / 24 / float64(bucketSizeDays))
		if idx < 0 || idx >= bucketCount {
			continue
		}
		switch txn.Type {
		case model.TypeIncome:
			buckets[idx].Income = buckets[idx].Income.Add(txn.Amount)
		case model.TypeExpense:
			buckets[idx].Expenses = buckets[idx].Expenses.Add(txn.Amount)
		}
	}

	return buckets
}
