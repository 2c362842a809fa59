// Package report derives summaries from a list of transactions: sums by type,
// savings goal progress, monthly series over a trailing window, per-category
// totals and yearly totals. Every function is pure; none of them reorder or
// modify their input.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"dompet/internal/core"
)

// SumByType adds up the amounts of all transactions of type t.
func SumByType(txs []core.Transaction, t core.TxType) core.Money {
	var sum core.Money
	for _, tx := range txs {
		if tx.Type == t {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// Balance is income minus expense.
func Balance(txs []core.Transaction) core.Money {
	return SumByType(txs, core.Income).Sub(SumByType(txs, core.Expense))
}

// Summarize returns income, expense and balance for txs.
func Summarize(txs []core.Transaction) core.Totals {
	inc, exp := SumByType(txs, core.Income), SumByType(txs, core.Expense)
	return core.Totals{Income: inc, Expense: exp, Balance: inc.Sub(exp)}
}

// Progress reports how far balance is towards goal. A goal of zero or less
// means there is no goal.
func Progress(balance, goal core.Money) core.GoalProgress {
	if goal.Units <= 0 {
		return core.GoalProgress{}
	}
	if balance.Units >= goal.Units {
		return core.GoalProgress{Set: true, Percent: 100, Met: true}
	}
	pct := float64(balance.Units) / float64(goal.Units) * 100
	return core.GoalProgress{Set: true, Percent: max(0, min(100, pct))}
}

func monthKey(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// GroupByMonth buckets txs by the calendar month of their date over the
// monthsBack months ending with now's month, oldest first. Months without
// transactions are present with zero sums; dates outside the window are
// ignored.
func GroupByMonth(txs []core.Transaction, monthsBack int, now time.Time) []core.MonthBucket {
	if monthsBack <= 0 {
		return []core.MonthBucket{}
	}
	buckets := make([]core.MonthBucket, monthsBack)
	first := time.Date(now.Year(), now.Month()-time.Month(monthsBack-1), 1, 0, 0, 0, 0, time.UTC)
	for i := range buckets {
		d := first.AddDate(0, i, 0)
		buckets[i] = core.MonthBucket{
			Year:  d.Year(),
			Month: d.Month(),
			Label: fmt.Sprintf("%02d/%d", int(d.Month()), d.Year()),
		}
	}

	base := monthKey(first.Year(), first.Month())
	for _, tx := range txs {
		i := monthKey(tx.Date.Year(), tx.Date.Month()) - base
		if i < 0 || i >= monthsBack {
			continue
		}
		switch tx.Type {
		case core.Income:
			buckets[i].Income = buckets[i].Income.Add(tx.Amount)
		case core.Expense:
			buckets[i].Expense = buckets[i].Expense.Add(tx.Amount)
		}
	}
	return buckets
}

// CategoryTotals sums the magnitude of every transaction per category, in the
// order categories are first seen in txs.
func CategoryTotals(txs []core.Transaction) []core.CategoryTotal {
	var out []core.CategoryTotal
	index := map[string]int{}
	for _, tx := range txs {
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, core.CategoryTotal{CategoryID: tx.Category})
		}
		out[i].Amount = out[i].Amount.Add(tx.Amount.Abs())
	}
	return out
}

// YearTotals summarises the transactions dated within year.
func YearTotals(txs []core.Transaction, year int) core.Totals {
	var in []core.Transaction
	for _, tx := range txs {
		if tx.Date.Year() == year {
			in = append(in, tx)
		}
	}
	return Summarize(in)
}

// Recent returns up to n transactions with the latest dates. Equal dates keep
// their stored order.
func Recent(txs []core.Transaction, n int) []core.Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b core.Transaction) int {
		return cmp.Compare(b.Date.Unix(), a.Date.Unix())
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
