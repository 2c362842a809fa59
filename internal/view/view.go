// Package view derives the display list of transactions from a search text,
// a type filter and a sort key. It always recomputes from the full list.
package view

import (
	"cmp"
	"slices"
	"strings"

	"dompet/internal/core"
)

// TypeFilter restricts the list to one transaction type.
type TypeFilter string

const (
	All         TypeFilter = "all"
	OnlyIncome  TypeFilter = "income"
	OnlyExpense TypeFilter = "expense"
)

// SortKey orders the list.
type SortKey string

const (
	Newest     SortKey = "newest"
	AmountDesc SortKey = "amount_desc"
	AmountAsc  SortKey = "amount_asc"
)

// Query is the full set of view inputs.
type Query struct {
	Text string
	Type TypeFilter
	Sort SortKey
}

// ParseType maps user input to a filter; anything unknown is All.
func ParseType(s string) TypeFilter {
	switch f := TypeFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case OnlyIncome, OnlyExpense:
		return f
	}
	return All
}

// ParseSort maps user input to a sort key; anything unknown is Newest.
func ParseSort(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case AmountDesc, AmountAsc:
		return k
	}
	return Newest
}

// Derive filters and sorts txs for display. cats is used to match category
// names. The input slice is not modified.
func Derive(txs []core.Transaction, cats []core.Category, q Query) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	for _, tx := range txs {
		if !matchType(tx, q.Type) {
			continue
		}
		if needle != "" && !matchText(tx, cats, needle) {
			continue
		}
		out = append(out, tx)
	}

	switch ParseSort(string(q.Sort)) {
	case AmountDesc:
		slices.SortStableFunc(out, func(a, b core.Transaction) int {
			return cmp.Compare(b.Amount.Units, a.Amount.Units)
		})
	case AmountAsc:
		slices.SortStableFunc(out, func(a, b core.Transaction) int {
			return cmp.Compare(a.Amount.Units, b.Amount.Units)
		})
	default:
		slices.SortStableFunc(out, func(a, b core.Transaction) int {
			return b.Date.Compare(a.Date.Time)
		})
	}
	return out
}

func matchType(tx core.Transaction, f TypeFilter) bool {
	switch ParseType(string(f)) {
	case OnlyIncome:
		return tx.Type == core.Income
	case OnlyExpense:
		return tx.Type == core.Expense
	}
	return true
}

func matchText(tx core.Transaction, cats []core.Category, needle string) bool {
	if strings.Contains(strings.ToLower(tx.Description), needle) ||
		strings.Contains(strings.ToLower(tx.Category), needle) {
		return true
	}
	if c, ok := core.LookupCategory(cats, tx.Category); ok {
		return strings.Contains(strings.ToLower(c.Name), needle)
	}
	return false
}
