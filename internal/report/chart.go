package report

import "dompet/internal/core"

// Series is one dataset of a chart. Colors is per point and may be empty.
type Series struct {
	Name   string
	Values []int64
	Colors []string
}

// Chart is the labels/series tuple handed to chart renderers.
type Chart struct {
	Labels []string
	Series []Series
}

// Series names used by the monthly chart.
const (
	SeriesIncome  = "income"
	SeriesExpense = "expense"
)

// MonthlyChart turns monthly buckets into a two-series bar chart.
func MonthlyChart(buckets []core.MonthBucket) Chart {
	c := Chart{
		Labels: make([]string, len(buckets)),
		Series: []Series{
			{Name: SeriesIncome, Values: make([]int64, len(buckets))},
			{Name: SeriesExpense, Values: make([]int64, len(buckets))},
		},
	}
	for i, b := range buckets {
		c.Labels[i] = b.Label
		c.Series[0].Values[i] = b.Income.Units
		c.Series[1].Values[i] = b.Expense.Units
	}
	return c
}

// CategoryChart turns category totals into a single-series donut chart,
// labelled with category names and colored per category.
func CategoryChart(totals []core.CategoryTotal, cats []core.Category) Chart {
	s := Series{
		Name:   "categories",
		Values: make([]int64, len(totals)),
		Colors: make([]string, len(totals)),
	}
	labels := make([]string, len(totals))
	for i, t := range totals {
		c := core.ResolveCategory(cats, t.CategoryID)
		labels[i] = c.Name
		s.Values[i] = t.Amount.Units
		s.Colors[i] = c.Color
	}
	return Chart{Labels: labels, Series: []Series{s}}
}
