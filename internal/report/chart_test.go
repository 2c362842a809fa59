package report

import (
	"testing"

	"dompet/internal/core"
)

func TestMonthlyChart(t *testing.T) {
	c := MonthlyChart(GroupByMonth(sample(), 3, now))
	if len(c.Labels) != 3 || c.Labels[0] != "01/2024" || c.Labels[2] != "03/2024" {
		t.Fatalf("unexpected labels %v", c.Labels)
	}
	if len(c.Series) != 2 || c.Series[0].Name != SeriesIncome || c.Series[1].Name != SeriesExpense {
		t.Fatalf("unexpected series %+v", c.Series)
	}
	if c.Series[0].Values[0] != 5000000 || c.Series[1].Values[2] != 153500 {
		t.Fatalf("unexpected values %+v", c.Series)
	}
}

func TestCategoryChartFallsBackForUnknownCategories(t *testing.T) {
	totals := []core.CategoryTotal{
		{CategoryID: "makan", Amount: core.Units(10)},
		{CategoryID: "crypto", Amount: core.Units(20)},
	}
	c := CategoryChart(totals, core.DefaultCategories())
	if c.Labels[0] != "Makan" || c.Labels[1] != "crypto" {
		t.Fatalf("unexpected labels %v", c.Labels)
	}
	s := c.Series[0]
	if s.Colors[0] != "#ffd6e8" || s.Colors[1] != core.FallbackColor {
		t.Fatalf("unexpected colors %v", s.Colors)
	}
	if s.Values[1] != 20 {
		t.Fatalf("unexpected values %v", s.Values)
	}
}
