// Package render turns session read models into markdown documents and
// styles them for the terminal.
package render

import (
	"bytes"
	"fmt"
	"io"

	"dompet/internal/core"
	"dompet/internal/services"

	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"
)

// Home renders totals, goal progress and the recent transactions.
func Home(h services.HomePage) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Ringkasan")
	doc.Table(md.TableSet{
		Header: []string{"", "Jumlah"},
		Rows: [][]string{
			{"Pemasukan", h.Totals.Income.Format(h.Currency)},
			{"Pengeluaran", h.Totals.Expense.Format(h.Currency)},
			{md.Bold("Saldo"), md.Bold(h.Totals.Balance.Format(h.Currency))},
		},
	})

	doc.H2("Target tabungan")
	doc.PlainText(GoalLine(h))

	doc.H2("Terbaru")
	if len(h.Recent) == 0 {
		doc.PlainText("Belum ada transaksi.")
	} else {
		items := make([]string, len(h.Recent))
		for i, r := range h.Recent {
			items[i] = fmt.Sprintf("%s %s - %s", r.Emoji, r.Description, md.Bold(r.Amount))
		}
		doc.BulletList(items...)
	}

	return doc.String()
}

// GoalLine describes the goal progress in one sentence.
func GoalLine(h services.HomePage) string {
	if !h.Progress.Set {
		return "Belum ada target."
	}
	line := fmt.Sprintf("Progres: %.1f%% dari %s", h.Progress.Percent, h.Goal.Format(h.Currency))
	if h.Progress.Met {
		line += " (tercapai)"
	}
	return line
}

// Transactions renders the filtered list as a table.
func Transactions(p services.TransactionsPage) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transaksi")
	doc.PlainText(fmt.Sprintf("%d dari %d transaksi (filter: %s, urut: %s)",
		len(p.Rows), p.Total, p.Query.Type, p.Query.Sort))
	if len(p.Rows) == 0 {
		return doc.String()
	}

	rows := make([][]string, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = []string{
			r.Date,
			r.Description,
			r.TypeLabel,
			r.Category,
			r.Sign + " " + r.Amount,
			r.ID,
		}
	}
	doc.Table(md.TableSet{
		Header: []string{"Tanggal", "Deskripsi", "Tipe", "Kategori", "Jumlah", "ID"},
		Rows:   rows,
	})

	return doc.String()
}

// Detail renders a single transaction.
func Detail(r services.Row) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(r.Description)
	doc.BulletList(
		md.Bold("Jumlah:")+" "+r.Amount,
		md.Bold("Tipe:")+" "+string(r.Type),
		md.Bold("Kategori:")+" "+r.Emoji+" "+r.Category,
		md.Bold("Tanggal:")+" "+r.Date,
		md.Bold("ID:")+" "+r.ID,
	)
	return doc.String()
}

// Report renders the monthly and category charts as tables plus this year's totals.
func Report(rep services.ReportPage) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	amount := func(v int64) string { return core.Units(v).Format(rep.Currency) }

	doc.H1("Laporan")

	doc.H2(fmt.Sprintf("%d bulan terakhir", rep.Months))
	rows := make([][]string, len(rep.Monthly.Labels))
	for i, label := range rep.Monthly.Labels {
		row := []string{label}
		for _, s := range rep.Monthly.Series {
			row = append(row, amount(s.Values[i]))
		}
		rows[i] = row
	}
	doc.Table(md.TableSet{
		Header: []string{"Bulan", "Pemasukan", "Pengeluaran"},
		Rows:   rows,
	})

	doc.H2("Per kategori")
	if len(rep.Categories.Labels) == 0 {
		doc.PlainText("Belum ada transaksi.")
	} else {
		series := rep.Categories.Series[0]
		rows = make([][]string, len(rep.Categories.Labels))
		for i, label := range rep.Categories.Labels {
			rows[i] = []string{label, amount(series.Values[i])}
		}
		doc.Table(md.TableSet{
			Header: []string{"Kategori", "Total"},
			Rows:   rows,
		})
	}

	doc.H2(fmt.Sprintf("Tahun %d", rep.Year))
	doc.Table(md.TableSet{
		Header: []string{"", "Jumlah"},
		Rows: [][]string{
			{"Pemasukan", rep.YearTotals.Income.Format(rep.Currency)},
			{"Pengeluaran", rep.YearTotals.Expense.Format(rep.Currency)},
			{md.Bold("Saldo"), md.Bold(rep.YearTotals.Balance.Format(rep.Currency))},
		},
	})

	return doc.String()
}

// Terminal styles a markdown document for an ANSI terminal.
func Terminal(markdown string) (string, error) {
	return glamour.Render(markdown, "auto")
}

// Print writes the document to w, styled unless plain is set. Styling
// failures fall back to the raw markdown.
func Print(w io.Writer, markdown string, plain bool) error {
	out := markdown
	if !plain {
		if styled, err := Terminal(markdown); err == nil {
			out = styled
		}
	}
	_, err := io.WriteString(w, out)
	return err
}
