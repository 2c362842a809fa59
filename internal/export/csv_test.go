package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"dompet/internal/core"
)

func TestWriteCSV(t *testing.T) {
	txs := []core.Transaction{
		{ID: "a1", Description: `He said "hi"`, Amount: core.Units(20000), Type: core.Expense, Category: "makan", Date: core.NewDate(2024, 1, 1)},
		{ID: "b2", Description: "gaji, bulan ini", Amount: core.Units(12000000), Type: core.Income, Category: "tabungan", Date: core.NewDate(2024, 1, 5)},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, txs); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := strings.Join([]string{
		`"id","date","desc","type","category","amount"`,
		`"a1","2024-01-01","He said ""hi""","expense","makan","20000"`,
		`"b2","2024-01-05","gaji, bulan ini","income","tabungan","12000000"`,
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%s\nwant:\n%s", buf.String(), want)
	}

	// standard readers understand the output
	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if len(rows) != 3 || rows[1][2] != `He said "hi"` || rows[2][2] != "gaji, bulan ini" {
		t.Fatalf("unexpected parsed rows %q", rows)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != `"id","date","desc","type","category","amount"` {
		t.Fatalf("unexpected header-only output %q", buf.String())
	}
}

func TestFileName(t *testing.T) {
	got := FileName(time.UnixMilli(1700000000123))
	if got != "transactions_1700000000123.csv" {
		t.Fatalf("unexpected file name %q", got)
	}
}
