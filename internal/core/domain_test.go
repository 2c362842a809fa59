package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.February || d.Day() != 29 {
		t.Fatalf("unexpected date %v", d)
	}
	for _, in := range []string{"", "2023-02-29", "29/02/2024", "2024-1-5"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", in, err)
		}
	}
}

func TestParseTxType(t *testing.T) {
	if got, err := ParseTxType(" Income "); err != nil || got != Income {
		t.Fatalf("expected income, got %q (err=%v)", got, err)
	}
	if got, err := ParseTxType("expense"); err != nil || got != Expense {
		t.Fatalf("expected expense, got %q (err=%v)", got, err)
	}
	if _, err := ParseTxType("transfer"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:          "a",
		Description: "ok",
		Amount:      Units(100),
		Type:        Expense,
		Category:    "makan",
		Date:        NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Description: "  ", Amount: Units(1), Type: Income, Date: NewDate(2025, 1, 1)}, ErrEmptyDescription},
		{Transaction{Description: "a", Amount: Units(0), Type: Income, Date: NewDate(2025, 1, 1)}, ErrInvalidAmount},
		{Transaction{Description: "a", Amount: Units(-3), Type: Income, Date: NewDate(2025, 1, 1)}, ErrInvalidAmount},
		{Transaction{Description: "a", Amount: Units(1), Type: "gift", Date: NewDate(2025, 1, 1)}, ErrInvalidType},
		{Transaction{Description: "a", Amount: Units(1), Type: Income}, ErrInvalidDate},
	}
	for i, tc := range bads {
		err := tc.tx.Validate()
		if !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
		if !IsValidation(err) {
			t.Fatalf("case %d expected a ValidationError, got %T", i, err)
		}
	}
}

func TestTransactionJSONKeys(t *testing.T) {
	tx := Transaction{
		ID:          "x1",
		Description: "gaji",
		Amount:      Units(12000000),
		Type:        Income,
		Category:    "tabungan",
		Date:        NewDate(2024, 3, 9),
	}
	b, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"x1","desc":"gaji","amount":12000000,"type":"income","category":"tabungan","date":"2024-03-09"}`
	if string(b) != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", b, want)
	}
}

func TestResolveCategory(t *testing.T) {
	cats := DefaultCategories()
	if c := ResolveCategory(cats, "makan"); c.Name != "Makan" || c.Emoji != "🍔" {
		t.Fatalf("unexpected category %+v", c)
	}
	c := ResolveCategory(cats, "gone")
	if c.Name != "gone" || c.Color != FallbackColor || c.Emoji != "" {
		t.Fatalf("unexpected fallback %+v", c)
	}
}

func TestLedgerCloneIsIndependent(t *testing.T) {
	l := NewLedger()
	l.Transactions = []Transaction{{ID: "a"}}
	c := l.Clone()
	c.Transactions[0].ID = "b"
	c.Categories[0].Name = "changed"
	if l.Transactions[0].ID != "a" || l.Categories[0].Name != "Makan" {
		t.Fatalf("clone shares storage with original")
	}
	if l.Index("a") != 0 || l.Index("b") != -1 {
		t.Fatalf("unexpected index results")
	}
}
