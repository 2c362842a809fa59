package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"dompet/internal/core"
	"dompet/internal/kv/memory"
)

func newTestRepo(seed map[string]string) (*Repository, *memory.Store) {
	kv := memory.NewWith(seed)
	repo := NewRepository(kv, "", nil, WithClock(func() time.Time { return fixedNow }))
	return repo, kv
}

func TestRepository_LoadSeedsSampleOnFirstRun(t *testing.T) {
	ctx := context.Background()
	repo, kv := newTestRepo(nil)

	l, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(l.Transactions) != 2 {
		t.Fatalf("expected sample transactions, got %d", len(l.Transactions))
	}
	gaji, makan := l.Transactions[0], l.Transactions[1]
	if gaji.Type != core.Income || gaji.Amount.Units != 12000000 || gaji.Date.String() != "2024-03-05" {
		t.Fatalf("unexpected salary sample %+v", gaji)
	}
	if makan.Type != core.Expense || makan.Amount.Units != 250000 || makan.Date.String() != "2024-03-10" {
		t.Fatalf("unexpected meal sample %+v", makan)
	}
	if kv.Writes() != 1 {
		t.Fatalf("sample ledger should be saved immediately")
	}
	if len(l.Categories) != len(core.DefaultCategories()) {
		t.Fatalf("expected seeded categories")
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(nil)

	in := core.NewLedger()
	in.Goal = core.Units(7500000)
	in.Transactions = []core.Transaction{
		{ID: "c", Description: `He said "hi"`, Amount: core.Units(20000), Type: core.Expense, Category: "makan", Date: core.NewDate(2024, 1, 1)},
		{ID: "a", Description: "Salary", Amount: core.Units(5000000), Type: core.Income, Category: "tabungan", Date: core.NewDate(2024, 1, 5)},
		{ID: "b", Description: "Dangling", Amount: core.Units(1), Type: core.Expense, Category: "gone", Date: core.NewDate(2023, 12, 31)},
	}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Goal != in.Goal {
		t.Fatalf("goal mismatch: %v vs %v", out.Goal, in.Goal)
	}
	if len(out.Transactions) != len(in.Transactions) {
		t.Fatalf("transaction count mismatch")
	}
	for i := range in.Transactions {
		a, b := in.Transactions[i], out.Transactions[i]
		if a.ID != b.ID || a.Description != b.Description || a.Amount != b.Amount ||
			a.Type != b.Type || a.Category != b.Category || !a.Date.Equal(b.Date.Time) {
			t.Fatalf("transaction %d differs:\n in %+v\nout %+v", i, a, b)
		}
	}
}

func TestRepository_CorruptDocumentFallsBackToDefaults(t *testing.T) {
	repo, kv := newTestRepo(map[string]string{DefaultKey: "{not json"})
	l, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt document must not be fatal: %v", err)
	}
	if len(l.Transactions) != 0 || len(l.Categories) != len(core.DefaultCategories()) || !l.Goal.IsZero() {
		t.Fatalf("expected default ledger, got %+v", l)
	}
	if kv.Writes() != 0 {
		t.Fatalf("loading a corrupt document must not overwrite it")
	}
}

func TestRepository_DecodeReportsParseError(t *testing.T) {
	repo, _ := newTestRepo(nil)
	_, err := repo.decode(context.Background(), "[")
	var pe *core.PersistenceParseError
	if !errors.As(err, &pe) || pe.Key != DefaultKey {
		t.Fatalf("expected PersistenceParseError, got %v", err)
	}
}

func TestRepository_PartialDocumentMergesOverDefaults(t *testing.T) {
	repo, _ := newTestRepo(map[string]string{DefaultKey: `{"goal": 1000}`})
	l, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Goal.Units != 1000 {
		t.Fatalf("goal not merged: %v", l.Goal)
	}
	if len(l.Categories) != len(core.DefaultCategories()) || len(l.Transactions) != 0 {
		t.Fatalf("missing fields should keep defaults")
	}
}

func TestRepository_DropsMalformedRecords(t *testing.T) {
	doc := `{"transactions":[
		{"id":"ok","desc":"Coffee","amount":20000,"type":"expense","category":"makan","date":"2024-01-01"},
		{"id":"nodate","desc":"Tea","amount":"5000","type":"expense","category":"makan"},
		{"id":"huge","desc":"Overflow","amount":1e20,"type":"income","category":"gaji","date":"2024-01-01"},
		{"id":"zero","desc":"Free","amount":0,"type":"expense","category":"makan","date":"2024-01-01"},
		{"id":"badtype","desc":"?","amount":10,"type":"gift","category":"makan","date":"2024-01-01"},
		{"id":"baddate","desc":"?","amount":10,"type":"income","category":"makan","date":"01/01/2024"},
		{"desc":"noid","amount":10,"type":"income","category":"makan","date":"2024-01-01"},
		{"id":"ok","desc":"dup","amount":10,"type":"income","category":"makan","date":"2024-01-01"}
	],"categories":[{"id":"x","name":"X"},{"name":"no id"}],"goal":-5}`
	repo, _ := newTestRepo(map[string]string{DefaultKey: doc})
	l, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var ids []string
	for _, tx := range l.Transactions {
		ids = append(ids, tx.ID)
	}
	if strings.Join(ids, ",") != "ok,nodate" {
		t.Fatalf("unexpected surviving ids %v", ids)
	}
	if l.Transactions[1].Date.String() != "2024-03-15" {
		t.Fatalf("missing date should default to today, got %s", l.Transactions[1].Date)
	}
	if len(l.Categories) != 1 || l.Categories[0].Color != core.FallbackColor {
		t.Fatalf("unexpected categories %+v", l.Categories)
	}
	if !l.Goal.IsZero() {
		t.Fatalf("negative stored goal should be ignored")
	}
}

func TestOpenStorePersistsThroughRepository(t *testing.T) {
	ctx := context.Background()
	repo, kv := newTestRepo(map[string]string{DefaultKey: `{"transactions":[]}`})
	s, err := Open(ctx, repo, WithStoreClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Create(ctx, draft("Coffee", 20000, core.Expense, core.Date{})); err != nil {
		t.Fatalf("create: %v", err)
	}
	raw, _, _ := kv.Get(ctx, DefaultKey)
	if !strings.Contains(raw, `"desc":"Coffee"`) || !strings.Contains(raw, `"date":"2024-03-15"`) {
		t.Fatalf("store did not persist through repository: %s", raw)
	}
}
