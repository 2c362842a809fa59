// Package ledger owns the in-memory Ledger: the Transaction Store operations
// and loading/saving the whole document through a kv.Store.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dompet/internal/core"
	"dompet/internal/kv"
	"dompet/internal/log"
)

// DefaultKey is the key the ledger document is stored under.
const DefaultKey = "finance_app_v3"

// document is the stored JSON shape.
type document struct {
	Transactions []core.Transaction `json:"transactions"`
	Categories   []core.Category    `json:"categories"`
	Goal         core.Money         `json:"goal"`
}

// rawTransaction keeps every field loosely typed so one bad record does not
// poison the rest of the document.
type rawTransaction struct {
	ID       string          `json:"id"`
	Desc     string          `json:"desc"`
	Amount   json.RawMessage `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}

// Repository loads and saves the ledger under a single key.
type Repository struct {
	store  kv.Store
	key    string
	logger *log.Logger
	now    func() time.Time
}

type RepositoryOption func(*Repository)

// WithClock overrides the time source used for defaults and the sample ledger.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) { r.now = now }
}

func NewRepository(store kv.Store, key string, logger *log.Logger, opts ...RepositoryOption) *Repository {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.Discard()
	}
	r := &Repository{
		store:  store,
		key:    key,
		logger: logger.WithComponent(log.ComponentLedger),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the storage key.
func (r *Repository) Key() string { return r.key }

// Load returns the stored ledger merged over the defaults. When nothing is
// stored yet, the sample ledger is saved and returned. A corrupt document is
// logged and the default ledger is returned; only store failures are errors.
func (r *Repository) Load(ctx context.Context) (*core.Ledger, error) {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if !ok {
		l := SampleLedger(core.DateOf(r.now()), NewID)
		if err := r.Save(ctx, l); err != nil {
			return nil, err
		}
		r.logger.InfoContext(ctx, "Seeded sample ledger", log.FieldKey, r.key)
		return l, nil
	}

	l, err := r.decode(ctx, raw)
	if err != nil {
		r.logger.WarnContext(ctx, "Stored ledger unreadable, using defaults",
			log.FieldKey, r.key, log.FieldError, err)
		return core.NewLedger(), nil
	}
	return l, nil
}

func (r *Repository) decode(ctx context.Context, raw string) (*core.Ledger, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &core.PersistenceParseError{Key: r.key, Err: err}
	}

	l := core.NewLedger()
	if b, ok := fields["categories"]; ok {
		var cats []core.Category
		if err := json.Unmarshal(b, &cats); err != nil {
			r.logger.WarnContext(ctx, "Ignoring stored categories", log.FieldError, err)
		} else if valid := validCategories(cats); len(valid) > 0 {
			l.Categories = valid
		}
	}
	if b, ok := fields["goal"]; ok {
		var goal core.Money
		if err := json.Unmarshal(b, &goal); err != nil || goal.Units < 0 {
			r.logger.WarnContext(ctx, "Ignoring stored goal", log.FieldError, err)
		} else {
			l.Goal = goal
		}
	}
	if b, ok := fields["transactions"]; ok {
		var raws []rawTransaction
		if err := json.Unmarshal(b, &raws); err != nil {
			r.logger.WarnContext(ctx, "Ignoring stored transactions", log.FieldError, err)
		} else {
			l.Transactions = r.transactions(ctx, raws)
		}
	}
	return l, nil
}

func (r *Repository) transactions(ctx context.Context, raws []rawTransaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		tx, err := r.transaction(raw)
		if err == nil {
			if _, dup := seen[tx.ID]; dup {
				err = fmt.Errorf("duplicate id %q", tx.ID)
			}
		}
		if err != nil {
			r.logger.WarnContext(ctx, "Dropping malformed stored transaction",
				"index", i, log.FieldTransactionID, raw.ID, log.FieldError, err)
			continue
		}
		seen[tx.ID] = struct{}{}
		out = append(out, tx)
	}
	return out
}

func (r *Repository) transaction(raw rawTransaction) (core.Transaction, error) {
	if strings.TrimSpace(raw.ID) == "" {
		return core.Transaction{}, fmt.Errorf("missing id")
	}
	var amount core.Money
	if len(raw.Amount) == 0 {
		return core.Transaction{}, &core.ValidationError{Field: "amount", Err: core.ErrInvalidAmount}
	}
	if err := json.Unmarshal(raw.Amount, &amount); err != nil {
		return core.Transaction{}, err
	}
	txType, err := core.ParseTxType(raw.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	date := core.DateOf(r.now())
	if strings.TrimSpace(raw.Date) != "" {
		if date, err = core.ParseDate(raw.Date); err != nil {
			return core.Transaction{}, err
		}
	}
	tx := core.Transaction{
		ID:          raw.ID,
		Description: raw.Desc,
		Amount:      amount,
		Type:        txType,
		Category:    raw.Category,
		Date:        date,
	}
	return tx, tx.Validate()
}

func validCategories(cats []core.Category) []core.Category {
	out := make([]core.Category, 0, len(cats))
	for _, c := range cats {
		if strings.TrimSpace(c.ID) == "" {
			continue
		}
		if c.Name == "" {
			c.Name = c.ID
		}
		if c.Color == "" {
			c.Color = core.FallbackColor
		}
		out = append(out, c)
	}
	return out
}

// Save serialises the whole ledger and writes it under the key.
func (r *Repository) Save(ctx context.Context, l *core.Ledger) error {
	doc := document{
		Transactions: l.Transactions,
		Categories:   l.Categories,
		Goal:         l.Goal,
	}
	if doc.Transactions == nil {
		doc.Transactions = []core.Transaction{}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := r.store.Set(ctx, r.key, string(b)); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	r.logger.DebugContext(ctx, "Ledger saved", log.FieldKey, r.key, log.FieldCount, len(l.Transactions))
	return nil
}

// SampleLedger returns the first-run ledger: one salary and one meal.
func SampleLedger(today core.Date, newID func() string) *core.Ledger {
	l := core.NewLedger()
	l.Transactions = []core.Transaction{
		{ID: newID(), Description: "gaji ✨", Amount: core.Units(12000000), Type: core.Income, Category: "tabungan", Date: today.AddDays(-10)},
		{ID: newID(), Description: "makan 🍔", Amount: core.Units(250000), Type: core.Expense, Category: "makan", Date: today.AddDays(-5)},
	}
	return l
}
