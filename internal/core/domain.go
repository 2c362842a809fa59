package core

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// DateFormat is the layout used for dates in stored documents and exports.
const DateFormat = "2006-01-02"

type (
	TxType string

	// Date is a calendar day at midnight UTC.
	Date struct {
		time.Time
	}

	Transaction struct {
		ID          string `json:"id"`
		Description string `json:"desc"`
		Amount      Money  `json:"amount"`
		Type        TxType `json:"type"`
		Category    string `json:"category"`
		Date        Date   `json:"date"`
	}

	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Emoji string `json:"emoji"`
		Color string `json:"color"`
	}

	// Ledger owns every transaction and category plus the savings goal.
	// Transactions are kept newest-created first. A zero Goal means unset.
	Ledger struct {
		Transactions []Transaction
		Categories   []Category
		Goal         Money
	}
)

// FallbackColor is used for transactions whose category no longer exists.
const FallbackColor = "#eee"

// ParseTxType accepts "income" or "expense", case-insensitively.
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(strings.ToLower(strings.TrimSpace(s))); t {
	case Income, Expense:
		return t, nil
	}
	return "", &ValidationError{Field: "type", Err: ErrInvalidType}
}

func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

func (t TxType) String() string {
	return string(t)
}

// NewDate creates a new Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Err: ErrInvalidDate}
	}
	return Date{Time: t}, nil
}

// AddDays returns the date offset by n days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) String() string {
	return d.Format(DateFormat)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return &ValidationError{Field: "date", Err: ErrInvalidDate}
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return &ValidationError{Field: "description", Err: ErrEmptyDescription}
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return &ValidationError{Field: "type", Err: ErrInvalidType}
	}
	return t.Date.Validate()
}

// DefaultCategories returns the seeded category list.
func DefaultCategories() []Category {
	return []Category{
		{ID: "makan", Name: "Makan", Emoji: "🍔", Color: "#ffd6e8"},
		{ID: "transport", Name: "Transport", Emoji: "🚌", Color: "#d8e9ff"},
		{ID: "hiburan", Name: "Hiburan", Emoji: "🎬", Color: "#f3d9ff"},
		{ID: "tagihan", Name: "Tagihan", Emoji: "💡", Color: "#ffd8b3"},
		{ID: "belanja", Name: "Belanja", Emoji: "🛍️", Color: "#f1d9ff"},
		{ID: "tabungan", Name: "Tabungan", Emoji: "🏦", Color: "#d4f8d4"},
		{ID: "lainnya", Name: "Lainnya", Emoji: "✨", Color: "#e0c1f6"},
	}
}

// NewLedger returns an empty ledger with the seeded categories.
func NewLedger() *Ledger {
	return &Ledger{Categories: DefaultCategories()}
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{
		Transactions: append([]Transaction(nil), l.Transactions...),
		Categories:   append([]Category(nil), l.Categories...),
		Goal:         l.Goal,
	}
}

// Index returns the position of the transaction with the given id, or -1.
func (l *Ledger) Index(id string) int {
	for i, t := range l.Transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Category returns the category with the given id.
func (l *Ledger) Category(id string) (Category, bool) {
	return LookupCategory(l.Categories, id)
}

// LookupCategory finds id in cats.
func LookupCategory(cats []Category, id string) (Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ResolveCategory returns the category for id, or a placeholder named after
// the id when it is not part of cats.
func ResolveCategory(cats []Category, id string) Category {
	if c, ok := LookupCategory(cats, id); ok {
		return c
	}
	return Category{ID: id, Name: id, Color: FallbackColor}
}
