package services

import (
	"strings"

	"dompet/internal/core"
	"dompet/internal/ledger"
)

// Form is raw user input for a transaction. Every field is a string as typed.
type Form struct {
	Description string
	Amount      string
	Type        string
	Category    string
	Date        string
}

// draft validates f at the boundary and converts it for the store.
// An empty category falls back to the first known category and an empty
// date means today.
func (f Form) draft(cats []core.Category) (ledger.Draft, error) {
	desc := strings.TrimSpace(f.Description)
	if desc == "" {
		return ledger.Draft{}, &core.ValidationError{Field: "description", Err: core.ErrEmptyDescription}
	}
	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		return ledger.Draft{}, err
	}
	txType, err := core.ParseTxType(f.Type)
	if err != nil {
		return ledger.Draft{}, err
	}

	category := strings.TrimSpace(f.Category)
	if category == "" && len(cats) > 0 {
		category = cats[0].ID
	}

	var date core.Date
	if s := strings.TrimSpace(f.Date); s != "" {
		if date, err = core.ParseDate(s); err != nil {
			return ledger.Draft{}, err
		}
	}

	return ledger.Draft{
		Description: desc,
		Amount:      amount,
		Type:        txType,
		Category:    category,
		Date:        date,
	}, nil
}

// FormOf pre-fills a form from an existing transaction, for editing.
func FormOf(tx core.Transaction) Form {
	return Form{
		Description: tx.Description,
		Amount:      tx.Amount.String(),
		Type:        tx.Type.String(),
		Category:    tx.Category,
		Date:        tx.Date.String(),
	}
}
