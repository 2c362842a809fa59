package sheets

import (
	"context"

	"dompet/internal/core"
	"dompet/internal/export"
)

// Exporter replaces the contents of a remote sheet with the transaction list.
type Exporter interface {
	Export(ctx context.Context, txs []core.Transaction) error
}

// Rows converts txs to sheet rows: the CSV header followed by one row per
// transaction, with the same values as the CSV export.
func Rows(txs []core.Transaction) [][]any {
	rows := make([][]any, 0, len(txs)+1)
	rows = append(rows, toAny(export.Header))
	for _, tx := range txs {
		rows = append(rows, toAny(export.Record(tx)))
	}
	return rows
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
