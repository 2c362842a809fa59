// Package export formats the transaction list as a delimited-text document.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"dompet/internal/core"
)

// Header is the fixed first row of every export.
var Header = []string{"id", "date", "desc", "type", "category", "amount"}

// Record returns the export fields of tx in Header order.
func Record(tx core.Transaction) []string {
	return []string{tx.ID, tx.Date.String(), tx.Description, tx.Type.String(), tx.Category, tx.Amount.String()}
}

// WriteCSV writes the header and one row per transaction. Every field is
// double-quoted with embedded quotes doubled; rows are separated by "\n"
// with no trailing newline.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, Header)
	for _, tx := range txs {
		bw.WriteByte('\n')
		writeRow(bw, Record(tx))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeRow(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
}

// FileName is the suggested download name for an export made at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("transactions_%d.csv", now.UnixMilli())
}
