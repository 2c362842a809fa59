package amqp

import (
	"encoding/json"
	"time"

	"dompet/internal/core"
)

// LedgerChangeMessage announces one applied ledger mutation. It carries no
// transaction data; consumers reload the ledger if they need it.
type LedgerChangeMessage struct {
	Op            string    `json:"op"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Revision      uint64    `json:"revision"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewLedgerChangeMessage builds the message for c.
func NewLedgerChangeMessage(c core.Change) *LedgerChangeMessage {
	ts := c.At
	if ts.IsZero() {
		ts = time.Now()
	}
	return &LedgerChangeMessage{
		Op:            string(c.Op),
		TransactionID: c.TransactionID,
		Revision:      c.Revision,
		Timestamp:     ts.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangeMessageFromJSON creates a message from JSON bytes
func LedgerChangeMessageFromJSON(data []byte) (*LedgerChangeMessage, error) {
	var msg LedgerChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
