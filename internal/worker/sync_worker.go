package worker

import (
	"context"
	"fmt"
	"time"

	"dompet/internal/amqp"
	"dompet/internal/core"
	"dompet/internal/log"
	"dompet/internal/sheets"
)

// Loader reads the persisted ledger.
type Loader interface {
	Load(ctx context.Context) (*core.Ledger, error)
}

// SyncWorker mirrors the persisted ledger to a spreadsheet whenever a change
// notification arrives. Every sync is a full replace, so duplicate or
// reordered notifications are harmless.
type SyncWorker struct {
	loader   Loader
	exporter sheets.Exporter
	logger   *log.Logger
	now      func() time.Time

	syncs    int
	lastSync time.Time
}

func NewSyncWorker(loader Loader, exporter sheets.Exporter, logger *log.Logger) *SyncWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &SyncWorker{
		loader:   loader,
		exporter: exporter,
		logger:   logger.WithComponent(log.ComponentSheets),
		now:      time.Now,
	}
}

// HandleChange processes a single ledger change message from AMQP.
// Messages older than the last completed sync are already reflected and skipped.
func (w *SyncWorker) HandleChange(ctx context.Context, msg *amqp.LedgerChangeMessage) error {
	if !w.lastSync.IsZero() && msg.Timestamp.Before(w.lastSync) {
		w.logger.DebugContext(ctx, "Skipping change already covered by last sync",
			log.FieldOperation, msg.Op, log.FieldRevision, msg.Revision)
		return nil
	}

	w.logger.InfoContext(ctx, "Processing ledger change",
		log.FieldOperation, msg.Op,
		log.FieldTransactionID, msg.TransactionID,
		log.FieldRevision, msg.Revision)
	return w.Sync(ctx)
}

// Sync reloads the ledger and replaces the spreadsheet contents.
func (w *SyncWorker) Sync(ctx context.Context) error {
	started := w.now()
	l, err := w.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	if err := w.exporter.Export(ctx, l.Transactions); err != nil {
		return fmt.Errorf("export to sheets: %w", err)
	}
	w.syncs++
	w.lastSync = started
	w.logger.InfoContext(ctx, "Ledger synced to sheets", log.FieldCount, len(l.Transactions))
	return nil
}

// Syncs returns how many full syncs have completed.
func (w *SyncWorker) Syncs() int { return w.syncs }
