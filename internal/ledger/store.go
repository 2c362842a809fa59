package ledger

import (
	"context"
	"fmt"
	"time"

	"dompet/internal/core"
	"dompet/internal/log"

	"github.com/google/uuid"
)

// Saver persists the complete ledger.
type Saver interface {
	Save(ctx context.Context, l *core.Ledger) error
}

// Notifier is told about every applied mutation after it has been saved.
type Notifier interface {
	Notify(ctx context.Context, c core.Change) error
}

// Draft carries the user-editable fields of a transaction.
// A zero Date means today.
type Draft struct {
	Description string
	Amount      core.Money
	Type        core.TxType
	Category    string
	Date        core.Date
}

// NewID returns a fresh transaction id.
func NewID() string {
	return uuid.NewString()
}

// Store is the single owner of the in-memory ledger. Every applied mutation
// saves the whole ledger before returning. Store is not safe for concurrent use.
type Store struct {
	ledger   *core.Ledger
	saver    Saver
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
	newID    func() string
	revision uint64
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithStoreClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l.WithComponent(log.ComponentLedger) }
}

// NewStore takes ownership of l.
func NewStore(l *core.Ledger, saver Saver, opts ...Option) *Store {
	if l == nil {
		l = core.NewLedger()
	}
	s := &Store{
		ledger: l,
		saver:  saver,
		logger: log.Discard(),
		now:    time.Now,
		newID:  NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the ledger through repo and returns a store that saves back to it.
func Open(ctx context.Context, repo *Repository, opts ...Option) (*Store, error) {
	l, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(l, repo, opts...), nil
}

func (s *Store) build(id string, d Draft) (core.Transaction, error) {
	date := d.Date
	if date.IsZero() {
		date = core.DateOf(s.now())
	}
	tx := core.Transaction{
		ID:          id,
		Description: d.Description,
		Amount:      d.Amount,
		Type:        d.Type,
		Category:    d.Category,
		Date:        date,
	}
	return tx, tx.Validate()
}

// Create validates d and inserts it at the front of the ledger.
func (s *Store) Create(ctx context.Context, d Draft) (core.Transaction, error) {
	tx, err := s.build(s.newID(), d)
	if err != nil {
		return core.Transaction{}, err
	}
	s.ledger.Transactions = append([]core.Transaction{tx}, s.ledger.Transactions...)
	s.logger.InfoContext(ctx, "Transaction created", log.NewFields().
		WithTransaction(tx.ID, tx.Description, tx.Amount.Units, tx.Type.String(), tx.Category).ToSlice()...)
	return tx, s.commit(ctx, core.OpCreate, tx.ID)
}

// Update replaces the transaction with the given id. An unknown id is a
// no-op reported through found=false, whatever the draft holds; d is only
// validated for an existing record.
func (s *Store) Update(ctx context.Context, id string, d Draft) (tx core.Transaction, found bool, err error) {
	i := s.ledger.Index(id)
	if i < 0 {
		s.logger.DebugContext(ctx, "Update of unknown transaction ignored", log.FieldTransactionID, id)
		return core.Transaction{}, false, nil
	}
	tx, err = s.build(id, d)
	if err != nil {
		return core.Transaction{}, true, err
	}
	s.ledger.Transactions[i] = tx
	s.logger.InfoContext(ctx, "Transaction updated", log.FieldTransactionID, id)
	return tx, true, s.commit(ctx, core.OpUpdate, id)
}

// Delete removes the transaction with the given id. An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) (found bool, err error) {
	i := s.ledger.Index(id)
	if i < 0 {
		s.logger.DebugContext(ctx, "Delete of unknown transaction ignored", log.FieldTransactionID, id)
		return false, nil
	}
	s.ledger.Transactions = append(s.ledger.Transactions[:i:i], s.ledger.Transactions[i+1:]...)
	s.logger.InfoContext(ctx, "Transaction deleted", log.FieldTransactionID, id)
	return true, s.commit(ctx, core.OpDelete, id)
}

// SetGoal sets the savings goal. Zero clears it.
func (s *Store) SetGoal(ctx context.Context, goal core.Money) error {
	if goal.Units < 0 {
		return &core.ValidationError{Field: "goal", Err: core.ErrNegativeGoal}
	}
	s.ledger.Goal = goal
	return s.commit(ctx, core.OpSetGoal, "")
}

// List returns the transactions in stored order, newest created first.
func (s *Store) List() []core.Transaction {
	return append([]core.Transaction(nil), s.ledger.Transactions...)
}

// Get returns the transaction with the given id.
func (s *Store) Get(id string) (core.Transaction, bool) {
	if i := s.ledger.Index(id); i >= 0 {
		return s.ledger.Transactions[i], true
	}
	return core.Transaction{}, false
}

// Ledger returns a copy of the current ledger.
func (s *Store) Ledger() *core.Ledger {
	return s.ledger.Clone()
}

// Categories returns the category definitions.
func (s *Store) Categories() []core.Category {
	return append([]core.Category(nil), s.ledger.Categories...)
}

// Goal returns the savings goal; zero means unset.
func (s *Store) Goal() core.Money {
	return s.ledger.Goal
}

// Revision increases with every applied mutation.
func (s *Store) Revision() uint64 {
	return s.revision
}

// commit persists the ledger and notifies. A failed save keeps the in-memory
// change; the next successful save writes it out.
func (s *Store) commit(ctx context.Context, op core.ChangeOp, id string) error {
	s.revision++
	if s.saver != nil {
		if err := s.saver.Save(ctx, s.ledger); err != nil {
			s.logger.ErrorContext(ctx, "Failed to persist ledger",
				log.FieldOperation, string(op), log.FieldError, err)
			return fmt.Errorf("persist after %s: %w", op, err)
		}
	}
	if s.notifier == nil {
		return nil
	}
	change := core.Change{Op: op, TransactionID: id, Revision: s.revision, At: s.now()}
	if err := s.notifier.Notify(ctx, change); err != nil {
		// the ledger is already saved
		s.logger.WarnContext(ctx, "Failed to publish ledger change",
			log.FieldOperation, string(op), log.FieldRevision, s.revision, log.FieldError, err)
	}
	return nil
}
