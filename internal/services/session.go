// Package services holds the application session: the explicitly owned
// state behind every screen, plus the command handlers that mutate it.
package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"dompet/internal/cache"
	"dompet/internal/core"
	"dompet/internal/export"
	"dompet/internal/ledger"
	"dompet/internal/log"
	"dompet/internal/report"
	"dompet/internal/sheets"
	"dompet/internal/view"
)

const (
	// RecentCount is how many transactions the home screen lists.
	RecentCount = 5

	defaultReportMonths = 6
	chartCacheSize      = 16
)

// Row is one display line of the transaction list.
type Row struct {
	ID          string
	Date        string
	Description string
	Type        core.TxType
	TypeLabel   string
	Sign        string
	Amount      string
	Category    string
	Emoji       string
	Color       string
}

// TransactionsPage is the filtered and sorted transaction list.
type TransactionsPage struct {
	Query view.Query
	Rows  []Row
	Total int
}

// HomePage is the dashboard read model.
type HomePage struct {
	Totals   core.Totals
	Goal     core.Money
	Progress core.GoalProgress
	Recent   []Row
	Currency string
}

// ReportPage is the monthly and per-category breakdown plus this year's totals.
type ReportPage struct {
	Months     int
	Monthly    report.Chart
	Categories report.Chart
	Year       int
	YearTotals core.Totals
	Currency   string
}

type reportData struct {
	monthly    report.Chart
	categories report.Chart
	year       core.Totals
}

// Session owns the ledger store and the current view state. It is created at
// startup and is not safe for concurrent mutation.
type Session struct {
	store    *ledger.Store
	query    view.Query
	currency string
	months   int
	charts   cache.Cache[reportData]
	exporter sheets.Exporter
	logger   *log.Logger
	now      func() time.Time
}

type Option func(*Session)

func WithCurrency(code string) Option {
	return func(s *Session) {
		if code != "" {
			s.currency = code
		}
	}
}

func WithReportMonths(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.months = n
		}
	}
}

func WithSheetsExporter(e sheets.Exporter) Option {
	return func(s *Session) { s.exporter = e }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l.WithComponent(log.ComponentSession) }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func NewSession(store *ledger.Store, opts ...Option) *Session {
	s := &Session{
		store:    store,
		query:    view.Query{Type: view.All, Sort: view.Newest},
		currency: core.DefaultCurrency,
		months:   defaultReportMonths,
		charts:   cache.NewLRUCache[reportData](chartCacheSize),
		logger:   log.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the underlying ledger store.
func (s *Session) Store() *ledger.Store { return s.store }

// Query returns the current view state.
func (s *Session) Query() view.Query { return s.query }

// AddTransaction validates f and records a new transaction.
func (s *Session) AddTransaction(ctx context.Context, f Form) (core.Transaction, TransactionsPage, error) {
	d, err := f.draft(s.store.Categories())
	if err != nil {
		return core.Transaction{}, s.Transactions(), err
	}
	tx, err := s.store.Create(ctx, d)
	return tx, s.Transactions(), err
}

// EditTransaction replaces the transaction id with f. Editing an unknown id
// changes nothing and returns core.ErrNotFound.
func (s *Session) EditTransaction(ctx context.Context, id string, f Form) (core.Transaction, TransactionsPage, error) {
	if _, ok := s.store.Get(id); !ok {
		return core.Transaction{}, s.Transactions(), fmt.Errorf("transaction %q: %w", id, core.ErrNotFound)
	}
	d, err := f.draft(s.store.Categories())
	if err != nil {
		return core.Transaction{}, s.Transactions(), err
	}
	tx, found, err := s.store.Update(ctx, id, d)
	if err == nil && !found {
		err = fmt.Errorf("transaction %q: %w", id, core.ErrNotFound)
	}
	return tx, s.Transactions(), err
}

// DeleteTransaction removes a transaction. An unknown id returns core.ErrNotFound.
func (s *Session) DeleteTransaction(ctx context.Context, id string) (TransactionsPage, error) {
	found, err := s.store.Delete(ctx, id)
	if err == nil && !found {
		err = fmt.Errorf("transaction %q: %w", id, core.ErrNotFound)
	}
	return s.Transactions(), err
}

// SetGoal parses and stores the savings goal. Empty input or an amount that
// rounds to zero clears it.
func (s *Session) SetGoal(ctx context.Context, input string) (HomePage, error) {
	goal, err := core.ParseGoal(input)
	if err != nil {
		return s.Home(), err
	}
	if err := s.store.SetGoal(ctx, goal); err != nil {
		return s.Home(), err
	}
	return s.Home(), nil
}

// SetQuery changes the search text.
func (s *Session) SetQuery(text string) TransactionsPage {
	s.query.Text = text
	return s.Transactions()
}

// SetTypeFilter changes the type filter; unknown input means all.
func (s *Session) SetTypeFilter(input string) TransactionsPage {
	s.query.Type = view.ParseType(input)
	return s.Transactions()
}

// SetSort changes the sort key; unknown input means newest.
func (s *Session) SetSort(input string) TransactionsPage {
	s.query.Sort = view.ParseSort(input)
	return s.Transactions()
}

// Transactions derives the list for the current view state.
func (s *Session) Transactions() TransactionsPage {
	txs := s.store.List()
	cats := s.store.Categories()
	derived := view.Derive(txs, cats, s.query)
	rows := make([]Row, len(derived))
	for i, tx := range derived {
		rows[i] = s.row(tx, cats)
	}
	return TransactionsPage{Query: s.query, Rows: rows, Total: len(txs)}
}

// Detail returns the display row of a single transaction.
func (s *Session) Detail(id string) (Row, bool) {
	tx, ok := s.store.Get(id)
	if !ok {
		return Row{}, false
	}
	return s.row(tx, s.store.Categories()), true
}

// Home returns totals, goal progress and the most recent transactions.
func (s *Session) Home() HomePage {
	txs := s.store.List()
	cats := s.store.Categories()
	totals := report.Summarize(txs)
	goal := s.store.Goal()

	recent := report.Recent(txs, RecentCount)
	rows := make([]Row, len(recent))
	for i, tx := range recent {
		rows[i] = s.row(tx, cats)
	}
	return HomePage{
		Totals:   totals,
		Goal:     goal,
		Progress: report.Progress(totals.Balance, goal),
		Recent:   rows,
		Currency: s.currency,
	}
}

// Report builds the report for the configured window ending at now.
func (s *Session) Report(now time.Time) ReportPage {
	return s.ReportFor(now, s.months)
}

// ReportFor builds the report for a months-long window ending at now. Chart
// data is memoised per ledger revision, window and month.
func (s *Session) ReportFor(now time.Time, months int) ReportPage {
	if months <= 0 {
		months = s.months
	}
	key := fmt.Sprintf("%d|%d|%04d-%02d", s.store.Revision(), months, now.Year(), int(now.Month()))
	data, hit := cache.GetOrCompute(s.charts, key, func() reportData {
		txs := s.store.List()
		return reportData{
			monthly:    report.MonthlyChart(report.GroupByMonth(txs, months, now)),
			categories: report.CategoryChart(report.CategoryTotals(txs), s.store.Categories()),
			year:       report.YearTotals(txs, now.Year()),
		}
	})
	s.logger.Debug("Report built", log.FieldMonths, months, log.FieldRevision, s.store.Revision(),
		"cached", hit, "cached_reports", s.charts.Len())

	return ReportPage{
		Months:     months,
		Monthly:    data.monthly,
		Categories: data.categories,
		Year:       now.Year(),
		YearTotals: data.year,
		Currency:   s.currency,
	}
}

// ExportCSV writes every stored transaction, in stored order.
func (s *Session) ExportCSV(w io.Writer) error {
	return export.WriteCSV(w, s.store.List())
}

// ExportFileName names a CSV export made now.
func (s *Session) ExportFileName() string {
	return export.FileName(s.now())
}

// SheetsEnabled reports whether a spreadsheet exporter is configured.
func (s *Session) SheetsEnabled() bool { return s.exporter != nil }

// ExportSheets pushes every stored transaction to the configured spreadsheet.
func (s *Session) ExportSheets(ctx context.Context) error {
	if s.exporter == nil {
		return fmt.Errorf("sheets export is not configured")
	}
	if err := s.exporter.Export(ctx, s.store.List()); err != nil {
		s.logger.ErrorContext(ctx, "Sheets export failed", log.FieldError, err)
		return err
	}
	return nil
}

// FormatMoney renders m in the session currency.
func (s *Session) FormatMoney(m core.Money) string {
	return m.Format(s.currency)
}

func (s *Session) row(tx core.Transaction, cats []core.Category) Row {
	cat := core.ResolveCategory(cats, tx.Category)
	r := Row{
		ID:          tx.ID,
		Date:        tx.Date.String(),
		Description: tx.Description,
		Type:        tx.Type,
		Amount:      tx.Amount.Format(s.currency),
		Category:    cat.Name,
		Emoji:       cat.Emoji,
		Color:       cat.Color,
	}
	if tx.Type == core.Income {
		r.Sign, r.TypeLabel = "+", "Pemasukan"
	} else {
		r.Sign, r.TypeLabel = "-", "Pengeluaran"
	}
	return r
}
