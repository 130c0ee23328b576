// Package export flattens a budget snapshot into ten tab-separated tables.
//
// Tables are written one at a time in types.TableNames order. Each table is
// committed to its sink before the next one starts, so a failure leaves the
// tables that were already reported as written intact. Tables from a
// previous run are removed before the first one is written, so a failed run
// never leaves stale tables next to new ones. The first error ends the run;
// no record or table is skipped.
package export

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/ynab-export/internal/encode"
	"github.com/mesh-intelligence/ynab-export/internal/sink"
	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

// ErrNilBudget is returned by Run when there is no snapshot to export.
var ErrNilBudget = errors.New("budget snapshot is nil")

// Options configures an Exporter.
type Options struct {
	// SplitCategoryID is the placeholder category the service assigns to
	// split transactions. References to it are exported as NULL.
	SplitCategoryID string
}

// Report describes a completed run.
type Report struct {
	// Rows is the number of rows written per table.
	Rows map[string]int
	// SuspectSplitIDs lists category ids found on split parents that differ
	// from the configured split category id.
	SuspectSplitIDs []string
}

// Exporter writes the tables of one snapshot to a sink.
type Exporter struct {
	sink    sink.Sink
	splitID string
	log     zerolog.Logger
}

// New returns an Exporter writing to s.
func New(s sink.Sink, opts Options, log zerolog.Logger) *Exporter {
	if opts.SplitCategoryID == "" {
		opts.SplitCategoryID = types.DefaultSplitCategoryID
	}
	return &Exporter{sink: s, splitID: opts.SplitCategoryID, log: log}
}

// Run exports every table of b. The snapshot is not modified.
func (e *Exporter) Run(b *types.Budget) (*Report, error) {
	if b == nil {
		return nil, ErrNilBudget
	}
	report := &Report{
		Rows:            make(map[string]int, len(types.TableNames)),
		SuspectSplitIDs: e.suspectSplitIDs(b),
	}
	for _, id := range report.SuspectSplitIDs {
		e.log.Warn().
			Str("observed_id", id).
			Str("configured_id", e.splitID).
			Msg("split transaction uses a category id other than the configured split category; set split_category_id if this budget uses a different placeholder")
	}

	if err := e.sink.Reset(); err != nil {
		return report, fmt.Errorf("resetting output: %w", err)
	}

	rows := report.Rows
	var err error
	if rows[types.AccountsTable], err = exportTable(e, types.AccountsTable, Live(b.Accounts), accountRow); err != nil {
		return report, err
	}
	if rows[types.CategoryGroupsTable], err = exportTable(e, types.CategoryGroupsTable, Live(b.CategoryGroups), categoryGroupRow); err != nil {
		return report, err
	}
	if rows[types.CategoriesTable], err = exportTable(e, types.CategoriesTable, Live(b.Categories), categoryRow); err != nil {
		return report, err
	}
	if rows[types.PayeesTable], err = exportTable(e, types.PayeesTable, Live(b.Payees), payeeRow); err != nil {
		return report, err
	}
	if rows[types.TransactionsTable], err = exportTable(e, types.TransactionsTable, Live(b.Transactions), e.transactionRow); err != nil {
		return report, err
	}
	if rows[types.SubtransactionsTable], err = exportTable(e, types.SubtransactionsTable, Live(b.Subtransactions), subtransactionRow); err != nil {
		return report, err
	}
	if rows[types.MonthsTable], rows[types.CategoriesByMonthTable], err = e.exportMonths(b.Months); err != nil {
		return report, err
	}
	if rows[types.ScheduledTransactionsTable], err = exportTable(e, types.ScheduledTransactionsTable, Live(b.ScheduledTransactions), e.scheduledTransactionRow); err != nil {
		return report, err
	}
	if rows[types.ScheduledSubtransactionsTable], err = exportTable(e, types.ScheduledSubtransactionsTable, Live(b.ScheduledSubtransactions), scheduledSubtransactionRow); err != nil {
		return report, err
	}
	return report, nil
}

// exportTable writes one row per record to a new table and commits it.
func exportTable[T any](e *Exporter, table string, records iter.Seq[T], columns func(T) ([]string, error)) (int, error) {
	w, err := e.open(table)
	if err != nil {
		return 0, err
	}
	for rec := range records {
		cells, err := columns(rec)
		if err != nil {
			return 0, w.fail(err)
		}
		if err := w.write(cells); err != nil {
			return 0, w.fail(err)
		}
	}
	if err := w.commit(); err != nil {
		return 0, err
	}
	return w.rows, nil
}

// exportMonths writes months and categories_by_month in a single pass.
// An embedded category needs both itself and its month to be live.
func (e *Exporter) exportMonths(months []types.Month) (int, int, error) {
	mw, err := e.open(types.MonthsTable)
	if err != nil {
		return 0, 0, err
	}
	cw, err := e.open(types.CategoriesByMonthTable)
	if err != nil {
		return 0, 0, mw.fail(err)
	}
	abort := func(w *tableWriter, err error) (int, int, error) {
		err = w.fail(err)
		mw.dst.Abort()
		cw.dst.Abort()
		return 0, 0, err
	}

	for m := range Live(months) {
		cells, err := monthRow(m)
		if err != nil {
			return abort(mw, err)
		}
		if err := mw.write(cells); err != nil {
			return abort(mw, err)
		}
		for c := range Live(m.Categories) {
			cells, err := monthCategoryRow(m.Month, c)
			if err != nil {
				return abort(cw, err)
			}
			if err := cw.write(cells); err != nil {
				return abort(cw, err)
			}
		}
	}

	// months commits first: categories_by_month references it, so a failed
	// second commit leaves no dangling month keys.
	if err := mw.commit(); err != nil {
		cw.dst.Abort()
		return 0, 0, err
	}
	if err := cw.commit(); err != nil {
		return mw.rows, 0, err
	}
	return mw.rows, cw.rows, nil
}

// tableWriter counts and writes rows for one table.
type tableWriter struct {
	table string
	dst   sink.Table
	rows  int
	log   zerolog.Logger
}

func (e *Exporter) open(table string) (*tableWriter, error) {
	dst, err := e.sink.Create(table)
	if err != nil {
		return nil, &Error{Table: table, Err: err}
	}
	return &tableWriter{
		table: table,
		dst:   dst,
		log:   e.log.With().Str("table", table).Logger(),
	}, nil
}

func (w *tableWriter) write(cells []string) error {
	for i, c := range cells {
		if encode.HasDelimiter(c) {
			w.log.Warn().
				Str("record", cells[0]).
				Int("column", i).
				Msg("cell contains a tab or newline; the row will not load cleanly")
		}
	}
	if _, err := io.WriteString(w.dst, encode.Join(cells)); err != nil {
		return &Error{Table: w.table, RecordID: cells[0], Err: err}
	}
	w.rows++
	return nil
}

func (w *tableWriter) commit() error {
	if err := w.dst.Commit(); err != nil {
		return &Error{Table: w.table, Err: err}
	}
	w.log.Info().Int("rows", w.rows).Msg("table written")
	return nil
}

// fail aborts the table and attributes err to it.
func (w *tableWriter) fail(err error) error {
	w.dst.Abort()
	var ee *Error
	if errors.As(err, &ee) {
		if ee.Table == "" {
			ee.Table = w.table
		}
		return ee
	}
	return &Error{Table: w.table, Err: err}
}

// splitRef drops a reference to the split placeholder category.
func (e *Exporter) splitRef(categoryID *string) *string {
	if categoryID != nil && *categoryID == e.splitID {
		return nil
	}
	return categoryID
}

// suspectSplitIDs finds the category ids of live split parents that are
// neither absent nor the configured split id, in first-seen order.
func (e *Exporter) suspectSplitIDs(b *types.Budget) []string {
	parents := make(map[string]bool)
	for s := range Live(b.Subtransactions) {
		parents[s.TransactionID] = true
	}
	scheduledParents := make(map[string]bool)
	for s := range Live(b.ScheduledSubtransactions) {
		scheduledParents[s.ScheduledTransactionID] = true
	}

	var ids []string
	note := func(id *string) {
		if id == nil || *id == e.splitID || slices.Contains(ids, *id) {
			return
		}
		ids = append(ids, *id)
	}
	for t := range Live(b.Transactions) {
		if parents[t.ID] {
			note(t.CategoryID)
		}
	}
	for t := range Live(b.ScheduledTransactions) {
		if scheduledParents[t.ID] {
			note(t.CategoryID)
		}
	}
	return ids
}
