package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ynab-export/internal/encode"
	"github.com/mesh-intelligence/ynab-export/internal/schema"
	"github.com/mesh-intelligence/ynab-export/internal/sink"
	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

const split = types.DefaultSplitCategoryID

func ptr[T any](v T) *T { return &v }

func run(t *testing.T, b *types.Budget) (*sink.Memory, *Report) {
	t.Helper()
	mem := sink.NewMemory()
	report, err := New(mem, Options{}, zerolog.Nop()).Run(b)
	require.NoError(t, err)
	return mem, report
}

func rows(t *testing.T, mem *sink.Memory, table string) [][]string {
	t.Helper()
	data, ok := mem.Get(table)
	require.True(t, ok, "table %s not committed", table)
	if data == "" {
		return nil
	}
	require.True(t, strings.HasSuffix(data, "\n"), "table %s not newline terminated", table)
	var out [][]string
	for _, line := range strings.Split(strings.TrimSuffix(data, "\n"), "\n") {
		out = append(out, strings.Split(line, "\t"))
	}
	return out
}

func TestAccountRowEndToEnd(t *testing.T) {
	mem, report := run(t, &types.Budget{
		Accounts: []types.Account{{
			ID:               "A1",
			Name:             "Checking",
			OnBudget:         true,
			Closed:           false,
			Balance:          1000,
			ClearedBalance:   1000,
			UnclearedBalance: 0,
		}},
	})

	data, _ := mem.Get(types.AccountsTable)
	assert.Equal(t, "A1\tChecking\t1\t0\t1000\t1000\t0\n", data)
	assert.Equal(t, 1, report.Rows[types.AccountsTable])
}

func TestAllTablesCommitted(t *testing.T) {
	mem, report := run(t, &types.Budget{})
	assert.ElementsMatch(t, types.TableNames, mem.Tables())
	for _, table := range types.TableNames {
		data, _ := mem.Get(table)
		assert.Empty(t, data, table)
		assert.Equal(t, 0, report.Rows[table], table)
	}
}

func TestDeletedRecordsNeverExported(t *testing.T) {
	mem, _ := run(t, &types.Budget{
		Accounts:       []types.Account{{ID: "a-live"}, {ID: "a-gone", Deleted: true}},
		CategoryGroups: []types.CategoryGroup{{ID: "g-gone", Deleted: true}, {ID: "g-live"}},
		Categories:     []types.Category{{ID: "c-gone", CategoryGroupID: "g-live", Deleted: true}},
		Payees:         []types.Payee{{ID: "p-gone", Deleted: true}},
		Transactions: []types.Transaction{{
			ID: "t-gone", Date: "2024-01-02", AccountID: "a-live", Cleared: types.Cleared, Deleted: true,
		}},
		Subtransactions: []types.Subtransaction{{ID: "s-gone", TransactionID: "t-gone", Deleted: true}},
		Months:          []types.Month{{Month: "2024-01-01", Deleted: true}},
		ScheduledTransactions: []types.ScheduledTransaction{{
			ID: "st-gone", DateNext: "2024-02-01", AccountID: "a-live", Frequency: types.Monthly, Deleted: true,
		}},
		ScheduledSubtransactions: []types.ScheduledSubtransaction{{ID: "ss-gone", ScheduledTransactionID: "st-gone", Deleted: true}},
	})

	for _, table := range types.TableNames {
		data, _ := mem.Get(table)
		assert.NotContains(t, data, "gone", table)
	}
	assert.Len(t, rows(t, mem, types.AccountsTable), 1)
	assert.Len(t, rows(t, mem, types.CategoryGroupsTable), 1)
}

func TestDeletedRecordWithInvalidFieldsIsSkipped(t *testing.T) {
	// A deleted record is never encoded, so its malformed fields cannot
	// abort the run.
	mem, _ := run(t, &types.Budget{
		Transactions: []types.Transaction{{ID: "t1", Deleted: true}},
	})
	assert.Empty(t, rows(t, mem, types.TransactionsTable))
}

func TestPayeeRow(t *testing.T) {
	mem, _ := run(t, &types.Budget{
		Payees: []types.Payee{
			{ID: "p1", Name: "  Corner Shop  "},
			{ID: "p2", Name: "Transfer : Savings", TransferAccountID: ptr("a2")},
		},
	})
	assert.Equal(t, [][]string{
		{"p1", "Corner Shop", encode.Null},
		{"p2", "Transfer : Savings", "a2"},
	}, rows(t, mem, types.PayeesTable))
}

func TestCategoryRows(t *testing.T) {
	mem, _ := run(t, &types.Budget{
		CategoryGroups: []types.CategoryGroup{{ID: "g1", Name: "Bills", Hidden: true}},
		Categories: []types.Category{{
			ID: "c1", CategoryGroupID: "g1", Name: "Rent", Budgeted: 950000, Activity: -950000, Balance: 0,
		}},
	})
	assert.Equal(t, [][]string{{"g1", "Bills", "1"}}, rows(t, mem, types.CategoryGroupsTable))
	assert.Equal(t, [][]string{{"c1", "g1", "Rent", "0", "950000", "-950000", "0"}}, rows(t, mem, types.CategoriesTable))
}

func TestSplitTransactionEndToEnd(t *testing.T) {
	mem, _ := run(t, &types.Budget{
		Transactions: []types.Transaction{{
			ID:         "t1",
			Date:       "2024-03-05",
			Amount:     -25000,
			Cleared:    types.Reconciled,
			Approved:   true,
			AccountID:  "a1",
			PayeeID:    nil,
			CategoryID: ptr(split),
		}},
		Subtransactions: []types.Subtransaction{{
			ID:            "s1",
			TransactionID: "t1",
			Amount:        -25000,
			CategoryID:    ptr("c-food"),
		}},
	})

	assert.Equal(t, [][]string{{
		"t1", "2024-03-05", "-25000", encode.Null, "reconciled", "1", encode.Null,
		"a1", encode.Null, encode.Null, encode.Null,
	}}, rows(t, mem, types.TransactionsTable))
	assert.Equal(t, [][]string{{
		"s1", "t1", "-25000", encode.Null, encode.Null, "c-food", encode.Null,
	}}, rows(t, mem, types.SubtransactionsTable))

	data, _ := mem.Get(types.TransactionsTable)
	assert.NotContains(t, data, split)
}

func TestSplitRuleOnlyAppliesToParents(t *testing.T) {
	// A subtransaction is exported verbatim even when it names the split id.
	mem, _ := run(t, &types.Budget{
		Subtransactions:          []types.Subtransaction{{ID: "s1", TransactionID: "t1", CategoryID: ptr(split)}},
		ScheduledSubtransactions: []types.ScheduledSubtransaction{{ID: "ss1", ScheduledTransactionID: "st1", CategoryID: ptr(split)}},
	})
	assert.Equal(t, split, rows(t, mem, types.SubtransactionsTable)[0][5])
	assert.Equal(t, split, rows(t, mem, types.ScheduledSubtransactionsTable)[0][5])
}

func TestTransactionRow(t *testing.T) {
	mem, _ := run(t, &types.Budget{
		Transactions: []types.Transaction{{
			ID:                "t2",
			Date:              "2024-03-06",
			Amount:            120500,
			Memo:              ptr("salary"),
			Cleared:           types.Cleared,
			FlagColor:         ptr(types.FlagGreen),
			AccountID:         "a1",
			PayeeID:           ptr("p1"),
			CategoryID:        ptr("c-income"),
			TransferAccountID: ptr("a2"),
		}},
	})
	assert.Equal(t, [][]string{{
		"t2", "2024-03-06", "120500", "salary", "cleared", "0", "green",
		"a1", "p1", "c-income", "a2",
	}}, rows(t, mem, types.TransactionsTable))
}

func TestScheduledTransactionRows(t *testing.T) {
	mem, _ := run(t, &types.Budget{
		ScheduledTransactions: []types.ScheduledTransaction{
			{
				ID:         "st1",
				DateNext:   "2024-04-01",
				Frequency:  types.Weekly,
				Amount:     -5000,
				AccountID:  "a1",
				CategoryID: ptr(split),
			},
			{
				ID:         "st2",
				DateNext:   "2024-04-15",
				Frequency:  types.EveryOtherMonth,
				Amount:     -75000,
				Memo:       ptr("insurance"),
				FlagColor:  ptr(types.FlagRed),
				AccountID:  "a1",
				PayeeID:    ptr("p9"),
				CategoryID: ptr("c-ins"),
			},
		},
		ScheduledSubtransactions: []types.ScheduledSubtransaction{{
			ID: "ss1", ScheduledTransactionID: "st1", Amount: -5000, Memo: ptr("half"), CategoryID: ptr("c-food"),
		}},
	})

	assert.Equal(t, [][]string{
		{"st1", "2024-04-01", "weekly", "-5000", encode.Null, encode.Null, "a1", encode.Null, encode.Null, encode.Null},
		{"st2", "2024-04-15", "everyOtherMonth", "-75000", "insurance", "red", "a1", "p9", "c-ins", encode.Null},
	}, rows(t, mem, types.ScheduledTransactionsTable))
	assert.Equal(t, [][]string{
		{"ss1", "st1", "-5000", "half", encode.Null, "c-food", encode.Null},
	}, rows(t, mem, types.ScheduledSubtransactionsTable))
}

func TestEveryEnumVariantExports(t *testing.T) {
	var b types.Budget
	for i, c := range types.ClearedStates {
		b.Transactions = append(b.Transactions, types.Transaction{
			ID: fmt.Sprintf("t%d", i), Date: "2024-01-01", AccountID: "a1", Cleared: c,
		})
	}
	for i, f := range types.FlagColors {
		b.Transactions = append(b.Transactions, types.Transaction{
			ID: fmt.Sprintf("f%d", i), Date: "2024-01-01", AccountID: "a1", Cleared: types.Cleared, FlagColor: ptr(f),
		})
	}
	for i, f := range types.Frequencies {
		b.ScheduledTransactions = append(b.ScheduledTransactions, types.ScheduledTransaction{
			ID: fmt.Sprintf("s%d", i), DateNext: "2024-01-01", AccountID: "a1", Frequency: f,
		})
	}

	mem, _ := run(t, &b)
	txRows := rows(t, mem, types.TransactionsTable)
	require.Len(t, txRows, len(types.ClearedStates)+len(types.FlagColors))
	for i, c := range types.ClearedStates {
		assert.Equal(t, c.String(), txRows[i][4])
	}
	for i, f := range types.FlagColors {
		assert.Equal(t, f.String(), txRows[len(types.ClearedStates)+i][6])
	}
	stRows := rows(t, mem, types.ScheduledTransactionsTable)
	require.Len(t, stRows, len(types.Frequencies))
	for i, f := range types.Frequencies {
		assert.Equal(t, f.String(), stRows[i][2])
	}
}

func TestMonthExpansion(t *testing.T) {
	mem, report := run(t, &types.Budget{
		Months: []types.Month{
			{
				Month: "2024-01-01",
				Categories: []types.MonthCategory{
					{ID: "c1", CategoryGroupID: "g1", Name: "Rent", Budgeted: 900000, Activity: -900000},
					{ID: "c2", CategoryGroupID: "g1", Name: "Old", Deleted: true},
					{ID: "c3", CategoryGroupID: "g2", Name: "Food", Hidden: true, Balance: 1500},
				},
			},
			{
				Month:      "2024-02-01",
				Deleted:    true,
				Categories: []types.MonthCategory{{ID: "c1", CategoryGroupID: "g1", Name: "Rent"}},
			},
			{
				Month:      "2024-03-01",
				Categories: []types.MonthCategory{{ID: "c1", CategoryGroupID: "g1", Name: "Rent", Budgeted: 910000}},
			},
		},
	})

	assert.Equal(t, [][]string{{"2024-01-01"}, {"2024-03-01"}}, rows(t, mem, types.MonthsTable))
	assert.Equal(t, [][]string{
		{"2024-01-01", "c1", "g1", "Rent", "0", "900000", "-900000", "0"},
		{"2024-01-01", "c3", "g2", "Food", "1", "0", "0", "1500"},
		{"2024-03-01", "c1", "g1", "Rent", "0", "910000", "0", "0"},
	}, rows(t, mem, types.CategoriesByMonthTable))
	assert.Equal(t, 2, report.Rows[types.MonthsTable])
	assert.Equal(t, 3, report.Rows[types.CategoriesByMonthTable])
}

func TestMonthCategoryRowsPerMonth(t *testing.T) {
	var b types.Budget
	want := map[string]int{"2023-11-01": 0, "2023-12-01": 4, "2024-01-01": 7}
	for month, n := range want {
		m := types.Month{Month: month}
		for i := 0; i < n; i++ {
			m.Categories = append(m.Categories, types.MonthCategory{ID: uuid.NewString(), CategoryGroupID: "g"})
		}
		// One deleted entry per month never counts.
		m.Categories = append(m.Categories, types.MonthCategory{ID: uuid.NewString(), CategoryGroupID: "g", Deleted: true})
		b.Months = append(b.Months, m)
	}

	mem, _ := run(t, &b)
	got := make(map[string]int)
	for _, r := range rows(t, mem, types.CategoriesByMonthTable) {
		got[r[0]]++
	}
	for month, n := range want {
		assert.Equal(t, n, got[month], month)
	}
}

func TestCustomSplitCategoryID(t *testing.T) {
	custom := uuid.NewString()
	mem := sink.NewMemory()
	report, err := New(mem, Options{SplitCategoryID: custom}, zerolog.Nop()).Run(&types.Budget{
		Transactions: []types.Transaction{
			{ID: "t1", Date: "2024-01-01", AccountID: "a1", Cleared: types.Cleared, CategoryID: ptr(custom)},
			{ID: "t2", Date: "2024-01-01", AccountID: "a1", Cleared: types.Cleared, CategoryID: ptr(split)},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, report.SuspectSplitIDs)

	r := rows(t, mem, types.TransactionsTable)
	assert.Equal(t, encode.Null, r[0][9])
	// The built-in id is ordinary data once another id is configured.
	assert.Equal(t, split, r[1][9])
}

func TestSuspectSplitIDs(t *testing.T) {
	other := uuid.NewString()
	_, report := run(t, &types.Budget{
		Transactions: []types.Transaction{
			{ID: "t1", Date: "2024-01-01", AccountID: "a1", Cleared: types.Cleared, CategoryID: ptr(other)},
			{ID: "t2", Date: "2024-01-01", AccountID: "a1", Cleared: types.Cleared, CategoryID: ptr(split)},
			{ID: "t3", Date: "2024-01-01", AccountID: "a1", Cleared: types.Cleared, CategoryID: ptr("c-plain")},
			{ID: "t4", Date: "2024-01-01", AccountID: "a1", Cleared: types.Cleared, CategoryID: ptr(other)},
		},
		Subtransactions: []types.Subtransaction{
			{ID: "s1", TransactionID: "t1"},
			{ID: "s2", TransactionID: "t2"},
			{ID: "s4", TransactionID: "t4"},
		},
	})
	assert.Equal(t, []string{other}, report.SuspectSplitIDs)
}

func TestUnknownEnumAbortsRun(t *testing.T) {
	mem := sink.NewMemory()
	_, err := New(mem, Options{}, zerolog.Nop()).Run(&types.Budget{
		Accounts: []types.Account{{ID: "a1"}},
		Transactions: []types.Transaction{
			{ID: "t1", Date: "2024-01-01", AccountID: "a1", Cleared: types.Cleared},
			{ID: "t2", Date: "2024-01-01", AccountID: "a1", Cleared: types.ClearedState(7)},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownVariant)

	var ee *Error
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, types.TransactionsTable, ee.Table)
	assert.Equal(t, "t2", ee.RecordID)
	assert.Equal(t, "cleared", ee.Field)

	// Earlier tables stay committed, the failing table and later ones do not.
	_, ok := mem.Get(types.AccountsTable)
	assert.True(t, ok)
	_, ok = mem.Get(types.TransactionsTable)
	assert.False(t, ok)
	_, ok = mem.Get(types.SubtransactionsTable)
	assert.False(t, ok)
}

func TestUnknownFlagColorAbortsRun(t *testing.T) {
	_, err := New(sink.NewMemory(), Options{}, zerolog.Nop()).Run(&types.Budget{
		ScheduledTransactions: []types.ScheduledTransaction{{
			ID: "st1", DateNext: "2024-01-01", AccountID: "a1", Frequency: types.Daily, FlagColor: ptr(types.FlagColor(0)),
		}},
	})
	assert.ErrorIs(t, err, types.ErrUnknownVariant)
	assert.Contains(t, err.Error(), "flag_color")
}

func TestMissingRequiredField(t *testing.T) {
	tests := []struct {
		name   string
		budget *types.Budget
		table  string
		field  string
	}{
		{
			name:   "account without id",
			budget: &types.Budget{Accounts: []types.Account{{Name: "x"}}},
			table:  types.AccountsTable,
			field:  "id",
		},
		{
			name:   "category without group",
			budget: &types.Budget{Categories: []types.Category{{ID: "c1"}}},
			table:  types.CategoriesTable,
			field:  "category_group_id",
		},
		{
			name: "transaction without account",
			budget: &types.Budget{Transactions: []types.Transaction{
				{ID: "t1", Date: "2024-01-01", Cleared: types.Cleared},
			}},
			table: types.TransactionsTable,
			field: "account_id",
		},
		{
			name:   "month without key",
			budget: &types.Budget{Months: []types.Month{{}}},
			table:  types.MonthsTable,
			field:  "month",
		},
		{
			name: "month category without id",
			budget: &types.Budget{Months: []types.Month{
				{Month: "2024-01-01", Categories: []types.MonthCategory{{CategoryGroupID: "g1"}}},
			}},
			table: types.CategoriesByMonthTable,
			field: "id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(sink.NewMemory(), Options{}, zerolog.Nop()).Run(tt.budget)
			require.ErrorIs(t, err, types.ErrMissingField)
			var ee *Error
			require.True(t, errors.As(err, &ee))
			assert.Equal(t, tt.table, ee.Table)
			assert.Equal(t, tt.field, ee.Field)
		})
	}
}

func TestMonthFailureCommitsNeitherTable(t *testing.T) {
	mem := sink.NewMemory()
	_, err := New(mem, Options{}, zerolog.Nop()).Run(&types.Budget{
		Months: []types.Month{
			{Month: "2024-01-01"},
			{Month: "2024-02-01", Categories: []types.MonthCategory{{ID: "c1"}}},
		},
	})
	require.Error(t, err)
	_, ok := mem.Get(types.MonthsTable)
	assert.False(t, ok)
	_, ok = mem.Get(types.CategoriesByMonthTable)
	assert.False(t, ok)
}

func TestNilBudget(t *testing.T) {
	_, err := New(sink.NewMemory(), Options{}, zerolog.Nop()).Run(nil)
	assert.ErrorIs(t, err, ErrNilBudget)
}

// failingSink fails to create, write or commit the named table.
type failingSink struct {
	*sink.Memory
	table    string
	onWrite  bool
	onCommit bool
}

var errDiskFull = errors.New("disk full")

func (f *failingSink) Create(table string) (sink.Table, error) {
	if table == f.table && !f.onWrite && !f.onCommit {
		return nil, errDiskFull
	}
	tbl, err := f.Memory.Create(table)
	if err != nil || table != f.table {
		return tbl, err
	}
	if f.onCommit {
		return commitFailingTable{tbl}, nil
	}
	return failingTable{tbl}, nil
}

type failingTable struct{ sink.Table }

func (failingTable) Write([]byte) (int, error) { return 0, errDiskFull }

type commitFailingTable struct{ sink.Table }

func (commitFailingTable) Commit() error { return errDiskFull }

func TestSinkErrorsAbortRun(t *testing.T) {
	b := &types.Budget{
		Accounts: []types.Account{{ID: "a1"}},
		Payees:   []types.Payee{{ID: "p1"}},
	}

	for _, onWrite := range []bool{false, true} {
		t.Run(fmt.Sprintf("onWrite=%v", onWrite), func(t *testing.T) {
			fs := &failingSink{Memory: sink.NewMemory(), table: types.PayeesTable, onWrite: onWrite}
			_, err := New(fs, Options{}, zerolog.Nop()).Run(b)
			require.ErrorIs(t, err, errDiskFull)
			assert.Contains(t, err.Error(), types.PayeesTable)

			assert.Equal(t, []string{types.AccountsTable, types.CategoriesTable, types.CategoryGroupsTable}, fs.Tables())
		})
	}
}

func TestDelimiterInTextIsWarnedNotEscaped(t *testing.T) {
	var logBuf strings.Builder
	log := zerolog.New(&logBuf)
	mem := sink.NewMemory()
	_, err := New(mem, Options{}, log).Run(&types.Budget{
		Transactions: []types.Transaction{{
			ID: "t1", Date: "2024-01-01", AccountID: "a1", Cleared: types.Cleared, Memo: ptr("two\tparts"),
		}},
	})
	require.NoError(t, err)

	data, _ := mem.Get(types.TransactionsTable)
	assert.Contains(t, data, "two\tparts")
	assert.Contains(t, logBuf.String(), `"record":"t1"`)
	assert.Contains(t, logBuf.String(), `"table":"transactions"`)
}

func TestDirSinkEndToEnd(t *testing.T) {
	dir := t.TempDir()
	_, err := New(sink.NewDir(dir), Options{}, zerolog.Nop()).Run(&types.Budget{
		Accounts: []types.Account{{ID: "A1", Name: "Checking", OnBudget: true, Balance: 1000, ClearedBalance: 1000}},
	})
	require.NoError(t, err)

	for _, table := range types.TableNames {
		f, err := openTable(dir, table)
		require.NoError(t, err, table)
		f.Close()
	}
	f, err := openTable(dir, types.AccountsTable)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "A1\tChecking\t1\t0\t1000\t1000\t0\n", string(data))
}

func TestRowsMatchSchemaColumns(t *testing.T) {
	mem, report := run(t, &types.Budget{
		Accounts:       []types.Account{{ID: "a1", Name: "Checking"}},
		CategoryGroups: []types.CategoryGroup{{ID: "g1", Name: "Bills"}},
		Categories:     []types.Category{{ID: "c1", CategoryGroupID: "g1", Name: "Rent"}},
		Payees:         []types.Payee{{ID: "p1", Name: "Landlord"}},
		Transactions: []types.Transaction{{
			ID: "t1", Date: "2024-01-01", AccountID: "a1", Cleared: types.Uncleared, CategoryID: ptr(split),
		}},
		Subtransactions: []types.Subtransaction{{ID: "s1", TransactionID: "t1", CategoryID: ptr("c1")}},
		Months: []types.Month{{
			Month:      "2024-01-01",
			Categories: []types.MonthCategory{{ID: "c1", CategoryGroupID: "g1", Name: "Rent"}},
		}},
		ScheduledTransactions: []types.ScheduledTransaction{{
			ID: "st1", DateNext: "2024-02-01", Frequency: types.Monthly, AccountID: "a1",
		}},
		ScheduledSubtransactions: []types.ScheduledSubtransaction{{ID: "ss1", ScheduledTransactionID: "st1"}},
	})

	for _, table := range types.TableNames {
		require.Equal(t, 1, report.Rows[table], table)
		for _, row := range rows(t, mem, table) {
			assert.Len(t, row, len(schema.Columns(table)), table)
		}
	}
}

func TestMonthCategoryCommitFailureKeepsMonths(t *testing.T) {
	fs := &failingSink{Memory: sink.NewMemory(), table: types.CategoriesByMonthTable, onCommit: true}
	_, err := New(fs, Options{}, zerolog.Nop()).Run(&types.Budget{
		Months: []types.Month{{
			Month:      "2024-01-01",
			Categories: []types.MonthCategory{{ID: "c1", CategoryGroupID: "g1"}},
		}},
	})
	require.ErrorIs(t, err, errDiskFull)
	assert.Contains(t, err.Error(), types.CategoriesByMonthTable)

	months, ok := fs.Get(types.MonthsTable)
	require.True(t, ok)
	assert.Equal(t, "2024-01-01\n", months)
	_, ok = fs.Get(types.CategoriesByMonthTable)
	assert.False(t, ok)
	_, ok = fs.Get(types.ScheduledTransactionsTable)
	assert.False(t, ok)
}

func TestFailedRerunLeavesNoStaleTables(t *testing.T) {
	dir := t.TempDir()
	_, err := New(sink.NewDir(dir), Options{}, zerolog.Nop()).Run(&types.Budget{
		Accounts: []types.Account{{ID: "old-a"}},
		Transactions: []types.Transaction{{
			ID: "old-t", Date: "2024-01-01", AccountID: "old-a", Cleared: types.Cleared,
		}},
		Months: []types.Month{{Month: "2024-01-01"}},
	})
	require.NoError(t, err)

	// The zero cleared state has no token, so the second run fails on
	// transactions after accounts was committed.
	_, err = New(sink.NewDir(dir), Options{}, zerolog.Nop()).Run(&types.Budget{
		Accounts:     []types.Account{{ID: "new-a"}},
		Transactions: []types.Transaction{{ID: "new-t", Date: "2024-02-01", AccountID: "new-a"}},
	})
	require.ErrorIs(t, err, types.ErrUnknownVariant)

	f, err := openTable(dir, types.AccountsTable)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, "new-a\t\t0\t0\t0\t0\t0\n", string(data))

	for _, table := range []string{types.TransactionsTable, types.MonthsTable, types.CategoriesByMonthTable} {
		_, err := openTable(dir, table)
		assert.True(t, os.IsNotExist(err), "%s left over from the previous run", table)
	}
}
