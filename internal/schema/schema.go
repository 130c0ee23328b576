// Package schema holds the SQL schema of the export tables and checks an
// exported directory against it.
package schema

import (
	_ "embed"

	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// SQL returns the schema text verbatim.
func SQL() string {
	return schemaSQL
}

// columns lists each table's columns in file order. The order matters:
// tables with foreign keys load after the tables they reference.
var columns = []struct {
	table   string
	columns []string
}{
	{types.AccountsTable, []string{"id", "name", "on_budget", "closed", "balance", "cleared_balance", "uncleared_balance"}},
	{types.CategoryGroupsTable, []string{"id", "name", "hidden"}},
	{types.CategoriesTable, []string{"id", "category_group_id", "name", "hidden", "budgeted", "activity", "balance"}},
	{types.PayeesTable, []string{"id", "name", "transfer_account_id"}},
	{types.TransactionsTable, []string{"id", "date", "amount", "memo", "cleared", "approved", "flag_color", "account_id", "payee_id", "category_id", "transfer_account_id"}},
	{types.SubtransactionsTable, []string{"id", "transaction_id", "amount", "memo", "payee_id", "category_id", "transfer_account_id"}},
	{types.MonthsTable, []string{"month"}},
	{types.CategoriesByMonthTable, []string{"month", "category_id", "category_group_id", "name", "hidden", "budgeted", "activity", "balance"}},
	{types.ScheduledTransactionsTable, []string{"id", "date_next", "frequency", "amount", "memo", "flag_color", "account_id", "payee_id", "category_id", "transfer_account_id"}},
	{types.ScheduledSubtransactionsTable, []string{"id", "scheduled_transaction_id", "amount", "memo", "payee_id", "category_id", "transfer_account_id"}},
}

// Columns returns the column names of table, or nil for an unknown table.
func Columns(table string) []string {
	for _, c := range columns {
		if c.table == table {
			return c.columns
		}
	}
	return nil
}
