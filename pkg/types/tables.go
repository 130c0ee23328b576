package types

// Export table names. Each table is written to <name>.tsv.
const (
	AccountsTable                 = "accounts"
	CategoryGroupsTable           = "category_groups"
	CategoriesTable               = "categories"
	PayeesTable                   = "payees"
	TransactionsTable             = "transactions"
	SubtransactionsTable          = "subtransactions"
	MonthsTable                   = "months"
	CategoriesByMonthTable        = "categories_by_month"
	ScheduledTransactionsTable    = "scheduled_transactions"
	ScheduledSubtransactionsTable = "scheduled_subtransactions"
)

// TableNames lists every export table in the order they are written.
// Referenced tables precede the tables that point at them.
var TableNames = []string{
	AccountsTable,
	CategoryGroupsTable,
	CategoriesTable,
	PayeesTable,
	TransactionsTable,
	SubtransactionsTable,
	MonthsTable,
	CategoriesByMonthTable,
	ScheduledTransactionsTable,
	ScheduledSubtransactionsTable,
}

// TableFileExt is appended to a table name to form its file name.
const TableFileExt = ".tsv"

// TableFile returns the file name a table is written to.
func TableFile(table string) string {
	return table + TableFileExt
}
