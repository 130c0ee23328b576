package types

// Milliunits is a monetary amount times 1000, as the service reports it.
type Milliunits int64

// Budget is one complete snapshot of a budget.
type Budget struct {
	ID                       string                    `json:"id"`
	Name                     string                    `json:"name"`
	Accounts                 []Account                 `json:"accounts"`
	CategoryGroups           []CategoryGroup           `json:"category_groups"`
	Categories               []Category                `json:"categories"`
	Payees                   []Payee                   `json:"payees"`
	Transactions             []Transaction             `json:"transactions"`
	Subtransactions          []Subtransaction          `json:"subtransactions"`
	Months                   []Month                   `json:"months"`
	ScheduledTransactions    []ScheduledTransaction    `json:"scheduled_transactions"`
	ScheduledSubtransactions []ScheduledSubtransaction `json:"scheduled_subtransactions"`
}

// Account is a budget or tracking account.
type Account struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	OnBudget         bool       `json:"on_budget"`
	Closed           bool       `json:"closed"`
	Balance          Milliunits `json:"balance"`
	ClearedBalance   Milliunits `json:"cleared_balance"`
	UnclearedBalance Milliunits `json:"uncleared_balance"`
	Deleted          bool       `json:"deleted"`
}

// CategoryGroup groups categories.
type CategoryGroup struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Hidden  bool   `json:"hidden"`
	Deleted bool   `json:"deleted"`
}

// Category is a budget category. The same shape is embedded in each Month
// as a MonthCategory.
type Category struct {
	ID              string     `json:"id"`
	CategoryGroupID string     `json:"category_group_id"`
	Name            string     `json:"name"`
	Hidden          bool       `json:"hidden"`
	Budgeted        Milliunits `json:"budgeted"`
	Activity        Milliunits `json:"activity"`
	Balance         Milliunits `json:"balance"`
	Deleted         bool       `json:"deleted"`
}

// MonthCategory is a category's state within one month.
type MonthCategory = Category

// Payee is a transaction counterparty. Transfer payees alias an account.
type Payee struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	TransferAccountID *string `json:"transfer_account_id"`
	Deleted           bool    `json:"deleted"`
}

// Transaction is a posted transaction. A split transaction points
// CategoryID at the service's split placeholder and carries its real
// categories in Subtransactions.
type Transaction struct {
	ID                string       `json:"id"`
	Date              string       `json:"date"`
	Amount            Milliunits   `json:"amount"`
	Memo              *string      `json:"memo"`
	Cleared           ClearedState `json:"cleared"`
	Approved          bool         `json:"approved"`
	FlagColor         *FlagColor   `json:"flag_color"`
	AccountID         string       `json:"account_id"`
	PayeeID           *string      `json:"payee_id"`
	CategoryID        *string      `json:"category_id"`
	TransferAccountID *string      `json:"transfer_account_id"`
	Deleted           bool         `json:"deleted"`
}

// Subtransaction is one category line of a split transaction.
type Subtransaction struct {
	ID                string     `json:"id"`
	TransactionID     string     `json:"transaction_id"`
	Amount            Milliunits `json:"amount"`
	Memo              *string    `json:"memo"`
	PayeeID           *string    `json:"payee_id"`
	CategoryID        *string    `json:"category_id"`
	TransferAccountID *string    `json:"transfer_account_id"`
	Deleted           bool       `json:"deleted"`
}

// Month is a budget month with its per-category snapshots.
type Month struct {
	Month      string          `json:"month"`
	Categories []MonthCategory `json:"categories"`
	Deleted    bool            `json:"deleted"`
}

// ScheduledTransaction is a recurring transaction template.
type ScheduledTransaction struct {
	ID                string     `json:"id"`
	DateNext          string     `json:"date_next"`
	Frequency         Frequency  `json:"frequency"`
	Amount            Milliunits `json:"amount"`
	Memo              *string    `json:"memo"`
	FlagColor         *FlagColor `json:"flag_color"`
	AccountID         string     `json:"account_id"`
	PayeeID           *string    `json:"payee_id"`
	CategoryID        *string    `json:"category_id"`
	TransferAccountID *string    `json:"transfer_account_id"`
	Deleted           bool       `json:"deleted"`
}

// ScheduledSubtransaction is one category line of a split scheduled
// transaction.
type ScheduledSubtransaction struct {
	ID                     string     `json:"id"`
	ScheduledTransactionID string     `json:"scheduled_transaction_id"`
	Amount                 Milliunits `json:"amount"`
	Memo                   *string    `json:"memo"`
	PayeeID                *string    `json:"payee_id"`
	CategoryID             *string    `json:"category_id"`
	TransferAccountID      *string    `json:"transfer_account_id"`
	Deleted                bool       `json:"deleted"`
}

// IsDeleted reports whether the record was deleted upstream.
func (a Account) IsDeleted() bool { return a.Deleted }
func (g CategoryGroup) IsDeleted() bool { return g.Deleted }
func (c Category) IsDeleted() bool { return c.Deleted }
func (p Payee) IsDeleted() bool { return p.Deleted }
func (t Transaction) IsDeleted() bool { return t.Deleted }
func (s Subtransaction) IsDeleted() bool { return s.Deleted }
func (m Month) IsDeleted() bool { return m.Deleted }
func (s ScheduledTransaction) IsDeleted() bool { return s.Deleted }
func (s ScheduledSubtransaction) IsDeleted() bool { return s.Deleted }
