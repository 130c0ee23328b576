package export

import (
	"github.com/mesh-intelligence/ynab-export/internal/encode"
	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

// Column functions, one per table. Column order matches schema.sql.

func accountRow(a types.Account) ([]string, error) {
	if err := requireFields(a.ID, field{"id", a.ID}); err != nil {
		return nil, err
	}
	return []string{
		a.ID,
		encode.Text(a.Name),
		encode.Bool(a.OnBudget),
		encode.Bool(a.Closed),
		encode.Money(a.Balance),
		encode.Money(a.ClearedBalance),
		encode.Money(a.UnclearedBalance),
	}, nil
}

func categoryGroupRow(g types.CategoryGroup) ([]string, error) {
	if err := requireFields(g.ID, field{"id", g.ID}); err != nil {
		return nil, err
	}
	return []string{
		g.ID,
		encode.Text(g.Name),
		encode.Bool(g.Hidden),
	}, nil
}

func categoryRow(c types.Category) ([]string, error) {
	if err := requireFields(c.ID, field{"id", c.ID}, field{"category_group_id", c.CategoryGroupID}); err != nil {
		return nil, err
	}
	return []string{
		c.ID,
		c.CategoryGroupID,
		encode.Text(c.Name),
		encode.Bool(c.Hidden),
		encode.Money(c.Budgeted),
		encode.Money(c.Activity),
		encode.Money(c.Balance),
	}, nil
}

func payeeRow(p types.Payee) ([]string, error) {
	if err := requireFields(p.ID, field{"id", p.ID}); err != nil {
		return nil, err
	}
	return []string{
		p.ID,
		encode.PayeeName(p.Name),
		encode.Optional(p.TransferAccountID),
	}, nil
}

func (e *Exporter) transactionRow(t types.Transaction) ([]string, error) {
	if err := requireFields(t.ID,
		field{"id", t.ID},
		field{"date", t.Date},
		field{"account_id", t.AccountID},
	); err != nil {
		return nil, err
	}
	cleared, err := encode.Enum(t.Cleared)
	if err != nil {
		return nil, fieldError(t.ID, "cleared", err)
	}
	flag, err := encode.OptionalEnum(t.FlagColor)
	if err != nil {
		return nil, fieldError(t.ID, "flag_color", err)
	}
	return []string{
		t.ID,
		t.Date,
		encode.Money(t.Amount),
		encode.Optional(t.Memo),
		cleared,
		encode.Bool(t.Approved),
		flag,
		t.AccountID,
		encode.Optional(t.PayeeID),
		encode.Optional(e.splitRef(t.CategoryID)),
		encode.Optional(t.TransferAccountID),
	}, nil
}

func subtransactionRow(s types.Subtransaction) ([]string, error) {
	if err := requireFields(s.ID, field{"id", s.ID}, field{"transaction_id", s.TransactionID}); err != nil {
		return nil, err
	}
	return []string{
		s.ID,
		s.TransactionID,
		encode.Money(s.Amount),
		encode.Optional(s.Memo),
		encode.Optional(s.PayeeID),
		encode.Optional(s.CategoryID),
		encode.Optional(s.TransferAccountID),
	}, nil
}

func monthRow(m types.Month) ([]string, error) {
	if err := requireFields(m.Month, field{"month", m.Month}); err != nil {
		return nil, err
	}
	return []string{m.Month}, nil
}

// monthCategoryRow prefixes a category snapshot with its month key.
func monthCategoryRow(month string, c types.MonthCategory) ([]string, error) {
	cells, err := categoryRow(c)
	if err != nil {
		return nil, err
	}
	return append([]string{month}, cells...), nil
}

func (e *Exporter) scheduledTransactionRow(t types.ScheduledTransaction) ([]string, error) {
	if err := requireFields(t.ID,
		field{"id", t.ID},
		field{"date_next", t.DateNext},
		field{"account_id", t.AccountID},
	); err != nil {
		return nil, err
	}
	frequency, err := encode.Enum(t.Frequency)
	if err != nil {
		return nil, fieldError(t.ID, "frequency", err)
	}
	flag, err := encode.OptionalEnum(t.FlagColor)
	if err != nil {
		return nil, fieldError(t.ID, "flag_color", err)
	}
	return []string{
		t.ID,
		t.DateNext,
		frequency,
		encode.Money(t.Amount),
		encode.Optional(t.Memo),
		flag,
		t.AccountID,
		encode.Optional(t.PayeeID),
		encode.Optional(e.splitRef(t.CategoryID)),
		encode.Optional(t.TransferAccountID),
	}, nil
}

func scheduledSubtransactionRow(s types.ScheduledSubtransaction) ([]string, error) {
	if err := requireFields(s.ID, field{"id", s.ID}, field{"scheduled_transaction_id", s.ScheduledTransactionID}); err != nil {
		return nil, err
	}
	return []string{
		s.ID,
		s.ScheduledTransactionID,
		encode.Money(s.Amount),
		encode.Optional(s.Memo),
		encode.Optional(s.PayeeID),
		encode.Optional(s.CategoryID),
		encode.Optional(s.TransferAccountID),
	}, nil
}
