package domain

import (
	"fmt"
	"time"
)

// TxType is the closed set of transaction/category kinds.
type TxType string

const (
	TxIncome  TxType = "income"
	TxExpense TxType = "expense"
)

// ParseTxType validates a raw string against the closed set.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case TxIncome, TxExpense:
		return TxType(s), nil
	}
	return "", fmt.Errorf("type must be income or expense, got %q", s)
}

func (t TxType) Valid() bool {
	return t == TxIncome || t == TxExpense
}

// Transaction is a single income or expense event owned by exactly one user.
// Date carries the calendar day only; the time component is always midnight UTC.
type Transaction struct {
	ID          int64
	UserID      int64
	Type        TxType
	Amount      float64
	CategoryID  int64
	Description string
	Date        time.Time

	// Joined category display fields. CategoryName is empty when the
	// category row is gone (left join miss).
	CategoryName string
	CategoryIcon string

	CreatedAt time.Time
}

// TransactionFilter narrows List results. Zero-value fields impose no
// constraint; set fields are AND-combined. Date bounds are inclusive.
type TransactionFilter struct {
	Type TxType
	From *time.Time
	To   *time.Time
}

// Summary holds derived totals over a user-scoped, date-filtered ledger.
type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

// BreakdownEntry is one category's share of the expense total.
type BreakdownEntry struct {
	Category   string
	Total      float64
	Percentage float64
}
