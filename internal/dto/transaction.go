package dto

import "time"

// CreateTransactionRequest is the JSON body for POST /transactions.
// Date accepts "2006-01-02" only.
type CreateTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	CategoryID  int64   `json:"category_id" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=1000"`
	Date        Date    `json:"date" binding:"required"`
}

// UpdateTransactionRequest is the JSON body for PUT /transactions/:id.
// All mutable fields are overwritten (full replace, not a patch).
type UpdateTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	CategoryID  int64   `json:"category_id" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=1000"`
	Date        Date    `json:"date" binding:"required"`
}

// TransactionResponse is a single ledger row with joined category display fields.
type TransactionResponse struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CategoryIcon string    `json:"category_icon,omitempty"`
	Description  string    `json:"description"`
	Date         string    `json:"date"` // YYYY-MM-DD
	CreatedAt    time.Time `json:"created_at"`
}

// ListTransactionsResponse wraps the ordered transaction list.
type ListTransactionsResponse struct {
	Items []TransactionResponse `json:"items"`
}

// SummaryResponse holds the derived totals for a date range.
type SummaryResponse struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

// BreakdownItem is one category's share of the expense total.
type BreakdownItem struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// BreakdownResponse wraps the expense breakdown, largest group first.
type BreakdownResponse struct {
	Items []BreakdownItem `json:"items"`
}
