package domain

import "time"

// Category is a per-user classification bucket for transactions.
// (UserID, Name, Type) is unique case-insensitively.
type Category struct {
	ID        int64
	UserID    int64
	Name      string
	Type      TxType
	Icon      string
	CreatedAt time.Time
}
