package repo

import (
	"context"
	"strconv"
	"strings"

	dom "finbook/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepo provides ledger persistence. Every query is scoped to the
// owning user; a row owned by someone else behaves as if it did not exist.
type TransactionRepo interface {
	List(ctx context.Context, userID int64, f dom.TransactionFilter) ([]dom.Transaction, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Transaction, error)
	Create(ctx context.Context, t dom.Transaction) (dom.Transaction, error)
	Update(ctx context.Context, userID, id int64, t dom.Transaction) (dom.Transaction, error)
	Delete(ctx context.Context, userID, id int64) (int64, error)
	CountByCategory(ctx context.Context, userID, categoryID int64) (int64, error)
	Summary(ctx context.Context, userID int64, f dom.TransactionFilter) (dom.Summary, error)
}

// PGTransactionRepo implements TransactionRepo with Postgres.
type PGTransactionRepo struct {
	db *pgxpool.Pool
}

// NewPGTransactionRepo returns a new PGTransactionRepo.
func NewPGTransactionRepo(db *pgxpool.Pool) *PGTransactionRepo {
	return &PGTransactionRepo{db: db}
}

const txSelectJoined = `
	SELECT t.id, t.user_id, t.type, t.amount, t.category_id,
	       t.description, t.transaction_date, t.created_at,
	       COALESCE(c.name, ''), COALESCE(c.icon, '')
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id`

// List returns the user's transactions matching the filter, newest date first
// with creation time as the same-day tie-break. Omitted filter fields impose
// no constraint; date bounds are inclusive.
func (r *PGTransactionRepo) List(ctx context.Context, userID int64, f dom.TransactionFilter) ([]dom.Transaction, error) {
	var b strings.Builder
	b.WriteString(txSelectJoined)
	b.WriteString(` WHERE t.user_id = $1`)
	args := []any{userID}

	if f.Type != "" {
		args = append(args, f.Type)
		b.WriteString(` AND t.type = $` + strconv.Itoa(len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		b.WriteString(` AND t.transaction_date >= $` + strconv.Itoa(len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		b.WriteString(` AND t.transaction_date <= $` + strconv.Itoa(len(args)))
	}
	b.WriteString(` ORDER BY t.transaction_date DESC, t.created_at DESC`)

	rows, err := r.db.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Transaction
	for rows.Next() {
		var t dom.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.CategoryID,
			&t.Description, &t.Date, &t.CreatedAt, &t.CategoryName, &t.CategoryIcon); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByID returns a single transaction owned by userID.
func (r *PGTransactionRepo) GetByID(ctx context.Context, userID, id int64) (dom.Transaction, error) {
	query := txSelectJoined + ` WHERE t.id = $1 AND t.user_id = $2`
	var t dom.Transaction
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Type, &t.Amount, &t.CategoryID,
		&t.Description, &t.Date, &t.CreatedAt, &t.CategoryName, &t.CategoryIcon,
	)
	return t, err
}

// Create inserts a new transaction and returns it.
func (r *PGTransactionRepo) Create(ctx context.Context, t dom.Transaction) (dom.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, type, amount, category_id, description, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, type, amount, category_id, description, transaction_date, created_at`
	var out dom.Transaction
	err := r.db.QueryRow(ctx, query,
		t.UserID, t.Type, t.Amount, t.CategoryID, t.Description, t.Date,
	).Scan(&out.ID, &out.UserID, &out.Type, &out.Amount, &out.CategoryID,
		&out.Description, &out.Date, &out.CreatedAt)
	return out, err
}

// Update overwrites all mutable fields of the owned row and returns it.
// pgx.ErrNoRows when the row is absent or owned by someone else.
func (r *PGTransactionRepo) Update(ctx context.Context, userID, id int64, t dom.Transaction) (dom.Transaction, error) {
	query := `
		UPDATE transactions
		SET type = $3, amount = $4, category_id = $5, description = $6, transaction_date = $7
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, type, amount, category_id, description, transaction_date, created_at`
	var out dom.Transaction
	err := r.db.QueryRow(ctx, query,
		id, userID, t.Type, t.Amount, t.CategoryID, t.Description, t.Date,
	).Scan(&out.ID, &out.UserID, &out.Type, &out.Amount, &out.CategoryID,
		&out.Description, &out.Date, &out.CreatedAt)
	return out, err
}

// Delete removes the transaction if owned by userID and returns affected rows.
func (r *PGTransactionRepo) Delete(ctx context.Context, userID, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountByCategory returns how many of the user's transactions reference the category.
func (r *PGTransactionRepo) CountByCategory(ctx context.Context, userID, categoryID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND category_id = $2`,
		userID, categoryID,
	).Scan(&n)
	return n, err
}

// Summary computes income/expense totals over the optionally date-filtered
// ledger. No matching rows yields zero totals, never an error.
func (r *PGTransactionRepo) Summary(ctx context.Context, userID int64, f dom.TransactionFilter) (dom.Summary, error) {
	var b strings.Builder
	b.WriteString(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1`)
	args := []any{userID}

	if f.From != nil {
		args = append(args, *f.From)
		b.WriteString(` AND transaction_date >= $` + strconv.Itoa(len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		b.WriteString(` AND transaction_date <= $` + strconv.Itoa(len(args)))
	}

	var s dom.Summary
	if err := r.db.QueryRow(ctx, b.String(), args...).Scan(&s.TotalIncome, &s.TotalExpense); err != nil {
		return dom.Summary{}, err
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s, nil
}
