package repo

import (
	"context"

	dom "finbook/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepo provides category persistence. Every query is scoped to the
// owning user; rows of other users are invisible to all methods.
type CategoryRepo interface {
	List(ctx context.Context, userID int64) ([]dom.Category, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Category, error)
	Create(ctx context.Context, c dom.Category) (dom.Category, error)
	ExistsNameType(ctx context.Context, userID int64, name string, t dom.TxType) (bool, error)
	Delete(ctx context.Context, userID, id int64) (int64, error)
}

// PGCategoryRepo implements CategoryRepo with Postgres.
type PGCategoryRepo struct {
	db *pgxpool.Pool
}

// NewPGCategoryRepo returns a new PGCategoryRepo.
func NewPGCategoryRepo(db *pgxpool.Pool) *PGCategoryRepo {
	return &PGCategoryRepo{db: db}
}

// List returns the user's categories ordered by name.
func (r *PGCategoryRepo) List(ctx context.Context, userID int64) ([]dom.Category, error) {
	query := `
		SELECT id, user_id, name, type, icon, created_at
		FROM categories WHERE user_id = $1 ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Category
	for rows.Next() {
		var c dom.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Icon, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID returns a single category owned by userID.
func (r *PGCategoryRepo) GetByID(ctx context.Context, userID, id int64) (dom.Category, error) {
	query := `
		SELECT id, user_id, name, type, icon, created_at
		FROM categories WHERE id = $1 AND user_id = $2`
	var c dom.Category
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Type, &c.Icon, &c.CreatedAt,
	)
	return c, err
}

// Create inserts a new category and returns it.
func (r *PGCategoryRepo) Create(ctx context.Context, c dom.Category) (dom.Category, error) {
	query := `
		INSERT INTO categories (user_id, name, type, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, type, icon, created_at`
	var out dom.Category
	err := r.db.QueryRow(ctx, query, c.UserID, c.Name, c.Type, c.Icon).Scan(
		&out.ID, &out.UserID, &out.Name, &out.Type, &out.Icon, &out.CreatedAt,
	)
	return out, err
}

// ExistsNameType reports whether the user already has a category with this
// name (case-insensitive) and type.
func (r *PGCategoryRepo) ExistsNameType(ctx context.Context, userID int64, name string, t dom.TxType) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE user_id = $1 AND lower(name) = lower($2) AND type = $3
		)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, name, t).Scan(&exists)
	return exists, err
}

// Delete removes the category if owned by userID and returns affected rows.
func (r *PGCategoryRepo) Delete(ctx context.Context, userID, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
