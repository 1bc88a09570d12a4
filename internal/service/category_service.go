package service

import (
	"context"
	"errors"
	"strings"

	dom "finbook/internal/domain"
	"finbook/internal/repo"
	"finbook/internal/utils"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryInUse     = errors.New("category in use")
)

// CategoryService handles per-user category logic.
type CategoryService struct {
	categories   repo.CategoryRepo
	transactions repo.TransactionRepo
}

// NewCategoryService returns a new CategoryService.
func NewCategoryService(categories repo.CategoryRepo, transactions repo.TransactionRepo) *CategoryService {
	return &CategoryService{categories: categories, transactions: transactions}
}

// List returns the user's categories ordered by name.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]dom.Category, error) {
	return s.categories.List(ctx, userID)
}

// Create adds a category after a case-insensitive (name, type) duplicate
// check for the user. The check races with concurrent creates; the unique
// index backs it up and the violation maps to the same error.
func (s *CategoryService) Create(ctx context.Context, userID int64, name, typ, icon string) (dom.Category, error) {
	name = strings.TrimSpace(name)
	t, err := dom.ParseTxType(typ)
	if name == "" || err != nil {
		return dom.Category{}, ErrValidation
	}

	exists, err := s.categories.ExistsNameType(ctx, userID, name, t)
	if err != nil {
		return dom.Category{}, err
	}
	if exists {
		return dom.Category{}, ErrDuplicateCategory
	}

	c, err := s.categories.Create(ctx, dom.Category{
		UserID: userID,
		Name:   name,
		Type:   t,
		Icon:   icon,
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Category{}, ErrDuplicateCategory
		}
		return dom.Category{}, err
	}
	return c, nil
}

// Delete removes the user's category unless any of the user's transactions
// still references it.
func (s *CategoryService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.categories.GetByID(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	n, err := s.transactions.CountByCategory(ctx, userID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}

	affected, err := s.categories.Delete(ctx, userID, id)
	if err != nil {
		// A transaction created between the count and the delete trips the FK.
		if utils.IsPGForeignKeyViolation(err) {
			return ErrCategoryInUse
		}
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
