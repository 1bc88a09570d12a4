package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"finbook/internal/cache"
	dom "finbook/internal/domain"
	"finbook/internal/repo"

	"github.com/jackc/pgx/v5"
)

var (
	ErrValidation           = errors.New("missing or invalid field")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")
)

// TransactionService handles ledger logic. If reports is nil, report cache
// invalidation is disabled.
type TransactionService struct {
	transactions repo.TransactionRepo
	categories   repo.CategoryRepo
	reports      *cache.ReportCache
}

// NewTransactionService returns a new TransactionService.
func NewTransactionService(transactions repo.TransactionRepo, categories repo.CategoryRepo, reports *cache.ReportCache) *TransactionService {
	return &TransactionService{transactions: transactions, categories: categories, reports: reports}
}

// List returns the user's transactions matching the filter, newest first.
func (s *TransactionService) List(ctx context.Context, userID int64, f dom.TransactionFilter) ([]dom.Transaction, error) {
	return s.transactions.List(ctx, userID, f)
}

// GetByID returns a single owned transaction.
func (s *TransactionService) GetByID(ctx context.Context, userID, id int64) (dom.Transaction, error) {
	t, err := s.transactions.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Transaction{}, ErrNotFound
		}
		return dom.Transaction{}, err
	}
	return t, nil
}

// Create records a new income/expense event. The referenced category must be
// owned by the same user and carry the same type.
func (s *TransactionService) Create(ctx context.Context, userID int64, typ string, amount float64, categoryID int64, description string, date *time.Time) (dom.Transaction, error) {
	t, err := dom.ParseTxType(typ)
	if err != nil || amount <= 0 || categoryID <= 0 || date == nil {
		return dom.Transaction{}, ErrValidation
	}
	if err := s.checkCategory(ctx, userID, categoryID, t); err != nil {
		return dom.Transaction{}, err
	}

	out, err := s.transactions.Create(ctx, dom.Transaction{
		UserID:      userID,
		Type:        t,
		Amount:      amount,
		CategoryID:  categoryID,
		Description: description,
		Date:        *date,
	})
	if err != nil {
		return dom.Transaction{}, err
	}
	s.invalidateReports(ctx, userID)
	return out, nil
}

// Update overwrites all mutable fields of an owned transaction. Ownership is
// re-checked against the row itself, independent of the values written.
func (s *TransactionService) Update(ctx context.Context, userID, id int64, typ string, amount float64, categoryID int64, description string, date *time.Time) (dom.Transaction, error) {
	if _, err := s.transactions.GetByID(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Transaction{}, ErrNotFound
		}
		return dom.Transaction{}, err
	}

	t, err := dom.ParseTxType(typ)
	if err != nil || amount <= 0 || categoryID <= 0 || date == nil {
		return dom.Transaction{}, ErrValidation
	}
	if err := s.checkCategory(ctx, userID, categoryID, t); err != nil {
		return dom.Transaction{}, err
	}

	out, err := s.transactions.Update(ctx, userID, id, dom.Transaction{
		Type:        t,
		Amount:      amount,
		CategoryID:  categoryID,
		Description: description,
		Date:        *date,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Transaction{}, ErrNotFound
		}
		return dom.Transaction{}, err
	}
	s.invalidateReports(ctx, userID)
	return out, nil
}

// Delete removes an owned transaction. Re-issuing the delete yields ErrNotFound.
func (s *TransactionService) Delete(ctx context.Context, userID, id int64) error {
	affected, err := s.transactions.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.invalidateReports(ctx, userID)
	return nil
}

func (s *TransactionService) checkCategory(ctx context.Context, userID, categoryID int64, t dom.TxType) error {
	c, err := s.categories.GetByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return err
	}
	if c.Type != t {
		return ErrCategoryTypeMismatch
	}
	return nil
}

func (s *TransactionService) invalidateReports(ctx context.Context, userID int64) {
	if s.reports == nil {
		return
	}
	if err := s.reports.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("report cache invalidation failed", "user_id", userID, "error", err)
	}
}
