package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	dom "finbook/internal/domain"

	"github.com/jackc/pgx/v5"
)

// In-memory repo fakes. Ownership scoping mirrors the SQL: a row owned by
// another user behaves as if it did not exist (pgx.ErrNoRows / zero affected).

type fakeCategoryRepo struct {
	mu   sync.Mutex
	seq  int64
	rows map[int64]dom.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{rows: make(map[int64]dom.Category)}
}

func (r *fakeCategoryRepo) List(_ context.Context, userID int64) ([]dom.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []dom.Category
	for _, c := range r.rows {
		if c.UserID == userID {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, userID, id int64) (dom.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok || c.UserID != userID {
		return dom.Category{}, pgx.ErrNoRows
	}
	return c, nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, c dom.Category) (dom.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = r.seq
	c.CreatedAt = time.Now()
	r.rows[c.ID] = c
	return c, nil
}

func (r *fakeCategoryRepo) ExistsNameType(_ context.Context, userID int64, name string, t dom.TxType) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.UserID == userID && c.Type == t && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, userID, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok || c.UserID != userID {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

type fakeTransactionRepo struct {
	mu   sync.Mutex
	seq  int64
	rows map[int64]dom.Transaction

	categories *fakeCategoryRepo
}

func newFakeTransactionRepo(categories *fakeCategoryRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{rows: make(map[int64]dom.Transaction), categories: categories}
}

func (r *fakeTransactionRepo) matches(t dom.Transaction, userID int64, f dom.TransactionFilter) bool {
	if t.UserID != userID {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.From != nil && t.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && t.Date.After(*f.To) {
		return false
	}
	return true
}

func (r *fakeTransactionRepo) List(_ context.Context, userID int64, f dom.TransactionFilter) ([]dom.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []dom.Transaction
	for _, t := range r.rows {
		if !r.matches(t, userID, f) {
			continue
		}
		if r.categories != nil {
			if c, ok := r.categories.rows[t.CategoryID]; ok {
				t.CategoryName = c.Name
				t.CategoryIcon = c.Icon
			}
		}
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, userID, id int64) (dom.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok || t.UserID != userID {
		return dom.Transaction{}, pgx.ErrNoRows
	}
	if r.categories != nil {
		if c, ok := r.categories.rows[t.CategoryID]; ok {
			t.CategoryName = c.Name
			t.CategoryIcon = c.Icon
		}
	}
	return t, nil
}

func (r *fakeTransactionRepo) Create(_ context.Context, t dom.Transaction) (dom.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = r.seq
	t.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	r.rows[t.ID] = t
	return t, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, userID, id int64, t dom.Transaction) (dom.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.rows[id]
	if !ok || old.UserID != userID {
		return dom.Transaction{}, pgx.ErrNoRows
	}
	t.ID = id
	t.UserID = userID
	t.CreatedAt = old.CreatedAt
	r.rows[id] = t
	return t, nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, userID, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok || t.UserID != userID {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

func (r *fakeTransactionRepo) CountByCategory(_ context.Context, userID, categoryID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.rows {
		if t.UserID == userID && t.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeTransactionRepo) Summary(_ context.Context, userID int64, f dom.TransactionFilter) (dom.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s dom.Summary
	for _, t := range r.rows {
		if !r.matches(t, userID, f) {
			continue
		}
		switch t.Type {
		case dom.TxIncome:
			s.TotalIncome += t.Amount
		case dom.TxExpense:
			s.TotalExpense += t.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s, nil
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
