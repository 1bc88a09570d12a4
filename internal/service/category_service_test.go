package service

import (
	"context"
	"testing"

	dom "finbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryService() (*CategoryService, *fakeCategoryRepo, *fakeTransactionRepo) {
	cats := newFakeCategoryRepo()
	txs := newFakeTransactionRepo(cats)
	return NewCategoryService(cats, txs), cats, txs
}

func TestCategoryService_Create(t *testing.T) {
	svc, _, _ := newCategoryService()
	ctx := context.Background()

	c, err := svc.Create(ctx, 1, "Salary", "income", "💰")
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "Salary", c.Name)
	assert.Equal(t, dom.TxIncome, c.Type)
	assert.Equal(t, "💰", c.Icon)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCategoryService_Create_Validation(t *testing.T) {
	svc, _, _ := newCategoryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "", "income", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, 1, "Food", "", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, 1, "Food", "savings", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCategoryService_Create_DuplicateIsCaseInsensitive(t *testing.T) {
	svc, _, _ := newCategoryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "Food", "expense", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, 1, "FOOD", "expense", "")
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	// Same name under the other type is a different bucket.
	_, err = svc.Create(ctx, 1, "Food", "income", "")
	assert.NoError(t, err)

	// And other users are unaffected.
	_, err = svc.Create(ctx, 2, "Food", "expense", "")
	assert.NoError(t, err)
}

func TestCategoryService_List_OrderedByName(t *testing.T) {
	svc, _, _ := newCategoryService()
	ctx := context.Background()

	for _, name := range []string{"Transport", "Food", "Rent"} {
		_, err := svc.Create(ctx, 1, name, "expense", "")
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Food", list[0].Name)
	assert.Equal(t, "Rent", list[1].Name)
	assert.Equal(t, "Transport", list[2].Name)
}

func TestCategoryService_Delete(t *testing.T) {
	svc, _, _ := newCategoryService()
	ctx := context.Background()

	c, err := svc.Create(ctx, 1, "Food", "expense", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, c.ID))

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newCategoryService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, 1, 42), ErrNotFound)
}

func TestCategoryService_Delete_OtherUsersRowLooksAbsent(t *testing.T) {
	svc, _, _ := newCategoryService()
	ctx := context.Background()

	c, err := svc.Create(ctx, 1, "Food", "expense", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, 2, c.ID), ErrNotFound)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCategoryService_Delete_GuardedWhileReferenced(t *testing.T) {
	svc, _, txs := newCategoryService()
	ctx := context.Background()

	c, err := svc.Create(ctx, 1, "Food", "expense", "")
	require.NoError(t, err)

	tx, err := txs.Create(ctx, dom.Transaction{
		UserID: 1, Type: dom.TxExpense, Amount: 10, CategoryID: c.ID, Date: *date(2024, 1, 1),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, 1, c.ID), ErrCategoryInUse)

	// Once the referencing transaction is gone, the same delete succeeds.
	_, err = txs.Delete(ctx, 1, tx.ID)
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, 1, c.ID))
}
