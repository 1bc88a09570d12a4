package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTxType(t *testing.T) {
	got, err := ParseTxType("income")
	require.NoError(t, err)
	assert.Equal(t, TxIncome, got)

	got, err = ParseTxType("expense")
	require.NoError(t, err)
	assert.Equal(t, TxExpense, got)

	for _, raw := range []string{"", "Income", "EXPENSE", "transfer", " income"} {
		_, err := ParseTxType(raw)
		assert.Error(t, err, raw)
	}
}

func TestTxType_Valid(t *testing.T) {
	assert.True(t, TxIncome.Valid())
	assert.True(t, TxExpense.Valid())
	assert.False(t, TxType("").Valid())
	assert.False(t, TxType("transfer").Valid())
}
