package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pool-league-system/models"
)

func TestValidateTransaction(t *testing.T) {
	assert.NoError(t, ValidateTransaction(models.TransactionIncome, 2500))
	assert.NoError(t, ValidateTransaction(models.TransactionExpense, 1))
	assert.ErrorIs(t, ValidateTransaction(models.TransactionIncome, 0), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateTransaction(models.TransactionExpense, -500), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateTransaction("transfer", 100), ErrInvalidTransactionType)
}

func TestValidateCategory(t *testing.T) {
	for _, cat := range []string{
		models.CategoryMatchFee, models.CategoryMembershipDues,
		models.CategoryVenueRental, models.CategoryTrophyPurchase,
		models.CategoryEquipment, models.CategoryPayout, models.CategoryOther,
	} {
		assert.NoError(t, ValidateCategory(cat))
	}
	assert.ErrorIs(t, ValidateCategory("bar_tab"), ErrInvalidCategory)
	assert.ErrorIs(t, ValidateCategory(""), ErrInvalidCategory)
	assert.True(t, IsValidation(ValidateCategory("bar_tab")), "unknown category rejects as bad input")
}

func TestEmptyLedgerIsZero(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Balance)
	assert.Zero(t, s.TotalIncome)
	assert.Zero(t, s.TotalExpenses)
	assert.Zero(t, s.TransactionCount)
}

// Appending via NextBalance and reducing the full history must never disagree.
func TestRunningBalanceMatchesFullReduce(t *testing.T) {
	entries := []struct {
		txType string
		amount int64
	}{
		{models.TransactionIncome, 2500},  // dues
		{models.TransactionIncome, 1000},  // match fee
		{models.TransactionExpense, 1800}, // venue
		{models.TransactionIncome, 500},
		{models.TransactionExpense, 4000}, // payout, balance goes negative
		{models.TransactionIncome, 10000},
	}

	var ledger []models.Transaction
	var running int64
	for _, e := range entries {
		next, err := NextBalance(running, e.txType, e.amount)
		require.NoError(t, err)
		running = next
		ledger = append(ledger, models.Transaction{
			Type:         e.txType,
			Amount:       e.amount,
			BalanceAfter: running,
		})

		s := Summarize(ledger)
		assert.Equal(t, running, s.Balance, "running balance diverged from full reduce after %d entries", len(ledger))
		assert.Equal(t, ledger[len(ledger)-1].BalanceAfter, s.Balance)
	}

	s := Summarize(ledger)
	assert.Equal(t, int64(14000), s.TotalIncome)
	assert.Equal(t, int64(5800), s.TotalExpenses)
	assert.Equal(t, int64(8200), s.Balance)
	assert.Equal(t, int64(len(entries)), s.TransactionCount)
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, int64(300), SignedAmount(models.TransactionIncome, 300))
	assert.Equal(t, int64(-300), SignedAmount(models.TransactionExpense, 300))
}

func TestRankDelta(t *testing.T) {
	prev := 5
	assert.Equal(t, 2, RankDelta(&prev, 3), "moving from 5th to 3rd is +2")
	assert.Equal(t, -3, RankDelta(&prev, 8), "dropping to 8th is -3")
	assert.Equal(t, 0, RankDelta(&prev, 5))
	assert.Equal(t, 0, RankDelta(nil, 1), "new entrant has no delta")
}
