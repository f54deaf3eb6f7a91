package engine

import "pool-league-system/models"

// BalanceSummary is the treasury reduce over the full ledger. All figures
// are minor currency units (cents).
type BalanceSummary struct {
	Balance          int64 `json:"balance"`
	TotalIncome      int64 `json:"total_income"`
	TotalExpenses    int64 `json:"total_expenses"`
	TransactionCount int64 `json:"transaction_count"`
}

// ValidateTransaction checks the sign convention at the store boundary:
// amounts are stored unsigned and strictly positive, the type carries the sign.
func ValidateTransaction(txType string, amount int64) error {
	if txType != models.TransactionIncome && txType != models.TransactionExpense {
		return ErrInvalidTransactionType
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

var ledgerCategories = map[string]bool{
	models.CategoryMatchFee:       true,
	models.CategoryMembershipDues: true,
	models.CategoryVenueRental:    true,
	models.CategoryTrophyPurchase: true,
	models.CategoryEquipment:      true,
	models.CategoryPayout:         true,
	models.CategoryOther:          true,
}

// ValidateCategory checks membership in the enumerated ledger categories.
func ValidateCategory(category string) error {
	if !ledgerCategories[category] {
		return ErrInvalidCategory
	}
	return nil
}

// SignedAmount maps a ledger row to its signed contribution to the balance.
func SignedAmount(txType string, amount int64) int64 {
	if txType == models.TransactionExpense {
		return -amount
	}
	return amount
}

// NextBalance is the running total after appending one entry. It must agree
// with Summarize over the whole history; ledger_test pins that equivalence.
func NextBalance(current int64, txType string, amount int64) (int64, error) {
	if err := ValidateTransaction(txType, amount); err != nil {
		return current, err
	}
	return current + SignedAmount(txType, amount), nil
}

// Summarize reduces a full transaction list to the treasury totals.
// An empty ledger yields all zeroes.
func Summarize(txs []models.Transaction) BalanceSummary {
	var s BalanceSummary
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionIncome:
			s.TotalIncome += tx.Amount
		case models.TransactionExpense:
			s.TotalExpenses += tx.Amount
		}
		s.TransactionCount++
	}
	s.Balance = s.TotalIncome - s.TotalExpenses
	return s
}
