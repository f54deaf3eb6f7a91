package models

// Transaction types and categories for the treasury ledger.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

const (
	CategoryMatchFee       = "match_fee"
	CategoryMembershipDues = "membership_dues"
	CategoryVenueRental    = "venue_rental"
	CategoryTrophyPurchase = "trophy_purchase"
	CategoryEquipment      = "equipment"
	CategoryPayout         = "payout"
	CategoryOther          = "other"
)

// Transaction is an append-only treasury ledger entry. Amount is unsigned
// minor currency units (cents); Type carries the sign. BalanceAfter is the
// running total at insertion time and is never recomputed after the fact.
type Transaction struct {
	ID             string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlayerID       *string `gorm:"type:uuid;index" json:"player_id,omitempty"` // nil = league-wide entry
	Type           string  `gorm:"type:varchar(8);not null" json:"type"`
	Category       string  `gorm:"type:varchar(32);not null" json:"category"`
	Amount         int64   `gorm:"not null" json:"amount"` // cents, always > 0
	Description    string  `gorm:"not null" json:"description"`
	RelatedMatchID *string `gorm:"type:uuid" json:"related_match_id,omitempty"`
	AdminID        *string `gorm:"type:uuid" json:"admin_id,omitempty"` // who recorded it
	BalanceAfter   int64   `gorm:"not null" json:"balance_after"`

	Player Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`

	Timestamps
}
