package models

// Ranking is the league ladder projection. Positions are assigned by the
// external ranking job (and the admin move operation); this service only
// reads them. Position is 1-based and contiguous.
type Ranking struct {
	ID               string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlayerID         string `gorm:"type:uuid;not null;uniqueIndex" json:"player_id"`
	Position         int    `gorm:"not null;index" json:"position"`
	Points           int    `gorm:"not null;default:0" json:"points"`
	PreviousPosition *int   `json:"previous_position,omitempty"`

	Player Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`

	Timestamps
}

// RankedPlayer is the flattened rankings list entry returned to clients.
type RankedPlayer struct {
	PlayerID         string   `json:"player_id"`
	DisplayName      string   `json:"display_name"`
	FargoRating      *float64 `json:"fargo_rating,omitempty"`
	Robustness       *float64 `json:"robustness,omitempty"`
	Position         int      `json:"position"`
	PreviousPosition *int     `json:"previous_position,omitempty"`
	Points           int      `json:"points"`
	Delta            int      `json:"delta"` // positive = moved up
}
