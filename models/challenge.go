package models

import "time"

// Challenge statuses. A pending challenge has a 7-day acceptance window;
// past it the sweeper (or the next list read) flips it to expired.
const (
	ChallengePending       = "pending"
	ChallengeAccepted      = "accepted"
	ChallengeDeclined      = "declined"
	ChallengeCancelled     = "cancelled"
	ChallengeExpired       = "expired"
	ChallengeVenueProposed = "venue_proposed"
	ChallengeLocked        = "locked"
)

// Challenge is a proposal from one player to another to play a match.
type Challenge struct {
	ID           string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ChallengerID string    `gorm:"type:uuid;not null;index" json:"challenger_id"`
	ChallengedID string    `gorm:"type:uuid;not null;index" json:"challenged_id"`
	Status       string    `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	ProposedDate *string   `json:"proposed_date,omitempty"` // YYYY-MM-DD
	ProposedTime *string   `json:"proposed_time,omitempty"` // HH:MM
	Location     *string   `json:"location,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`

	// Relationships
	Challenger Player `json:"challenger,omitempty" gorm:"foreignKey:ChallengerID"`
	Challenged Player `json:"challenged,omitempty" gorm:"foreignKey:ChallengedID"`

	Timestamps
}
