package models

import "time"

// Match statuses. A submitted score parks the match in in_progress until the
// opponent confirms it; disputed freezes it for admin resolution.
const (
	MatchScheduled  = "scheduled"
	MatchInProgress = "in_progress"
	MatchCompleted  = "completed"
	MatchCancelled  = "cancelled"
	MatchDisputed   = "disputed"
)

// Match is a scored contest between two players, usually created from an
// accepted challenge. Completion requires both confirmation flags.
type Match struct {
	ID          string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ChallengeID *string `gorm:"type:uuid;index" json:"challenge_id,omitempty"` // nil = admin-created
	Player1ID   string  `gorm:"type:uuid;not null;index" json:"player1_id"`
	Player2ID   string  `gorm:"type:uuid;not null;index" json:"player2_id"`
	Status      string  `gorm:"type:varchar(16);not null;default:'scheduled';index" json:"status"`

	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Location    *string    `json:"location,omitempty"`

	// Score entry + dual confirmation
	Player1Score     int     `gorm:"not null;default:0" json:"player1_score"`
	Player2Score     int     `gorm:"not null;default:0" json:"player2_score"`
	WinnerID         *string `gorm:"type:uuid" json:"winner_id,omitempty"`
	SubmittedBy      *string `gorm:"type:uuid" json:"submitted_by,omitempty"` // who last entered a score
	Player1Confirmed bool    `gorm:"not null;default:false" json:"player1_confirmed"`
	Player2Confirmed bool    `gorm:"not null;default:false" json:"player2_confirmed"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Relationships
	Player1 Player `json:"player1,omitempty" gorm:"foreignKey:Player1ID"`
	Player2 Player `json:"player2,omitempty" gorm:"foreignKey:Player2ID"`

	Timestamps
}

// HasPlayer reports whether id is one of the two participants.
func (m *Match) HasPlayer(id string) bool {
	return id == m.Player1ID || id == m.Player2ID
}

// Opponent returns the other participant's id, or "" if id is not a participant.
func (m *Match) Opponent(id string) string {
	switch id {
	case m.Player1ID:
		return m.Player2ID
	case m.Player2ID:
		return m.Player1ID
	}
	return ""
}
