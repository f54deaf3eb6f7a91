package models

import (
	"time"

	"gorm.io/gorm"
)

// Player is a league member eligible for rankings, challenges and matches.
// Identity comes from the profile service; fargo rating and robustness are
// owned there too and mirrored in by the sync worker.
type Player struct {
	ID             string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string   `gorm:"uniqueIndex;not null" json:"external_user_id"` // profile service UUID
	DisplayName    string   `gorm:"index;not null" json:"display_name"`
	AvatarURL      *string  `json:"avatar_url,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	Location       *string  `json:"location,omitempty"`
	FargoRating    *float64 `json:"fargo_rating,omitempty"`
	Robustness     *float64 `json:"robustness,omitempty"`

	Timestamps
}

// PlayerStats is computed from completed matches (not stored). WinStreak is
// the run of consecutive wins counted back from the most recent match.
type PlayerStats struct {
	MatchesPlayed int64   `json:"matches_played"`
	MatchesWon    int64   `json:"matches_won"`
	MatchesLost   int64   `json:"matches_lost"`
	WinRate       float64 `json:"win_rate"`
	WinStreak     int     `json:"win_streak"`
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
