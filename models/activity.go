package models

// Activity feed entry types.
const (
	ActivityChallengeSent      = "challenge_sent"
	ActivityChallengeAccepted  = "challenge_accepted"
	ActivityChallengeDeclined  = "challenge_declined"
	ActivityChallengeCancelled = "challenge_cancelled"
	ActivityScoreSubmitted     = "score_submitted"
	ActivityMatchCompleted     = "match_completed"
	ActivityScoreDisputed      = "score_disputed"
	ActivityRankingChanged     = "ranking_changed"
	ActivityPaymentReceived    = "payment_received"
)

// Activity is a denormalized feed row written alongside lifecycle events.
type Activity struct {
	ID          string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Type        string  `gorm:"type:varchar(32);not null;index" json:"type"`
	ActorID     *string `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	TargetID    *string `gorm:"type:uuid" json:"target_id,omitempty"`
	ChallengeID *string `gorm:"type:uuid" json:"challenge_id,omitempty"`
	MatchID     *string `gorm:"type:uuid" json:"match_id,omitempty"`
	Description string  `gorm:"not null" json:"description"`

	Actor  Player `json:"actor,omitempty" gorm:"foreignKey:ActorID"`
	Target Player `json:"target,omitempty" gorm:"foreignKey:TargetID"`

	Timestamps
}
