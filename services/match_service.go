package services

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pool-league-system/engine"
	"pool-league-system/models"
)

// MatchService owns the score submission / dual-confirmation state machine
// and the admin dispute-resolution overrides. Every mutation runs inside a
// row-locked transaction with a conditional update keyed on the status that
// was read, so two devices racing on the same match cannot resurrect a
// disputed or cancelled row.
type MatchService struct {
	DB       *gorm.DB
	Activity *ActivityService
	Notifier *Notifier
}

func NewMatchService(db *gorm.DB, activity *ActivityService, notifier *Notifier) *MatchService {
	return &MatchService{DB: db, Activity: activity, Notifier: notifier}
}

type createMatchRequest struct {
	ChallengeID *string    `json:"challenge_id,omitempty"`
	Player1ID   string     `json:"player1_id"`
	Player2ID   string     `json:"player2_id"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

// CreateMatch schedules a match, usually from an accepted challenge.
func (s *MatchService) CreateMatch(c *fiber.Ctx) error {
	var req createMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.Player1ID == "" || req.Player2ID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "player1_id and player2_id are required"})
	}
	if req.Player1ID == req.Player2ID {
		return c.Status(400).JSON(fiber.Map{"error": "a match needs two different players"})
	}

	if req.ChallengeID != nil {
		var challenge models.Challenge
		if err := s.DB.First(&challenge, "id = ?", *req.ChallengeID).Error; err != nil {
			return respondErr(c, err)
		}
		if challenge.Status != models.ChallengeAccepted {
			return respondErr(c, engine.ErrChallengeNotPending)
		}
	}

	match := models.Match{
		ChallengeID: req.ChallengeID,
		Player1ID:   req.Player1ID,
		Player2ID:   req.Player2ID,
		Status:      models.MatchScheduled,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
	}
	if err := s.DB.Create(&match).Error; err != nil {
		return respondErr(c, err)
	}

	s.Notifier.Invalidate(engine.MatchInvalidations...)
	return c.Status(fiber.StatusCreated).JSON(match)
}

// GetAllMatches lists matches, newest first.
func (s *MatchService) GetAllMatches(c *fiber.Ctx) error {
	var matches []models.Match
	if err := s.DB.
		Preload("Player1").
		Preload("Player2").
		Order("created_at DESC").
		Find(&matches).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(matches)
}

// matchView decorates a match with the viewer's derived confirmation state.
type matchView struct {
	models.Match
	NeedsConfirmation bool `json:"needs_confirmation"`
	WaitingOnOpponent bool `json:"waiting_on_opponent"`
}

// GetPlayerMatches lists the player's matches with the confirmation
// predicates computed from their point of view.
func (s *MatchService) GetPlayerMatches(c *fiber.Ctx) error {
	playerID := c.Params("id")

	var matches []models.Match
	if err := s.DB.
		Preload("Player1").
		Preload("Player2").
		Where("player1_id = ? OR player2_id = ?", playerID, playerID).
		Order("created_at DESC").
		Find(&matches).Error; err != nil {
		return respondErr(c, err)
	}

	views := make([]matchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, matchView{
			Match:             m,
			NeedsConfirmation: engine.NeedsConfirmation(m, playerID),
			WaitingOnOpponent: engine.WaitingOnOpponent(m, playerID),
		})
	}
	return c.JSON(views)
}

type submitScoreRequest struct {
	Player1Score int    `json:"player1_score"`
	Player2Score int    `json:"player2_score"`
	WinnerID     string `json:"winner_id"`
	SubmittedBy  string `json:"submitted_by"`
}

// SubmitScore records one party's score entry and their implicit
// confirmation of it. A re-submission over a changed score resets the
// opponent's earlier confirmation.
func (s *MatchService) SubmitScore(c *fiber.Ctx) error {
	matchID := c.Params("id")

	var req submitScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}

	var updated models.Match
	err := s.transition(matchID, func(m models.Match) (models.Match, error) {
		return engine.SubmitScore(m, req.Player1Score, req.Player2Score, req.WinnerID, req.SubmittedBy, time.Now())
	}, &updated)
	if err != nil {
		return respondErr(c, err)
	}

	s.Activity.Log(models.Activity{
		Type:        models.ActivityScoreSubmitted,
		ActorID:     updated.SubmittedBy,
		MatchID:     &updated.ID,
		Description: "score submitted, awaiting confirmation",
	})
	s.Notifier.Invalidate(engine.MatchInvalidations...)
	return c.JSON(updated)
}

type confirmMatchRequest struct {
	PlayerID string `json:"player_id"`
}

// ConfirmMatch records the opposing confirmation. The auto-complete decision
// is made against the row as re-read under lock, not the caller's copy: the
// opponent's confirmation may have landed since the client last fetched.
func (s *MatchService) ConfirmMatch(c *fiber.Ctx) error {
	matchID := c.Params("id")

	var req confirmMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}

	var updated models.Match
	err := s.transition(matchID, func(m models.Match) (models.Match, error) {
		return engine.ConfirmMatch(m, req.PlayerID, time.Now())
	}, &updated)
	if err != nil {
		return respondErr(c, err)
	}

	if updated.Status == models.MatchCompleted {
		s.Activity.Log(models.Activity{
			Type:        models.ActivityMatchCompleted,
			ActorID:     updated.WinnerID,
			MatchID:     &updated.ID,
			Description: "match completed",
		})
		s.Notifier.Invalidate(engine.MatchCompleteInvalidations...)
	} else {
		s.Notifier.Invalidate(engine.MatchInvalidations...)
	}
	return c.JSON(updated)
}

// DisputeMatch freezes an in-progress match until an admin resolves it.
func (s *MatchService) DisputeMatch(c *fiber.Ctx) error {
	matchID := c.Params("id")

	var updated models.Match
	err := s.transition(matchID, func(m models.Match) (models.Match, error) {
		return engine.DisputeMatch(m)
	}, &updated)
	if err != nil {
		return respondErr(c, err)
	}

	s.Activity.Log(models.Activity{
		Type:        models.ActivityScoreDisputed,
		MatchID:     &updated.ID,
		Description: "score disputed, frozen for admin review",
	})
	s.Notifier.Invalidate(engine.MatchInvalidations...)
	return c.JSON(updated)
}

// ResetMatch (admin) clears all score state and returns the match to scheduled.
func (s *MatchService) ResetMatch(c *fiber.Ctx) error {
	return s.adminResolve(c, engine.MatchInvalidations, func(m models.Match) (models.Match, error) {
		return engine.ResetMatch(m)
	})
}

// ForceCancelMatch (admin) cancels the match outright.
func (s *MatchService) ForceCancelMatch(c *fiber.Ctx) error {
	return s.adminResolve(c, engine.MatchInvalidations, func(m models.Match) (models.Match, error) {
		return engine.ForceCancelMatch(m)
	})
}

// ForceCompleteMatch (admin) completes the match with its current scores.
func (s *MatchService) ForceCompleteMatch(c *fiber.Ctx) error {
	return s.adminResolve(c, engine.MatchCompleteInvalidations, func(m models.Match) (models.Match, error) {
		return engine.ForceCompleteMatch(m, time.Now())
	})
}

func (s *MatchService) adminResolve(c *fiber.Ctx, invalidations []string, apply func(models.Match) (models.Match, error)) error {
	matchID := c.Params("id")

	var updated models.Match
	if err := s.transition(matchID, apply, &updated); err != nil {
		return respondErr(c, err)
	}

	s.Notifier.Invalidate(invalidations...)
	return c.JSON(updated)
}

// transition fetches the match under a row lock, applies a pure engine
// transition, and persists the full new state with a compare-and-set on the
// status that was read. RowsAffected 0 on an existing row means someone else
// moved it first.
func (s *MatchService) transition(matchID string, apply func(models.Match) (models.Match, error), out *models.Match) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var match models.Match
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&match, "id = ?", matchID).Error; err != nil {
			return err
		}

		updated, err := apply(match)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Match{}).
			Where("id = ? AND status = ?", match.ID, match.Status).
			Updates(map[string]interface{}{
				"status":            updated.Status,
				"player1_score":     updated.Player1Score,
				"player2_score":     updated.Player2Score,
				"winner_id":         updated.WinnerID,
				"submitted_by":      updated.SubmittedBy,
				"player1_confirmed": updated.Player1Confirmed,
				"player2_confirmed": updated.Player2Confirmed,
				"started_at":        updated.StartedAt,
				"completed_at":      updated.CompletedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return engine.ErrMatchClosed
		}

		*out = updated
		return nil
	})
}
