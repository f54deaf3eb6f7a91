package services

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pool-league-system/engine"
	"pool-league-system/models"
)

// ChallengeService owns the challenge lifecycle: send, respond, expiry sweep.
type ChallengeService struct {
	DB       *gorm.DB
	Activity *ActivityService
	Notifier *Notifier
}

func NewChallengeService(db *gorm.DB, activity *ActivityService, notifier *Notifier) *ChallengeService {
	return &ChallengeService{DB: db, Activity: activity, Notifier: notifier}
}

type sendChallengeRequest struct {
	ChallengerID string  `json:"challenger_id"`
	ChallengedID string  `json:"challenged_id"`
	ProposedDate *string `json:"proposed_date,omitempty"`
	ProposedTime *string `json:"proposed_time,omitempty"`
	Location     *string `json:"location,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// SendChallenge creates a pending challenge with the fixed 7-day window.
func (s *ChallengeService) SendChallenge(c *fiber.Ctx) error {
	var req sendChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.ChallengerID == "" || req.ChallengedID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "challenger_id and challenged_id are required"})
	}

	challenge, err := engine.NewChallenge(req.ChallengerID, req.ChallengedID, time.Now())
	if err != nil {
		return respondErr(c, err)
	}
	challenge.ProposedDate = req.ProposedDate
	challenge.ProposedTime = req.ProposedTime
	challenge.Location = req.Location
	challenge.Notes = req.Notes

	// Both participants must exist before anything is written.
	var count int64
	if err := s.DB.Model(&models.Player{}).
		Where("id IN ?", []string{req.ChallengerID, req.ChallengedID}).
		Count(&count).Error; err != nil {
		return respondErr(c, err)
	}
	if count != 2 {
		return c.Status(404).JSON(fiber.Map{"error": "challenger or challenged player not found"})
	}

	if err := s.DB.Create(&challenge).Error; err != nil {
		return respondErr(c, err)
	}

	s.Activity.Log(models.Activity{
		Type:        models.ActivityChallengeSent,
		ActorID:     &challenge.ChallengerID,
		TargetID:    &challenge.ChallengedID,
		ChallengeID: &challenge.ID,
		Description: "challenge sent",
	})
	s.Notifier.Invalidate(engine.ChallengeInvalidations...)

	return c.Status(fiber.StatusCreated).JSON(challenge)
}

// GetAllChallenges lists challenges, newest first. The expiry sweep runs
// before every list read: the client cannot assume the scheduled job already
// caught an overdue challenge.
func (s *ChallengeService) GetAllChallenges(c *fiber.Ctx) error {
	if _, err := s.SweepExpired(time.Now()); err != nil {
		log.Printf("[CHALLENGES] Sweep before list failed: %v", err)
	}

	var challenges []models.Challenge
	if err := s.DB.
		Preload("Challenger").
		Preload("Challenged").
		Order("created_at DESC").
		Find(&challenges).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(challenges)
}

// GetPlayerChallenges lists challenges the player is a party to.
func (s *ChallengeService) GetPlayerChallenges(c *fiber.Ctx) error {
	playerID := c.Params("id")

	if _, err := s.SweepExpired(time.Now()); err != nil {
		log.Printf("[CHALLENGES] Sweep before list failed: %v", err)
	}

	var challenges []models.Challenge
	if err := s.DB.
		Preload("Challenger").
		Preload("Challenged").
		Where("challenger_id = ? OR challenged_id = ?", playerID, playerID).
		Order("created_at DESC").
		Find(&challenges).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(challenges)
}

type respondChallengeRequest struct {
	Response string `json:"response"` // accepted | declined | cancelled
}

// RespondToChallenge settles a pending challenge. The transition is a
// conditional update keyed on status=pending so a concurrent response (or the
// sweep) cannot be overwritten by a stale caller.
func (s *ChallengeService) RespondToChallenge(c *fiber.Ctx) error {
	challengeID := c.Params("id")

	var req respondChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if !engine.ValidResponse(req.Response) {
		return respondErr(c, engine.ErrInvalidResponse)
	}

	res := s.DB.Model(&models.Challenge{}).
		Where("id = ? AND status = ?", challengeID, models.ChallengePending).
		Update("status", req.Response)
	if res.Error != nil {
		return respondErr(c, res.Error)
	}
	if res.RowsAffected == 0 {
		// Re-check to tell "gone" apart from "already settled".
		var current models.Challenge
		if err := s.DB.First(&current, "id = ?", challengeID).Error; err != nil {
			return respondErr(c, err)
		}
		return respondErr(c, engine.ErrChallengeNotPending)
	}

	var challenge models.Challenge
	if err := s.DB.Preload("Challenger").Preload("Challenged").
		First(&challenge, "id = ?", challengeID).Error; err != nil {
		return respondErr(c, err)
	}

	s.Activity.Log(models.Activity{
		Type:        activityTypeForResponse(req.Response),
		ActorID:     actorForResponse(&challenge, req.Response),
		TargetID:    &challenge.ChallengerID,
		ChallengeID: &challenge.ID,
		Description: fmt.Sprintf("challenge %s", req.Response),
	})
	s.Notifier.Invalidate(engine.ChallengeInvalidations...)

	return c.JSON(challenge)
}

// SweepExpired flips every overdue pending challenge to expired. Idempotent
// and safe to race: the second writer matches zero rows.
func (s *ChallengeService) SweepExpired(now time.Time) (int64, error) {
	res := s.DB.Model(&models.Challenge{}).
		Where("status = ? AND expires_at <= ?", models.ChallengePending, now).
		Update("status", models.ChallengeExpired)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("[CHALLENGES] Expired %d overdue challenge(s)", res.RowsAffected)
		s.Notifier.Invalidate(engine.ViewChallenges)
	}
	return res.RowsAffected, nil
}

func activityTypeForResponse(response string) string {
	switch response {
	case models.ChallengeAccepted:
		return models.ActivityChallengeAccepted
	case models.ChallengeDeclined:
		return models.ActivityChallengeDeclined
	default:
		return models.ActivityChallengeCancelled
	}
}

// The challenged party accepts or declines; the challenger cancels.
func actorForResponse(ch *models.Challenge, response string) *string {
	if response == models.ChallengeCancelled {
		return &ch.ChallengerID
	}
	return &ch.ChallengedID
}
