package services

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pool-league-system/engine"
	"pool-league-system/models"
)

// RankingService serves the ladder projection. Positions are computed by the
// external ranking job; the only write this service performs is the admin
// move operation, which reassigns one player and shifts everyone in between.
type RankingService struct {
	DB       *gorm.DB
	Activity *ActivityService
	Notifier *Notifier
}

func NewRankingService(db *gorm.DB, activity *ActivityService, notifier *Notifier) *RankingService {
	return &RankingService{DB: db, Activity: activity, Notifier: notifier}
}

// GetRankings returns the ladder ascending by position with the rank delta
// (previous minus current, positive = moved up) computed per entry.
func (s *RankingService) GetRankings(c *fiber.Ctx) error {
	var rankings []models.Ranking
	if err := s.DB.
		Preload("Player").
		Order("position ASC").
		Find(&rankings).Error; err != nil {
		return respondErr(c, err)
	}

	ranked := make([]models.RankedPlayer, 0, len(rankings))
	for _, r := range rankings {
		ranked = append(ranked, models.RankedPlayer{
			PlayerID:         r.PlayerID,
			DisplayName:      r.Player.DisplayName,
			FargoRating:      r.Player.FargoRating,
			Robustness:       r.Player.Robustness,
			Position:         r.Position,
			PreviousPosition: r.PreviousPosition,
			Points:           r.Points,
			Delta:            engine.RankDelta(r.PreviousPosition, r.Position),
		})
	}
	return c.JSON(ranked)
}

type moveRankingRequest struct {
	PlayerID    string `json:"player_id"`
	NewPosition int    `json:"new_position"`
}

// MoveRanking (admin) reassigns a player's ladder position, shifting every
// player between the old and new slot by one. Runs in a single transaction
// so the ladder is never observable with a gap or duplicate position.
func (s *RankingService) MoveRanking(c *fiber.Ctx) error {
	var req moveRankingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if req.PlayerID == "" || req.NewPosition < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "player_id and a positive new_position are required"})
	}

	var total int64
	if err := s.DB.Model(&models.Ranking{}).Count(&total).Error; err != nil {
		return respondErr(c, err)
	}
	if int64(req.NewPosition) > total {
		return c.Status(400).JSON(fiber.Map{"error": "new_position is past the end of the ladder"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var ranking models.Ranking
		if err := tx.First(&ranking, "player_id = ?", req.PlayerID).Error; err != nil {
			return err
		}
		oldPos := ranking.Position
		newPos := req.NewPosition
		if newPos == oldPos {
			return nil
		}

		// Park the moving row outside the contiguous range, shift the block
		// between old and new, then drop the row into its slot.
		if err := tx.Model(&models.Ranking{}).
			Where("player_id = ?", req.PlayerID).
			Update("position", -1).Error; err != nil {
			return err
		}

		if newPos < oldPos {
			// Moving up: everyone in [new, old) slides down one.
			if err := tx.Model(&models.Ranking{}).
				Where("position >= ? AND position < ?", newPos, oldPos).
				Update("position", gorm.Expr("position + 1")).Error; err != nil {
				return err
			}
		} else {
			// Moving down: everyone in (old, new] slides up one.
			if err := tx.Model(&models.Ranking{}).
				Where("position > ? AND position <= ?", oldPos, newPos).
				Update("position", gorm.Expr("position - 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Ranking{}).
			Where("player_id = ?", req.PlayerID).
			Updates(map[string]interface{}{
				"position":          newPos,
				"previous_position": oldPos,
			}).Error
	})
	if err != nil {
		return respondErr(c, err)
	}

	s.Activity.Log(models.Activity{
		Type:        models.ActivityRankingChanged,
		TargetID:    &req.PlayerID,
		Description: "ranking position changed by admin",
	})
	s.Notifier.Invalidate(engine.RankingInvalidations...)

	return c.JSON(fiber.Map{"status": "ok"})
}
