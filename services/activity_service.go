package services

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pool-league-system/models"
)

// ActivityService writes and serves the league activity feed. Feed writes are
// best-effort: a failed insert never fails the lifecycle transition it trails.
type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

// Log appends a feed row.
func (s *ActivityService) Log(entry models.Activity) {
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("[ACTIVITY] Failed to record %s: %v", entry.Type, err)
	}
}

// GetActivity returns the most recent feed entries, newest first.
func (s *ActivityService) GetActivity(c *fiber.Ctx) error {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	var entries []models.Activity
	if err := s.DB.
		Preload("Actor").
		Preload("Target").
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(entries)
}
