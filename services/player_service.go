package services

import (
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"pool-league-system/engine"
	"pool-league-system/models"
	"pool-league-system/utils"
)

// PlayerService serves player profiles and derived stats. Ratings and
// robustness are owned by the profile service and mirrored in by the sync
// worker; the only profile field written here is the avatar.
type PlayerService struct {
	DB       *gorm.DB
	Notifier *Notifier
}

func NewPlayerService(db *gorm.DB, notifier *Notifier) *PlayerService {
	return &PlayerService{DB: db, Notifier: notifier}
}

// GetAllPlayers lists players by display name.
func (s *PlayerService) GetAllPlayers(c *fiber.Ctx) error {
	var players []models.Player
	if err := s.DB.Order("display_name ASC").Find(&players).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(players)
}

// GetPlayer returns one profile.
func (s *PlayerService) GetPlayer(c *fiber.Ctx) error {
	var player models.Player
	if err := s.DB.First(&player, "id = ?", c.Params("id")).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(player)
}

// GetPlayerStats derives win/loss figures from completed matches.
func (s *PlayerService) GetPlayerStats(c *fiber.Ctx) error {
	playerID := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", playerID).Error; err != nil {
		return respondErr(c, err)
	}

	var stats models.PlayerStats
	base := s.DB.Model(&models.Match{}).
		Where("status = ?", models.MatchCompleted).
		Where("player1_id = ? OR player2_id = ?", playerID, playerID)

	if err := base.Session(&gorm.Session{}).Count(&stats.MatchesPlayed).Error; err != nil {
		return respondErr(c, err)
	}
	if err := base.Session(&gorm.Session{}).Where("winner_id = ?", playerID).Count(&stats.MatchesWon).Error; err != nil {
		return respondErr(c, err)
	}
	stats.MatchesLost = stats.MatchesPlayed - stats.MatchesWon
	if stats.MatchesPlayed > 0 {
		stats.WinRate = float64(stats.MatchesWon) / float64(stats.MatchesPlayed)
	}

	var completed []models.Match
	if err := base.Session(&gorm.Session{}).Find(&completed).Error; err != nil {
		return respondErr(c, err)
	}
	stats.WinStreak = engine.CurrentWinStreak(completed, playerID)

	return c.JSON(stats)
}

type playerStreakView struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Streak     int    `json:"streak"`
}

type playerWinsView struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
}

type seasonStatsView struct {
	TotalMatches         int               `json:"total_matches"`
	TotalChallenges      int               `json:"total_challenges"`
	ActiveChallenges     int               `json:"active_challenges"`
	MostWantedID         *string           `json:"most_wanted_id"`
	MostWantedName       *string           `json:"most_wanted_name"`
	MostWantedChallenges int               `json:"most_wanted_challenges"`
	TopWinStreak         *playerStreakView `json:"top_win_streak"`
	RecentWinners        []playerWinsView  `json:"recent_winners"`
}

// GetSeasonStats reduces the season's matches and challenges to the
// engagement summary: totals, the most-challenged player, the longest
// current win streak and the top winners.
func (s *PlayerService) GetSeasonStats(c *fiber.Ctx) error {
	var matches []models.Match
	if err := s.DB.Find(&matches).Error; err != nil {
		return respondErr(c, err)
	}
	var challenges []models.Challenge
	if err := s.DB.Find(&challenges).Error; err != nil {
		return respondErr(c, err)
	}

	stats := engine.SeasonSummary(matches, challenges)

	ids := make([]string, 0, len(stats.RecentWinners)+2)
	if stats.MostWantedID != nil {
		ids = append(ids, *stats.MostWantedID)
	}
	if stats.TopWinStreak != nil {
		ids = append(ids, stats.TopWinStreak.PlayerID)
	}
	for _, w := range stats.RecentWinners {
		ids = append(ids, w.PlayerID)
	}
	names := make(map[string]string)
	if len(ids) > 0 {
		var players []models.Player
		if err := s.DB.Where("id IN ?", ids).Find(&players).Error; err != nil {
			return respondErr(c, err)
		}
		for _, p := range players {
			names[p.ID] = p.DisplayName
		}
	}

	view := seasonStatsView{
		TotalMatches:         stats.TotalMatches,
		TotalChallenges:      stats.TotalChallenges,
		ActiveChallenges:     stats.ActiveChallenges,
		MostWantedID:         stats.MostWantedID,
		MostWantedChallenges: stats.MostWantedChallenges,
		RecentWinners:        []playerWinsView{},
	}
	if stats.MostWantedID != nil {
		name := names[*stats.MostWantedID]
		view.MostWantedName = &name
	}
	if stats.TopWinStreak != nil {
		view.TopWinStreak = &playerStreakView{
			PlayerID:   stats.TopWinStreak.PlayerID,
			PlayerName: names[stats.TopWinStreak.PlayerID],
			Streak:     stats.TopWinStreak.Streak,
		}
	}
	for _, w := range stats.RecentWinners {
		view.RecentWinners = append(view.RecentWinners, playerWinsView{
			PlayerID:   w.PlayerID,
			PlayerName: names[w.PlayerID],
			Wins:       w.Wins,
		})
	}
	return c.JSON(view)
}

// UploadAvatar stores a profile photo in R2 and points the player at it.
func (s *PlayerService) UploadAvatar(c *fiber.Ctx) error {
	playerID := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", playerID).Error; err != nil {
		return respondErr(c, err)
	}

	avatar, err := c.FormFile("avatar")
	if err != nil || avatar.Size == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "avatar file is required"})
	}

	ext := filepath.Ext(avatar.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("players/avatars/%s-%s%s", slug.Make(player.DisplayName), uuid.NewString(), ext)

	url, err := utils.UploadAvatar(avatar, key)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to upload avatar"})
	}

	if err := s.DB.Model(&player).Update("avatar_url", url).Error; err != nil {
		return respondErr(c, err)
	}

	s.Notifier.Invalidate(engine.ViewPlayers)
	return c.JSON(fiber.Map{"avatar_url": url})
}
