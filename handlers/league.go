package handlers

import (
	"pool-league-system/middleware"
	"pool-league-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupLeagueRoutes wires the read-mostly league surfaces: rankings,
// treasury, activity feed and player profiles.
func SetupLeagueRoutes(
	app *fiber.App,
	rankingService *services.RankingService,
	treasuryService *services.TreasuryService,
	activityService *services.ActivityService,
	playerService *services.PlayerService,
) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/rankings", rankingService.GetRankings)
	secured.Get("/activity", activityService.GetActivity)
	secured.Get("/stats", playerService.GetSeasonStats)

	secured.Get("/players", playerService.GetAllPlayers)
	secured.Get("/players/:id", playerService.GetPlayer)
	secured.Get("/players/:id/stats", playerService.GetPlayerStats)
	secured.Post("/players/:id/avatar", playerService.UploadAvatar)

	secured.Get("/treasury/transactions", treasuryService.GetTransactions)
	secured.Get("/treasury/balance", treasuryService.GetBalance)

	admin := secured.Group("/admin", middleware.RequireAdmin())
	admin.Post("/rankings/move", rankingService.MoveRanking)
	admin.Post("/treasury/transactions", treasuryService.AddTransaction)
}
