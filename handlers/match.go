package handlers

import (
	"pool-league-system/middleware"
	"pool-league-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMatchRoutes(app *fiber.App, matchService *services.MatchService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/matches", matchService.GetAllMatches)
	secured.Post("/matches", matchService.CreateMatch)
	secured.Get("/players/:id/matches", matchService.GetPlayerMatches)

	// Score submission + dual confirmation
	secured.Post("/matches/:id/score", matchService.SubmitScore)
	secured.Post("/matches/:id/confirm", matchService.ConfirmMatch)
	secured.Post("/matches/:id/dispute", matchService.DisputeMatch)

	// Admin dispute resolution
	admin := secured.Group("/admin", middleware.RequireAdmin())
	admin.Post("/matches/:id/reset", matchService.ResetMatch)
	admin.Post("/matches/:id/cancel", matchService.ForceCancelMatch)
	admin.Post("/matches/:id/complete", matchService.ForceCompleteMatch)
}
