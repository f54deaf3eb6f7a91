package handlers

import (
	"pool-league-system/middleware"
	"pool-league-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, challengeService *services.ChallengeService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/challenges", challengeService.GetAllChallenges)
	secured.Post("/challenges", challengeService.SendChallenge)
	secured.Post("/challenges/:id/respond", challengeService.RespondToChallenge)
	secured.Get("/players/:id/challenges", challengeService.GetPlayerChallenges)
}
