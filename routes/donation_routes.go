package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mpgepmc/welfare_backend/handlers"
)

func DonationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/donations", handlers.InitiateDonation)
	api.Get("/donations/:orderNumber", handlers.GetDonationCheckout)
	api.Post("/donations/:orderNumber/verification", handlers.SubmitDonationVerification)
}
