package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mpgepmc/welfare_backend/handlers"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/projects", handlers.ListProjects)
	api.Get("/projects/:slug", handlers.GetProject)

	api.Get("/blogs", handlers.ListBlogPosts)
	api.Get("/blogs/:slug", handlers.GetBlogPost)

	api.Get("/services", handlers.ListServices)
	api.Get("/services/:slug", handlers.GetService)
	api.Post("/services/:slug/requests", handlers.CreateServiceRequest)

	api.Post("/contact", handlers.SubmitContactForm)
}
