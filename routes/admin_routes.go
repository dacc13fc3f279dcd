package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mpgepmc/welfare_backend/handlers"
	"github.com/mpgepmc/welfare_backend/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard-analytics", handlers.AdminDashboardAnalytics)

	donations := admin.Group("/donations")
	donations.Get("", handlers.AdminListDonations)
	donations.Get("/:orderNumber", handlers.AdminGetDonation)
	donations.Get("/:orderNumber/slip", handlers.AdminGetDonationSlip)
	donations.Post("/:orderNumber/outcome", handlers.AdminMarkDonationOutcome)

	accounts := admin.Group("/bank-accounts")
	accounts.Get("", handlers.AdminListBankAccounts)
	accounts.Post("", handlers.AdminCreateBankAccount)
	accounts.Put("/:accountId", handlers.AdminUpdateBankAccount)
	accounts.Post("/:accountId/activate", handlers.AdminActivateBankAccount)
	accounts.Delete("/:accountId", handlers.AdminDeleteBankAccount)

	projects := admin.Group("/projects")
	projects.Post("", handlers.AdminCreateProject)
	projects.Put("/:projectId", handlers.AdminUpdateProject)
	projects.Delete("/:projectId", handlers.AdminDeleteProject)

	blogs := admin.Group("/blogs")
	blogs.Post("", handlers.AdminCreateBlogPost)
	blogs.Put("/:postId", handlers.AdminUpdateBlogPost)
	blogs.Delete("/:postId", handlers.AdminDeleteBlogPost)

	services := admin.Group("/services")
	services.Post("", handlers.AdminCreateService)
	services.Put("/:serviceId", handlers.AdminUpdateService)
	services.Post("/:serviceId/packages", handlers.AdminCreateServicePackage)
	admin.Delete("/packages/:packageId", handlers.AdminDeleteServicePackage)

	requests := admin.Group("/service-requests")
	requests.Get("", handlers.AdminListServiceRequests)
	requests.Post("/:requestId/process", handlers.AdminMarkServiceRequestProcessed)

	admin.Get("/uploads/signature", handlers.GenerateUploadSignature)
}
