package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/mpgepmc/welfare_backend/configs"
	"github.com/mpgepmc/welfare_backend/database"
	"github.com/mpgepmc/welfare_backend/donations"
	"github.com/mpgepmc/welfare_backend/handlers"
	"github.com/mpgepmc/welfare_backend/jobs"
	"github.com/mpgepmc/welfare_backend/notifications"
	"github.com/mpgepmc/welfare_backend/routes"
	"github.com/mpgepmc/welfare_backend/storage"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	slipDir := config.Config("SLIP_DIR")
	if slipDir == "" {
		slipDir = "uploads/donation_slips"
	}
	slips, err := storage.NewSlipStore(slipDir)
	if err != nil {
		log.Fatalf("🔥 Failed to initialize slip storage: %v", err)
	}

	manager := donations.NewManager(database.DB, donations.AsyncNotifier{}, notifications.AdminEmail())
	handlers.InitDonationHandlers(manager, slips)

	c := cron.New()
	c.AddFunc("0 * * * *", jobs.RemindStaleVerifications)
	go c.Start()
	log.Println("✅ Cron job for verification reminders scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "MPG EPMC",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Karachi",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to the MPG EPMC API",
		})
	})

	routes.PublicRoutes(app)
	routes.DonationRoutes(app)
	routes.AuthRoutes(app)
	routes.AdminRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err = app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
