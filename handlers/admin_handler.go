package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mpgepmc/welfare_backend/database"
	"github.com/mpgepmc/welfare_backend/donations"
	"github.com/mpgepmc/welfare_backend/models"
	"github.com/mpgepmc/welfare_backend/services"
)

// AdminListDonations returns donations newest first, optionally filtered by
// status, with simple page/limit pagination.
func AdminListDonations(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := database.DB.Model(&models.Donation{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var donationList []models.Donation
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&donationList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"donations": donationList,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

func AdminGetDonation(c *fiber.Ctx) error {
	donation, err := Donations.Get(c.Params("orderNumber"))
	if err != nil {
		if errors.Is(err, donations.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Donation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(donation)
}

// AdminGetDonationSlip serves the uploaded transaction slip for review.
func AdminGetDonationSlip(c *fiber.Ctx) error {
	donation, err := Donations.Get(c.Params("orderNumber"))
	if err != nil {
		if errors.Is(err, donations.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Donation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if donation.SlipPath == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No slip has been uploaded for this donation"})
	}
	return c.SendFile(Slips.Path(donation.SlipPath))
}

type MarkOutcomeRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=COMPLETED FAILED"`
}

// AdminMarkDonationOutcome finalizes a donation. The donor is emailed only
// when the status actually changed; a completed donation also gets a PDF
// receipt generated in the background.
func AdminMarkDonationOutcome(c *fiber.Ctx) error {
	var req MarkOutcomeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	orderNumber := c.Params("orderNumber")
	donation, changed, err := Donations.MarkOutcome(orderNumber, models.DonationStatus(req.Outcome))
	if err != nil {
		switch {
		case errors.Is(err, donations.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Donation not found"})
		case errors.Is(err, donations.ErrInvalidOutcome):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Outcome must be COMPLETED or FAILED"})
		default:
			log.Printf("🔥 Failed to mark outcome for %s: %v", orderNumber, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update donation"})
		}
	}

	if changed && donation.Status == models.DonationCompleted {
		go services.GenerateDonationReceipt(*donation)
	}

	return c.JSON(fiber.Map{
		"donation": donation,
		"changed":  changed,
	})
}

// AdminDashboardAnalytics summarizes donations by status and counts
// unprocessed service requests.
func AdminDashboardAnalytics(c *fiber.Ctx) error {
	type statusRow struct {
		Status models.DonationStatus `json:"status"`
		Count  int64                 `json:"count"`
		Total  float64               `json:"total"`
	}

	var rows []statusRow
	err := database.DB.Model(&models.Donation{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var pendingRequests int64
	if err := database.DB.Model(&models.ServiceRequest{}).Where("is_processed = ?", false).Count(&pendingRequests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"donations_by_status":          rows,
		"unprocessed_service_requests": pendingRequests,
	})
}
