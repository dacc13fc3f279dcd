package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mpgepmc/welfare_backend/database"
	"github.com/mpgepmc/welfare_backend/models"
	"github.com/mpgepmc/welfare_backend/notifications"
)

type ServiceRequestInput struct {
	FullName    string  `json:"full_name" validate:"required,min=2,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Message     string  `json:"message" validate:"required,min=10"`
}

// CreateServiceRequest records a lead-capture request against an active
// service and emails the admin contact.
func CreateServiceRequest(c *fiber.Ctx) error {
	var service models.WelfareService
	if err := database.DB.Where("slug = ? AND is_active = ?", c.Params("slug"), true).First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	var req ServiceRequestInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request := models.ServiceRequest{
		ServiceID:   &service.ID,
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Message:     req.Message,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save service request"})
	}

	phone := "N/A"
	if req.PhoneNumber != nil && *req.PhoneNumber != "" {
		phone = *req.PhoneNumber
	}

	go notifications.SendEmail(
		"Admin",
		notifications.AdminEmail(),
		fmt.Sprintf("New Service Request: %s from %s", service.Name, req.FullName),
		fmt.Sprintf(
			"<h1>New Service Request</h1><ul><li>Service: %s</li><li>Name: %s</li><li>Email: %s</li><li>Phone: %s</li><li>Date: %s</li></ul><p>%s</p>",
			service.Name, req.FullName, req.Email, phone,
			request.CreatedAt.Format(time.RFC1123), req.Message,
		),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Your service request has been sent successfully! We will get back to you soon."})
}

func AdminListServiceRequests(c *fiber.Ctx) error {
	query := database.DB.Preload("Service").Model(&models.ServiceRequest{})
	if processed := c.Query("processed"); processed != "" {
		query = query.Where("is_processed = ?", processed == "true")
	}

	var requests []models.ServiceRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(requests)
}

func AdminMarkServiceRequestProcessed(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var request models.ServiceRequest
	if err := database.DB.First(&request, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service request not found"})
	}

	request.IsProcessed = true
	if err := database.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update service request"})
	}
	return c.JSON(request)
}
