package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/mpgepmc/welfare_backend/notifications"
)

type ContactRequest struct {
	FullName    string  `json:"full_name" validate:"required,min=2,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Message     string  `json:"message" validate:"required,min=10"`
}

// SubmitContactForm emails the message to the organization's admin contact.
// No record is stored.
func SubmitContactForm(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	phone := "N/A"
	if req.PhoneNumber != nil && *req.PhoneNumber != "" {
		phone = *req.PhoneNumber
	}

	go notifications.SendEmail(
		"Admin",
		notifications.AdminEmail(),
		fmt.Sprintf("New Contact Form Submission from %s", req.FullName),
		fmt.Sprintf(
			"<h1>New Contact Message</h1><ul><li>Name: %s</li><li>Email: %s</li><li>Phone: %s</li></ul><p>%s</p>",
			req.FullName, req.Email, phone, req.Message,
		),
	)

	return c.JSON(fiber.Map{"message": "Your message has been sent successfully! We will get back to you soon."})
}
