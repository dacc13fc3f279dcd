package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mpgepmc/welfare_backend/database"
	"github.com/mpgepmc/welfare_backend/models"
	"gorm.io/gorm"
)

type BankAccountRequest struct {
	AccountTitle  string `json:"account_title" validate:"required,max=200"`
	AccountNumber string `json:"account_number" validate:"required,max=50"`
	BankName      string `json:"bank_name" validate:"required,max=100"`
	IBAN          string `json:"iban" validate:"omitempty,max=50"`
}

func AdminListBankAccounts(c *fiber.Ctx) error {
	var accounts []models.BankAccount
	if err := database.DB.Order("created_at ASC").Find(&accounts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(accounts)
}

func AdminCreateBankAccount(c *fiber.Ctx) error {
	var req BankAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	account := models.BankAccount{
		AccountTitle:  req.AccountTitle,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		IBAN:          req.IBAN,
	}
	if err := database.DB.Create(&account).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create bank account"})
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}

func AdminUpdateBankAccount(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("accountId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	var req BankAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var account models.BankAccount
	if err := database.DB.First(&account, "id = ?", accountID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bank account not found"})
	}

	account.AccountTitle = req.AccountTitle
	account.AccountNumber = req.AccountNumber
	account.BankName = req.BankName
	account.IBAN = req.IBAN
	if err := database.DB.Save(&account).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update bank account"})
	}
	return c.JSON(account)
}

// AdminActivateBankAccount makes the selected account the single active
// transfer destination. Deactivate-all then activate-one runs inside one
// transaction so a concurrent reader never sees two active accounts.
func AdminActivateBankAccount(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("accountId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var account models.BankAccount
		if err := tx.First(&account, "id = ?", accountID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.BankAccount{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&account).Update("is_active", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bank account not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to activate bank account"})
	}

	return c.JSON(fiber.Map{"message": "The selected account has been activated for donations."})
}

func AdminDeleteBankAccount(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("accountId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	result := database.DB.Delete(&models.BankAccount{}, "id = ?", accountID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete bank account"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bank account not found"})
	}
	return c.JSON(fiber.Map{"message": "Bank account deleted"})
}
