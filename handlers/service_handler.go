package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mpgepmc/welfare_backend/database"
	"github.com/mpgepmc/welfare_backend/models"
	"github.com/mpgepmc/welfare_backend/utils"
	"gorm.io/gorm"
)

func ListServices(c *fiber.Ctx) error {
	var serviceList []models.WelfareService
	if err := database.DB.Where("is_active = ?", true).Order("name ASC").Find(&serviceList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(serviceList)
}

// GetService returns an active service with its active packages and their
// features, ordered for display.
func GetService(c *fiber.Ctx) error {
	var service models.WelfareService
	err := database.DB.
		Preload("Packages", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order ASC, price ASC")
		}).
		Preload("Packages.Features", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("slug = ? AND is_active = ?", c.Params("slug"), true).
		First(&service).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}
	return c.JSON(service)
}

type ServiceInput struct {
	Name             string  `json:"name" validate:"required,max=200"`
	Slug             string  `json:"slug" validate:"omitempty,max=200"`
	ShortDescription *string `json:"short_description" validate:"omitempty,max=500"`
	FullDescription  *string `json:"full_description"`
	ImageURL         *string `json:"image_url" validate:"omitempty,url"`
	IsActive         *bool   `json:"is_active"`
	HasPackages      *bool   `json:"has_packages"`
}

func AdminCreateService(c *fiber.Ctx) error {
	var req ServiceInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	service := models.WelfareService{
		Name:             req.Name,
		Slug:             slug,
		ShortDescription: req.ShortDescription,
		FullDescription:  req.FullDescription,
		ImageURL:         req.ImageURL,
		IsActive:         req.IsActive == nil || *req.IsActive,
		HasPackages:      req.HasPackages != nil && *req.HasPackages,
	}
	if err := database.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A service with this name or slug already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

func AdminUpdateService(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("serviceId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service ID"})
	}

	var req ServiceInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var service models.WelfareService
	if err := database.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	service.Name = req.Name
	if req.Slug != "" {
		service.Slug = req.Slug
	}
	service.ShortDescription = req.ShortDescription
	service.FullDescription = req.FullDescription
	service.ImageURL = req.ImageURL
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if req.HasPackages != nil {
		service.HasPackages = *req.HasPackages
	}

	if err := database.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update service"})
	}
	return c.JSON(service)
}

type PackageInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Slug        string   `json:"slug" validate:"omitempty,max=100"`
	Description *string  `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Duration    *string  `json:"duration" validate:"omitempty,max=100"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   int      `json:"sort_order"`
	Features    []string `json:"features"`
}

func AdminCreateServicePackage(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("serviceId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service ID"})
	}

	var service models.WelfareService
	if err := database.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	var req PackageInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	pkg := models.ServicePackage{
		ServiceID:   service.ID,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		IsActive:    req.IsActive == nil || *req.IsActive,
		SortOrder:   req.SortOrder,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pkg).Error; err != nil {
			return err
		}
		for i, text := range req.Features {
			feature := models.ServiceFeature{
				PackageID:   pkg.ID,
				FeatureText: text,
				SortOrder:   i,
			}
			if err := tx.Create(&feature).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create package"})
	}
	return c.Status(fiber.StatusCreated).JSON(pkg)
}

func AdminDeleteServicePackage(c *fiber.Ctx) error {
	packageID, err := uuid.Parse(c.Params("packageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid package ID"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ServiceFeature{}, "package_id = ?", packageID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ServicePackage{}, "id = ?", packageID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete package"})
	}
	return c.JSON(fiber.Map{"message": "Package deleted"})
}
