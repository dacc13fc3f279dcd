package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mpgepmc/welfare_backend/database"
	"github.com/mpgepmc/welfare_backend/models"
	"github.com/mpgepmc/welfare_backend/utils"
)

func ListProjects(c *fiber.Ctx) error {
	var projects []models.Project
	if err := database.DB.Where("is_published = ?", true).Order("created_at DESC").Find(&projects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(projects)
}

func GetProject(c *fiber.Ctx) error {
	var project models.Project
	if err := database.DB.Where("slug = ? AND is_published = ?", c.Params("slug"), true).First(&project).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}

	var related []models.Project
	database.DB.Where("is_published = ? AND id <> ?", true, project.ID).Order("RANDOM()").Limit(3).Find(&related)

	return c.JSON(fiber.Map{
		"project":          project,
		"related_projects": related,
	})
}

type ProjectRequest struct {
	Title            string  `json:"title" validate:"required,max=250"`
	Slug             string  `json:"slug" validate:"omitempty,max=250"`
	Category         string  `json:"category" validate:"required,oneof=AI_EDUCATION AI_AWARENESS HUMAN_WELFARE DEVELOPMENT"`
	ShortDescription string  `json:"short_description" validate:"required,max=1500"`
	FullDescription  string  `json:"full_description" validate:"required"`
	ImageURL         *string `json:"image_url" validate:"omitempty,url"`
	IsPublished      *bool   `json:"is_published"`
}

func AdminCreateProject(c *fiber.Ctx) error {
	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}

	project := models.Project{
		Title:            req.Title,
		Slug:             slug,
		Category:         models.ProjectCategory(req.Category),
		ShortDescription: req.ShortDescription,
		FullDescription:  req.FullDescription,
		ImageURL:         req.ImageURL,
		IsPublished:      req.IsPublished == nil || *req.IsPublished,
	}
	if err := database.DB.Create(&project).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A project with this title or slug already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func AdminUpdateProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}

	project.Title = req.Title
	if req.Slug != "" {
		project.Slug = req.Slug
	}
	project.Category = models.ProjectCategory(req.Category)
	project.ShortDescription = req.ShortDescription
	project.FullDescription = req.FullDescription
	project.ImageURL = req.ImageURL
	if req.IsPublished != nil {
		project.IsPublished = *req.IsPublished
	}

	if err := database.DB.Save(&project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update project"})
	}
	return c.JSON(project)
}

func AdminDeleteProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	result := database.DB.Delete(&models.Project{}, "id = ?", projectID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete project"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
	}
	return c.JSON(fiber.Map{"message": "Project deleted"})
}
