package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mpgepmc/welfare_backend/database"
	"github.com/mpgepmc/welfare_backend/models"
	"github.com/mpgepmc/welfare_backend/utils"
)

func ListBlogPosts(c *fiber.Ctx) error {
	var posts []models.BlogPost
	if err := database.DB.Where("is_published = ?", true).Order("created_at DESC").Find(&posts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(posts)
}

// GetBlogPost returns the post plus previous/next posts for navigation and a
// few random related posts.
func GetBlogPost(c *fiber.Ctx) error {
	var post models.BlogPost
	if err := database.DB.Where("slug = ? AND is_published = ?", c.Params("slug"), true).First(&post).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Blog post not found"})
	}

	var previous, next models.BlogPost
	hasPrevious := database.DB.Where("is_published = ? AND created_at < ?", true, post.CreatedAt).
		Order("created_at DESC").First(&previous).Error == nil
	hasNext := database.DB.Where("is_published = ? AND created_at > ?", true, post.CreatedAt).
		Order("created_at ASC").First(&next).Error == nil

	var related []models.BlogPost
	database.DB.Where("is_published = ? AND id <> ?", true, post.ID).Order("RANDOM()").Limit(3).Find(&related)

	response := fiber.Map{
		"post":          post,
		"related_posts": related,
	}
	if hasPrevious {
		response["previous_post"] = previous
	}
	if hasNext {
		response["next_post"] = next
	}
	return c.JSON(response)
}

type BlogPostRequest struct {
	Title        string  `json:"title" validate:"required,max=250"`
	Slug         string  `json:"slug" validate:"omitempty,max=250"`
	ShortSummary string  `json:"short_summary" validate:"required,max=1500"`
	Content      string  `json:"content" validate:"required"`
	ImageURL     *string `json:"image_url" validate:"omitempty,url"`
	IsPublished  *bool   `json:"is_published"`
}

func AdminCreateBlogPost(c *fiber.Ctx) error {
	var req BlogPostRequest
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

	post := models.BlogPost{
		Title:        req.Title,
		Slug:         slug,
		ShortSummary: req.ShortSummary,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		IsPublished:  req.IsPublished == nil || *req.IsPublished,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A blog post with this title or slug already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func AdminUpdateBlogPost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	var req BlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var post models.BlogPost
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Blog post not found"})
	}

	post.Title = req.Title
	if req.Slug != "" {
		post.Slug = req.Slug
	}
	post.ShortSummary = req.ShortSummary
	post.Content = req.Content
	post.ImageURL = req.ImageURL
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := database.DB.Save(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update blog post"})
	}
	return c.JSON(post)
}

func AdminDeleteBlogPost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID"})
	}

	result := database.DB.Delete(&models.BlogPost{}, "id = ?", postID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete blog post"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Blog post not found"})
	}
	return c.JSON(fiber.Map{"message": "Blog post deleted"})
}
