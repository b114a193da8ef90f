package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clubhive/club-booking-app/models"
	"github.com/clubhive/club-booking-app/utils"
)

type ClubController struct {
	DB *gorm.DB
}

func NewClubController(db *gorm.DB) *ClubController {
	return &ClubController{DB: db}
}

// CreateClub creates a club after checking the required fields
func (ctl *ClubController) CreateClub(c *fiber.Ctx) error {
	var club models.Club
	if err := c.BodyParser(&club); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	if club.Title == "" || club.Description == "" || club.Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   "Missing required fields",
		})
	}

	if err := ctl.DB.Create(&club).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(utils.Response{
		Success: true,
		Data:    club,
	})
}

type createManyClubsInput struct {
	Clubs []models.Club `json:"clubs"`
}

// CreateMultipleClubs bulk-creates clubs; stops at the first invalid item,
// leaving earlier items committed.
func (ctl *ClubController) CreateMultipleClubs(c *fiber.Ctx) error {
	var input createManyClubsInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}
	if len(input.Clubs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   "Invalid or empty clubs array",
		})
	}

	created := make([]models.Club, 0, len(input.Clubs))
	for _, club := range input.Clubs {
		if club.Title == "" || club.Description == "" || club.Image == "" {
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
				Success: false,
				Error:   "Each club must have title, description, and image",
			})
		}
		if err := ctl.DB.Create(&club).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
				Success: false,
				Error:   err.Error(),
			})
		}
		created = append(created, club)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.Response{
		Success: true,
		Data:    created,
	})
}

// UpdateClub applies a full update to a club by ID
func (ctl *ClubController) UpdateClub(c *fiber.Ctx) error {
	id := c.Params("id")

	var club models.Club
	if err := ctl.DB.First(&club, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Error:   "Club not found",
		})
	}

	var update models.Club
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	if err := ctl.DB.Model(&club).Updates(update).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Data:    club,
	})
}

// GetAllClubs lists clubs; query parameters pass through as filters
func (ctl *ClubController) GetAllClubs(c *fiber.Ctx) error {
	filters := make(map[string]interface{})
	for key, value := range c.Queries() {
		filters[key] = value
	}

	var clubs []models.Club
	if err := ctl.DB.Where(filters).Find(&clubs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Count:   utils.CountOf(int64(len(clubs))),
		Data:    clubs,
	})
}

// GetClubByID fetches one club with its events expanded
func (ctl *ClubController) GetClubByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var club models.Club
	if err := ctl.DB.Preload("Events").First(&club, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Error:   "Club not found",
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Data:    club,
	})
}

// DeleteClub removes a club by ID
func (ctl *ClubController) DeleteClub(c *fiber.Ctx) error {
	id := c.Params("id")

	var club models.Club
	if err := ctl.DB.First(&club, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Error:   "Club not found",
		})
	}

	if err := ctl.DB.Delete(&club).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "Club deleted successfully",
	})
}
