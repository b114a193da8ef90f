package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clubhive/club-booking-app/models"
	"github.com/clubhive/club-booking-app/utils"
)

type RatingController struct {
	DB *gorm.DB
}

func NewRatingController(db *gorm.DB) *RatingController {
	return &RatingController{DB: db}
}

type createRatingInput struct {
	EventID uint   `json:"event"`
	Rating  int    `json:"rating"`
	Review  string `json:"review"`
}

// CreateEventRating records a rating. One rating per (user, event): an
// existence check runs first, and the unique index backs it up.
func (ctl *RatingController) CreateEventRating(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	var input createRatingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.EventID == 0 || input.Rating == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Missing required fields",
		})
	}

	rating := models.EventRating{
		EventID: input.EventID,
		UserID:  uint(userID),
		Rating:  input.Rating,
		Review:  input.Review,
	}

	exists, err := rating.HasExistingRating(ctl.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Error rating event",
			Error:   err.Error(),
		})
	}
	if exists {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "You already rated this event.",
		})
	}

	if err := ctl.DB.Create(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
				Success: false,
				Message: "You already rated this event.",
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Error rating event",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(utils.Response{
		Success: true,
		Data:    rating,
	})
}

// GetEventRatings lists all ratings for an event with the rater expanded
func (ctl *RatingController) GetEventRatings(c *fiber.Ctx) error {
	eventID := c.Params("eventId")

	var ratings []models.EventRating
	err := ctl.DB.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Where("event_id = ?", eventID).
		Find(&ratings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Error fetching ratings",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Count:   utils.CountOf(int64(len(ratings))),
		Data:    ratings,
	})
}

// GetAverageRating computes the mean rating and count on demand.
// An event with no ratings yields {averageRating: 0, totalRatings: 0}.
func (ctl *RatingController) GetAverageRating(c *fiber.Ctx) error {
	eventID := c.Params("eventId")

	var summary models.RatingSummary
	err := ctl.DB.Model(&models.EventRating{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS total_ratings").
		Where("event_id = ?", eventID).
		Scan(&summary).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Error calculating average",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Data:    summary,
	})
}
