package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clubhive/club-booking-app/models"
	"github.com/clubhive/club-booking-app/utils"
)

type InstructorController struct {
	DB *gorm.DB
}

func NewInstructorController(db *gorm.DB) *InstructorController {
	return &InstructorController{DB: db}
}

// CreateInstructor creates an instructor after checking the required fields
func (ctl *InstructorController) CreateInstructor(c *fiber.Ctx) error {
	var instructor models.Instructor
	if err := c.BodyParser(&instructor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	if instructor.Name == "" || instructor.Email == "" || instructor.Phone == "" ||
		instructor.Specialization == "" || instructor.Bio == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   "Missing required fields",
		})
	}

	if err := ctl.DB.Create(&instructor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(utils.Response{
		Success: true,
		Data:    instructor,
	})
}

// GetAllInstructors lists instructors with their events expanded
func (ctl *InstructorController) GetAllInstructors(c *fiber.Ctx) error {
	filters := make(map[string]interface{})
	for key, value := range c.Queries() {
		filters[key] = value
	}

	var instructors []models.Instructor
	if err := ctl.DB.Preload("Events").Where(filters).Find(&instructors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Count:   utils.CountOf(int64(len(instructors))),
		Data:    instructors,
	})
}

// GetInstructorByID fetches one instructor with their events expanded
func (ctl *InstructorController) GetInstructorByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var instructor models.Instructor
	if err := ctl.DB.Preload("Events").First(&instructor, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Error:   "Instructor not found",
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Data:    instructor,
	})
}

// UpdateInstructor applies a partial update to an instructor by ID
func (ctl *InstructorController) UpdateInstructor(c *fiber.Ctx) error {
	id := c.Params("id")

	update := make(map[string]interface{})
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}
	if len(update) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   "No fields to update",
		})
	}

	var instructor models.Instructor
	if err := ctl.DB.First(&instructor, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Error:   "Instructor not found",
		})
	}

	if err := ctl.DB.Model(&instructor).Updates(update).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Data:    instructor,
	})
}

// DeleteInstructor removes an instructor by ID. Events keep running;
// their instructor reference is cleared by the store's foreign key
// behavior or unlinked explicitly via the event routes.
func (ctl *InstructorController) DeleteInstructor(c *fiber.Ctx) error {
	id := c.Params("id")

	var instructor models.Instructor
	if err := ctl.DB.First(&instructor, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Error:   "Instructor not found",
		})
	}

	if err := ctl.DB.Delete(&instructor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "Instructor deleted successfully",
	})
}
