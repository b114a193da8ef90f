package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clubhive/club-booking-app/models"
	"github.com/clubhive/club-booking-app/utils"
)

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

// CreateEvent creates an event under the club in the path
func (ctl *EventController) CreateEvent(c *fiber.Ctx) error {
	clubID, err := c.ParamsInt("clubId")
	if err != nil || clubID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   "Invalid club ID",
		})
	}

	var event models.Event
	if err := c.BodyParser(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	if event.Title == "" || event.Description == "" || event.AvailableSeats == 0 ||
		event.Price == 0 || event.Date.IsZero() || event.Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   "Missing required fields",
		})
	}

	event.ClubID = uint(clubID)
	if err := ctl.DB.Create(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(utils.Response{
		Success: true,
		Data:    event,
	})
}

type createManyEventsInput struct {
	Events []models.Event `json:"events"`
}

// CreateMultipleEvents bulk-creates events. The batch is not atomic:
// creation stops at the first invalid item and earlier items stay
// committed.
func (ctl *EventController) CreateMultipleEvents(c *fiber.Ctx) error {
	var input createManyEventsInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}
	if len(input.Events) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   "Invalid or empty events array",
		})
	}

	created := make([]models.Event, 0, len(input.Events))
	for _, event := range input.Events {
		if event.Title == "" || event.Description == "" || event.Date.IsZero() || event.Image == "" {
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
				Success: false,
				Error:   "Each event must have title, description, availableSeats, price, date, and image",
			})
		}
		if err := ctl.DB.Create(&event).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
				Success: false,
				Error:   err.Error(),
			})
		}
		created = append(created, event)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.Response{
		Success: true,
		Data:    created,
	})
}

// UpdateEvent applies a full update to an event by ID
func (ctl *EventController) UpdateEvent(c *fiber.Ctx) error {
	id := c.Params("id")

	var event models.Event
	if err := ctl.DB.First(&event, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Error:   "Event not found",
		})
	}

	var update models.Event
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	if err := ctl.DB.Model(&event).Updates(update).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Data:    event,
	})
}

// GetAllEvents lists events with club and instructor expanded. Query
// parameters pass through to the store as equality filters.
func (ctl *EventController) GetAllEvents(c *fiber.Ctx) error {
	filters := make(map[string]interface{})
	for key, value := range c.Queries() {
		filters[key] = value
	}

	var events []models.Event
	if err := ctl.DB.Preload("Club").Preload("Instructor").Where(filters).Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Count:   utils.CountOf(int64(len(events))),
		Data:    events,
	})
}

// GetEventByID fetches a single event with club and instructor expanded
func (ctl *EventController) GetEventByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var event models.Event
	if err := ctl.DB.Preload("Club").Preload("Instructor").First(&event, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Error:   "Event not found",
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Data:    event,
	})
}

// GetInstructorEvents lists all events taught by one instructor
func (ctl *EventController) GetInstructorEvents(c *fiber.Ctx) error {
	instructorID, err := c.ParamsInt("instructorId")
	if err != nil || instructorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Error:   "Invalid instructor ID",
		})
	}

	var events []models.Event
	if err := ctl.DB.Where("instructor_id = ?", instructorID).Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Count:   utils.CountOf(int64(len(events))),
		Data:    events,
	})
}

// RemoveInstructorFromEvent clears the event's instructor reference. The
// instructor record itself is untouched.
func (ctl *EventController) RemoveInstructorFromEvent(c *fiber.Ctx) error {
	eventID := c.Params("eventId")

	var event models.Event
	if err := ctl.DB.First(&event, "id = ?", eventID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Error:   "Event not found",
		})
	}

	if err := ctl.DB.Model(&event).Update("instructor_id", nil).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "Instructor removed from event",
	})
}

// DeleteEvent removes an event by ID
func (ctl *EventController) DeleteEvent(c *fiber.Ctx) error {
	id := c.Params("id")

	var event models.Event
	if err := ctl.DB.First(&event, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Error:   "Event not found",
		})
	}

	if err := ctl.DB.Delete(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "Event deleted successfully",
	})
}
