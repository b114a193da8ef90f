package controllers

import (
	"errors"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clubhive/club-booking-app/models"
	"github.com/clubhive/club-booking-app/utils"
)

type BookingController struct {
	DB   *gorm.DB
	Mail utils.Mailer
}

func NewBookingController(db *gorm.DB, mail utils.Mailer) *BookingController {
	return &BookingController{DB: db, Mail: mail}
}

// eventLocks serializes the capacity check and insert per event. Without
// it two concurrent requests for the last seat can both pass the count in
// Booking.BeforeCreate before either commits.
var eventLocks sync.Map

func lockEvent(eventID uint) func() {
	v, _ := eventLocks.LoadOrStore(eventID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

type createBookingInput struct {
	EventID             uint             `json:"eventId"`
	TimeSlot            *models.TimeSlot `json:"timeSlot"`
	SpecialRequirements string           `json:"specialRequirements"`
}

// CreateBooking places a booking for the user in the path. The booking
// starts PENDING with payment PENDING; a confirmation email is dispatched
// after the booking is committed and never rolls it back.
func (ctl *BookingController) CreateBooking(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	var input createBookingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.EventID == 0 || input.TimeSlot == nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Missing required fields",
		})
	}
	if input.TimeSlot.StartTime == "" || input.TimeSlot.EndTime == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Both start time and end time are required",
		})
	}

	booking := models.Booking{
		UserID:              uint(userID),
		EventID:             input.EventID,
		TimeSlot:            *input.TimeSlot,
		SpecialRequirements: input.SpecialRequirements,
		PaymentDetails: models.PaymentDetails{
			TransactionID: utils.GenerateConfirmationRef(),
		},
	}

	unlock := lockEvent(input.EventID)
	err = ctl.DB.Create(&booking).Error
	unlock()
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(utils.Response{
				Success: false,
				Message: "Error creating booking",
				Error:   err.Error(),
			})
		case errors.Is(err, models.ErrEventFull),
			errors.Is(err, models.ErrMissingBooking),
			errors.Is(err, gorm.ErrDuplicatedKey):
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
				Success: false,
				Message: "Error creating booking",
				Error:   err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
				Success: false,
				Message: "Error creating booking",
				Error:   err.Error(),
			})
		}
	}

	var populated models.Booking
	if err := ctl.DB.Preload("Event").Preload("User").First(&populated, booking.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Error fetching created booking",
			Error:   err.Error(),
		})
	}

	ctl.sendConfirmation(populated)

	return c.Status(fiber.StatusCreated).JSON(utils.Response{
		Success: true,
		Message: "You have successfully placed a booking",
		Data:    populated,
	})
}

// sendConfirmation dispatches the confirmation email off the request path.
// A send failure is logged; the committed booking stands either way.
func (ctl *BookingController) sendConfirmation(booking models.Booking) {
	go func() {
		body, err := utils.RenderBookingConfirmation(utils.BookingConfirmationData{
			UserName:            booking.User.Name,
			EventTitle:          booking.Event.Title,
			SpecialRequirements: booking.SpecialRequirements,
			ConfirmationRef:     booking.PaymentDetails.TransactionID,
			ConfirmationLink:    utils.BookingLink(booking.ID),
		})
		if err != nil {
			log.Printf("Failed to render confirmation for booking %d: %v", booking.ID, err)
			return
		}
		if err := ctl.Mail.Send(booking.User.Email, "Booking Confirmation", body); err != nil {
			log.Printf("Failed to send confirmation for booking %d: %v", booking.ID, err)
		}
	}()
}

// GetAllBookings lists a user's bookings with optional status and slot
// date-range filters, newest slot first.
func (ctl *BookingController) GetAllBookings(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	filters, slotRange := utils.BookingFilters(c.Queries())
	filters["user_id"] = uint(userID)

	bookings, err := ctl.findBookings(filters, slotRange)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Error fetching bookings",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Count:   utils.CountOf(int64(len(bookings))),
		Data:    bookings,
	})
}

// GetAllAdminBookings lists every booking; no user pin is applied.
func (ctl *BookingController) GetAllAdminBookings(c *fiber.Ctx) error {
	filters, slotRange := utils.BookingFilters(c.Queries())

	bookings, err := ctl.findBookings(filters, slotRange)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Error fetching bookings",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Count:   utils.CountOf(int64(len(bookings))),
		Data:    bookings,
	})
}

func (ctl *BookingController) findBookings(filters map[string]interface{}, slotRange *utils.SlotRange) ([]models.Booking, error) {
	q := ctl.DB.
		Preload("Event").
		Preload("Event.Club").
		Preload("Event.Instructor").
		Where(filters)
	if slotRange != nil {
		q = q.Where("slot_start_time >= ? AND slot_start_time <= ?", slotRange.Start, slotRange.End)
	}

	var bookings []models.Booking
	err := q.Order("slot_start_time DESC").Find(&bookings).Error
	return bookings, err
}

// GetBooking fetches one booking with the event, club and instructor expanded
func (ctl *BookingController) GetBooking(c *fiber.Ctx) error {
	bookingID := c.Params("bookingId")

	var booking models.Booking
	err := ctl.DB.
		Preload("Event").
		Preload("Event.Club").
		Preload("Event.Instructor").
		First(&booking, "id = ?", bookingID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Data:    booking,
	})
}

// UpdateBooking applies a partial update. Protected fields (user, event,
// payment status and details) are silently dropped from the payload
// rather than rejected.
func (ctl *BookingController) UpdateBooking(c *fiber.Ctx) error {
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := ctl.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}

	update := make(map[string]interface{})
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	update = models.StripProtectedFields(update)

	if len(update) > 0 {
		if err := ctl.DB.Model(&booking).Updates(update).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
				Success: false,
				Message: "Error updating booking",
				Error:   err.Error(),
			})
		}
	}

	var updated models.Booking
	if err := ctl.DB.Preload("Event").First(&updated, booking.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Error fetching updated booking",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Data:    updated,
	})
}

type cancelBookingInput struct {
	Reason string `json:"reason"`
}

// CancelBooking sets the booking CANCELLED and records the reason,
// whatever the prior status was.
func (ctl *BookingController) CancelBooking(c *fiber.Ctx) error {
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := ctl.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.Response{
			Success: false,
			Message: "Booking not found",
			Error:   err.Error(),
		})
	}

	var input cancelBookingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.Response{
			Success: false,
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := booking.Cancel(ctl.DB, input.Reason); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.Response{
			Success: false,
			Message: "Error cancelling booking",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.Response{
		Success: true,
		Message: "Booking cancelled",
		Data:    booking,
	})
}
