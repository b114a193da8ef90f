package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clubhive/club-booking-app/models"
)

func newBookingApp(t *testing.T) (*fiber.App, *gorm.DB, *recordingMailer) {
	t.Helper()
	db := newTestDB(t)
	mailer := newRecordingMailer()
	ctl := NewBookingController(db, mailer)

	app := fiber.New()
	app.Get("/bookings/admin", ctl.GetAllAdminBookings)
	app.Get("/bookings/detail/:bookingId", ctl.GetBooking)
	app.Post("/bookings/:userId", ctl.CreateBooking)
	app.Get("/bookings/:userId", ctl.GetAllBookings)
	app.Patch("/bookings/:bookingId/cancel", ctl.CancelBooking)
	app.Patch("/bookings/:bookingId", ctl.UpdateBooking)
	return app, db, mailer
}

func TestCreateBooking(t *testing.T) {
	app, db, mailer := newBookingApp(t)
	user := seedTestUser(t, db, "booker@example.com")
	event := seedTestEvent(t, db, 5)

	resp, env := doJSON(t, app, "POST", fmt.Sprintf("/bookings/%d", user.ID), fiber.Map{
		"eventId":             event.ID,
		"timeSlot":            fiber.Map{"startTime": "18:00", "endTime": "20:00"},
		"specialRequirements": "front row",
	})

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "You have successfully placed a booking", env.Message)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, models.PaymentPending, booking.PaymentStatus)
	assert.Equal(t, event.Title, booking.Event.Title)

	mail := mailer.wait(t)
	assert.Equal(t, "booker@example.com", mail.To)
	assert.Equal(t, "Booking Confirmation", mail.Subject)
	assert.Contains(t, mail.Body, "Blitz Night")
	assert.Contains(t, mail.Body, "front row")
}

func TestCreateBookingDefaultsRequirementsInMail(t *testing.T) {
	app, db, mailer := newBookingApp(t)
	user := seedTestUser(t, db, "plain@example.com")
	event := seedTestEvent(t, db, 5)

	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/bookings/%d", user.ID), fiber.Map{
		"eventId":  event.ID,
		"timeSlot": fiber.Map{"startTime": "18:00", "endTime": "20:00"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	mail := mailer.wait(t)
	assert.Contains(t, mail.Body, "None")
}

func TestCreateBookingSurvivesMailFailure(t *testing.T) {
	app, db, mailer := newBookingApp(t)
	mailer.err = errors.New("smtp unreachable")
	user := seedTestUser(t, db, "unlucky@example.com")
	event := seedTestEvent(t, db, 5)

	resp, env := doJSON(t, app, "POST", fmt.Sprintf("/bookings/%d", user.ID), fiber.Map{
		"eventId":  event.ID,
		"timeSlot": fiber.Map{"startTime": "18:00", "endTime": "20:00"},
	})
	mailer.wait(t)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.EqualValues(t, 1, count, "the committed booking stands even when the mail fails")
}

func TestCreateBookingMissingFields(t *testing.T) {
	app, db, _ := newBookingApp(t)
	user := seedTestUser(t, db, "sparse@example.com")

	resp, env := doJSON(t, app, "POST", fmt.Sprintf("/bookings/%d", user.ID), fiber.Map{})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Missing required fields", env.Message)
}

func TestCreateBookingEventNotFound(t *testing.T) {
	app, db, _ := newBookingApp(t)
	user := seedTestUser(t, db, "lost@example.com")

	resp, env := doJSON(t, app, "POST", fmt.Sprintf("/bookings/%d", user.ID), fiber.Map{
		"eventId":  999,
		"timeSlot": fiber.Map{"startTime": "18:00", "endTime": "20:00"},
	})

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "event not found")

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	app, db, mailer := newBookingApp(t)
	event := seedTestEvent(t, db, 1)

	first := seedTestUser(t, db, "first@example.com")
	resp, _ := doJSON(t, app, "POST", fmt.Sprintf("/bookings/%d", first.ID), fiber.Map{
		"eventId":  event.ID,
		"timeSlot": fiber.Map{"startTime": "18:00", "endTime": "20:00"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	mailer.wait(t)

	second := seedTestUser(t, db, "second@example.com")
	resp, env := doJSON(t, app, "POST", fmt.Sprintf("/bookings/%d", second.ID), fiber.Map{
		"eventId":  event.ID,
		"timeSlot": fiber.Map{"startTime": "18:00", "endTime": "20:00"},
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Error, "fully booked")
}

func TestUpdateBookingStripsProtectedFields(t *testing.T) {
	app, db, mailer := newBookingApp(t)
	user := seedTestUser(t, db, "patcher@example.com")
	other := seedTestUser(t, db, "other@example.com")
	event := seedTestEvent(t, db, 5)

	resp, env := doJSON(t, app, "POST", fmt.Sprintf("/bookings/%d", user.ID), fiber.Map{
		"eventId":  event.ID,
		"timeSlot": fiber.Map{"startTime": "18:00", "endTime": "20:00"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	mailer.wait(t)

	var created models.Booking
	require.NoError(t, json.Unmarshal(env.Data, &created))

	resp, env = doJSON(t, app, "PATCH", fmt.Sprintf("/bookings/%d", created.ID), fiber.Map{
		"status":        "CONFIRMED",
		"paymentStatus": "PAID",
		"user_id":       other.ID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var updated models.Booking
	require.NoError(t, db.First(&updated, created.ID).Error)
	assert.Equal(t, models.BookingConfirmed, updated.Status)
	assert.Equal(t, models.PaymentPending, updated.PaymentStatus, "payment status is protected")
	assert.Equal(t, user.ID, updated.UserID, "owner is protected")
}

func TestCancelBookingEndpoint(t *testing.T) {
	app, db, mailer := newBookingApp(t)
	user := seedTestUser(t, db, "quitter@example.com")
	event := seedTestEvent(t, db, 5)

	resp, env := doJSON(t, app, "POST", fmt.Sprintf("/bookings/%d", user.ID), fiber.Map{
		"eventId":  event.ID,
		"timeSlot": fiber.Map{"startTime": "18:00", "endTime": "20:00"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	mailer.wait(t)

	var created models.Booking
	require.NoError(t, json.Unmarshal(env.Data, &created))

	resp, env = doJSON(t, app, "PATCH", fmt.Sprintf("/bookings/%d/cancel", created.ID), fiber.Map{
		"reason": "rained out",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var cancelled models.Booking
	require.NoError(t, db.First(&cancelled, created.ID).Error)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, "rained out", cancelled.CancellationReason)
}

func seedBookingWithStatus(t *testing.T, db *gorm.DB, user models.User, event models.Event, start string, status models.BookingStatus) models.Booking {
	t.Helper()
	booking := models.Booking{
		UserID:   user.ID,
		EventID:  event.ID,
		TimeSlot: models.TimeSlot{StartTime: start, EndTime: "23:59"},
		Status:   status,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

func TestListBookingsStatusFilterNormalizesCase(t *testing.T) {
	app, db, _ := newBookingApp(t)
	user := seedTestUser(t, db, "lister@example.com")
	event := seedTestEvent(t, db, 10)

	seedBookingWithStatus(t, db, user, event, "10:00", models.BookingPending)
	seedBookingWithStatus(t, db, user, event, "11:00", models.BookingConfirmed)
	seedBookingWithStatus(t, db, user, event, "12:00", models.BookingConfirmed)

	resp, env := doJSON(t, app, "GET", fmt.Sprintf("/bookings/%d?status=confirmed", user.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Count)
	assert.EqualValues(t, 2, *env.Count)

	var bookings []models.Booking
	require.NoError(t, json.Unmarshal(env.Data, &bookings))
	for _, b := range bookings {
		assert.Equal(t, models.BookingConfirmed, b.Status)
	}
}

func TestListBookingsDateRangeAndOrder(t *testing.T) {
	app, db, _ := newBookingApp(t)
	user := seedTestUser(t, db, "ranger@example.com")
	event := seedTestEvent(t, db, 10)

	seedBookingWithStatus(t, db, user, event, "2025-01-05T10:00", models.BookingPending)
	seedBookingWithStatus(t, db, user, event, "2025-02-10T10:00", models.BookingPending)
	seedBookingWithStatus(t, db, user, event, "2025-03-15T10:00", models.BookingPending)

	target := fmt.Sprintf("/bookings/%d?startDate=2025-01-01&endDate=2025-02-28", user.ID)
	resp, env := doJSON(t, app, "GET", target, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var bookings []models.Booking
	require.NoError(t, json.Unmarshal(env.Data, &bookings))
	require.Len(t, bookings, 2)
	assert.Equal(t, "2025-02-10T10:00", bookings[0].TimeSlot.StartTime, "newest slot first")
	assert.Equal(t, "2025-01-05T10:00", bookings[1].TimeSlot.StartTime)
}

func TestListBookingsPinsUser(t *testing.T) {
	app, db, _ := newBookingApp(t)
	alice := seedTestUser(t, db, "alice@example.com")
	bob := seedTestUser(t, db, "bob@example.com")
	event := seedTestEvent(t, db, 10)

	seedBookingWithStatus(t, db, alice, event, "10:00", models.BookingPending)
	seedBookingWithStatus(t, db, bob, event, "11:00", models.BookingPending)

	resp, env := doJSON(t, app, "GET", fmt.Sprintf("/bookings/%d", alice.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Count)
	assert.EqualValues(t, 1, *env.Count)

	resp, env = doJSON(t, app, "GET", "/bookings/admin", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Count)
	assert.EqualValues(t, 2, *env.Count, "admin listing sees all users")
}

func TestGetBookingDetailExpandsEvent(t *testing.T) {
	app, db, _ := newBookingApp(t)
	user := seedTestUser(t, db, "detail@example.com")
	event := seedTestEvent(t, db, 10)
	booking := seedBookingWithStatus(t, db, user, event, "10:00", models.BookingPending)

	resp, env := doJSON(t, app, "GET", fmt.Sprintf("/bookings/detail/%d", booking.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var fetched models.Booking
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, event.Title, fetched.Event.Title)
	assert.Equal(t, "Chess Club", fetched.Event.Club.Title)
}
