package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/clubhive/club-booking-app/models"
	"github.com/clubhive/club-booking-app/utils"
)

// StartCronJobs starts the scheduler that reminds attendees of upcoming events
func StartCronJobs(db *gorm.DB, mail utils.Mailer) {
	c := cron.New()
	// Check every 10 minutes for events starting within the next day
	_, err := c.AddFunc("*/10 * * * *", func() {
		sendEventReminders(db, mail)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for event reminders")
}

// sendEventReminders mails confirmed bookings for events starting within
// 24 hours, once per booking. Each send is recorded on the booking's
// reminder list.
func sendEventReminders(db *gorm.DB, mail utils.Mailer) {
	now := time.Now()
	window := now.Add(24 * time.Hour)

	var bookings []models.Booking
	err := db.Preload("User").Preload("Event").
		Joins("JOIN events ON events.id = bookings.event_id").
		Where("bookings.status = ? AND events.date BETWEEN ? AND ?", models.BookingConfirmed, now, window).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		if alreadyReminded(booking) {
			continue
		}

		status := "SENT"
		if err := sendReminderEmail(mail, &booking); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			status = "FAILED"
		}

		booking.RemindersSent = append(booking.RemindersSent, models.Reminder{
			Type:   models.ReminderEmail,
			SentAt: time.Now(),
			Status: status,
		})
		if err := db.Model(&booking).Update("reminders_sent", booking.RemindersSent).Error; err != nil {
			log.Printf("Failed to record reminder for booking %d: %v", booking.ID, err)
		}
	}
}

func alreadyReminded(booking models.Booking) bool {
	for _, reminder := range booking.RemindersSent {
		if reminder.Type == models.ReminderEmail && reminder.Status == "SENT" {
			return true
		}
	}
	return false
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(mail utils.Mailer, booking *models.Booking) error {
	subject := fmt.Sprintf("Reminder: Upcoming Event - %s", booking.Event.Title)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming event booking.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Event:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
		</ul>
		<p>We look forward to seeing you there.</p>
		<p>Best regards,</p>
		<p>The Club Team</p>
	`, booking.User.Name, booking.Event.Title,
		booking.Event.Date.Format("2006-01-02"),
		booking.TimeSlot.StartTime,
		booking.TimeSlot.EndTime)

	return mail.Send(booking.User.Email, subject, body)
}
