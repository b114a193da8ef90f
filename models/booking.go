package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentFailed   PaymentStatus = "FAILED"
)

type AttendanceStatus string

const (
	NotAttended AttendanceStatus = "NOT_ATTENDED"
	Attended    AttendanceStatus = "ATTENDED"
	Excused     AttendanceStatus = "EXCUSED"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrEventFull      = errors.New("event is fully booked")
	ErrMissingBooking = errors.New("booking must reference a user and an event")
)

type PaymentDetails struct {
	Amount        float64    `json:"amount"`
	TransactionID string     `json:"transaction_id"`
	PaymentMethod string     `json:"payment_method"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
}

type Feedback struct {
	Rating      *int       `json:"rating,omitempty"`
	Comment     string     `json:"comment"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

type ReminderType string

const (
	ReminderEmail ReminderType = "EMAIL"
	ReminderSMS   ReminderType = "SMS"
)

type Reminder struct {
	Type   ReminderType `json:"type"`
	SentAt time.Time    `json:"sent_at"`
	Status string       `json:"status"`
}

// ReminderList stores sent reminders as a single JSONB column.
type ReminderList []Reminder

// Value implements the driver.Valuer interface
func (l ReminderList) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *ReminderList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal ReminderList: unsupported type %T", value)
	}

	return json.Unmarshal(data, l)
}

type Booking struct {
	gorm.Model
	UserID              uint             `json:"user_id" gorm:"not null;uniqueIndex:idx_user_event_slot"`
	User                User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	EventID             uint             `json:"event_id" gorm:"not null;uniqueIndex:idx_user_event_slot"`
	Event               Event            `json:"event,omitempty" gorm:"foreignKey:EventID"`
	TimeSlot            TimeSlot         `json:"time_slot" gorm:"embedded;embeddedPrefix:slot_"`
	Status              BookingStatus    `json:"status" gorm:"default:PENDING;index"`
	PaymentStatus       PaymentStatus    `json:"payment_status" gorm:"default:PENDING;index"`
	PaymentDetails      PaymentDetails   `json:"payment_details" gorm:"embedded;embeddedPrefix:payment_"`
	AttendanceStatus    AttendanceStatus `json:"attendance_status" gorm:"default:NOT_ATTENDED"`
	CancellationReason  string           `json:"cancellation_reason"`
	SpecialRequirements string           `json:"special_requirements"`
	Feedback            Feedback         `json:"feedback" gorm:"embedded;embeddedPrefix:feedback_"`
	RemindersSent       ReminderList     `json:"reminders_sent" gorm:"type:jsonb"`
}

/// BeforeCreate enforces the event capacity ceiling: a new booking is
// rejected when the event already carries as many non-cancelled bookings
// as it has available seats. Callers must serialize concurrent creates
// per event (see controllers.BookingController) for the ceiling to hold.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.UserID == 0 || b.EventID == 0 {
		return ErrMissingBooking
	}

	if b.Status == "" {
		b.Status = BookingPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = PaymentPending
	}
	if b.AttendanceStatus == "" {
		b.AttendanceStatus = NotAttended
	}

	var event Event
	if err := tx.First(&event, b.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	var current int64
	err := tx.Model(&Booking{}).
		Where("event_id = ? AND status <> ?", b.EventID, BookingCancelled).
		Count(&current).Error
	if err != nil {
		return err
	}

	if current >= int64(event.AvailableSeats) {
		return ErrEventFull
	}
	return nil
}

// Cancel marks the booking cancelled and records the reason. It applies
// regardless of the booking's prior status.
func (b *Booking) Cancel(tx *gorm.DB, reason string) error {
	b.Status = BookingCancelled
	b.CancellationReason = reason
	return tx.Save(b).Error
}

// protectedBookingFields are dropped from user-facing patch payloads
// rather than rejected. Both the JSON names and their column forms are
// covered since callers shape the body freely.
var protectedBookingFields = []string{
	"user", "user_id", "userId",
	"event", "event_id", "eventId",
	"paymentStatus", "payment_status",
	"paymentDetails", "payment_details",
	"id", "ID", "created_at", "updated_at", "deleted_at",
}

// StripProtectedFields removes immutable fields from a patch payload.
func StripProtectedFields(update map[string]interface{}) map[string]interface{} {
	for _, field := range protectedBookingFields {
		delete(update, field)
	}
	return update
}
