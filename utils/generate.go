package utils

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// GenerateConfirmationRef returns a reference included in booking
// confirmation emails and payment records.
func GenerateConfirmationRef() string {
	return uuid.NewString()
}

// BookingLink builds the caller-facing URL for a booking.
func BookingLink(bookingID uint) string {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:5173"
	}
	return fmt.Sprintf("%s/bookings/%d", base, bookingID)
}
