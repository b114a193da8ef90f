package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingFiltersNormalizesStatus(t *testing.T) {
	filters, slotRange := BookingFilters(map[string]string{"status": "confirmed"})

	assert.Equal(t, map[string]interface{}{"status": "CONFIRMED"}, filters)
	assert.Nil(t, slotRange)
}

func TestBookingFiltersDateRange(t *testing.T) {
	filters, slotRange := BookingFilters(map[string]string{
		"startDate": "2025-01-01",
		"endDate":   "2025-01-31",
	})

	assert.Empty(t, filters)
	assert.NotNil(t, slotRange)
	assert.Equal(t, "2025-01-01", slotRange.Start)
	assert.Equal(t, "2025-01-31", slotRange.End)
}

func TestBookingFiltersIgnoresHalfOpenRange(t *testing.T) {
	_, slotRange := BookingFilters(map[string]string{"startDate": "2025-01-01"})
	assert.Nil(t, slotRange)
}

func TestBookingFiltersPassThrough(t *testing.T) {
	filters, _ := BookingFilters(map[string]string{
		"attendance_status": "ATTENDED",
		"not_a_column":      "probe",
	})

	assert.Equal(t, map[string]interface{}{
		"attendance_status": "ATTENDED",
		"not_a_column":      "probe",
	}, filters)
}
