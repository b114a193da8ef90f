package utils

import (
	"strings"
)

// SlotRange bounds bookings by their selected slot start time. Slot times
// are opaque strings, so the comparison is lexicographic.
type SlotRange struct {
	Start string
	End   string
}

// BookingFilters turns caller-supplied query parameters into an equality
// filter map plus an optional slot-start range. Status values are
// normalized to upper-case to match the stored enum. Any other key is
// passed through to the store unchanged; unknown columns surface the raw
// store error to the caller.
func BookingFilters(query map[string]string) (map[string]interface{}, *SlotRange) {
	filters := make(map[string]interface{})

	for key, value := range query {
		switch key {
		case "startDate", "endDate":
			// handled below as a range
		case "status":
			filters["status"] = strings.ToUpper(value)
		default:
			filters[key] = value
		}
	}

	start, hasStart := query["startDate"]
	end, hasEnd := query["endDate"]
	if hasStart && hasEnd {
		return filters, &SlotRange{Start: start, End: end}
	}

	return filters, nil
}
