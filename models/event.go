package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPublished EventStatus = "PUBLISHED"
	EventCancelled EventStatus = "CANCELLED"
)

// TimeSlot is an opaque start/end pair. Times are free-form strings and
// are compared lexicographically where a range filter applies.
type TimeSlot struct {
	StartTime string `json:"startTime" gorm:"uniqueIndex:idx_user_event_slot"`
	EndTime   string `json:"endTime"`
}

// TimeSlotList stores an event's slots as a single JSONB column.
type TimeSlotList []TimeSlot

// Value implements the driver.Valuer interface
func (l TimeSlotList) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *TimeSlotList) Scan(value interface{}) error {
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
		return fmt.Errorf("failed to unmarshal TimeSlotList: unsupported type %T", value)
	}

	return json.Unmarshal(data, l)
}

type Event struct {
	gorm.Model
	Title          string       `json:"title" gorm:"not null"`
	Description    string       `json:"description" gorm:"not null"`
	ClubID         uint         `json:"club_id" gorm:"not null"`
	Club           Club         `json:"club,omitempty" gorm:"foreignKey:ClubID"`
	Image          string       `json:"image"`
	AvailableSeats int          `json:"available_seats" gorm:"not null;check:available_seats >= 0"`
	Price          float64      `json:"price" gorm:"not null;check:price >= 0"`
	InstructorID   *uint        `json:"instructor_id,omitempty"`
	Instructor     *Instructor  `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Date           time.Time    `json:"date"`
	TimeSlots      TimeSlotList `json:"time_slots" gorm:"type:jsonb"`
	Status         EventStatus  `json:"status" gorm:"default:DRAFT"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.Status == "" {
		e.Status = EventDraft
	}
	return nil
}
