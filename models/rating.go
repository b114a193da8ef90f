package models

import (
	"gorm.io/gorm"
)

type EventRating struct {
	gorm.Model
	EventID uint   `json:"event_id" gorm:"not null;uniqueIndex:idx_event_user_rating"`
	Event   Event  `json:"event,omitempty" gorm:"foreignKey:EventID"`
	UserID  uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_event_user_rating"`
	User    User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Rating  int    `json:"rating" gorm:"not null"`
	Review  string `json:"review"`
}

// BeforeCreate clamps the rating into the 1-5 range
func (r *EventRating) BeforeCreate(tx *gorm.DB) error {
	if r.Rating < 1 {
		r.Rating = 1
	} else if r.Rating > 5 {
		r.Rating = 5
	}
	return nil
}

// HasExistingRating checks whether this user already rated this event
func (r *EventRating) HasExistingRating(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&EventRating{}).
		Where("user_id = ? AND event_id = ?", r.UserID, r.EventID).
		Count(&count).Error

	return count > 0, err
}

// RatingSummary is the on-demand aggregate for an event's ratings.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}
