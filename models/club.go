package models

import (
	"gorm.io/gorm"
)

type Club struct {
	gorm.Model
	Title       string  `json:"title" gorm:"not null"`
	Description string  `json:"description" gorm:"not null"`
	Image       string  `json:"image"`
	Events      []Event `json:"events,omitempty" gorm:"foreignKey:ClubID"`
}
