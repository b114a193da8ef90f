package models

import (
	"gorm.io/gorm"
)

type SocialLinks struct {
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
}

type Instructor struct {
	gorm.Model
	Name           string      `json:"name" gorm:"not null"`
	Email          string      `json:"email" gorm:"uniqueIndex;not null"`
	Phone          string      `json:"phone" gorm:"not null"`
	Specialization string      `json:"specialization" gorm:"not null"`
	Bio            string      `json:"bio" gorm:"not null"`
	Image          string      `json:"image"`
	SocialLinks    SocialLinks `json:"social_links" gorm:"embedded;embeddedPrefix:social_"`
	IsActive       bool        `json:"is_active" gorm:"default:true"`
	Events         []Event     `json:"events,omitempty" gorm:"foreignKey:InstructorID"`
}
