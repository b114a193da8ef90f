package models

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleUser       UserRole = "USER"
	RoleInstructor UserRole = "INSTRUCTOR"
	RoleOther      UserRole = "OTHER"
)

type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ExternalID *string   `json:"external_id,omitempty" gorm:"uniqueIndex"`
	Name       string    `json:"name" gorm:"not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Password   *string   `json:"password,omitempty"`
	Address    string    `json:"address"`
	PhotoURL   string    `json:"photo_url"`
	Phone      *string   `json:"phone,omitempty" gorm:"uniqueIndex"`
	Gender     Gender    `json:"gender"`
	Role       UserRole  `json:"role" gorm:"default:USER"`
	IsVerified bool      `json:"is_verified" gorm:"default:false"`
	Bookings   []Booking `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidRole reports whether a role value is one of the defined enum members.
func ValidRole(role string) bool {
	switch UserRole(role) {
	case RoleAdmin, RoleUser, RoleInstructor, RoleOther:
		return true
	}
	return false
}
