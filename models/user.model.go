package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

type User struct {
	gorm.Model
	Name            string    `json:"name" gorm:"default:''"`
	Email           string    `json:"email" gorm:"unique;not null"`
	Role            string    `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	Password        string    `json:"-" gorm:"not null"`
	IsEmailVerified bool      `json:"is_email_verified" gorm:"default:false"`
	LastLogin       time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted       bool      `json:"-" gorm:"default:false"`
}
