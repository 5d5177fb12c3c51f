package models

import (
	"time"

	"gorm.io/gorm"
)

type Enrollment struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_module"`
	ModuleID     uint      `json:"module_id" gorm:"not null;uniqueIndex:idx_enrollment_user_module"`
	EnrolledDate time.Time `json:"enrolled_date"`
	User         User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Module       Module    `json:"module" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}
