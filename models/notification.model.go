package models

import "gorm.io/gorm"

const (
	NotificationGrade = "GRADE"
	NotificationAdmin = "ADMIN"
)

// Notification is a per-user persisted message. Broadcasts create one row
// per recipient; only IsRead ever changes after insert.
type Notification struct {
	gorm.Model
	Message     string `json:"message"`
	ModuleID    *uint  `json:"module_id" gorm:"index"`
	ModuleTitle string `json:"module_title"`
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	IsRead      bool   `json:"is_read" gorm:"default:false"`
	Type        string `json:"type" gorm:"default:'GRADE'"` // GRADE, ADMIN
}
