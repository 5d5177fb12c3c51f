package models

import "gorm.io/gorm"

const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

// PaymentSession tracks a provider checkout session for a paid enrolment.
type PaymentSession struct {
	gorm.Model
	Reference string  `json:"reference" gorm:"unique;not null"` // our idempotency key, sent to the provider
	SessionID string  `json:"session_id" gorm:"index"`          // provider's session id
	UserID    uint    `json:"user_id" gorm:"index;not null"`
	ModuleID  uint    `json:"module_id" gorm:"index;not null"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status" gorm:"default:'PENDING'"` // PENDING, COMPLETED, FAILED
	User      User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Module    Module  `json:"-" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}
