package models

import (
	"time"

	"gorm.io/gorm"
)

// ModuleSubmission is a student's uploaded answer to an upload-type content
// item. The unique index keeps at most one row per (content, user); a
// re-submission replaces the row in place.
type ModuleSubmission struct {
	gorm.Model
	ContentID     uint          `json:"content_id" gorm:"not null;uniqueIndex:idx_submission_content_user"`
	UserID        uint          `json:"user_id" gorm:"not null;uniqueIndex:idx_submission_content_user"`
	FileName      string        `json:"file_name"`
	FileURL       string        `json:"file_url"`
	BlobPath      string        `json:"-"`
	SubmittedDate time.Time     `json:"submitted_date"`
	Grade         *float64      `json:"grade"`
	Feedback      *string       `json:"feedback"`
	Content       ModuleContent `json:"-" gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE"`
	User          User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
