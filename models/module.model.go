package models

import (
	"time"

	"gorm.io/gorm"
)

// Module represents a course offering owned by an instructor.
// The instructor association is fixed at creation time.
type Module struct {
	gorm.Model
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	CreatorID    uint    `json:"creator_id" gorm:"not null"`
	Price        float64 `json:"price" gorm:"default:0"`
}

// ModulePage is a content page within a module
type ModulePage struct {
	gorm.Model
	ModuleID uint   `json:"module_id" gorm:"index;not null"`
	Title    string `json:"title"`
	Module   Module `json:"-" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}

// ModuleContent is a single item on a page: a link, a static file,
// or an upload assignment with an optional deadline.
type ModuleContent struct {
	gorm.Model
	PageID      uint       `json:"page_id" gorm:"index;not null"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	FileURL     string     `json:"file_url"`
	FileType    string     `json:"file_type"`
	BlobPath    string     `json:"-"` // storage object behind FileURL, empty for links
	LinkURL     string     `json:"link_url"`
	IsLink      bool       `json:"is_link" gorm:"default:false"`
	IsUpload    bool       `json:"is_upload" gorm:"default:false"`
	Deadline    *time.Time `json:"deadline"` // only meaningful when IsUpload
	Page        ModulePage `json:"-" gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
}
