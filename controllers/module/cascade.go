package moduleController

import (
	"log"
	"vle/models"
	"vle/storage"

	"gorm.io/gorm"
)

// Deletion-order policy for the content tree:
// module -> pages -> content -> submissions, with the storage blob removed
// before each content/submission row. Blob failures are logged, not fatal;
// the rows still go.

func currentBlob() storage.BlobStore {
	return storage.Blob
}

// DeleteSubmissionRow removes a submission's blob and then its row
func DeleteSubmissionRow(db *gorm.DB, blob storage.BlobStore, submission *models.ModuleSubmission) error {
	if submission.BlobPath != "" && blob != nil {
		if err := blob.Delete(submission.BlobPath); err != nil {
			log.Printf("Failed to delete submission blob %s: %v", submission.BlobPath, err)
		}
	}
	return db.Unscoped().Delete(submission).Error
}

// DeleteContentTree removes a content item, its submissions and their blobs
func DeleteContentTree(db *gorm.DB, blob storage.BlobStore, content *models.ModuleContent) error {
	var submissions []models.ModuleSubmission
	if err := db.Where("content_id = ?", content.ID).Find(&submissions).Error; err != nil {
		return err
	}
	for i := range submissions {
		if err := DeleteSubmissionRow(db, blob, &submissions[i]); err != nil {
			return err
		}
	}

	if content.BlobPath != "" && blob != nil {
		if err := blob.Delete(content.BlobPath); err != nil {
			log.Printf("Failed to delete content blob %s: %v", content.BlobPath, err)
		}
	}

	return db.Unscoped().Delete(content).Error
}

// DeletePageTree removes a page and all content under it
func DeletePageTree(db *gorm.DB, blob storage.BlobStore, page *models.ModulePage) error {
	var contents []models.ModuleContent
	if err := db.Where("page_id = ?", page.ID).Find(&contents).Error; err != nil {
		return err
	}
	for i := range contents {
		if err := DeleteContentTree(db, blob, &contents[i]); err != nil {
			return err
		}
	}

	return db.Unscoped().Delete(page).Error
}

// DeleteModuleTree removes a module and all pages under it
func DeleteModuleTree(db *gorm.DB, blob storage.BlobStore, module *models.Module) error {
	var pages []models.ModulePage
	if err := db.Where("module_id = ?", module.ID).Find(&pages).Error; err != nil {
		return err
	}
	for i := range pages {
		if err := DeletePageTree(db, blob, &pages[i]); err != nil {
			return err
		}
	}

	return db.Unscoped().Delete(module).Error
}
