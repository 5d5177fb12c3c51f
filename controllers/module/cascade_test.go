package moduleController

import (
	"mime/multipart"
	"testing"
	"time"
	"vle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type countingBlobStore struct {
	deleted []string
}

func (c *countingBlobStore) Upload(file *multipart.FileHeader, prefix string) (string, error) {
	return prefix + "/unused", nil
}

func (c *countingBlobStore) Delete(path string) error {
	c.deleted = append(c.deleted, path)
	return nil
}

func (c *countingBlobStore) SignedURL(path string, expiry time.Duration) (string, error) {
	return "http://localhost/uploads/" + path, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Module{},
		&models.ModulePage{},
		&models.ModuleContent{},
		&models.ModuleSubmission{},
	)
	require.NoError(t, err)

	return db
}

// seedTree builds one module with one page, two content items (one stored
// file, one link) and two submissions under the file content.
func seedTree(t *testing.T, db *gorm.DB) (*models.Module, *models.ModulePage) {
	module := models.Module{Name: "Networks", InstructorID: 1, CreatorID: 1}
	require.NoError(t, db.Create(&module).Error)

	page := models.ModulePage{ModuleID: module.ID, Title: "Week 1"}
	require.NoError(t, db.Create(&page).Error)

	fileContent := models.ModuleContent{
		PageID:   page.ID,
		Title:    "Lab sheet",
		IsUpload: true,
		BlobPath: "content/lab-sheet",
	}
	require.NoError(t, db.Create(&fileContent).Error)

	linkContent := models.ModuleContent{
		PageID:  page.ID,
		Title:   "Reading",
		IsLink:  true,
		LinkURL: "https://example.com/rfc",
	}
	require.NoError(t, db.Create(&linkContent).Error)

	for userID := uint(1); userID <= 2; userID++ {
		submission := models.ModuleSubmission{
			ContentID:     fileContent.ID,
			UserID:        userID,
			FileName:      "lab.pdf",
			BlobPath:      "submissions/lab-" + string(rune('a'+userID-1)),
			SubmittedDate: time.Now(),
		}
		require.NoError(t, db.Create(&submission).Error)
	}

	return &module, &page
}

func TestDeletePageTree(t *testing.T) {
	db := setupTestDB(t)
	blob := &countingBlobStore{}
	_, page := seedTree(t, db)

	require.NoError(t, DeletePageTree(db, blob, page))

	var contents, submissions, pages int64
	db.Model(&models.ModuleContent{}).Count(&contents)
	db.Model(&models.ModuleSubmission{}).Count(&submissions)
	db.Model(&models.ModulePage{}).Count(&pages)
	assert.Equal(t, int64(0), contents)
	assert.Equal(t, int64(0), submissions)
	assert.Equal(t, int64(0), pages)

	// One blob delete per submission file plus one for the stored content
	// file; the link content has nothing in the store.
	assert.ElementsMatch(t,
		[]string{"submissions/lab-a", "submissions/lab-b", "content/lab-sheet"},
		blob.deleted)
}

func TestDeleteModuleTree(t *testing.T) {
	db := setupTestDB(t)
	blob := &countingBlobStore{}
	module, _ := seedTree(t, db)

	require.NoError(t, DeleteModuleTree(db, blob, module))

	var modules, pages, contents, submissions int64
	db.Model(&models.Module{}).Count(&modules)
	db.Model(&models.ModulePage{}).Count(&pages)
	db.Model(&models.ModuleContent{}).Count(&contents)
	db.Model(&models.ModuleSubmission{}).Count(&submissions)
	assert.Equal(t, int64(0), modules)
	assert.Equal(t, int64(0), pages)
	assert.Equal(t, int64(0), contents)
	assert.Equal(t, int64(0), submissions)

	assert.Len(t, blob.deleted, 3)
}

func TestDeleteContentTreeWithoutBlobStore(t *testing.T) {
	db := setupTestDB(t)
	_, page := seedTree(t, db)

	var content models.ModuleContent
	require.NoError(t, db.Where("page_id = ? AND is_upload = ?", page.ID, true).First(&content).Error)

	// A nil store must not panic; rows still go
	require.NoError(t, DeleteContentTree(db, nil, &content))

	var submissions int64
	db.Model(&models.ModuleSubmission{}).Where("content_id = ?", content.ID).Count(&submissions)
	assert.Equal(t, int64(0), submissions)
}
