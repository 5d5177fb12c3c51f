package assignmentController

import (
	"bytes"
	"fmt"
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

// fakeBlobStore counts uploads and deletes without touching disk
type fakeBlobStore struct {
	uploads int
	deleted []string
}

func (f *fakeBlobStore) Upload(file *multipart.FileHeader, prefix string) (string, error) {
	f.uploads++
	return fmt.Sprintf("%s/object-%d", prefix, f.uploads), nil
}

func (f *fakeBlobStore) Delete(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeBlobStore) SignedURL(path string, expiry time.Duration) (string, error) {
	return "http://localhost/uploads/" + path + "?sig=test", nil
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

func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["file"][0]
}

func createUploadContent(t *testing.T, db *gorm.DB) *models.ModuleContent {
	content := models.ModuleContent{
		PageID:   1,
		Title:    "Essay 1",
		IsUpload: true,
	}
	require.NoError(t, db.Create(&content).Error)
	return &content
}

func TestReplaceSubmissionCreates(t *testing.T) {
	db := setupTestDB(t)
	blob := &fakeBlobStore{}
	content := createUploadContent(t, db)

	submission, err := ReplaceSubmission(db, blob, content, 7, makeFileHeader(t, "essay.pdf", "first draft"))
	require.NoError(t, err)
	assert.Equal(t, "essay.pdf", submission.FileName)
	assert.Equal(t, uint(7), submission.UserID)
	assert.NotEmpty(t, submission.FileURL)
	assert.Nil(t, submission.Grade)
	assert.Empty(t, blob.deleted)
}

func TestReplaceSubmissionUpsertsSingleRow(t *testing.T) {
	db := setupTestDB(t)
	blob := &fakeBlobStore{}
	content := createUploadContent(t, db)

	first, err := ReplaceSubmission(db, blob, content, 7, makeFileHeader(t, "v1.pdf", "first"))
	require.NoError(t, err)

	graded, err := SetGrade(db, first.ID, 88, "Good start")
	require.NoError(t, err)
	require.NotNil(t, graded.Grade)

	second, err := ReplaceSubmission(db, blob, content, 7, makeFileHeader(t, "v2.pdf", "second"))
	require.NoError(t, err)

	// Still a single row, same identity, new file, grade wiped
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "v2.pdf", second.FileName)
	assert.Nil(t, second.Grade)
	assert.Nil(t, second.Feedback)

	var count int64
	db.Model(&models.ModuleSubmission{}).Where("content_id = ? AND user_id = ?", content.ID, 7).Count(&count)
	assert.Equal(t, int64(1), count)

	// The first upload's blob is cleaned up exactly once
	assert.Equal(t, []string{first.BlobPath}, blob.deleted)
}

func TestReplaceSubmissionPerUserRows(t *testing.T) {
	db := setupTestDB(t)
	blob := &fakeBlobStore{}
	content := createUploadContent(t, db)

	_, err := ReplaceSubmission(db, blob, content, 7, makeFileHeader(t, "a.pdf", "a"))
	require.NoError(t, err)
	_, err = ReplaceSubmission(db, blob, content, 8, makeFileHeader(t, "b.pdf", "b"))
	require.NoError(t, err)

	var count int64
	db.Model(&models.ModuleSubmission{}).Where("content_id = ?", content.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestReplaceSubmissionRejectsNonUpload(t *testing.T) {
	db := setupTestDB(t)
	blob := &fakeBlobStore{}

	content := models.ModuleContent{PageID: 1, Title: "Lecture notes", IsUpload: false}
	require.NoError(t, db.Create(&content).Error)

	_, err := ReplaceSubmission(db, blob, &content, 7, makeFileHeader(t, "notes.pdf", "x"))
	assert.ErrorIs(t, err, ErrNotUploadContent)
	assert.Zero(t, blob.uploads)
}

func TestSetAndClearGrade(t *testing.T) {
	db := setupTestDB(t)
	blob := &fakeBlobStore{}
	content := createUploadContent(t, db)

	submission, err := ReplaceSubmission(db, blob, content, 7, makeFileHeader(t, "essay.pdf", "x"))
	require.NoError(t, err)

	graded, err := SetGrade(db, submission.ID, 72.5, "Solid work")
	require.NoError(t, err)
	require.NotNil(t, graded.Grade)
	assert.Equal(t, 72.5, *graded.Grade)
	require.NotNil(t, graded.Feedback)
	assert.Equal(t, "Solid work", *graded.Feedback)

	cleared, err := ClearGrade(db, submission.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.Grade)
	assert.Nil(t, cleared.Feedback)

	var reloaded models.ModuleSubmission
	require.NoError(t, db.First(&reloaded, submission.ID).Error)
	assert.Nil(t, reloaded.Grade)
	assert.Nil(t, reloaded.Feedback)
}

func TestSetGradeMissingSubmission(t *testing.T) {
	db := setupTestDB(t)

	_, err := SetGrade(db, 999, 50, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
