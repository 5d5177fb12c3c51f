package enrollmentController

import (
	"testing"
	"vle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Module{},
		&models.Enrollment{},
	)
	require.NoError(t, err)

	return db
}

func TestEnrollUser(t *testing.T) {
	db := setupTestDB(t)

	enrollment, err := EnrollUser(db, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint(1), enrollment.UserID)
	assert.Equal(t, uint(10), enrollment.ModuleID)
	assert.False(t, enrollment.EnrolledDate.IsZero())

	enrolled, err := IsEnrolled(db, 1, 10)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestEnrollUserRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)

	_, err := EnrollUser(db, 1, 10)
	require.NoError(t, err)

	// The pre-check rejects the duplicate before the unique index has to
	_, err = EnrollUser(db, 1, 10)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	count, err := CountForModule(db, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIsEnrolledFalseWhenMissing(t *testing.T) {
	db := setupTestDB(t)

	enrolled, err := IsEnrolled(db, 42, 10)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestCountForModule(t *testing.T) {
	db := setupTestDB(t)

	for userID := uint(1); userID <= 3; userID++ {
		_, err := EnrollUser(db, userID, 10)
		require.NoError(t, err)
	}
	_, err := EnrollUser(db, 1, 11)
	require.NoError(t, err)

	count, err := CountForModule(db, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = CountForModule(db, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestListEnrolledUserIDs(t *testing.T) {
	db := setupTestDB(t)

	for userID := uint(5); userID <= 7; userID++ {
		_, err := EnrollUser(db, userID, 10)
		require.NoError(t, err)
	}

	userIDs, err := ListEnrolledUserIDs(db, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{5, 6, 7}, userIDs)

	empty, err := ListEnrolledUserIDs(db, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
