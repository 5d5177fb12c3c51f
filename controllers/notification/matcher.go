package notificationController

import (
	"strings"
	"vle/models"

	"gorm.io/gorm"
)

// ReadMatcher finds the persisted notification a client-held message refers
// to. Live-pushed copies can be truncated or reformatted in transit, so exact
// equality alone is not enough.
type ReadMatcher interface {
	Match(db *gorm.DB, userID, moduleID uint, message string) (*models.Notification, error)
}

// TwoPhaseMatcher tries an exact unread match first, newest wins. Failing
// that it falls back to case-insensitive substring containment: the stored
// message containing the given one, or — only when the given message is
// longer than FuzzyMinLen — the given message containing the stored one.
type TwoPhaseMatcher struct {
	FuzzyMinLen int
}

// DefaultMatcher is the matcher used by the read-by-content endpoint
var DefaultMatcher ReadMatcher = TwoPhaseMatcher{FuzzyMinLen: 10}

func (m TwoPhaseMatcher) Match(db *gorm.DB, userID, moduleID uint, message string) (*models.Notification, error) {
	// Phase one: exact
	var notification models.Notification
	err := db.Where("user_id = ? AND module_id = ? AND message = ? AND is_read = ?", userID, moduleID, message, false).
		Order("created_at desc").
		First(&notification).Error
	if err == nil {
		return &notification, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	// Phase two: fuzzy containment over the user's unread rows for the module
	var candidates []models.Notification
	err = db.Where("user_id = ? AND module_id = ? AND is_read = ?", userID, moduleID, false).
		Order("created_at desc").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	given := strings.ToLower(message)
	for i := range candidates {
		stored := strings.ToLower(candidates[i].Message)
		if strings.Contains(stored, given) {
			return &candidates[i], nil
		}
		if len(message) > m.FuzzyMinLen && strings.Contains(given, stored) {
			return &candidates[i], nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}
