package repositories

import (
	"fmt"

	"vexpo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNotificationRepository is a GORM implementation of
// NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of
// GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{db: db}
}

// Create appends a new notification.
func (r *GORMNotificationRepository) Create(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if err := r.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListByUser returns every notification for a user, newest first.
func (r *GORMNotificationRepository) ListByUser(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %s: %w", userID, err)
	}
	return notifications, nil
}

// Search returns notifications matching the shared search pattern.
func (r *GORMNotificationRepository) Search(params SearchParams) ([]models.Notification, error) {
	var notifications []models.Notification
	q := listQuery(r.db.Model(&models.Notification{}), params,
		[]string{"message", "type"},
		map[string]string{"created_at": "created_at"},
		"created_at")
	if err := q.Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to search notifications: %w", err)
	}
	return notifications, nil
}

// GORMAdminActivityLogRepository is a GORM implementation of
// AdminActivityLogRepository.
type GORMAdminActivityLogRepository struct {
	db *gorm.DB
}

// NewGORMAdminActivityLogRepository creates a new instance of
// GORMAdminActivityLogRepository.
func NewGORMAdminActivityLogRepository(db *gorm.DB) *GORMAdminActivityLogRepository {
	return &GORMAdminActivityLogRepository{db: db}
}

// Create appends a new admin activity record.
func (r *GORMAdminActivityLogRepository) Create(entry *models.AdminActivityLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create admin activity log: %w", err)
	}
	return nil
}

// Search returns admin activity records matching the shared search pattern.
func (r *GORMAdminActivityLogRepository) Search(params SearchParams) ([]models.AdminActivityLog, error) {
	var entries []models.AdminActivityLog
	q := listQuery(r.db.Model(&models.AdminActivityLog{}), params,
		[]string{"activity_description"},
		map[string]string{"timestamp": "timestamp"},
		"timestamp")
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to search admin activity logs: %w", err)
	}
	return entries, nil
}

// GORMFeedbackRepository is a GORM implementation of FeedbackRepository.
type GORMFeedbackRepository struct {
	db *gorm.DB
}

// NewGORMFeedbackRepository creates a new instance of GORMFeedbackRepository.
func NewGORMFeedbackRepository(db *gorm.DB) *GORMFeedbackRepository {
	return &GORMFeedbackRepository{db: db}
}

// Create appends a new feedback record.
func (r *GORMFeedbackRepository) Create(feedback *models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// Search returns feedback records matching the shared search pattern.
func (r *GORMFeedbackRepository) Search(params SearchParams) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	q := listQuery(r.db.Model(&models.Feedback{}), params,
		[]string{"feedback_content"},
		map[string]string{"submitted_at": "submitted_at"},
		"submitted_at")
	if err := q.Find(&feedbacks).Error; err != nil {
		return nil, fmt.Errorf("failed to search feedbacks: %w", err)
	}
	return feedbacks, nil
}
