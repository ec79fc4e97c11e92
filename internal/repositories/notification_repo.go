package repositories

import "vexpo/internal/models"

// NotificationRepository defines the interface for notification data access.
// Notifications are append-only.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListByUser(userID string) ([]models.Notification, error)
	Search(params SearchParams) ([]models.Notification, error)
}

// AdminActivityLogRepository defines the interface for admin log data
// access.
type AdminActivityLogRepository interface {
	Create(entry *models.AdminActivityLog) error
	Search(params SearchParams) ([]models.AdminActivityLog, error)
}

// FeedbackRepository defines the interface for feedback data access.
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	Search(params SearchParams) ([]models.Feedback, error)
}
