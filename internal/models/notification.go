package models

import "time"

// Notification is an immutable per-user message, read newest first.
type Notification struct {
	ID        string    `json:"notification_id" gorm:"primaryKey;column:notification_id;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	Message   string    `json:"message" validate:"required,min=1"`
	Type      string    `json:"type" gorm:"type:varchar(255)" validate:"required,min=1"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// CreateNotificationInput is the payload for creating a notification.
type CreateNotificationInput struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message" validate:"required,min=1"`
	Type    string `json:"type" validate:"required,min=1"`
}

// AdminActivityLog is an append-only record of an administrative action.
type AdminActivityLog struct {
	ID                  string    `json:"log_id" gorm:"primaryKey;column:log_id;type:varchar(36)"`
	AdminID             string    `json:"admin_id" gorm:"index;type:varchar(36)" validate:"required"`
	ActivityDescription string    `json:"activity_description" validate:"required,min=1"`
	Timestamp           time.Time `json:"timestamp"`
}

func (AdminActivityLog) TableName() string { return "admin_activity_logs" }

// CreateAdminActivityLogInput is the payload for recording an admin activity.
type CreateAdminActivityLogInput struct {
	AdminID             string `json:"admin_id" validate:"required"`
	ActivityDescription string `json:"activity_description" validate:"required,min=1"`
}

// Feedback is an append-only record of user feedback.
type Feedback struct {
	ID              string    `json:"feedback_id" gorm:"primaryKey;column:feedback_id;type:varchar(36)"`
	UserID          string    `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	FeedbackContent string    `json:"feedback_content" validate:"required,min=1"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

func (Feedback) TableName() string { return "feedbacks" }

// CreateFeedbackInput is the payload for submitting feedback.
type CreateFeedbackInput struct {
	UserID          string `json:"user_id" validate:"required"`
	FeedbackContent string `json:"feedback_content" validate:"required,min=1"`
}
