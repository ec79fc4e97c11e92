package services

import (
	"time"

	"vexpo/internal/events"
	"vexpo/internal/models"
	"vexpo/internal/repositories"
)

// NotificationService handles business logic for notifications, admin
// activity logs and feedback. All three entities are append-only.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	adminLogRepo     repositories.AdminActivityLogRepository
	feedbackRepo     repositories.FeedbackRepository
	emitter          events.Emitter
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	adminLogRepo repositories.AdminActivityLogRepository,
	feedbackRepo repositories.FeedbackRepository,
	emitter events.Emitter,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		adminLogRepo:     adminLogRepo,
		feedbackRepo:     feedbackRepo,
		emitter:          emitter,
	}
}

// Create stores a notification and delivers it to the target user's
// real-time channel only.
func (s *NotificationService) Create(input models.CreateNotificationInput) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:    input.UserID,
		Message:   input.Message,
		Type:      input.Type,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	if s.emitter != nil {
		s.emitter.ToUser(notification.UserID, events.NotificationCreated, notification)
	}

	return notification, nil
}

// ListForUser returns a user's notifications, newest first. Users read only
// their own notifications.
func (s *NotificationService) ListForUser(callerID, userID string) ([]models.Notification, error) {
	if callerID != userID {
		return nil, ErrAccessDenied
	}
	return s.notificationRepo.ListByUser(userID)
}

// CreateAdminLog appends an admin activity record.
func (s *NotificationService) CreateAdminLog(input models.CreateAdminActivityLogInput) (*models.AdminActivityLog, error) {
	entry := &models.AdminActivityLog{
		AdminID:             input.AdminID,
		ActivityDescription: input.ActivityDescription,
		Timestamp:           time.Now().UTC(),
	}
	if err := s.adminLogRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// SearchAdminLogs returns admin activity records matching the shared search
// pattern.
func (s *NotificationService) SearchAdminLogs(params repositories.SearchParams) ([]models.AdminActivityLog, error) {
	return s.adminLogRepo.Search(params)
}

// CreateFeedback appends a feedback record.
func (s *NotificationService) CreateFeedback(input models.CreateFeedbackInput) (*models.Feedback, error) {
	feedback := &models.Feedback{
		UserID:          input.UserID,
		FeedbackContent: input.FeedbackContent,
		SubmittedAt:     time.Now().UTC(),
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// SearchFeedback returns feedback records matching the shared search
// pattern.
func (s *NotificationService) SearchFeedback(params repositories.SearchParams) ([]models.Feedback, error) {
	return s.feedbackRepo.Search(params)
}
