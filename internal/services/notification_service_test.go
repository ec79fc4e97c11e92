package services_test

import (
	"testing"

	"vexpo/internal/models"
	"vexpo/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotificationService_Create(t *testing.T) {
	mockNotificationRepo := new(MockNotificationRepository)
	mockEmitter := new(MockEmitter)
	notificationService := services.NewNotificationService(mockNotificationRepo, nil, nil, mockEmitter)

	// A created notification is delivered to its target user only, never
	// broadcast.
	mockNotificationRepo.On("Create", mock.AnythingOfType("*models.Notification")).Return(nil).Once()
	mockEmitter.On("ToUser", "user-1", "notification/created", mock.Anything).Once()

	notification, err := notificationService.Create(models.CreateNotificationInput{
		UserID:  "user-1",
		Message: "Booth visit reminder",
		Type:    "reminder",
	})
	assert.NoError(t, err)
	assert.Equal(t, "user-1", notification.UserID)
	mockNotificationRepo.AssertExpectations(t)
	mockEmitter.AssertExpectations(t)
	mockEmitter.AssertNotCalled(t, "Broadcast")
}

func TestNotificationService_ListForUser(t *testing.T) {
	mockNotificationRepo := new(MockNotificationRepository)
	notificationService := services.NewNotificationService(mockNotificationRepo, nil, nil, nil)

	// Users read only their own notifications.
	_, err := notificationService.ListForUser("user-2", "user-1")
	assert.ErrorIs(t, err, services.ErrAccessDenied)
	mockNotificationRepo.AssertNotCalled(t, "ListByUser")

	expected := []models.Notification{{ID: "n-1", UserID: "user-1", Message: "Hello"}}
	mockNotificationRepo.On("ListByUser", "user-1").Return(expected, nil).Once()
	notifications, err := notificationService.ListForUser("user-1", "user-1")
	assert.NoError(t, err)
	assert.Len(t, notifications, 1)
	mockNotificationRepo.AssertExpectations(t)
}
