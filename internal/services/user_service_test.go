package services_test

import (
	"testing"

	"vexpo/internal/events"
	"vexpo/internal/models"
	"vexpo/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Update(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockEmitter := new(MockEmitter)
	userService := services.NewUserService(mockRepo, mockEmitter)

	newName := "  New Name  "
	newEmail := "New@Example.com"
	newPassword := "newpassword123"

	// Only the profile owner may update it.
	_, err := userService.Update("user-2", "user-1", models.UpdateUserInput{Name: &newName})
	assert.ErrorIs(t, err, services.ErrAccessDenied)

	// An empty update body is rejected before any repository call.
	_, err = userService.Update("user-1", "user-1", models.UpdateUserInput{})
	assert.ErrorIs(t, err, services.ErrNoUpdateFields)
	mockRepo.AssertNotCalled(t, "Update")

	// Provided fields are normalized and a password change is re-hashed.
	// The update is broadcast with only the public identity fields.
	updated := &models.User{ID: "user-1", Email: "new@example.com", Name: "New Name"}
	mockRepo.On("Update", "user-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		if fields["email"] != "new@example.com" || fields["name"] != "New Name" {
			return false
		}
		hash, ok := fields["password_hash"].(string)
		if !ok {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(newPassword)) == nil
	})).Return(updated, nil).Once()
	mockEmitter.On("Broadcast", "user/profileUpdated", events.UserPayload{
		UserID: "user-1",
		Email:  "new@example.com",
		Name:   "New Name",
	}).Once()

	user, err := userService.Update("user-1", "user-1", models.UpdateUserInput{
		Email:    &newEmail,
		Name:     &newName,
		Password: &newPassword,
	})
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	mockRepo.AssertExpectations(t)
	mockEmitter.AssertExpectations(t)
}
