package services

import (
	"fmt"
	"strings"

	"vexpo/internal/events"
	"vexpo/internal/models"
	"vexpo/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles business logic for user profiles.
type UserService struct {
	userRepo repositories.UserRepository
	emitter  events.Emitter
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, emitter events.Emitter) *UserService {
	return &UserService{userRepo: userRepo, emitter: emitter}
}

// GetByID retrieves a user profile by ID.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// Update applies a partial profile update. Only the profile owner may update
// it; a password change is re-hashed before storage.
func (s *UserService) Update(callerID, userID string, input models.UpdateUserInput) (*models.User, error) {
	if callerID != userID {
		return nil, ErrAccessDenied
	}

	fields := map[string]interface{}{}
	if input.Email != nil {
		fields["email"] = models.NormalizeEmail(*input.Email)
	}
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		fields["password_hash"] = string(hashed)
	}
	if len(fields) == 0 {
		return nil, ErrNoUpdateFields
	}

	user, err := s.userRepo.Update(userID, fields)
	if err != nil {
		return nil, err
	}

	if s.emitter != nil {
		s.emitter.Broadcast(events.UserProfileUpdated, events.UserPayload{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
		})
	}

	return user, nil
}

// Search returns users matching the shared search pattern.
func (s *UserService) Search(params repositories.SearchParams) ([]models.User, error) {
	return s.userRepo.Search(params)
}
