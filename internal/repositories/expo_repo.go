package repositories

import "vexpo/internal/models"

// ExpoRepository defines the interface for expo data access.
type ExpoRepository interface {
	Create(expo *models.Expo) error
	GetByID(id string) (*models.Expo, error)
	Update(id string, fields map[string]interface{}) (*models.Expo, error)
	Search(params SearchParams) ([]models.Expo, error)
}

// ExpoRegistrationRepository defines the interface for registration data
// access.
type ExpoRegistrationRepository interface {
	Create(reg *models.ExpoRegistration) error
	GetByUserAndExpo(userID, expoID string) (*models.ExpoRegistration, error)
	Search(params SearchParams) ([]models.ExpoRegistration, error)
}

// EventScheduleRepository defines the interface for schedule data access.
type EventScheduleRepository interface {
	Create(schedule *models.EventSchedule) error
	Search(params SearchParams) ([]models.EventSchedule, error)
}
