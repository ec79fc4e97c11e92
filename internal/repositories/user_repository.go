package repositories

import "vexpo/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(id string, fields map[string]interface{}) (*models.User, error)
	Search(params SearchParams) ([]models.User, error)
}
