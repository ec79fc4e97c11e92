package repositories

import "vexpo/internal/models"

// ExhibitorRepository defines the interface for exhibitor data access.
type ExhibitorRepository interface {
	Create(exhibitor *models.Exhibitor) error
	GetByID(id string) (*models.Exhibitor, error)
	GetByUserID(userID string) (*models.Exhibitor, error)
	Update(id string, fields map[string]interface{}) (*models.Exhibitor, error)
	Search(params SearchParams) ([]models.Exhibitor, error)
}

// VirtualBoothRepository defines the interface for booth data access.
type VirtualBoothRepository interface {
	Create(booth *models.VirtualBooth) error
	GetByID(id string) (*models.VirtualBooth, error)
	GetByExhibitorID(exhibitorID string) (*models.VirtualBooth, error)
	Update(id string, fields map[string]interface{}) (*models.VirtualBooth, error)
}

// UserInteractionRepository defines the interface for interaction data
// access. Interactions are append-only; there is no update or delete.
type UserInteractionRepository interface {
	Create(interaction *models.UserInteraction) error
	Search(params SearchParams) ([]models.UserInteraction, error)
}
