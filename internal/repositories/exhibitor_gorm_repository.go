package repositories

import (
	"errors"
	"fmt"

	"vexpo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMExhibitorRepository is a GORM implementation of ExhibitorRepository.
type GORMExhibitorRepository struct {
	db *gorm.DB
}

// NewGORMExhibitorRepository creates a new instance of
// GORMExhibitorRepository.
func NewGORMExhibitorRepository(db *gorm.DB) *GORMExhibitorRepository {
	return &GORMExhibitorRepository{db: db}
}

// Create creates a new exhibitor profile in the database.
func (r *GORMExhibitorRepository) Create(exhibitor *models.Exhibitor) error {
	if exhibitor.ID == "" {
		exhibitor.ID = uuid.New().String()
	}
	if err := r.db.Create(exhibitor).Error; err != nil {
		return fmt.Errorf("failed to create exhibitor: %w", err)
	}
	return nil
}

// GetByID retrieves a single exhibitor by its ID.
func (r *GORMExhibitorRepository) GetByID(id string) (*models.Exhibitor, error) {
	var exhibitor models.Exhibitor
	if err := r.db.First(&exhibitor, "exhibitor_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("exhibitor with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get exhibitor by ID %s: %w", id, err)
	}
	return &exhibitor, nil
}

// GetByUserID retrieves the exhibitor owned by a user. A user owns at most
// one exhibitor profile.
func (r *GORMExhibitorRepository) GetByUserID(userID string) (*models.Exhibitor, error) {
	var exhibitor models.Exhibitor
	if err := r.db.First(&exhibitor, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("exhibitor for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get exhibitor for user %s: %w", userID, err)
	}
	return &exhibitor, nil
}

// Update applies the given column/value pairs to an exhibitor row and
// returns the updated record.
func (r *GORMExhibitorRepository) Update(id string, fields map[string]interface{}) (*models.Exhibitor, error) {
	res := r.db.Model(&models.Exhibitor{}).Where("exhibitor_id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update exhibitor %s: %w", id, res.Error)
	}
	return r.GetByID(id)
}

// Search returns exhibitors matching the shared search pattern. The
// free-text query matches name, email and company.
func (r *GORMExhibitorRepository) Search(params SearchParams) ([]models.Exhibitor, error) {
	var exhibitors []models.Exhibitor
	q := listQuery(r.db.Model(&models.Exhibitor{}), params,
		[]string{"name", "email", "company"},
		map[string]string{"name": "name", "created_at": "created_at"},
		"created_at")
	if err := q.Find(&exhibitors).Error; err != nil {
		return nil, fmt.Errorf("failed to search exhibitors: %w", err)
	}
	return exhibitors, nil
}

// GORMVirtualBoothRepository is a GORM implementation of
// VirtualBoothRepository.
type GORMVirtualBoothRepository struct {
	db *gorm.DB
}

// NewGORMVirtualBoothRepository creates a new instance of
// GORMVirtualBoothRepository.
func NewGORMVirtualBoothRepository(db *gorm.DB) *GORMVirtualBoothRepository {
	return &GORMVirtualBoothRepository{db: db}
}

// Create creates a new virtual booth in the database.
func (r *GORMVirtualBoothRepository) Create(booth *models.VirtualBooth) error {
	if booth.ID == "" {
		booth.ID = uuid.New().String()
	}
	if err := r.db.Create(booth).Error; err != nil {
		return fmt.Errorf("failed to create virtual booth: %w", err)
	}
	return nil
}

// GetByID retrieves a single booth by its ID.
func (r *GORMVirtualBoothRepository) GetByID(id string) (*models.VirtualBooth, error) {
	var booth models.VirtualBooth
	if err := r.db.First(&booth, "booth_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("virtual booth with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get virtual booth by ID %s: %w", id, err)
	}
	return &booth, nil
}

// GetByExhibitorID retrieves the booth owned by an exhibitor. An exhibitor
// owns at most one booth.
func (r *GORMVirtualBoothRepository) GetByExhibitorID(exhibitorID string) (*models.VirtualBooth, error) {
	var booth models.VirtualBooth
	if err := r.db.First(&booth, "exhibitor_id = ?", exhibitorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("virtual booth for exhibitor %s: %w", exhibitorID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get virtual booth for exhibitor %s: %w", exhibitorID, err)
	}
	return &booth, nil
}

// Update applies the given column/value pairs to a booth row and returns the
// updated record.
func (r *GORMVirtualBoothRepository) Update(id string, fields map[string]interface{}) (*models.VirtualBooth, error) {
	res := r.db.Model(&models.VirtualBooth{}).Where("booth_id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update virtual booth %s: %w", id, res.Error)
	}
	return r.GetByID(id)
}

// GORMUserInteractionRepository is a GORM implementation of
// UserInteractionRepository.
type GORMUserInteractionRepository struct {
	db *gorm.DB
}

// NewGORMUserInteractionRepository creates a new instance of
// GORMUserInteractionRepository.
func NewGORMUserInteractionRepository(db *gorm.DB) *GORMUserInteractionRepository {
	return &GORMUserInteractionRepository{db: db}
}

// Create appends a new interaction record.
func (r *GORMUserInteractionRepository) Create(interaction *models.UserInteraction) error {
	if interaction.ID == "" {
		interaction.ID = uuid.New().String()
	}
	if err := r.db.Create(interaction).Error; err != nil {
		return fmt.Errorf("failed to create user interaction: %w", err)
	}
	return nil
}

// Search returns interactions matching the shared search pattern.
func (r *GORMUserInteractionRepository) Search(params SearchParams) ([]models.UserInteraction, error) {
	var interactions []models.UserInteraction
	q := listQuery(r.db.Model(&models.UserInteraction{}), params,
		[]string{"interaction_type"},
		map[string]string{"interaction_type": "interaction_type", "created_at": "created_at"},
		"created_at")
	if err := q.Find(&interactions).Error; err != nil {
		return nil, fmt.Errorf("failed to search user interactions: %w", err)
	}
	return interactions, nil
}
