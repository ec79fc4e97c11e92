package repositories

import (
	"errors"
	"fmt"

	"vexpo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their (already normalized) email address.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// Update applies the given column/value pairs to a user row and returns the
// updated record.
func (r *GORMUserRepository) Update(id string, fields map[string]interface{}) (*models.User, error) {
	res := r.db.Model(&models.User{}).Where("user_id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, res.Error)
	}
	return r.GetByID(id)
}

// Search returns users matching the shared search pattern. The free-text
// query matches name and email.
func (r *GORMUserRepository) Search(params SearchParams) ([]models.User, error) {
	var users []models.User
	q := listQuery(r.db.Model(&models.User{}), params,
		[]string{"name", "email"},
		map[string]string{"name": "name", "created_at": "created_at"},
		"created_at")
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}
