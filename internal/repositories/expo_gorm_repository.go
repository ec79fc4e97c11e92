package repositories

import (
	"errors"
	"fmt"

	"vexpo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMExpoRepository is a GORM implementation of ExpoRepository.
type GORMExpoRepository struct {
	db *gorm.DB
}

// NewGORMExpoRepository creates a new instance of GORMExpoRepository.
func NewGORMExpoRepository(db *gorm.DB) *GORMExpoRepository {
	return &GORMExpoRepository{db: db}
}

// Create creates a new expo in the database.
func (r *GORMExpoRepository) Create(expo *models.Expo) error {
	if expo.ID == "" {
		expo.ID = uuid.New().String()
	}
	if err := r.db.Create(expo).Error; err != nil {
		return fmt.Errorf("failed to create expo: %w", err)
	}
	return nil
}

// GetByID retrieves a single expo by its ID.
func (r *GORMExpoRepository) GetByID(id string) (*models.Expo, error) {
	var expo models.Expo
	if err := r.db.First(&expo, "expo_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("expo with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get expo by ID %s: %w", id, err)
	}
	return &expo, nil
}

// Update applies the given column/value pairs to an expo row and returns the
// updated record.
func (r *GORMExpoRepository) Update(id string, fields map[string]interface{}) (*models.Expo, error) {
	res := r.db.Model(&models.Expo{}).Where("expo_id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update expo %s: %w", id, res.Error)
	}
	return r.GetByID(id)
}

// Search returns expos matching the shared search pattern. The free-text
// query matches title, description and category.
func (r *GORMExpoRepository) Search(params SearchParams) ([]models.Expo, error) {
	var expos []models.Expo
	q := listQuery(r.db.Model(&models.Expo{}), params,
		[]string{"title", "description", "category"},
		map[string]string{"title": "title", "date": "date", "category": "category"},
		"date")
	if err := q.Find(&expos).Error; err != nil {
		return nil, fmt.Errorf("failed to search expos: %w", err)
	}
	return expos, nil
}

// GORMExpoRegistrationRepository is a GORM implementation of
// ExpoRegistrationRepository.
type GORMExpoRegistrationRepository struct {
	db *gorm.DB
}

// NewGORMExpoRegistrationRepository creates a new instance of
// GORMExpoRegistrationRepository.
func NewGORMExpoRegistrationRepository(db *gorm.DB) *GORMExpoRegistrationRepository {
	return &GORMExpoRegistrationRepository{db: db}
}

// Create creates a new expo registration in the database.
func (r *GORMExpoRegistrationRepository) Create(reg *models.ExpoRegistration) error {
	if reg.ID == "" {
		reg.ID = uuid.New().String()
	}
	if err := r.db.Create(reg).Error; err != nil {
		return fmt.Errorf("failed to create expo registration: %w", err)
	}
	return nil
}

// GetByUserAndExpo retrieves the registration for a (user, expo) pair, the
// uniqueness key of the entity.
func (r *GORMExpoRegistrationRepository) GetByUserAndExpo(userID, expoID string) (*models.ExpoRegistration, error) {
	var reg models.ExpoRegistration
	err := r.db.First(&reg, "user_id = ? AND expo_id = ?", userID, expoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("registration for user %s and expo %s: %w", userID, expoID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get registration for user %s and expo %s: %w", userID, expoID, err)
	}
	return &reg, nil
}

// Search returns registrations matching the shared search pattern.
func (r *GORMExpoRegistrationRepository) Search(params SearchParams) ([]models.ExpoRegistration, error) {
	var regs []models.ExpoRegistration
	q := listQuery(r.db.Model(&models.ExpoRegistration{}), params,
		[]string{"user_id", "expo_id"},
		map[string]string{"registered_at": "registered_at"},
		"registered_at")
	if err := q.Find(&regs).Error; err != nil {
		return nil, fmt.Errorf("failed to search expo registrations: %w", err)
	}
	return regs, nil
}

// GORMEventScheduleRepository is a GORM implementation of
// EventScheduleRepository.
type GORMEventScheduleRepository struct {
	db *gorm.DB
}

// NewGORMEventScheduleRepository creates a new instance of
// GORMEventScheduleRepository.
func NewGORMEventScheduleRepository(db *gorm.DB) *GORMEventScheduleRepository {
	return &GORMEventScheduleRepository{db: db}
}

// Create creates a new event schedule entry in the database.
func (r *GORMEventScheduleRepository) Create(schedule *models.EventSchedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.New().String()
	}
	if err := r.db.Create(schedule).Error; err != nil {
		return fmt.Errorf("failed to create event schedule: %w", err)
	}
	return nil
}

// Search returns schedule entries matching the shared search pattern.
func (r *GORMEventScheduleRepository) Search(params SearchParams) ([]models.EventSchedule, error) {
	var schedules []models.EventSchedule
	q := listQuery(r.db.Model(&models.EventSchedule{}), params,
		[]string{"event_name", "speaker_info"},
		map[string]string{"event_time": "event_time"},
		"event_time")
	if err := q.Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("failed to search event schedules: %w", err)
	}
	return schedules, nil
}
