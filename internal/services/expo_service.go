package services

import (
	"fmt"
	"time"

	"vexpo/internal/events"
	"vexpo/internal/models"
	"vexpo/internal/repositories"
)

// registrationMessage is the notification created as a side effect of a
// successful expo registration.
const registrationMessage = "Your expo registration was successful!"

// ExpoService handles business logic for expos, registrations and event
// schedules.
type ExpoService struct {
	expoRepo         repositories.ExpoRepository
	registrationRepo repositories.ExpoRegistrationRepository
	scheduleRepo     repositories.EventScheduleRepository
	notificationRepo repositories.NotificationRepository
	emitter          events.Emitter
}

// NewExpoService creates a new ExpoService.
func NewExpoService(
	expoRepo repositories.ExpoRepository,
	registrationRepo repositories.ExpoRegistrationRepository,
	scheduleRepo repositories.EventScheduleRepository,
	notificationRepo repositories.NotificationRepository,
	emitter events.Emitter,
) *ExpoService {
	return &ExpoService{
		expoRepo:         expoRepo,
		registrationRepo: registrationRepo,
		scheduleRepo:     scheduleRepo,
		notificationRepo: notificationRepo,
		emitter:          emitter,
	}
}

// normalizeDate turns an incoming date value into the canonical RFC3339 UTC
// string every expo row stores.
func normalizeDate(value string) (string, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// Create creates a new expo with a normalized date.
func (s *ExpoService) Create(input models.CreateExpoInput) (*models.Expo, error) {
	date, err := normalizeDate(input.Date)
	if err != nil {
		return nil, err
	}

	expo := &models.Expo{
		Title:       input.Title,
		Description: input.Description,
		Date:        date,
		Category:    input.Category,
		Location:    input.Location,
		Featured:    input.Featured,
	}
	if err := s.expoRepo.Create(expo); err != nil {
		return nil, err
	}
	return expo, nil
}

// Get retrieves a single expo by ID.
func (s *ExpoService) Get(id string) (*models.Expo, error) {
	return s.expoRepo.GetByID(id)
}

// Update applies a partial expo update and broadcasts the updated record.
// Any authenticated caller may update any expo; the resource carries no
// ownership.
func (s *ExpoService) Update(id string, input models.UpdateExpoInput) (*models.Expo, error) {
	if _, err := s.expoRepo.GetByID(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Date != nil {
		date, err := normalizeDate(*input.Date)
		if err != nil {
			return nil, err
		}
		fields["date"] = date
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.Featured != nil {
		fields["featured"] = *input.Featured
	}
	if len(fields) == 0 {
		return nil, ErrNoUpdateFields
	}

	expo, err := s.expoRepo.Update(id, fields)
	if err != nil {
		return nil, err
	}

	if s.emitter != nil {
		s.emitter.Broadcast(events.ExpoUpdated, expo)
	}

	return expo, nil
}

// Search returns expos matching the shared search pattern.
func (s *ExpoService) Search(params repositories.SearchParams) ([]models.Expo, error) {
	return s.expoRepo.Search(params)
}

// RegisterUser records a user's attendance intent for an expo. The caller
// must be the registering user, the expo must exist, and a user registers
// for an expo at most once. A successful registration also creates a
// notification for the user and emits both real-time events.
func (s *ExpoService) RegisterUser(callerID string, input models.CreateExpoRegistrationInput) (*models.ExpoRegistration, error) {
	if callerID != input.UserID {
		return nil, ErrAccessDenied
	}

	if _, err := s.expoRepo.GetByID(input.ExpoID); err != nil {
		return nil, err
	}

	if existing, err := s.registrationRepo.GetByUserAndExpo(input.UserID, input.ExpoID); err == nil && existing != nil {
		return nil, ErrAlreadyRegistered
	}

	now := time.Now().UTC()
	registration := &models.ExpoRegistration{
		UserID:       input.UserID,
		ExpoID:       input.ExpoID,
		RegisteredAt: now,
	}
	if err := s.registrationRepo.Create(registration); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		UserID:    input.UserID,
		Message:   registrationMessage,
		Type:      "registration",
		CreatedAt: now,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("registration stored but notification failed: %w", err)
	}

	if s.emitter != nil {
		s.emitter.Broadcast(events.RegistrationCreated, registration)
		s.emitter.ToUser(notification.UserID, events.NotificationCreated, notification)
	}

	return registration, nil
}

// SearchRegistrations returns registrations matching the shared search
// pattern.
func (s *ExpoService) SearchRegistrations(params repositories.SearchParams) ([]models.ExpoRegistration, error) {
	return s.registrationRepo.Search(params)
}

// CreateSchedule adds a program item to an existing expo.
func (s *ExpoService) CreateSchedule(input models.CreateEventScheduleInput) (*models.EventSchedule, error) {
	if _, err := s.expoRepo.GetByID(input.ExpoID); err != nil {
		return nil, err
	}

	schedule := &models.EventSchedule{
		ExpoID:      input.ExpoID,
		EventName:   input.EventName,
		EventTime:   input.EventTime.UTC(),
		SpeakerInfo: input.SpeakerInfo,
	}
	if err := s.scheduleRepo.Create(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// SearchSchedules returns schedule entries matching the shared search
// pattern.
func (s *ExpoService) SearchSchedules(params repositories.SearchParams) ([]models.EventSchedule, error) {
	return s.scheduleRepo.Search(params)
}
