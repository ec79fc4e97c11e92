package models

import "time"

// Expo is a scheduled event listed and searchable by attendees.
// Date is stored as a normalized RFC3339 UTC timestamp string.
type Expo struct {
	ID          string `json:"expo_id" gorm:"primaryKey;column:expo_id;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string `json:"title" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"required,min=1"`
	Date        string `json:"date" gorm:"type:varchar(64)" validate:"required"`
	Category    string `json:"category" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Location    string `json:"location" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Featured    bool   `json:"featured"`
}

func (Expo) TableName() string { return "expos" }

// CreateExpoInput is the request body for expo creation.
type CreateExpoInput struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"required,min=1"`
	Date        string `json:"date" validate:"required"`
	Category    string `json:"category" validate:"required,min=1,max=255"`
	Location    string `json:"location" validate:"required,min=1,max=255"`
	Featured    bool   `json:"featured"`
}

// UpdateExpoInput carries the optional fields of an expo PATCH request.
type UpdateExpoInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Date        *string `json:"date"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=255"`
	Location    *string `json:"location" validate:"omitempty,min=1,max=255"`
	Featured    *bool   `json:"featured"`
}

// ExpoRegistration is the attendance intent of a user for an expo.
// At most one registration exists per (user_id, expo_id) pair.
type ExpoRegistration struct {
	ID           string    `json:"registration_id" gorm:"primaryKey;column:registration_id;type:varchar(36)"`
	UserID       string    `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	ExpoID       string    `json:"expo_id" gorm:"index;type:varchar(36)" validate:"required"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (ExpoRegistration) TableName() string { return "expo_registrations" }

// CreateExpoRegistrationInput is the request body for registering a user for
// an expo. The user_id must match the authenticated caller.
type CreateExpoRegistrationInput struct {
	UserID string `json:"user_id" validate:"required"`
	ExpoID string `json:"expo_id" validate:"required"`
}

// EventSchedule is a scheduled program item within an expo.
type EventSchedule struct {
	ID          string    `json:"schedule_id" gorm:"primaryKey;column:schedule_id;type:varchar(36)"`
	ExpoID      string    `json:"expo_id" gorm:"index;type:varchar(36)" validate:"required"`
	EventName   string    `json:"event_name" gorm:"type:varchar(255)" validate:"required,min=1"`
	EventTime   time.Time `json:"event_time" validate:"required"`
	SpeakerInfo *string   `json:"speaker_info"`
}

func (EventSchedule) TableName() string { return "event_schedules" }

// CreateEventScheduleInput is the request body for schedule creation.
type CreateEventScheduleInput struct {
	ExpoID      string    `json:"expo_id" validate:"required"`
	EventName   string    `json:"event_name" validate:"required,min=1"`
	EventTime   time.Time `json:"event_time" validate:"required"`
	SpeakerInfo *string   `json:"speaker_info"`
}
