package models

import "time"

// Exhibitor is a user-owned profile representing an organization presenting
// at expos. At most one exhibitor profile exists per user.
type Exhibitor struct {
	ID        string    `json:"exhibitor_id" gorm:"primaryKey;column:exhibitor_id;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex;type:varchar(36)" validate:"required"`
	Name      string    `json:"name" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Email     string    `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Company   *string   `json:"company" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
}

func (Exhibitor) TableName() string { return "exhibitors" }

// CreateExhibitorInput is the request body for exhibitor profile creation.
type CreateExhibitorInput struct {
	UserID  string  `json:"user_id" validate:"required"`
	Name    string  `json:"name" validate:"required,min=1,max=255"`
	Email   string  `json:"email" validate:"required,email"`
	Company *string `json:"company"`
}

// UpdateExhibitorInput carries the optional fields of an exhibitor PATCH.
type UpdateExhibitorInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Company *string `json:"company"`
}

// VirtualBooth is the single content page owned by an exhibitor.
// Authorization for booth mutation walks the chain booth -> exhibitor -> user.
type VirtualBooth struct {
	ID             string  `json:"booth_id" gorm:"primaryKey;column:booth_id;type:varchar(36)"`
	ExhibitorID    string  `json:"exhibitor_id" gorm:"uniqueIndex;type:varchar(36)" validate:"required"`
	Description    *string `json:"description"`
	MediaURLs      *string `json:"media_urls" gorm:"column:media_urls"`
	ProductCatalog *string `json:"product_catalog"`
}

func (VirtualBooth) TableName() string { return "virtual_booths" }

// CreateVirtualBoothInput is the request body for booth creation.
type CreateVirtualBoothInput struct {
	ExhibitorID    string  `json:"exhibitor_id" validate:"required"`
	Description    *string `json:"description"`
	MediaURLs      *string `json:"media_urls"`
	ProductCatalog *string `json:"product_catalog"`
}

// UpdateVirtualBoothInput carries the optional fields of a booth PATCH.
type UpdateVirtualBoothInput struct {
	Description    *string `json:"description"`
	MediaURLs      *string `json:"media_urls"`
	ProductCatalog *string `json:"product_catalog"`
}

// UserInteraction is an append-only log record of a user action directed at
// an exhibitor (for example a chat initiation).
type UserInteraction struct {
	ID              string    `json:"interaction_id" gorm:"primaryKey;column:interaction_id;type:varchar(36)"`
	UserID          string    `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	ExhibitorID     string    `json:"exhibitor_id" gorm:"index;type:varchar(36)" validate:"required"`
	InteractionType string    `json:"interaction_type" gorm:"type:varchar(255)" validate:"required,min=1"`
	CreatedAt       time.Time `json:"created_at"`
}

func (UserInteraction) TableName() string { return "user_interactions" }

// CreateUserInteractionInput is the payload for recording an interaction.
type CreateUserInteractionInput struct {
	UserID          string `json:"user_id" validate:"required"`
	ExhibitorID     string `json:"exhibitor_id" validate:"required"`
	InteractionType string `json:"interaction_type" validate:"required,min=1"`
}
