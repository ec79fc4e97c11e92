package models

import (
	"strings"
	"time"
)

// User represents a registered account on the platform.
// The password hash is never serialized to JSON.
type User struct {
	ID           string    `json:"user_id" gorm:"primaryKey;column:user_id;type:varchar(36)" validate:"omitempty,uuid"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name         string    `json:"name" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName keeps the table name aligned with the wire format.
func (User) TableName() string { return "users" }

// NormalizeEmail lower-cases and trims an email address. Every store and
// lookup of a user email goes through this so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUserInput is the request body for user registration.
type RegisterUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

// LoginInput is the request body for login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserInput carries the optional profile fields of a PATCH request.
// Pointer fields distinguish "absent" from "set to the zero value".
type UpdateUserInput struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=255"`
}
