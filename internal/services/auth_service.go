package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"vexpo/internal/events"
	"vexpo/internal/models"
	"vexpo/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	emitter    events.Emitter
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService. The emitter may be nil, in which
// case no real-time events are sent.
func NewAuthService(userRepo repositories.UserRepository, emitter events.Emitter, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		emitter:    emitter,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 7 * 24 * time.Hour, // Tokens carry a fixed 7-day validity window
	}
}

// Register creates a new user with a bcrypt-hashed password and returns the
// stored user together with a signed token. The email is lower-cased and
// trimmed before the uniqueness check and the insert.
func (s *AuthService) Register(input models.RegisterUserInput) (*models.User, string, error) {
	email := models.NormalizeEmail(input.Email)

	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	if s.emitter != nil {
		s.emitter.Broadcast(events.UserRegistered, events.UserPayload{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
		})
	}

	return user, token, nil
}

// Login authenticates a user by email and password and returns a signed
// token. An unknown email and a wrong password fail identically.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(models.NormalizeEmail(email))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(user)
}

// generateToken mints an HS256 JWT embedding the user's identity.
func (s *AuthService) generateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Authenticate resolves a bearer token to a stored user record. A valid
// token whose embedded identity no longer resolves returns
// repositories.ErrNotFound, which callers report separately from an invalid
// token.
func (s *AuthService) Authenticate(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve token user: %w", err)
	}
	return user, nil
}

// RecoverPassword starts the password recovery flow. The response is the
// same whether or not the email belongs to an account. Mail delivery is a
// logged mock standing in for an external email service.
func (s *AuthService) RecoverPassword(email string) error {
	normalized := models.NormalizeEmail(email)

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up account for recovery: %w", err)
	}

	log.Printf("Password recovery email queued for user %s (message %s)", user.ID, uuid.New().String())
	return nil
}
