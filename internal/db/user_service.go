package db

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/balkashynov/tally/internal/models"
)

// CreateUserRequest holds the data needed to create a new user
type CreateUserRequest struct {
	Email     string
	FullName  string
	Superuser bool
}

// CreateUser stores a new active user and returns the bearer token issued to it.
// Only the token hash is persisted.
func (s *Store) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, string, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, "", err
	}

	token, hash, err := newToken()
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Email:       email,
		IsActive:    true,
		IsSuperuser: req.Superuser,
		TokenHash:   hash,
	}
	if name := strings.TrimSpace(req.FullName); name != "" {
		user.FullName = &name
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, "", translate(err, fmt.Sprintf("A user with the email %s", email))
	}

	s.log.InfoContext(ctx, "user created", "user_id", user.ID, "superuser", user.IsSuperuser)
	return &user, token, nil
}

// GetUsers retrieves every user
func (s *Store) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("email ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// RotateToken replaces the token of the user with the given email
func (s *Store) RotateToken(ctx context.Context, email string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	token, hash, err := newToken()
	if err != nil {
		return "", err
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update("token_hash", hash)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", newError(ErrNotFound, "No user with the email %s found.", email)
	}
	return token, nil
}

// Authenticate resolves a bearer token to the caller it was issued to
func (s *Store) Authenticate(ctx context.Context, token string) (Caller, error) {
	if token == "" {
		return Caller{}, newError(ErrUnauthorized, "Not authenticated.")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("token_hash = ?", hashToken(token)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Caller{}, newError(ErrUnauthorized, "Could not validate credentials.")
		}
		return Caller{}, err
	}
	if !user.IsActive {
		return Caller{}, newError(ErrUnauthorized, "Inactive user.")
	}

	return Caller{UserID: user.ID, Email: user.Email, Superuser: user.IsSuperuser}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", newError(ErrValidation, "invalid email address %q", email)
	}
	return email, nil
}

func newToken() (token, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	token = hex.EncodeToString(buf)
	return token, hashToken(token), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
