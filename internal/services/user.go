package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phonedex/phonedex-backend/internal/models"
	"github.com/phonedex/phonedex-backend/internal/utils"
	"gorm.io/gorm"
)

// UserRepository is the persistence handle for the local mirror of identity
// provider accounts.
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	MutateUser(ctx context.Context, id string, fn func(*models.User) error) (*models.User, error)
}

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	if users == nil {
		panic("user repository cannot be nil")
	}
	return &UserService{users: users}
}

type SyncUserInput struct {
	UserID string
	Email  string
	Name   string
}

// Sync upserts the caller's profile from their verified token claims. An
// existing account gets its display name refreshed and last-login stamped; an
// unknown uid gets a fresh member account. The bool reports whether a new
// account was created.
func (s *UserService) Sync(ctx context.Context, in SyncUserInput) (*models.User, bool, error) {
	if in.UserID == "" || in.Email == "" {
		return nil, false, fmt.Errorf("%w: user id and email are required", ErrInvalidArgument)
	}

	existing, err := s.users.MutateUser(ctx, in.UserID, func(u *models.User) error {
		u.LastLogin = time.Now()
		if name := utils.SanitizeString(in.Name); name != "" {
			u.Name = name
		}
		return nil
	})
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	u := &models.User{
		ID:        in.UserID,
		Email:     in.Email,
		Name:      utils.SanitizeString(in.Name),
		AvatarURL: defaultAvatarURL(in.Name),
		Role:      "member",
		IsActive:  true,
		LastLogin: time.Now(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// Profile returns the caller's stored account record.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user %s", userID)
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name      string
	AvatarURL string
}

// UpdateProfile changes the caller's display name and avatar. Blank fields are
// left untouched; an update carrying nothing is rejected.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error) {
	name := utils.SanitizeString(in.Name)
	avatar := utils.SanitizeString(in.AvatarURL)
	if name == "" && avatar == "" {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}

	u, err := s.users.MutateUser(ctx, userID, func(u *models.User) error {
		if name != "" {
			u.Name = name
		}
		if avatar != "" {
			u.AvatarURL = avatar
		}
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "user %s", userID)
	}
	return u, nil
}
