package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/geezit/geezit-server/internal/apperrors"
	"github.com/geezit/geezit-server/internal/auth"
	"github.com/geezit/geezit-server/internal/models"
	"github.com/geezit/geezit-server/internal/repositories"
)

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type Profile struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int64     `json:"message_count"`
	HeartCount   int64     `json:"heart_count"`
}

type ProfileUpdateResult struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	switch {
	case n < MinUsernameLength:
		return apperrors.ErrUsernameTooShort
	case n > MaxUsernameLength:
		return apperrors.ErrUsernameTooLong
	}
	return nil
}

func (s *Service) Signup(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.ErrCredentialsRequired
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, apperrors.ErrPasswordTooShort
	}

	exists, err := s.store.UsernameExists(ctx, username)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("check username: %w", err))
	}
	if exists {
		return nil, apperrors.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &models.User{Username: username, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, apperrors.Internal(fmt.Errorf("create user: %w", err))
	}

	s.log.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return s.authResult(user)
}

// Login answers ErrInvalidCredentials for both an unknown username and a
// wrong password.
func (s *Service) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.store.UserByUsername(ctx, username)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil, apperrors.ErrInvalidCredentials
	case err != nil:
		return nil, apperrors.Internal(fmt.Errorf("load user: %w", err))
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.authResult(user)
}

func (s *Service) authResult(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &AuthResult{
		Token: token,
		User:  UserSummary{ID: user.ID, Username: user.Username},
	}, nil
}

// GetProfile loads the user and counts received messages and hearts in
// parallel. Counts are read fresh on every call.
func (s *Service) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.store.UserByID(ctx, userID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil, apperrors.ErrUserNotFound
	case err != nil:
		return nil, apperrors.Internal(fmt.Errorf("load user: %w", err))
	}

	var messageCount, heartCount int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.store.CountMessagesFor(gctx, userID)
		messageCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountHeartsFor(gctx, userID)
		heartCount = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("count inbox: %w", err))
	}

	return &Profile{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		CreatedAt:    user.CreatedAt,
		MessageCount: messageCount,
		HeartCount:   heartCount,
	}, nil
}

// UpdateProfile changes username and/or email. Empty strings are treated
// as not supplied.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, username, email string) (*ProfileUpdateResult, error) {
	var upd repositories.ProfileUpdate
	if username != "" {
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		taken, err := s.store.UsernameTakenByOther(ctx, username, userID)
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("check username: %w", err))
		}
		if taken {
			return nil, apperrors.ErrUsernameTaken
		}
		upd.Username = &username
	}
	if email != "" {
		if utf8.RuneCountInString(email) > MaxEmailLength {
			return nil, apperrors.ErrEmailTooLong
		}
		taken, err := s.store.EmailTakenByOther(ctx, email, userID)
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("check email: %w", err))
		}
		if taken {
			return nil, apperrors.ErrEmailTaken
		}
		upd.Email = &email
	}
	if upd.Empty() {
		return nil, apperrors.ErrNoUpdates
	}

	user, err := s.store.UpdateProfile(ctx, userID, upd)
	switch {
	case errors.Is(err, repositories.ErrDuplicate):
		return nil, s.duplicateProfileError(ctx, userID, upd)
	case errors.Is(err, repositories.ErrNotFound):
		return nil, apperrors.ErrUserNotFound
	case err != nil:
		return nil, apperrors.Internal(fmt.Errorf("update profile: %w", err))
	}

	return &ProfileUpdateResult{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// duplicateProfileError names the field a concurrent writer claimed first.
func (s *Service) duplicateProfileError(ctx context.Context, userID uint, upd repositories.ProfileUpdate) error {
	if upd.Email != nil {
		if taken, err := s.store.EmailTakenByOther(ctx, *upd.Email, userID); err == nil && taken {
			return apperrors.ErrEmailTaken
		}
	}
	return apperrors.ErrUsernameTaken
}

func (s *Service) UserExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.store.UsernameExists(ctx, username)
	if err != nil {
		return false, apperrors.Internal(fmt.Errorf("check username: %w", err))
	}
	return exists, nil
}
