package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geezit/geezit-server/internal/apperrors"
	"github.com/geezit/geezit-server/internal/repositories"
)

type HeartView struct {
	CreatedAt time.Time `json:"created_at"`
}

// ToggleHeart flips the caller's heart for username and reports whether one
// now exists.
func (s *Service) ToggleHeart(ctx context.Context, fromUserID uint, username string) (bool, error) {
	if username == "" {
		return false, apperrors.ErrUsernameRequired
	}

	recipient, err := s.store.UserByUsername(ctx, username)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return false, apperrors.ErrUserNotFound
	case err != nil:
		return false, apperrors.Internal(fmt.Errorf("load recipient: %w", err))
	}

	hearted, err := s.store.ToggleHeart(ctx, fromUserID, recipient.ID)
	if err != nil {
		return false, apperrors.Internal(fmt.Errorf("toggle heart: %w", err))
	}
	return hearted, nil
}

// ListHearts returns only timestamps so senders stay anonymous.
func (s *Service) ListHearts(ctx context.Context, userID uint) ([]HeartView, error) {
	hearts, err := s.store.HeartsFor(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list hearts: %w", err))
	}

	out := make([]HeartView, 0, len(hearts))
	for _, h := range hearts {
		out = append(out, HeartView{CreatedAt: h.CreatedAt})
	}
	return out, nil
}
