package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/geezit/geezit-server/internal/apperrors"
	"github.com/geezit/geezit-server/internal/repositories"
)

// ExportLinkTTL is how long a presigned export link stays valid.
const ExportLinkTTL = 15 * time.Minute

type MessageView struct {
	ID          uint      `json:"id"`
	MessageText string    `json:"message_text"`
	CreatedAt   time.Time `json:"created_at"`
}

type InboxExport struct {
	Username   string        `json:"username"`
	ExportedAt time.Time     `json:"exported_at"`
	Messages   []MessageView `json:"messages"`
}

type ExportLink struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// SendMessage stores an anonymous message for username. Nothing about the
// sender is recorded.
func (s *Service) SendMessage(ctx context.Context, username, text string) error {
	if username == "" || text == "" {
		return apperrors.ErrMessageRequired
	}

	recipient, err := s.store.UserByUsername(ctx, username)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.ErrUserNotFound
	case err != nil:
		return apperrors.Internal(fmt.Errorf("load recipient: %w", err))
	}

	if _, err := s.store.CreateMessage(ctx, recipient.ID, text); err != nil {
		return apperrors.Internal(fmt.Errorf("create message: %w", err))
	}
	return nil
}

func (s *Service) ListMessages(ctx context.Context, userID uint) ([]MessageView, error) {
	msgs, err := s.store.MessagesFor(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list messages: %w", err))
	}

	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageView{ID: m.ID, MessageText: m.MessageText, CreatedAt: m.CreatedAt})
	}
	return out, nil
}

// ExportMessages writes the caller's inbox to object storage and returns a
// short-lived download link.
func (s *Service) ExportMessages(ctx context.Context, userID uint) (*ExportLink, error) {
	if s.exports == nil {
		return nil, apperrors.ErrExportUnavailable
	}

	user, err := s.store.UserByID(ctx, userID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil, apperrors.ErrUserNotFound
	case err != nil:
		return nil, apperrors.Internal(fmt.Errorf("load user: %w", err))
	}

	msgs, err := s.ListMessages(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(InboxExport{
		Username:   user.Username,
		ExportedAt: time.Now().UTC(),
		Messages:   msgs,
	})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("encode export: %w", err))
	}

	key := ExportKey(userID, uuid.NewString())
	if err := s.exports.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, apperrors.Internal(err)
	}

	url, err := s.exports.PresignGet(ctx, key, ExportLinkTTL)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("presign export: %w", err))
	}

	s.log.InfoContext(ctx, "inbox exported", "user_id", userID, "messages", len(msgs))
	return &ExportLink{URL: url, ExpiresIn: int(ExportLinkTTL.Seconds())}, nil
}

func ExportKey(userID uint, id string) string {
	return fmt.Sprintf("exports/%d/%s.json", userID, id)
}
