package repositories

import (
	"context"

	"github.com/geezit/geezit-server/internal/models"
)

func (s *Store) CreateMessage(ctx context.Context, toUserID uint, text string) (*models.Message, error) {
	msg := &models.Message{ToUserID: toUserID, MessageText: text}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, translate(err)
	}
	return msg, nil
}

// MessagesFor lists messages addressed to userID, newest first.
func (s *Store) MessagesFor(ctx context.Context, userID uint) ([]models.Message, error) {
	msgs := make([]models.Message, 0)
	err := s.db.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&msgs).Error
	return msgs, err
}

func (s *Store) CountMessagesFor(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Message{}).Where("to_user_id = ?", userID).Count(&n).Error
	return n, err
}
