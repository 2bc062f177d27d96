package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/geezit/geezit-server/internal/models"
)

// ToggleHeart removes the from->to heart when present and creates it
// otherwise, inside one transaction. It returns whether a heart now exists.
func (s *Store) ToggleHeart(ctx context.Context, fromUserID, toUserID uint) (bool, error) {
	var hearted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).Delete(&models.Heart{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			hearted = false
			return nil
		}

		if err := tx.Create(&models.Heart{FromUserID: fromUserID, ToUserID: toUserID}).Error; err != nil {
			return err
		}
		hearted = true
		return nil
	})
	if err != nil {
		// A concurrent toggle inserted the same pair first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, translate(err)
	}
	return hearted, nil
}

// HeartsFor lists hearts received by userID, newest first.
func (s *Store) HeartsFor(ctx context.Context, userID uint) ([]models.Heart, error) {
	hearts := make([]models.Heart, 0)
	err := s.db.WithContext(ctx).
		Select("id", "created_at").
		Where("to_user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&hearts).Error
	return hearts, err
}

func (s *Store) CountHeartsFor(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Heart{}).Where("to_user_id = ?", userID).Count(&n).Error
	return n, err
}
