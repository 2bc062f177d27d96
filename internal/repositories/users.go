package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/geezit/geezit-server/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store is the data-access handle shared by every request.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UserByUsername is an exact, case-sensitive match.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UserByGoogleID finds the account linked to a Google subject.
func (s *Store) UserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("google_id = ?", googleID).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

// UsernameTakenByOther reports whether a user other than id holds username.
func (s *Store) UsernameTakenByOther(ctx context.Context, username string, id uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND id <> ?", username, id).
		Count(&n).Error
	return n > 0, err
}

// EmailTakenByOther reports whether a user other than id holds email.
// Pass id 0 to check against every user.
func (s *Store) EmailTakenByOther(ctx context.Context, email string, id uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, id).
		Count(&n).Error
	return n > 0, err
}

// ProfileUpdate holds the fields a user may change; nil means untouched.
type ProfileUpdate struct {
	Username *string
	Email    *string
}

func (p ProfileUpdate) Empty() bool {
	return p.Username == nil && p.Email == nil
}

// UpdateProfile applies the supplied fields and refreshes updated_at.
func (s *Store) UpdateProfile(ctx context.Context, id uint, upd ProfileUpdate) (*models.User, error) {
	changes := map[string]any{"updated_at": time.Now()}
	if upd.Username != nil {
		changes["username"] = *upd.Username
	}
	if upd.Email != nil {
		changes["email"] = *upd.Email
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.UserByID(ctx, id)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
