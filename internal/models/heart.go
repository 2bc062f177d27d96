package models

import "time"

// Heart is a toggled appreciation from one user to another. The composite
// unique index allows at most one row per (sender, recipient).
type Heart struct {
	ID         uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	FromUserID uint      `json:"-" gorm:"uniqueIndex:idx_hearts_pair;not null"`
	FromUser   User      `json:"-" gorm:"foreignKey:FromUserID;constraint:OnDelete:CASCADE"`
	ToUserID   uint      `json:"-" gorm:"uniqueIndex:idx_hearts_pair;index;not null"`
	ToUser     User      `json:"-" gorm:"foreignKey:ToUserID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}
