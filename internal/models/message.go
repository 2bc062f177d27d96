package models

import "time"

// Message is an anonymous note. Only the recipient is recorded.
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ToUserID    uint      `json:"-" gorm:"index;not null"`
	ToUser      User      `json:"-" gorm:"foreignKey:ToUserID;constraint:OnDelete:CASCADE"`
	MessageText string    `json:"message_text" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
