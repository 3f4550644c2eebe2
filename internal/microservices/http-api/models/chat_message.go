package models

import "time"

const (
	SenderUser      = "user"
	SenderCharacter = "character"
)

type ChatMessage struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	WebtoonID       int64     `gorm:"not null;index:idx_chat_messages_webtoon" json:"webtoon_id"`
	UserID          *string   `gorm:"type:uuid;index" json:"-"`
	SenderType      string    `gorm:"size:20;not null" json:"sender_type"`
	SenderName      string    `gorm:"size:100" json:"sender_name"`
	Message         string    `gorm:"type:text;not null" json:"message"`
	IsRead          bool      `gorm:"default:false;not null" json:"is_read"`
	ParentMessageID *int64    `gorm:"index" json:"parent_message_id,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
