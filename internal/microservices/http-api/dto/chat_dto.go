package dto

import "webtoonhub/internal/microservices/http-api/models"

// CreateChatMessageDTO used for POST /api/chat/messages
type CreateChatMessageDTO struct {
	WebtoonID       int64  `json:"webtoon_id" binding:"required"`
	SenderType      string `json:"sender_type" binding:"required,oneof=user character"`
	SenderName      string `json:"sender_name" binding:"max=100"`
	Message         string `json:"message" binding:"required,min=1,max=2000"`
	ParentMessageID *int64 `json:"parent_message_id,omitempty"`
}

func (d CreateChatMessageDTO) ToModel(userID string) models.ChatMessage {
	msg := models.ChatMessage{
		WebtoonID:       d.WebtoonID,
		SenderType:      d.SenderType,
		SenderName:      d.SenderName,
		Message:         d.Message,
		ParentMessageID: d.ParentMessageID,
		// a sender has always read their own message
		IsRead: d.SenderType == models.SenderUser,
	}
	if userID != "" {
		msg.UserID = &userID
	}
	return msg
}

// BatchReadResponse is returned by POST /api/chat/messages/batch-read
type BatchReadResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

// UnreadCountResponse is returned by GET /api/chat/unread-count/webtoon/:id
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
