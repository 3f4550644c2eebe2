package dto

import (
	"strings"
	"time"

	"webtoonhub/internal/microservices/http-api/models"
)

// CreateCommentDTO for creating a comment
type CreateCommentDTO struct {
	WebtoonID  int64   `json:"webtoon_id" binding:"required"`
	Content    string  `json:"content" binding:"required,min=1,max=5000"`
	AuthorName *string `json:"author_name,omitempty" binding:"omitempty,max=100"`
}

func (d CreateCommentDTO) ToModel(userID string) models.Comment {
	comment := models.Comment{
		WebtoonID: d.WebtoonID,
		Content:   strings.TrimSpace(d.Content),
	}
	if d.AuthorName != nil {
		comment.AuthorName = strings.TrimSpace(*d.AuthorName)
	}
	if userID != "" {
		comment.UserID = &userID
	}
	return comment
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID         int64     `json:"id"`
	WebtoonID  int64     `json:"webtoon_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	IsOwner    bool      `json:"is_owner"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment, viewerID string) CommentResponse {
	return CommentResponse{
		ID:         comment.ID,
		WebtoonID:  comment.WebtoonID,
		AuthorName: comment.AuthorName,
		Content:    comment.Content,
		IsOwner:    viewerID != "" && comment.UserID != nil && *comment.UserID == viewerID,
		CreatedAt:  comment.CreatedAt,
		UpdatedAt:  comment.UpdatedAt,
	}
}

// LikeResponse is returned by POST /api/interactions/like
type LikeResponse struct {
	Message   string `json:"message"`
	Liked     bool   `json:"liked"`
	LikeCount int64  `json:"like_count"`
}

const (
	InteractionLike    = "like"
	InteractionComment = "comment"
)

// InteractionResponse is one entry of GET /api/interactions/my
type InteractionResponse struct {
	Type      string    `json:"interaction_type"`
	WebtoonID int64     `json:"webtoon_id"`
	Content   *string   `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
