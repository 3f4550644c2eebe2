package dto

import (
	"strings"
	"time"

	"webtoonhub/internal/microservices/http-api/models"
)

// CreateWebtoonDTO used for POST /api/webtoons/
type CreateWebtoonDTO struct {
	Title        string  `json:"title" binding:"required,max=200"`
	Description  *string `json:"description,omitempty"`
	AuthorName   *string `json:"author_name,omitempty" binding:"omitempty,max=100"`
	Genre        *string `json:"genre,omitempty" binding:"omitempty,max=50"`
	Theme        *string `json:"theme,omitempty" binding:"omitempty,max=100"`
	StoryStyle   *string `json:"story_style,omitempty" binding:"omitempty,max=100"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" binding:"omitempty,max=500"`
}

// UpdateWebtoonDTO used for PUT /api/webtoons/:id (partial updates allowed)
type UpdateWebtoonDTO struct {
	Title        *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Description  *string `json:"description,omitempty"`
	AuthorName   *string `json:"author_name,omitempty" binding:"omitempty,max=100"`
	Genre        *string `json:"genre,omitempty" binding:"omitempty,max=50"`
	Theme        *string `json:"theme,omitempty" binding:"omitempty,max=100"`
	StoryStyle   *string `json:"story_style,omitempty" binding:"omitempty,max=100"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" binding:"omitempty,max=500"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=draft published completed"`
}

// WebtoonResponse DTO for responses, with per-viewer flags
type WebtoonResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	AuthorName   string    `json:"author_name"`
	Genre        *string   `json:"genre,omitempty"`
	Theme        *string   `json:"theme,omitempty"`
	StoryStyle   *string   `json:"story_style,omitempty"`
	Status       string    `json:"status"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	IsOwner      bool      `json:"is_owner"`
	IsLiked      bool      `json:"is_liked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WebtoonListResponse is the paginated list shape; has_more drives infinite scroll
type WebtoonListResponse struct {
	Webtoons []WebtoonResponse `json:"webtoons"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
	HasMore  bool              `json:"has_more"`
}

// Converters
func (d CreateWebtoonDTO) ToModel(ownerID string) models.Webtoon {
	author := "Anonymous"
	if d.AuthorName != nil && strings.TrimSpace(*d.AuthorName) != "" {
		author = strings.TrimSpace(*d.AuthorName)
	}
	return models.Webtoon{
		Title:        strings.TrimSpace(d.Title),
		Description:  d.Description,
		AuthorName:   author,
		Genre:        d.Genre,
		Theme:        d.Theme,
		StoryStyle:   d.StoryStyle,
		ThumbnailURL: d.ThumbnailURL,
		Status:       models.WebtoonStatusPublished,
		OwnerID:      ownerID,
	}
}

func (d UpdateWebtoonDTO) ApplyTo(w *models.Webtoon) {
	if d.Title != nil {
		w.Title = strings.TrimSpace(*d.Title)
	}
	if d.Description != nil {
		w.Description = d.Description
	}
	if d.AuthorName != nil {
		w.AuthorName = *d.AuthorName
	}
	if d.Genre != nil {
		w.Genre = d.Genre
	}
	if d.Theme != nil {
		w.Theme = d.Theme
	}
	if d.StoryStyle != nil {
		w.StoryStyle = d.StoryStyle
	}
	if d.ThumbnailURL != nil {
		w.ThumbnailURL = d.ThumbnailURL
	}
	if d.Status != nil {
		w.Status = *d.Status
	}
}

func FromModelToWebtoonResponse(w *models.Webtoon, viewerID string, liked bool) WebtoonResponse {
	return WebtoonResponse{
		ID:           w.ID,
		Title:        w.Title,
		Description:  w.Description,
		ThumbnailURL: w.ThumbnailURL,
		AuthorName:   w.AuthorName,
		Genre:        w.Genre,
		Theme:        w.Theme,
		StoryStyle:   w.StoryStyle,
		Status:       w.Status,
		ViewCount:    w.ViewCount,
		LikeCount:    w.LikeCount,
		IsOwner:      viewerID != "" && viewerID == w.OwnerID,
		IsLiked:      liked,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// NewWebtoonListResponse fills in has_more from total and the page window
func NewWebtoonListResponse(items []WebtoonResponse, total int64, page, perPage int) *WebtoonListResponse {
	if items == nil {
		items = []WebtoonResponse{}
	}
	return &WebtoonListResponse{
		Webtoons: items,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
		HasMore:  int64(page*perPage) < total,
	}
}

// ListWebtoonsQuery binds the query string of GET /api/webtoons/
type ListWebtoonsQuery struct {
	Page    int    `form:"page,default=1" binding:"min=1"`
	PerPage int    `form:"per_page,default=10" binding:"min=1,max=100"`
	Genre   string `form:"genre"`
	Status  string `form:"status" binding:"omitempty,oneof=draft published completed"`
}
