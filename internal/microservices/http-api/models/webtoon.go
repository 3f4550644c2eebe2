package models

import "time"

const (
	WebtoonStatusDraft     = "draft"
	WebtoonStatusPublished = "published"
	WebtoonStatusCompleted = "completed"
)

type Webtoon struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string    `json:"title" gorm:"size:200;not null"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty" gorm:"size:500"`
	AuthorName   string    `json:"author_name" gorm:"size:100;default:'Anonymous'"`
	Genre        *string   `json:"genre,omitempty" gorm:"size:50;index"`
	Theme        *string   `json:"theme,omitempty" gorm:"size:100"`
	StoryStyle   *string   `json:"story_style,omitempty" gorm:"size:100"`
	Status       string    `json:"status" gorm:"size:20;default:'published';index"`
	ViewCount    int64     `json:"view_count" gorm:"default:0"`
	LikeCount    int64     `json:"like_count" gorm:"default:0"`
	OwnerID      string    `json:"-" gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Owner    *User         `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Episodes []Episode     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Scenes   []Scene       `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Comments []Comment     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Likes    []Like        `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Messages []ChatMessage `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

func (Webtoon) TableName() string {
	return "webtoons"
}
