package models

import "time"

type Comment struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	WebtoonID  int64     `json:"webtoon_id" gorm:"not null;index"`
	UserID     *string   `json:"-" gorm:"type:uuid;index"`
	AuthorName string    `json:"author_name" gorm:"size:100;default:'익명'"`
	Content    string    `json:"content" gorm:"not null;type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Comment) TableName() string {
	return "comments"
}
