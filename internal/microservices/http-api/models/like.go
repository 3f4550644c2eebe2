package models

import "time"

// Like is unique per (webtoon, user); toggling deletes the row.
type Like struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	WebtoonID int64     `json:"webtoon_id" gorm:"not null;uniqueIndex:idx_likes_webtoon_user,priority:1"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_webtoon_user,priority:2"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Like) TableName() string {
	return "likes"
}
