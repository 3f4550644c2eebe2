package models

import "time"

// Episode is one editor scene: a panel placed in episode EpisodeNumber at
// position SceneOrder. SceneOrder carries no unique index because the editor
// renumbers a whole episode with one update per row.
type Episode struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	WebtoonID     int64     `json:"webtoon_id" gorm:"not null;index:idx_episodes_order,priority:1"`
	EpisodeNumber int       `json:"episode_number" gorm:"not null;index:idx_episodes_order,priority:2"`
	SceneOrder    int       `json:"scene_order" gorm:"not null;index:idx_episodes_order,priority:3"`
	Title         *string   `json:"title,omitempty" gorm:"size:200"`
	Dialogue      *string   `json:"dialogue,omitempty" gorm:"type:text"`
	Description   *string   `json:"description,omitempty" gorm:"type:text"`
	Narration     *string   `json:"narration,omitempty" gorm:"type:text"`
	ImageURL      *string   `json:"image_url,omitempty" gorm:"size:500"`
	PanelLayout   *string   `json:"panel_layout,omitempty" gorm:"size:50"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Episode) TableName() string {
	return "episodes"
}
