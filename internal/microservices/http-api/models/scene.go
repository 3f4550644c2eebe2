package models

import "time"

// Scene is one reader panel. SceneNumber is unique within its webtoon.
type Scene struct {
	ID               int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	WebtoonID        int64     `json:"webtoon_id" gorm:"not null;uniqueIndex:idx_scenes_order,priority:1"`
	SceneNumber      int       `json:"scene_number" gorm:"not null;uniqueIndex:idx_scenes_order,priority:2"`
	SceneDescription *string   `json:"scene_description,omitempty" gorm:"type:text"`
	Dialogue         *string   `json:"dialogue,omitempty" gorm:"type:text"`
	Narration        *string   `json:"narration,omitempty" gorm:"type:text"`
	ImageURL         *string   `json:"image_url,omitempty" gorm:"size:500"`
	PanelLayout      *string   `json:"panel_layout,omitempty" gorm:"size:50"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Scene) TableName() string {
	return "scenes"
}
