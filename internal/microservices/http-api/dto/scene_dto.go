package dto

import "webtoonhub/internal/microservices/http-api/models"

// CreateSceneDTO used for POST /api/scenes/
type CreateSceneDTO struct {
	WebtoonID        int64   `json:"webtoon_id" binding:"required"`
	SceneNumber      int     `json:"scene_number" binding:"required,min=1"`
	SceneDescription *string `json:"scene_description,omitempty"`
	Dialogue         *string `json:"dialogue,omitempty"`
	Narration        *string `json:"narration,omitempty"`
	ImageURL         *string `json:"image_url,omitempty" binding:"omitempty,max=500"`
	PanelLayout      *string `json:"panel_layout,omitempty" binding:"omitempty,max=50"`
}

// UpdateSceneDTO used for PUT /api/scenes/:id
type UpdateSceneDTO struct {
	SceneNumber      *int    `json:"scene_number,omitempty" binding:"omitempty,min=1"`
	SceneDescription *string `json:"scene_description,omitempty"`
	Dialogue         *string `json:"dialogue,omitempty"`
	Narration        *string `json:"narration,omitempty"`
	ImageURL         *string `json:"image_url,omitempty" binding:"omitempty,max=500"`
	PanelLayout      *string `json:"panel_layout,omitempty" binding:"omitempty,max=50"`
}

func (d CreateSceneDTO) ToModel() models.Scene {
	return models.Scene{
		WebtoonID:        d.WebtoonID,
		SceneNumber:      d.SceneNumber,
		SceneDescription: d.SceneDescription,
		Dialogue:         d.Dialogue,
		Narration:        d.Narration,
		ImageURL:         d.ImageURL,
		PanelLayout:      d.PanelLayout,
	}
}

func (d UpdateSceneDTO) ApplyTo(s *models.Scene) {
	if d.SceneNumber != nil {
		s.SceneNumber = *d.SceneNumber
	}
	if d.SceneDescription != nil {
		s.SceneDescription = d.SceneDescription
	}
	if d.Dialogue != nil {
		s.Dialogue = d.Dialogue
	}
	if d.Narration != nil {
		s.Narration = d.Narration
	}
	if d.ImageURL != nil {
		s.ImageURL = d.ImageURL
	}
	if d.PanelLayout != nil {
		s.PanelLayout = d.PanelLayout
	}
}
