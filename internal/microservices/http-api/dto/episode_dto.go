package dto

import "webtoonhub/internal/microservices/http-api/models"

// CreateEpisodeDTO used for POST /api/episodes/
type CreateEpisodeDTO struct {
	WebtoonID     int64   `json:"webtoon_id" binding:"required"`
	EpisodeNumber int     `json:"episode_number" binding:"required,min=1"`
	SceneOrder    int     `json:"scene_order" binding:"required,min=1"`
	Title         *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Dialogue      *string `json:"dialogue,omitempty"`
	Description   *string `json:"description,omitempty"`
	Narration     *string `json:"narration,omitempty"`
	ImageURL      *string `json:"image_url,omitempty" binding:"omitempty,max=500"`
	PanelLayout   *string `json:"panel_layout,omitempty" binding:"omitempty,max=50"`
}

// UpdateEpisodeDTO used for PUT /api/episodes/:id; the editor's reorder
// sends only scene_order.
type UpdateEpisodeDTO struct {
	EpisodeNumber *int    `json:"episode_number,omitempty" binding:"omitempty,min=1"`
	SceneOrder    *int    `json:"scene_order,omitempty" binding:"omitempty,min=1"`
	Title         *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Dialogue      *string `json:"dialogue,omitempty"`
	Description   *string `json:"description,omitempty"`
	Narration     *string `json:"narration,omitempty"`
	ImageURL      *string `json:"image_url,omitempty" binding:"omitempty,max=500"`
	PanelLayout   *string `json:"panel_layout,omitempty" binding:"omitempty,max=50"`
}

func (d CreateEpisodeDTO) ToModel() models.Episode {
	return models.Episode{
		WebtoonID:     d.WebtoonID,
		EpisodeNumber: d.EpisodeNumber,
		SceneOrder:    d.SceneOrder,
		Title:         d.Title,
		Dialogue:      d.Dialogue,
		Description:   d.Description,
		Narration:     d.Narration,
		ImageURL:      d.ImageURL,
		PanelLayout:   d.PanelLayout,
	}
}

// Changes returns the column updates carried by the request.
func (d UpdateEpisodeDTO) Changes() map[string]any {
	changes := map[string]any{}
	if d.EpisodeNumber != nil {
		changes["episode_number"] = *d.EpisodeNumber
	}
	if d.SceneOrder != nil {
		changes["scene_order"] = *d.SceneOrder
	}
	if d.Title != nil {
		changes["title"] = *d.Title
	}
	if d.Dialogue != nil {
		changes["dialogue"] = *d.Dialogue
	}
	if d.Description != nil {
		changes["description"] = *d.Description
	}
	if d.Narration != nil {
		changes["narration"] = *d.Narration
	}
	if d.ImageURL != nil {
		changes["image_url"] = *d.ImageURL
	}
	if d.PanelLayout != nil {
		changes["panel_layout"] = *d.PanelLayout
	}
	return changes
}

// ImageUploadResponse is returned by POST /api/episodes/:id/image
type ImageUploadResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"image_url"`
}
