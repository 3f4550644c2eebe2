package repository

import (
	"context"

	"webtoonhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type EpisodeRepository interface {
	Create(ctx context.Context, episode *models.Episode) error
	Update(ctx context.Context, id int64, changes map[string]any) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Episode, error)
	ListByWebtoon(ctx context.Context, webtoonID int64) ([]models.Episode, error)
}

type episodeRepository struct {
	db *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) EpisodeRepository {
	return &episodeRepository{db: db}
}

func (r *episodeRepository) Create(ctx context.Context, episode *models.Episode) error {
	return r.db.WithContext(ctx).Create(episode).Error
}

// Update applies a partial column update so a reorder touches scene_order only
func (r *episodeRepository) Update(ctx context.Context, id int64, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.Episode{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *episodeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Episode{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *episodeRepository) GetByID(ctx context.Context, id int64) (*models.Episode, error) {
	var episode models.Episode
	if err := r.db.WithContext(ctx).First(&episode, id).Error; err != nil {
		return nil, err
	}
	return &episode, nil
}

func (r *episodeRepository) ListByWebtoon(ctx context.Context, webtoonID int64) ([]models.Episode, error) {
	var episodes []models.Episode
	err := r.db.WithContext(ctx).
		Where("webtoon_id = ?", webtoonID).
		Order("episode_number ASC").
		Order("scene_order ASC").
		Order("id ASC").
		Find(&episodes).Error
	return episodes, err
}
