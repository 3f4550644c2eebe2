package repository

import (
	"context"

	"webtoonhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type SceneRepository interface {
	Create(ctx context.Context, scene *models.Scene) error
	Update(ctx context.Context, scene *models.Scene) error
	GetByID(ctx context.Context, id int64) (*models.Scene, error)
	ExistsNumber(ctx context.Context, webtoonID int64, number int, excludeID int64) (bool, error)
	ListByWebtoon(ctx context.Context, webtoonID int64) ([]models.Scene, error)
}

type sceneRepository struct {
	db *gorm.DB
}

func NewSceneRepository(db *gorm.DB) SceneRepository {
	return &sceneRepository{db: db}
}

func (r *sceneRepository) Create(ctx context.Context, scene *models.Scene) error {
	return r.db.WithContext(ctx).Create(scene).Error
}

func (r *sceneRepository) Update(ctx context.Context, scene *models.Scene) error {
	return r.db.WithContext(ctx).Save(scene).Error
}

func (r *sceneRepository) GetByID(ctx context.Context, id int64) (*models.Scene, error) {
	var scene models.Scene
	if err := r.db.WithContext(ctx).First(&scene, id).Error; err != nil {
		return nil, err
	}
	return &scene, nil
}

// ExistsNumber reports whether another scene of the webtoon already uses number
func (r *sceneRepository) ExistsNumber(ctx context.Context, webtoonID int64, number int, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Scene{}).
		Where("webtoon_id = ? AND scene_number = ? AND id <> ?", webtoonID, number, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *sceneRepository) ListByWebtoon(ctx context.Context, webtoonID int64) ([]models.Scene, error) {
	var scenes []models.Scene
	err := r.db.WithContext(ctx).
		Where("webtoon_id = ?", webtoonID).
		Order("scene_number ASC").
		Find(&scenes).Error
	return scenes, err
}
