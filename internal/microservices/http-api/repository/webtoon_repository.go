package repository

import (
	"context"

	"webtoonhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// WebtoonFilter narrows the public listing. ViewerID widens it to the
// viewer's own drafts.
type WebtoonFilter struct {
	Genre    string
	Status   string
	ViewerID string
	Page     int
	PerPage  int
}

type WebtoonRepository interface {
	Create(ctx context.Context, webtoon *models.Webtoon) error
	Update(ctx context.Context, webtoon *models.Webtoon) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Webtoon, error)
	List(ctx context.Context, filter WebtoonFilter) ([]models.Webtoon, int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Webtoon, error)
	IncrementViews(ctx context.Context, id int64) error
}

type webtoonRepository struct {
	db *gorm.DB
}

func NewWebtoonRepository(db *gorm.DB) WebtoonRepository {
	return &webtoonRepository{db: db}
}

func (r *webtoonRepository) Create(ctx context.Context, webtoon *models.Webtoon) error {
	return r.db.WithContext(ctx).Create(webtoon).Error
}

func (r *webtoonRepository) Update(ctx context.Context, webtoon *models.Webtoon) error {
	return r.db.WithContext(ctx).Save(webtoon).Error
}

// Delete removes the webtoon; episodes, scenes, comments, likes and chat
// messages go with it through the cascade constraints.
func (r *webtoonRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Webtoon{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *webtoonRepository) GetByID(ctx context.Context, id int64) (*models.Webtoon, error) {
	var webtoon models.Webtoon
	if err := r.db.WithContext(ctx).First(&webtoon, id).Error; err != nil {
		return nil, err
	}
	return &webtoon, nil
}

// List returns one page of webtoons, newest first, and the total count
func (r *webtoonRepository) List(ctx context.Context, filter WebtoonFilter) ([]models.Webtoon, int64, error) {
	var webtoons []models.Webtoon
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Webtoon{})
	if filter.ViewerID != "" {
		query = query.Where("status <> ? OR owner_id = ?", models.WebtoonStatusDraft, filter.ViewerID)
	} else {
		query = query.Where("status <> ?", models.WebtoonStatusDraft)
	}
	if filter.Genre != "" {
		query = query.Where("genre = ?", filter.Genre)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	err := query.Order("created_at DESC").Order("id DESC").
		Limit(filter.PerPage).
		Offset(offset).
		Find(&webtoons).Error
	if err != nil {
		return nil, 0, err
	}

	return webtoons, total, nil
}

func (r *webtoonRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Webtoon, error) {
	var webtoons []models.Webtoon
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&webtoons).Error
	return webtoons, err
}

func (r *webtoonRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Webtoon{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
