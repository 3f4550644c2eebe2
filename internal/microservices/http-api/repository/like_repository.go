package repository

import (
	"context"
	"errors"

	"webtoonhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	// Toggle adds or removes the user's like and returns the new state with
	// the webtoon's updated like count.
	Toggle(ctx context.Context, webtoonID int64, userID string) (liked bool, count int64, err error)
	IsLiked(ctx context.Context, webtoonID int64, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Like, error)
	// LikedAmong returns the subset of webtoonIDs the user has liked
	LikedAmong(ctx context.Context, userID string, webtoonIDs []int64) (map[int64]bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(ctx context.Context, webtoonID int64, userID string) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("webtoon_id = ? AND user_id = ?", webtoonID, userID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Webtoon{}).Where("id = ? AND like_count > 0", webtoonID).
				UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Like{WebtoonID: webtoonID, UserID: userID}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Webtoon{}).Where("id = ?", webtoonID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		return tx.Model(&models.Webtoon{}).Where("id = ?", webtoonID).
			Pluck("like_count", &count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *likeRepository) IsLiked(ctx context.Context, webtoonID int64, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("webtoon_id = ? AND user_id = ?", webtoonID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) ListByUser(ctx context.Context, userID string) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&likes).Error
	return likes, err
}

func (r *likeRepository) LikedAmong(ctx context.Context, userID string, webtoonIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool)
	if userID == "" || len(webtoonIDs) == 0 {
		return liked, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND webtoon_id IN ?", userID, webtoonIDs).
		Pluck("webtoon_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
