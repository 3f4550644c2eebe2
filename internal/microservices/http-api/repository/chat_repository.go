package repository

import (
	"context"
	"slices"

	"webtoonhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ChatRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	GetByID(ctx context.Context, id int64) (*models.ChatMessage, error)
	ListByWebtoon(ctx context.Context, webtoonID int64, limit, offset int) ([]models.ChatMessage, error)
	MarkRead(ctx context.Context, ids []int64) (int64, error)
	CountUnread(ctx context.Context, webtoonID int64) (int64, error)
	WebtoonsOf(ctx context.Context, ids []int64) ([]int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepository) GetByID(ctx context.Context, id int64) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByWebtoon returns the newest limit messages (skipping offset from the
// newest end) in oldest-first order.
func (r *chatRepository) ListByWebtoon(ctx context.Context, webtoonID int64, limit, offset int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := historyQuery(r.db.WithContext(ctx), webtoonID, limit, offset).Find(&messages).Error; err != nil {
		return nil, err
	}
	slices.Reverse(messages)
	return messages, nil
}

func historyQuery(tx *gorm.DB, webtoonID int64, limit, offset int) *gorm.DB {
	return tx.Model(&models.ChatMessage{}).
		Where("webtoon_id = ?", webtoonID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset)
}

// MarkRead flips is_read on every listed message still unread and returns
// how many rows changed.
func (r *chatRepository) MarkRead(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&models.ChatMessage{}).
		Where("id IN ? AND is_read = ?", ids, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *chatRepository) CountUnread(ctx context.Context, webtoonID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ChatMessage{}).
		Where("webtoon_id = ? AND is_read = ? AND sender_type = ?", webtoonID, false, models.SenderCharacter).
		Count(&count).Error
	return count, err
}

// WebtoonsOf returns the distinct webtoon ids the given messages belong to
func (r *chatRepository) WebtoonsOf(ctx context.Context, ids []int64) ([]int64, error) {
	var webtoonIDs []int64
	if len(ids) == 0 {
		return webtoonIDs, nil
	}
	err := r.db.WithContext(ctx).Model(&models.ChatMessage{}).
		Where("id IN ?", ids).
		Distinct().
		Pluck("webtoon_id", &webtoonIDs).Error
	return webtoonIDs, err
}
