package service

import (
	"context"
	"errors"
	"log/slog"

	"webtoonhub/internal/cache"
	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/models"
	"webtoonhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrWebtoonNotFound = errors.New("webtoon not found")
	ErrForbidden       = errors.New("not enough permissions")
)

type WebtoonService interface {
	List(ctx context.Context, q dto.ListWebtoonsQuery, viewerID string) (*dto.WebtoonListResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.WebtoonResponse, error)
	Get(ctx context.Context, id int64, viewerID string) (*dto.WebtoonResponse, error)
	Create(ctx context.Context, userID string, req dto.CreateWebtoonDTO) (*dto.WebtoonResponse, error)
	Update(ctx context.Context, userID string, id int64, req dto.UpdateWebtoonDTO) (*dto.WebtoonResponse, error)
	Delete(ctx context.Context, userID string, id int64) error
	// RequireOwner loads the webtoon and fails with ErrForbidden unless
	// userID owns it.
	RequireOwner(ctx context.Context, id int64, userID string) (*models.Webtoon, error)
	// Exists fails with ErrWebtoonNotFound for unknown ids
	Exists(ctx context.Context, id int64) error
}

type webtoonService struct {
	webtoonRepo repository.WebtoonRepository
	likeRepo    repository.LikeRepository
	cache       *cache.Cache
	logger      *slog.Logger
}

func NewWebtoonService(
	webtoonRepo repository.WebtoonRepository,
	likeRepo repository.LikeRepository,
	c *cache.Cache,
	logger *slog.Logger,
) WebtoonService {
	return &webtoonService{
		webtoonRepo: webtoonRepo,
		likeRepo:    likeRepo,
		cache:       c,
		logger:      logger,
	}
}

// List returns one page of visible webtoons. Anonymous pages are cached since
// they carry no per-viewer flags.
func (s *webtoonService) List(ctx context.Context, q dto.ListWebtoonsQuery, viewerID string) (*dto.WebtoonListResponse, error) {
	key := cache.WebtoonListKey(q.Page, q.PerPage, q.Genre, q.Status)
	if viewerID == "" {
		var cached dto.WebtoonListResponse
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("webtoon list cache read failed", "key", key, "error", err)
		}
		if hit {
			return &cached, nil
		}
	}

	webtoons, total, err := s.webtoonRepo.List(ctx, repository.WebtoonFilter{
		Genre:    q.Genre,
		Status:   q.Status,
		ViewerID: viewerID,
		Page:     q.Page,
		PerPage:  q.PerPage,
	})
	if err != nil {
		return nil, err
	}

	items, err := s.toResponses(ctx, webtoons, viewerID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewWebtoonListResponse(items, total, q.Page, q.PerPage)

	if viewerID == "" {
		if err := s.cache.SetJSON(ctx, key, resp); err != nil {
			s.logger.Warn("webtoon list cache write failed", "key", key, "error", err)
		}
	}
	return resp, nil
}

func (s *webtoonService) ListMine(ctx context.Context, userID string) ([]dto.WebtoonResponse, error) {
	webtoons, err := s.webtoonRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, webtoons, userID)
}

// Get counts a view and returns the webtoon. Drafts are visible to their owner only.
func (s *webtoonService) Get(ctx context.Context, id int64, viewerID string) (*dto.WebtoonResponse, error) {
	webtoon, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if webtoon.Status == models.WebtoonStatusDraft && webtoon.OwnerID != viewerID {
		return nil, ErrWebtoonNotFound
	}

	if err := s.webtoonRepo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("failed to count view", "webtoon_id", id, "error", err)
	} else {
		webtoon.ViewCount++
	}

	liked := false
	if viewerID != "" {
		if liked, err = s.likeRepo.IsLiked(ctx, id, viewerID); err != nil {
			return nil, err
		}
	}

	resp := dto.FromModelToWebtoonResponse(webtoon, viewerID, liked)
	return &resp, nil
}

func (s *webtoonService) Create(ctx context.Context, userID string, req dto.CreateWebtoonDTO) (*dto.WebtoonResponse, error) {
	webtoon := req.ToModel(userID)
	if err := s.webtoonRepo.Create(ctx, &webtoon); err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	s.logger.Info("webtoon created", "webtoon_id", webtoon.ID, "owner_id", userID)

	resp := dto.FromModelToWebtoonResponse(&webtoon, userID, false)
	return &resp, nil
}

func (s *webtoonService) Update(ctx context.Context, userID string, id int64, req dto.UpdateWebtoonDTO) (*dto.WebtoonResponse, error) {
	webtoon, err := s.RequireOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(webtoon)
	if err := s.webtoonRepo.Update(ctx, webtoon); err != nil {
		return nil, err
	}
	s.invalidateList(ctx)

	liked, err := s.likeRepo.IsLiked(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToWebtoonResponse(webtoon, userID, liked)
	return &resp, nil
}

func (s *webtoonService) Delete(ctx context.Context, userID string, id int64) error {
	if _, err := s.RequireOwner(ctx, id, userID); err != nil {
		return err
	}
	if err := s.webtoonRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWebtoonNotFound
		}
		return err
	}
	s.invalidateList(ctx)
	s.logger.Info("webtoon deleted", "webtoon_id", id, "owner_id", userID)
	return nil
}

func (s *webtoonService) RequireOwner(ctx context.Context, id int64, userID string) (*models.Webtoon, error) {
	webtoon, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID == "" || webtoon.OwnerID != userID {
		return nil, ErrForbidden
	}
	return webtoon, nil
}

func (s *webtoonService) Exists(ctx context.Context, id int64) error {
	_, err := s.find(ctx, id)
	return err
}

func (s *webtoonService) find(ctx context.Context, id int64) (*models.Webtoon, error) {
	webtoon, err := s.webtoonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWebtoonNotFound
		}
		return nil, err
	}
	return webtoon, nil
}

func (s *webtoonService) toResponses(ctx context.Context, webtoons []models.Webtoon, viewerID string) ([]dto.WebtoonResponse, error) {
	ids := make([]int64, 0, len(webtoons))
	for _, w := range webtoons {
		ids = append(ids, w.ID)
	}
	liked, err := s.likeRepo.LikedAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.WebtoonResponse, 0, len(webtoons))
	for i := range webtoons {
		out = append(out, dto.FromModelToWebtoonResponse(&webtoons[i], viewerID, liked[webtoons[i].ID]))
	}
	return out, nil
}

func (s *webtoonService) invalidateList(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, cache.WebtoonListPrefix()); err != nil {
		s.logger.Warn("webtoon list cache invalidation failed", "error", err)
	}
}
