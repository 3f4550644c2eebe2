package service

import (
	"context"
	"errors"

	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/models"
	"webtoonhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrSceneNotFound     = errors.New("scene not found")
	ErrSceneNumberExists = errors.New("scene number already exists for this webtoon")
)

type SceneService interface {
	ListByWebtoon(ctx context.Context, webtoonID int64) ([]models.Scene, error)
	Get(ctx context.Context, id int64) (*models.Scene, error)
	Create(ctx context.Context, userID string, req dto.CreateSceneDTO) (*models.Scene, error)
	Update(ctx context.Context, userID string, id int64, req dto.UpdateSceneDTO) (*models.Scene, error)
}

type sceneService struct {
	sceneRepo repository.SceneRepository
	webtoons  WebtoonService
}

func NewSceneService(sceneRepo repository.SceneRepository, webtoons WebtoonService) SceneService {
	return &sceneService{sceneRepo: sceneRepo, webtoons: webtoons}
}

func (s *sceneService) ListByWebtoon(ctx context.Context, webtoonID int64) ([]models.Scene, error) {
	if err := s.webtoons.Exists(ctx, webtoonID); err != nil {
		return nil, err
	}
	return s.sceneRepo.ListByWebtoon(ctx, webtoonID)
}

func (s *sceneService) Get(ctx context.Context, id int64) (*models.Scene, error) {
	scene, err := s.sceneRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSceneNotFound
		}
		return nil, err
	}
	return scene, nil
}

func (s *sceneService) Create(ctx context.Context, userID string, req dto.CreateSceneDTO) (*models.Scene, error) {
	if _, err := s.webtoons.RequireOwner(ctx, req.WebtoonID, userID); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, req.WebtoonID, req.SceneNumber, 0); err != nil {
		return nil, err
	}

	scene := req.ToModel()
	if err := s.sceneRepo.Create(ctx, &scene); err != nil {
		return nil, err
	}
	return &scene, nil
}

func (s *sceneService) Update(ctx context.Context, userID string, id int64, req dto.UpdateSceneDTO) (*models.Scene, error) {
	scene, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.webtoons.RequireOwner(ctx, scene.WebtoonID, userID); err != nil {
		return nil, err
	}
	if req.SceneNumber != nil && *req.SceneNumber != scene.SceneNumber {
		if err := s.ensureFree(ctx, scene.WebtoonID, *req.SceneNumber, scene.ID); err != nil {
			return nil, err
		}
	}

	req.ApplyTo(scene)
	if err := s.sceneRepo.Update(ctx, scene); err != nil {
		return nil, err
	}
	return scene, nil
}

func (s *sceneService) ensureFree(ctx context.Context, webtoonID int64, number int, excludeID int64) error {
	taken, err := s.sceneRepo.ExistsNumber(ctx, webtoonID, number, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSceneNumberExists
	}
	return nil
}
