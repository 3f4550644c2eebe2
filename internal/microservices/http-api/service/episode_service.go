package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/models"
	"webtoonhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var ErrEpisodeNotFound = errors.New("episode not found")

// ImageSaver stores an uploaded image and returns its public URL
type ImageSaver interface {
	Save(r io.Reader) (string, error)
}

type EpisodeService interface {
	ListByWebtoon(ctx context.Context, webtoonID int64) ([]models.Episode, error)
	Get(ctx context.Context, id int64) (*models.Episode, error)
	Create(ctx context.Context, userID string, req dto.CreateEpisodeDTO) (*models.Episode, error)
	Update(ctx context.Context, userID string, id int64, req dto.UpdateEpisodeDTO) (*models.Episode, error)
	Delete(ctx context.Context, userID string, id int64) error
	AttachImage(ctx context.Context, userID string, id int64, image io.Reader) (string, error)
}

type episodeService struct {
	episodeRepo repository.EpisodeRepository
	webtoons    WebtoonService
	images      ImageSaver
	logger      *slog.Logger
}

func NewEpisodeService(
	episodeRepo repository.EpisodeRepository,
	webtoons WebtoonService,
	images ImageSaver,
	logger *slog.Logger,
) EpisodeService {
	return &episodeService{
		episodeRepo: episodeRepo,
		webtoons:    webtoons,
		images:      images,
		logger:      logger,
	}
}

// ListByWebtoon returns every editor scene ordered by episode, then position
func (s *episodeService) ListByWebtoon(ctx context.Context, webtoonID int64) ([]models.Episode, error) {
	if err := s.webtoons.Exists(ctx, webtoonID); err != nil {
		return nil, err
	}
	return s.episodeRepo.ListByWebtoon(ctx, webtoonID)
}

func (s *episodeService) Get(ctx context.Context, id int64) (*models.Episode, error) {
	episode, err := s.episodeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEpisodeNotFound
		}
		return nil, err
	}
	return episode, nil
}

func (s *episodeService) Create(ctx context.Context, userID string, req dto.CreateEpisodeDTO) (*models.Episode, error) {
	if _, err := s.webtoons.RequireOwner(ctx, req.WebtoonID, userID); err != nil {
		return nil, err
	}
	episode := req.ToModel()
	if err := s.episodeRepo.Create(ctx, &episode); err != nil {
		return nil, err
	}
	return &episode, nil
}

func (s *episodeService) Update(ctx context.Context, userID string, id int64, req dto.UpdateEpisodeDTO) (*models.Episode, error) {
	if _, err := s.requireOwned(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.episodeRepo.Update(ctx, id, req.Changes()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEpisodeNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *episodeService) Delete(ctx context.Context, userID string, id int64) error {
	if _, err := s.requireOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.episodeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEpisodeNotFound
		}
		return err
	}
	return nil
}

// AttachImage stores the upload and points the episode's image_url at it
func (s *episodeService) AttachImage(ctx context.Context, userID string, id int64, image io.Reader) (string, error) {
	if _, err := s.requireOwned(ctx, userID, id); err != nil {
		return "", err
	}

	url, err := s.images.Save(image)
	if err != nil {
		return "", err
	}

	if err := s.episodeRepo.Update(ctx, id, map[string]any{"image_url": url}); err != nil {
		return "", err
	}
	s.logger.Info("episode image stored", "episode_id", id, "url", url)
	return url, nil
}

func (s *episodeService) requireOwned(ctx context.Context, userID string, id int64) (*models.Episode, error) {
	episode, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.webtoons.RequireOwner(ctx, episode.WebtoonID, userID); err != nil {
		return nil, err
	}
	return episode, nil
}
