package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"webtoonhub/internal/cache"
	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound        = errors.New("comment not found")
	ErrUnknownInteractionType = errors.New("interaction_type must be like or comment")
)

const anonymousAuthor = "익명"

type InteractionService interface {
	ToggleLike(ctx context.Context, userID string, webtoonID int64) (*dto.LikeResponse, error)
	MyInteractions(ctx context.Context, userID, interactionType string) ([]dto.InteractionResponse, error)
	ListComments(ctx context.Context, webtoonID int64, viewerID string, limit, offset int) ([]dto.CommentResponse, error)
	CreateComment(ctx context.Context, userID string, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, userID string, id int64, content string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, userID string, id int64) error
}

type interactionService struct {
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	webtoons    WebtoonService
	cache       *cache.Cache
	logger      *slog.Logger
}

func NewInteractionService(
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	webtoons WebtoonService,
	c *cache.Cache,
	logger *slog.Logger,
) InteractionService {
	return &interactionService{
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		webtoons:    webtoons,
		cache:       c,
		logger:      logger,
	}
}

func (s *interactionService) ToggleLike(ctx context.Context, userID string, webtoonID int64) (*dto.LikeResponse, error) {
	if err := s.webtoons.Exists(ctx, webtoonID); err != nil {
		return nil, err
	}
	liked, count, err := s.likeRepo.Toggle(ctx, webtoonID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.DeletePrefix(ctx, cache.WebtoonListPrefix()); err != nil {
		s.logger.Warn("webtoon list cache invalidation failed", "error", err)
	}

	msg := "Unliked"
	if liked {
		msg = "Liked"
	}
	return &dto.LikeResponse{Message: msg, Liked: liked, LikeCount: count}, nil
}

// MyInteractions merges likes and comments newest first; interactionType
// narrows to one kind.
func (s *interactionService) MyInteractions(ctx context.Context, userID, interactionType string) ([]dto.InteractionResponse, error) {
	if interactionType != "" && interactionType != dto.InteractionLike && interactionType != dto.InteractionComment {
		return nil, ErrUnknownInteractionType
	}

	out := []dto.InteractionResponse{}
	if interactionType == "" || interactionType == dto.InteractionLike {
		likes, err := s.likeRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, l := range likes {
			out = append(out, dto.InteractionResponse{
				Type:      dto.InteractionLike,
				WebtoonID: l.WebtoonID,
				CreatedAt: l.CreatedAt,
			})
		}
	}
	if interactionType == "" || interactionType == dto.InteractionComment {
		comments, err := s.commentRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, c := range comments {
			content := c.Content
			out = append(out, dto.InteractionResponse{
				Type:      dto.InteractionComment,
				WebtoonID: c.WebtoonID,
				Content:   &content,
				CreatedAt: c.CreatedAt,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *interactionService) ListComments(ctx context.Context, webtoonID int64, viewerID string, limit, offset int) ([]dto.CommentResponse, error) {
	if err := s.webtoons.Exists(ctx, webtoonID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	comments, err := s.commentRepo.ListByWebtoon(ctx, webtoonID, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, dto.FromModelToCommentResponse(&comments[i], viewerID))
	}
	return out, nil
}

func (s *interactionService) CreateComment(ctx context.Context, userID string, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if err := s.webtoons.Exists(ctx, req.WebtoonID); err != nil {
		return nil, err
	}

	comment := req.ToModel(userID)
	if comment.AuthorName == "" {
		comment.AuthorName = anonymousAuthor
	}
	if err := s.commentRepo.Create(ctx, &comment); err != nil {
		return nil, err
	}

	resp := dto.FromModelToCommentResponse(&comment, userID)
	return &resp, nil
}

func (s *interactionService) UpdateComment(ctx context.Context, userID string, id int64, content string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.UserID == nil || *comment.UserID != userID {
		return nil, ErrForbidden
	}

	comment.Content = strings.TrimSpace(content)
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	resp := dto.FromModelToCommentResponse(comment, userID)
	return &resp, nil
}

func (s *interactionService) DeleteComment(ctx context.Context, userID string, id int64) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID == nil || *comment.UserID != userID {
		return ErrForbidden
	}
	return s.commentRepo.Delete(ctx, id)
}
