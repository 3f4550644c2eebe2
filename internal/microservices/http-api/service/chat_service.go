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

var ErrMessageNotFound = errors.New("message not found")

const (
	DefaultChatLimit = 50
	MaxChatLimit     = 200
)

type ChatService interface {
	List(ctx context.Context, webtoonID int64, limit, offset int) ([]models.ChatMessage, error)
	// Send stores the message; a reader message also gets a character reply
	// stored unread.
	Send(ctx context.Context, userID string, req dto.CreateChatMessageDTO) (*models.ChatMessage, error)
	MarkRead(ctx context.Context, ids []int64) (int64, error)
	MarkOneRead(ctx context.Context, id int64) (*models.ChatMessage, error)
	UnreadCount(ctx context.Context, webtoonID int64) (int64, error)
}

type chatService struct {
	chatRepo      repository.ChatRepository
	webtoons      WebtoonService
	replies       ReplyGenerator
	characterName string
	cache         *cache.Cache
	logger        *slog.Logger
}

func NewChatService(
	chatRepo repository.ChatRepository,
	webtoons WebtoonService,
	replies ReplyGenerator,
	characterName string,
	c *cache.Cache,
	logger *slog.Logger,
) ChatService {
	return &chatService{
		chatRepo:      chatRepo,
		webtoons:      webtoons,
		replies:       replies,
		characterName: characterName,
		cache:         c,
		logger:        logger,
	}
}

func (s *chatService) List(ctx context.Context, webtoonID int64, limit, offset int) ([]models.ChatMessage, error) {
	if err := s.webtoons.Exists(ctx, webtoonID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultChatLimit
	}
	if limit > MaxChatLimit {
		limit = MaxChatLimit
	}
	if offset < 0 {
		offset = 0
	}
	messages, err := s.chatRepo.ListByWebtoon(ctx, webtoonID, limit, offset)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return messages, nil
}

func (s *chatService) Send(ctx context.Context, userID string, req dto.CreateChatMessageDTO) (*models.ChatMessage, error) {
	if err := s.webtoons.Exists(ctx, req.WebtoonID); err != nil {
		return nil, err
	}

	if req.SenderName == "" {
		if req.SenderType == models.SenderCharacter {
			req.SenderName = s.characterName
		} else {
			req.SenderName = "독자"
		}
	}

	msg := req.ToModel(userID)
	if err := s.chatRepo.Create(ctx, &msg); err != nil {
		return nil, err
	}

	if msg.SenderType == models.SenderUser {
		parentID := msg.ID
		reply := models.ChatMessage{
			WebtoonID:       msg.WebtoonID,
			SenderType:      models.SenderCharacter,
			SenderName:      s.characterName,
			Message:         s.replies.Reply(msg.Message),
			IsRead:          false,
			ParentMessageID: &parentID,
		}
		if err := s.chatRepo.Create(ctx, &reply); err != nil {
			// the reader's message is stored; a missing reply is not fatal
			s.logger.Error("failed to store character reply", "webtoon_id", msg.WebtoonID, "parent_id", msg.ID, "error", err)
		}
	}

	s.forgetUnread(ctx, msg.WebtoonID)
	return &msg, nil
}

func (s *chatService) MarkRead(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	webtoonIDs, err := s.chatRepo.WebtoonsOf(ctx, ids)
	if err != nil {
		return 0, err
	}
	count, err := s.chatRepo.MarkRead(ctx, ids)
	if err != nil {
		return 0, err
	}
	for _, id := range webtoonIDs {
		s.forgetUnread(ctx, id)
	}
	return count, nil
}

func (s *chatService) MarkOneRead(ctx context.Context, id int64) (*models.ChatMessage, error) {
	msg, err := s.chatRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	if !msg.IsRead {
		if _, err := s.chatRepo.MarkRead(ctx, []int64{id}); err != nil {
			return nil, err
		}
		msg.IsRead = true
		s.forgetUnread(ctx, msg.WebtoonID)
	}
	return msg, nil
}

// UnreadCount counts character messages not yet read, cached per webtoon
func (s *chatService) UnreadCount(ctx context.Context, webtoonID int64) (int64, error) {
	key := cache.UnreadCountKey(webtoonID)
	var cached int64
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	if err := s.webtoons.Exists(ctx, webtoonID); err != nil {
		return 0, err
	}
	count, err := s.chatRepo.CountUnread(ctx, webtoonID)
	if err != nil {
		return 0, err
	}
	if err := s.cache.SetJSON(ctx, key, count); err != nil {
		s.logger.Warn("unread count cache write failed", "webtoon_id", webtoonID, "error", err)
	}
	return count, nil
}

func (s *chatService) forgetUnread(ctx context.Context, webtoonID int64) {
	if err := s.cache.Delete(ctx, cache.UnreadCountKey(webtoonID)); err != nil {
		s.logger.Warn("unread count cache invalidation failed", "webtoon_id", webtoonID, "error", err)
	}
}
