package service

import (
	"context"

	"webtoonhub/internal/microservices/http-api/models"
	"webtoonhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockWebtoonRepository mocks the WebtoonRepository interface
type MockWebtoonRepository struct {
	mock.Mock
}

func (m *MockWebtoonRepository) Create(ctx context.Context, webtoon *models.Webtoon) error {
	args := m.Called(webtoon)
	return args.Error(0)
}

func (m *MockWebtoonRepository) Update(ctx context.Context, webtoon *models.Webtoon) error {
	args := m.Called(webtoon)
	return args.Error(0)
}

func (m *MockWebtoonRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockWebtoonRepository) GetByID(ctx context.Context, id int64) (*models.Webtoon, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Webtoon), args.Error(1)
}

func (m *MockWebtoonRepository) List(ctx context.Context, filter repository.WebtoonFilter) ([]models.Webtoon, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Webtoon), args.Get(1).(int64), args.Error(2)
}

func (m *MockWebtoonRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Webtoon, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Webtoon), args.Error(1)
}

func (m *MockWebtoonRepository) IncrementViews(ctx context.Context, id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockLikeRepository mocks the LikeRepository interface
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(ctx context.Context, webtoonID int64, userID string) (bool, int64, error) {
	args := m.Called(webtoonID, userID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockLikeRepository) IsLiked(ctx context.Context, webtoonID int64, userID string) (bool, error) {
	args := m.Called(webtoonID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) ListByUser(ctx context.Context, userID string) ([]models.Like, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Like), args.Error(1)
}

func (m *MockLikeRepository) LikedAmong(ctx context.Context, userID string, webtoonIDs []int64) (map[int64]bool, error) {
	args := m.Called(userID, webtoonIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

// MockChatRepository mocks the ChatRepository interface
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockChatRepository) GetByID(ctx context.Context, id int64) (*models.ChatMessage, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatMessage), args.Error(1)
}

func (m *MockChatRepository) ListByWebtoon(ctx context.Context, webtoonID int64, limit, offset int) ([]models.ChatMessage, error) {
	args := m.Called(webtoonID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockChatRepository) MarkRead(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatRepository) CountUnread(ctx context.Context, webtoonID int64) (int64, error) {
	args := m.Called(webtoonID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatRepository) WebtoonsOf(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID int64) error {
	args := m.Called(commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	args := m.Called(commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByWebtoon(ctx context.Context, webtoonID int64, limit, offset int) ([]models.Comment, error) {
	args := m.Called(webtoonID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByUser(ctx context.Context, userID string) ([]models.Comment, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

// MockEpisodeRepository mocks the EpisodeRepository interface
type MockEpisodeRepository struct {
	mock.Mock
}

func (m *MockEpisodeRepository) Create(ctx context.Context, episode *models.Episode) error {
	args := m.Called(episode)
	return args.Error(0)
}

func (m *MockEpisodeRepository) Update(ctx context.Context, id int64, changes map[string]any) error {
	args := m.Called(id, changes)
	return args.Error(0)
}

func (m *MockEpisodeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockEpisodeRepository) GetByID(ctx context.Context, id int64) (*models.Episode, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Episode), args.Error(1)
}

func (m *MockEpisodeRepository) ListByWebtoon(ctx context.Context, webtoonID int64) ([]models.Episode, error) {
	args := m.Called(webtoonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Episode), args.Error(1)
}

// fixedReplies always answers with the same line
type fixedReplies string

func (f fixedReplies) Reply(string) string { return string(f) }
