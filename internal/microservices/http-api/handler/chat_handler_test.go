package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webtoonhub/internal/logging"
	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) List(ctx context.Context, webtoonID int64, limit, offset int) ([]models.ChatMessage, error) {
	args := m.Called(webtoonID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockChatService) Send(ctx context.Context, userID string, req dto.CreateChatMessageDTO) (*models.ChatMessage, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatMessage), args.Error(1)
}

func (m *MockChatService) MarkRead(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatService) MarkOneRead(ctx context.Context, id int64) (*models.ChatMessage, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatMessage), args.Error(1)
}

func (m *MockChatService) UnreadCount(ctx context.Context, webtoonID int64) (int64, error) {
	args := m.Called(webtoonID)
	return args.Get(0).(int64), args.Error(1)
}

func TestChatList_DefaultWindow(t *testing.T) {
	mockService := new(MockChatService)
	h := NewChatHandler(mockService, logging.Discard())
	router := setupRouter()
	router.GET("/chat/messages/webtoon/:id", h.ListByWebtoon)

	mockService.On("List", int64(4), 50, 0).Return([]models.ChatMessage{
		{ID: 1, WebtoonID: 4, SenderType: models.SenderCharacter, Message: "hello"},
	}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/chat/messages/webtoon/4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []models.ChatMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	mockService.AssertExpectations(t)
}

func TestChatSend_ValidatesSenderType(t *testing.T) {
	mockService := new(MockChatService)
	h := NewChatHandler(mockService, logging.Discard())
	router := setupRouter()
	router.POST("/chat/messages", h.Send)

	body := `{"webtoon_id":1,"sender_type":"robot","message":"hi"}`
	req, _ := http.NewRequest(http.MethodPost, "/chat/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockService.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestChatBatchRead_TakesBareArray(t *testing.T) {
	mockService := new(MockChatService)
	h := NewChatHandler(mockService, logging.Discard())
	router := setupRouter()
	router.POST("/chat/messages/batch-read", h.BatchRead)

	mockService.On("MarkRead", []int64{5, 7}).Return(int64(2), nil)

	req, _ := http.NewRequest(http.MethodPost, "/chat/messages/batch-read", strings.NewReader(`[5,7]`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Messages marked as read","count":2}`, w.Body.String())
}

func TestChatBatchRead_RejectsObject(t *testing.T) {
	h := NewChatHandler(new(MockChatService), logging.Discard())
	router := setupRouter()
	router.POST("/chat/messages/batch-read", h.BatchRead)

	req, _ := http.NewRequest(http.MethodPost, "/chat/messages/batch-read", strings.NewReader(`{"ids":[1]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestChatUnreadCount(t *testing.T) {
	mockService := new(MockChatService)
	h := NewChatHandler(mockService, logging.Discard())
	router := setupRouter()
	router.GET("/chat/unread-count/webtoon/:id", h.UnreadCount)

	mockService.On("UnreadCount", int64(4)).Return(int64(3), nil)

	req, _ := http.NewRequest(http.MethodGet, "/chat/unread-count/webtoon/4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unread_count":3}`, w.Body.String())
}
