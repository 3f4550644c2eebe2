package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webtoonhub/internal/logging"
	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/middleware"
	"webtoonhub/internal/microservices/http-api/models"
	"webtoonhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEpisodeService struct {
	mock.Mock
}

func (m *MockEpisodeService) ListByWebtoon(ctx context.Context, webtoonID int64) ([]models.Episode, error) {
	args := m.Called(webtoonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Episode), args.Error(1)
}

func (m *MockEpisodeService) Get(ctx context.Context, id int64) (*models.Episode, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Episode), args.Error(1)
}

func (m *MockEpisodeService) Create(ctx context.Context, userID string, req dto.CreateEpisodeDTO) (*models.Episode, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Episode), args.Error(1)
}

func (m *MockEpisodeService) Update(ctx context.Context, userID string, id int64, req dto.UpdateEpisodeDTO) (*models.Episode, error) {
	args := m.Called(userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Episode), args.Error(1)
}

func (m *MockEpisodeService) Delete(ctx context.Context, userID string, id int64) error {
	return m.Called(userID, id).Error(0)
}

func (m *MockEpisodeService) AttachImage(ctx context.Context, userID string, id int64, image io.Reader) (string, error) {
	args := m.Called(userID, id)
	return args.String(0), args.Error(1)
}

// routerWithDefaultLimits mirrors the api-server wiring with the default
// RATE_LIMIT_RPS / RATE_LIMIT_BURST values.
func routerWithDefaultLimits(episodes service.EpisodeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := new(MockAuthService)
	auth.On("ValidateToken", "tok").Return(&service.Claims{UserID: "owner-1", Username: "owner"}, nil)

	return SetupRouter(Handlers{
		Episode: NewEpisodeHandler(episodes, 1<<20, logging.Discard()),
	}, RouterOptions{
		AuthService: auth,
		Limiter:     middleware.NewIPRateLimiter(5, 10),
	})
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok")
	req.RemoteAddr = "10.0.0.1:5000"
	return req
}

func TestRouter_SceneOrderUpdatesAreNotRateLimited(t *testing.T) {
	episodes := new(MockEpisodeService)
	episodes.On("Update", "owner-1", mock.Anything, mock.Anything).
		Return(&models.Episode{ID: 1, SceneOrder: 1}, nil)
	r := routerWithDefaultLimits(episodes)

	// a reorder of a fifteen scene episode
	for i := 1; i <= 15; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodPut, fmt.Sprintf("/api/episodes/%d", i), fmt.Sprintf(`{"scene_order":%d}`, i)))
		assert.Equal(t, http.StatusOK, w.Code, "update %d", i)
	}
	episodes.AssertNumberOfCalls(t, "Update", 15)
}

func TestRouter_OtherWritesStayLimited(t *testing.T) {
	episodes := new(MockEpisodeService)
	episodes.On("Delete", "owner-1", mock.Anything).Return(nil)
	r := routerWithDefaultLimits(episodes)

	codes := map[int]int{}
	for i := 1; i <= 15; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, authedRequest(http.MethodDelete, fmt.Sprintf("/api/episodes/%d", i), ""))
		codes[w.Code]++
	}
	assert.Positive(t, codes[http.StatusTooManyRequests])
}
