package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webtoonhub/internal/logging"
	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/models"
	"webtoonhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWebtoonService struct {
	mock.Mock
}

func (m *MockWebtoonService) List(ctx context.Context, q dto.ListWebtoonsQuery, viewerID string) (*dto.WebtoonListResponse, error) {
	args := m.Called(q, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WebtoonListResponse), args.Error(1)
}

func (m *MockWebtoonService) ListMine(ctx context.Context, userID string) ([]dto.WebtoonResponse, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.WebtoonResponse), args.Error(1)
}

func (m *MockWebtoonService) Get(ctx context.Context, id int64, viewerID string) (*dto.WebtoonResponse, error) {
	args := m.Called(id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WebtoonResponse), args.Error(1)
}

func (m *MockWebtoonService) Create(ctx context.Context, userID string, req dto.CreateWebtoonDTO) (*dto.WebtoonResponse, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WebtoonResponse), args.Error(1)
}

func (m *MockWebtoonService) Update(ctx context.Context, userID string, id int64, req dto.UpdateWebtoonDTO) (*dto.WebtoonResponse, error) {
	args := m.Called(userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WebtoonResponse), args.Error(1)
}

func (m *MockWebtoonService) Delete(ctx context.Context, userID string, id int64) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

func (m *MockWebtoonService) RequireOwner(ctx context.Context, id int64, userID string) (*models.Webtoon, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Webtoon), args.Error(1)
}

func (m *MockWebtoonService) Exists(ctx context.Context, id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Next()
	}
}

func TestListWebtoons_DefaultsAndPagination(t *testing.T) {
	mockService := new(MockWebtoonService)
	h := NewWebtoonHandler(mockService, logging.Discard())
	router := setupRouter()
	router.GET("/webtoons/", h.List)

	want := dto.ListWebtoonsQuery{Page: 2, PerPage: 5}
	mockService.On("List", want, "").Return(dto.NewWebtoonListResponse(
		[]dto.WebtoonResponse{{ID: 6, Title: "six"}}, 11, 2, 5,
	), nil)

	req, _ := http.NewRequest(http.MethodGet, "/webtoons/?page=2&per_page=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.WebtoonListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.Total)
	assert.True(t, resp.HasMore)
	assert.Len(t, resp.Webtoons, 1)
	mockService.AssertExpectations(t)
}

func TestListWebtoons_RejectsBadPerPage(t *testing.T) {
	mockService := new(MockWebtoonService)
	h := NewWebtoonHandler(mockService, logging.Discard())
	router := setupRouter()
	router.GET("/webtoons/", h.List)

	for _, q := range []string{"per_page=0", "per_page=101", "page=0"} {
		req, _ := http.NewRequest(http.MethodGet, "/webtoons/?"+q, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, q)
	}
	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetWebtoon_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", service.ErrWebtoonNotFound, http.StatusNotFound},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockWebtoonService)
			h := NewWebtoonHandler(mockService, logging.Discard())
			router := setupRouter()
			router.GET("/webtoons/:id", h.Get)

			mockService.On("Get", int64(9), "").Return(nil, tt.err)

			req, _ := http.NewRequest(http.MethodGet, "/webtoons/9", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, decodeDetail(t, w))
			assert.NotContains(t, w.Body.String(), "db down")
		})
	}
}

func TestGetWebtoon_InvalidID(t *testing.T) {
	h := NewWebtoonHandler(new(MockWebtoonService), logging.Discard())
	router := setupRouter()
	router.GET("/webtoons/:id", h.Get)

	req, _ := http.NewRequest(http.MethodGet, "/webtoons/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id", decodeDetail(t, w))
}

func TestCreateWebtoon(t *testing.T) {
	mockService := new(MockWebtoonService)
	h := NewWebtoonHandler(mockService, logging.Discard())
	router := setupRouter()
	router.POST("/webtoons/", asUser("owner-1"), h.Create)

	mockService.On("Create", "owner-1", dto.CreateWebtoonDTO{Title: "My Toon"}).
		Return(&dto.WebtoonResponse{ID: 1, Title: "My Toon", AuthorName: "Anonymous", IsOwner: true}, nil)

	req, _ := http.NewRequest(http.MethodPost, "/webtoons/", strings.NewReader(`{"title":"My Toon"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"is_owner":true`)
	mockService.AssertExpectations(t)
}

func TestDeleteWebtoon_Forbidden(t *testing.T) {
	mockService := new(MockWebtoonService)
	h := NewWebtoonHandler(mockService, logging.Discard())
	router := setupRouter()
	router.DELETE("/webtoons/:id", asUser("stranger"), h.Delete)

	mockService.On("Delete", "stranger", int64(3)).Return(service.ErrForbidden)

	req, _ := http.NewRequest(http.MethodDelete, "/webtoons/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "not enough permissions", decodeDetail(t, w))
}
