package client

// http_client.go = typed REST client for the webtoonhub API. Every path is
// rooted at <baseURL>/api and every call takes a context.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"webtoonhub/cmd/cli/dto"
	"webtoonhub/internal/logging"
)

// APIError is any non-2xx answer from the server
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// IsUnauthorized reports whether err is a 401 from the server
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// defines the HTTP client structure and methods
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     *slog.Logger
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/") + "/api",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.Discard(),
	}
}

func (c *HTTPClient) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// SetToken attaches the bearer token to every later request
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) ClearToken() {
	c.token = ""
}

func (c *HTTPClient) HasToken() bool {
	return c.token != ""
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil)
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: http.StatusText(resp.StatusCode)}
		var payload struct {
			Detail json.RawMessage `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && len(payload.Detail) > 0 {
			// detail is usually a string; anything else is shown raw
			var s string
			if json.Unmarshal(payload.Detail, &s) == nil {
				apiErr.Detail = s
			} else {
				apiErr.Detail = string(payload.Detail)
			}
		}
		c.logger.Debug("request rejected", "method", method, "path", path, "status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	if in == nil {
		return c.do(ctx, method, path, nil, "", out)
	}
	jsonData, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, bytes.NewReader(jsonData), "application/json", out)
}

// Auth

// Login posts form-encoded credentials and returns the bearer token
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var result dto.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*dto.User, error) {
	var user dto.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Register(ctx context.Context, request *dto.RegisterRequest) (*dto.User, error) {
	var user dto.User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", request, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, userID string, request *dto.UpdateUserRequest) (*dto.User, error) {
	var user dto.User
	if err := c.doJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(userID), request, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Webtoons

func (c *HTTPClient) ListWebtoons(ctx context.Context, page, perPage int) (*dto.WebtoonList, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var result dto.WebtoonList
	if err := c.doJSON(ctx, http.MethodGet, "/webtoons/?"+q.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) MyWebtoons(ctx context.Context) ([]dto.Webtoon, error) {
	var result []dto.Webtoon
	if err := c.doJSON(ctx, http.MethodGet, "/webtoons/my", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) GetWebtoon(ctx context.Context, id int64) (*dto.Webtoon, error) {
	var result dto.Webtoon
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/webtoons/%d", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateWebtoon(ctx context.Context, request *dto.CreateWebtoonRequest) (*dto.Webtoon, error) {
	var result dto.Webtoon
	if err := c.doJSON(ctx, http.MethodPost, "/webtoons/", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateWebtoon(ctx context.Context, id int64, request *dto.UpdateWebtoonRequest) (*dto.Webtoon, error) {
	var result dto.Webtoon
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/webtoons/%d", id), request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteWebtoon(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/webtoons/%d", id), nil, nil)
}

// Episodes (editor scenes)

func (c *HTTPClient) ListEpisodeScenes(ctx context.Context, webtoonID int64) ([]dto.EpisodeScene, error) {
	var result []dto.EpisodeScene
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/episodes/webtoon/%d", webtoonID), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) CreateEpisodeScene(ctx context.Context, request *dto.CreateEpisodeSceneRequest) (*dto.EpisodeScene, error) {
	var result dto.EpisodeScene
	if err := c.doJSON(ctx, http.MethodPost, "/episodes/", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UpdateEpisodeScene(ctx context.Context, id int64, request *dto.UpdateEpisodeSceneRequest) (*dto.EpisodeScene, error) {
	var result dto.EpisodeScene
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/episodes/%d", id), request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteEpisodeScene(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/episodes/%d", id), nil, nil)
}

// UploadEpisodeImage sends the image as multipart field "file"
func (c *HTTPClient) UploadEpisodeImage(ctx context.Context, id int64, filename string, image io.Reader) (*dto.ImageUploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var result dto.ImageUploadResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/episodes/%d/image", id), &buf, w.FormDataContentType(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Scenes (reader)

func (c *HTTPClient) ListScenes(ctx context.Context, webtoonID int64) ([]dto.Scene, error) {
	var result []dto.Scene
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/scenes/webtoon/%d", webtoonID), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Chat

func (c *HTTPClient) ListChatMessages(ctx context.Context, webtoonID int64) ([]dto.ChatMessage, error) {
	var result []dto.ChatMessage
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/chat/messages/webtoon/%d", webtoonID), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) SendChatMessage(ctx context.Context, request *dto.SendChatMessageRequest) (*dto.ChatMessage, error) {
	var result dto.ChatMessage
	if err := c.doJSON(ctx, http.MethodPost, "/chat/messages", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkMessagesRead posts the ids as a bare JSON array
func (c *HTTPClient) MarkMessagesRead(ctx context.Context, ids []int64) (*dto.BatchReadResponse, error) {
	var result dto.BatchReadResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/messages/batch-read", ids, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) UnreadCount(ctx context.Context, webtoonID int64) (int64, error) {
	var result dto.UnreadCountResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/chat/unread-count/webtoon/%d", webtoonID), nil, &result); err != nil {
		return 0, err
	}
	return result.UnreadCount, nil
}

// Interactions

func (c *HTTPClient) ListComments(ctx context.Context, webtoonID int64) ([]dto.Comment, error) {
	var result []dto.Comment
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/interactions/comments/webtoon/%d", webtoonID), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) CreateComment(ctx context.Context, request *dto.CreateCommentRequest) (*dto.Comment, error) {
	var result dto.Comment
	if err := c.doJSON(ctx, http.MethodPost, "/interactions/comments", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ToggleLike(ctx context.Context, webtoonID int64) (*dto.LikeResponse, error) {
	var result dto.LikeResponse
	path := "/interactions/like?webtoon_id=" + strconv.FormatInt(webtoonID, 10)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MyInteractions lists the caller's likes and comments; interactionType
// "like" or "comment" narrows it, "" returns both.
func (c *HTTPClient) MyInteractions(ctx context.Context, interactionType string) ([]dto.Interaction, error) {
	path := "/interactions/my"
	if interactionType != "" {
		path += "?interaction_type=" + url.QueryEscape(interactionType)
	}
	var result []dto.Interaction
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
