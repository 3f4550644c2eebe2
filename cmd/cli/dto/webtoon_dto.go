package dto

import "time"

// Client-side shapes of the REST API. They mirror the server's JSON and carry
// no validation tags; the CLI validates before sending.

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       *string   `json:"bio,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Password *string `json:"password,omitempty"`
}

type Webtoon struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	AuthorName   string    `json:"author_name"`
	Genre        *string   `json:"genre,omitempty"`
	Theme        *string   `json:"theme,omitempty"`
	StoryStyle   *string   `json:"story_style,omitempty"`
	Status       string    `json:"status"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	IsOwner      bool      `json:"is_owner"`
	IsLiked      bool      `json:"is_liked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type WebtoonList struct {
	Webtoons []Webtoon `json:"webtoons"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
	HasMore  bool      `json:"has_more"`
}

type CreateWebtoonRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	AuthorName   *string `json:"author_name,omitempty"`
	Genre        *string `json:"genre,omitempty"`
	Theme        *string `json:"theme,omitempty"`
	StoryStyle   *string `json:"story_style,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

type UpdateWebtoonRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	AuthorName   *string `json:"author_name,omitempty"`
	Genre        *string `json:"genre,omitempty"`
	Theme        *string `json:"theme,omitempty"`
	StoryStyle   *string `json:"story_style,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// EpisodeScene is one editor panel, grouped by EpisodeNumber and ordered by
// SceneOrder.
type EpisodeScene struct {
	ID            int64   `json:"id"`
	WebtoonID     int64   `json:"webtoon_id"`
	EpisodeNumber int     `json:"episode_number"`
	SceneOrder    int     `json:"scene_order"`
	Title         *string `json:"title,omitempty"`
	Dialogue      *string `json:"dialogue,omitempty"`
	Description   *string `json:"description,omitempty"`
	Narration     *string `json:"narration,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	PanelLayout   *string `json:"panel_layout,omitempty"`
}

func (s EpisodeScene) Sequence() int { return s.SceneOrder }

func (s EpisodeScene) WithSequence(n int) EpisodeScene {
	s.SceneOrder = n
	return s
}

type CreateEpisodeSceneRequest struct {
	WebtoonID     int64   `json:"webtoon_id"`
	EpisodeNumber int     `json:"episode_number"`
	SceneOrder    int     `json:"scene_order"`
	Title         *string `json:"title,omitempty"`
	Dialogue      *string `json:"dialogue,omitempty"`
	Description   *string `json:"description,omitempty"`
	Narration     *string `json:"narration,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	PanelLayout   *string `json:"panel_layout,omitempty"`
}

type UpdateEpisodeSceneRequest struct {
	EpisodeNumber *int    `json:"episode_number,omitempty"`
	SceneOrder    *int    `json:"scene_order,omitempty"`
	Title         *string `json:"title,omitempty"`
	Dialogue      *string `json:"dialogue,omitempty"`
	Description   *string `json:"description,omitempty"`
	Narration     *string `json:"narration,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	PanelLayout   *string `json:"panel_layout,omitempty"`
}

type ImageUploadResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"image_url"`
}

// Scene is one reader panel, ordered by SceneNumber.
type Scene struct {
	ID               int64   `json:"id"`
	WebtoonID        int64   `json:"webtoon_id"`
	SceneNumber      int     `json:"scene_number"`
	SceneDescription *string `json:"scene_description,omitempty"`
	Dialogue         *string `json:"dialogue,omitempty"`
	Narration        *string `json:"narration,omitempty"`
	ImageURL         *string `json:"image_url,omitempty"`
	PanelLayout      *string `json:"panel_layout,omitempty"`
}

func (s Scene) Sequence() int { return s.SceneNumber }

const (
	SenderUser      = "user"
	SenderCharacter = "character"
)

type ChatMessage struct {
	ID              int64     `json:"id"`
	WebtoonID       int64     `json:"webtoon_id"`
	SenderType      string    `json:"sender_type"`
	SenderName      string    `json:"sender_name"`
	Message         string    `json:"message"`
	IsRead          bool      `json:"is_read"`
	ParentMessageID *int64    `json:"parent_message_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type SendChatMessageRequest struct {
	WebtoonID  int64  `json:"webtoon_id"`
	SenderType string `json:"sender_type"`
	SenderName string `json:"sender_name,omitempty"`
	Message    string `json:"message"`
}

type BatchReadResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type Comment struct {
	ID         int64     `json:"id"`
	WebtoonID  int64     `json:"webtoon_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	IsOwner    bool      `json:"is_owner"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateCommentRequest struct {
	WebtoonID  int64   `json:"webtoon_id"`
	Content    string  `json:"content"`
	AuthorName *string `json:"author_name,omitempty"`
}

type LikeResponse struct {
	Message   string `json:"message"`
	Liked     bool   `json:"liked"`
	LikeCount int64  `json:"like_count"`
}

const (
	InteractionLike    = "like"
	InteractionComment = "comment"
)

type Interaction struct {
	Type      string    `json:"interaction_type"`
	WebtoonID int64     `json:"webtoon_id"`
	Content   *string   `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
