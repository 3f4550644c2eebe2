package handler

import (
	"log/slog"
	"net/http"

	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/middleware"
	"webtoonhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// EpisodeHandler serves the editor's scene records
type EpisodeHandler struct {
	episodeService service.EpisodeService
	maxUpload      int64
	logger         *slog.Logger
}

func NewEpisodeHandler(episodeService service.EpisodeService, maxUpload int64, logger *slog.Logger) *EpisodeHandler {
	return &EpisodeHandler{episodeService: episodeService, maxUpload: maxUpload, logger: logger}
}

// ListByWebtoon GET /api/episodes/webtoon/:id
func (h *EpisodeHandler) ListByWebtoon(c *gin.Context) {
	webtoonID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	episodes, err := h.episodeService.ListByWebtoon(c.Request.Context(), webtoonID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, episodes)
}

// Get GET /api/episodes/:id
func (h *EpisodeHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	episode, err := h.episodeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, episode)
}

// Create POST /api/episodes/
func (h *EpisodeHandler) Create(c *gin.Context) {
	var req dto.CreateEpisodeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	episode, err := h.episodeService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, episode)
}

// Update PUT /api/episodes/:id
func (h *EpisodeHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateEpisodeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	episode, err := h.episodeService.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, episode)
}

// Delete DELETE /api/episodes/:id
func (h *EpisodeHandler) Delete(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.episodeService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Episode deleted successfully"})
}

// UploadImage takes a multipart "file" field
// POST /api/episodes/:id/image
func (h *EpisodeHandler) UploadImage(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	// leave room for the multipart envelope
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		respondDetail(c, http.StatusBadRequest, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondDetail(c, http.StatusBadRequest, "could not read upload")
		return
	}
	defer f.Close()

	url, err := h.episodeService.AttachImage(c.Request.Context(), middleware.UserID(c), id, f)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ImageUploadResponse{Message: "Image uploaded successfully", ImageURL: url})
}
