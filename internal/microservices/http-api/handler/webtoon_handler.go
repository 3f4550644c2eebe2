package handler

import (
	"log/slog"
	"net/http"

	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/middleware"
	"webtoonhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type WebtoonHandler struct {
	webtoonService service.WebtoonService
	logger         *slog.Logger
}

func NewWebtoonHandler(webtoonService service.WebtoonService, logger *slog.Logger) *WebtoonHandler {
	return &WebtoonHandler{webtoonService: webtoonService, logger: logger}
}

// List returns one page of webtoons
// GET /api/webtoons/?page=1&per_page=10&genre=&status=
func (h *WebtoonHandler) List(c *gin.Context) {
	var q dto.ListWebtoonsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp, err := h.webtoonService.List(c.Request.Context(), q, middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine returns every webtoon the caller owns
// GET /api/webtoons/my
func (h *WebtoonHandler) ListMine(c *gin.Context) {
	webtoons, err := h.webtoonService.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, webtoons)
}

// Get returns one webtoon and counts the view
// GET /api/webtoons/:id
func (h *WebtoonHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	webtoon, err := h.webtoonService.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, webtoon)
}

// Create POST /api/webtoons/
func (h *WebtoonHandler) Create(c *gin.Context) {
	var req dto.CreateWebtoonDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	webtoon, err := h.webtoonService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, webtoon)
}

// Update PUT /api/webtoons/:id
func (h *WebtoonHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateWebtoonDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	webtoon, err := h.webtoonService.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, webtoon)
}

// Delete DELETE /api/webtoons/:id
func (h *WebtoonHandler) Delete(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.webtoonService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Webtoon deleted successfully"})
}
