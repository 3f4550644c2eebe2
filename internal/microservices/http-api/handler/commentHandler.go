package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/middleware"
	"webtoonhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// InteractionHandler serves likes and comments
type InteractionHandler struct {
	interactionService service.InteractionService
	logger             *slog.Logger
}

func NewInteractionHandler(interactionService service.InteractionService, logger *slog.Logger) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService, logger: logger}
}

// ToggleLike POST /api/interactions/like?webtoon_id=
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	webtoonID, err := strconv.ParseInt(c.Query("webtoon_id"), 10, 64)
	if err != nil || webtoonID < 1 {
		respondDetail(c, http.StatusBadRequest, "Invalid webtoon_id")
		return
	}
	resp, err := h.interactionService.ToggleLike(c.Request.Context(), middleware.UserID(c), webtoonID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// My GET /api/interactions/my?interaction_type=like|comment
func (h *InteractionHandler) My(c *gin.Context) {
	items, err := h.interactionService.MyInteractions(c.Request.Context(), middleware.UserID(c), c.Query("interaction_type"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListComments GET /api/interactions/comments/webtoon/:id
func (h *InteractionHandler) ListComments(c *gin.Context) {
	webtoonID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", 50)
	if !ok {
		return
	}
	offset, ok := intQuery(c, "offset", 0)
	if !ok {
		return
	}

	comments, err := h.interactionService.ListComments(c.Request.Context(), webtoonID, middleware.UserID(c), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment POST /api/interactions/comments
func (h *InteractionHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	comment, err := h.interactionService.CreateComment(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// UpdateComment PUT /api/interactions/comments/:id
func (h *InteractionHandler) UpdateComment(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	comment, err := h.interactionService.UpdateComment(c.Request.Context(), middleware.UserID(c), id, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment DELETE /api/interactions/comments/:id
func (h *InteractionHandler) DeleteComment(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.interactionService.DeleteComment(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
