package handler

import (
	"log/slog"
	"net/http"

	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/middleware"
	"webtoonhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService service.ChatService
	logger      *slog.Logger
}

func NewChatHandler(chatService service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// ListByWebtoon returns the history oldest first
// GET /api/chat/messages/webtoon/:id?limit=50&offset=0
func (h *ChatHandler) ListByWebtoon(c *gin.Context) {
	webtoonID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", service.DefaultChatLimit)
	if !ok {
		return
	}
	offset, ok := intQuery(c, "offset", 0)
	if !ok {
		return
	}

	messages, err := h.chatService.List(c.Request.Context(), webtoonID, limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Send POST /api/chat/messages
func (h *ChatHandler) Send(c *gin.Context) {
	var req dto.CreateChatMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	msg, err := h.chatService.Send(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// BatchRead takes a bare JSON array of message ids
// POST /api/chat/messages/batch-read
func (h *ChatHandler) BatchRead(c *gin.Context) {
	var ids []int64
	if err := c.ShouldBindJSON(&ids); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, "body must be a JSON array of message ids")
		return
	}
	count, err := h.chatService.MarkRead(c.Request.Context(), ids)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.BatchReadResponse{Message: "Messages marked as read", Count: count})
}

// MarkRead PUT /api/chat/messages/:id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	msg, err := h.chatService.MarkOneRead(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// UnreadCount GET /api/chat/unread-count/webtoon/:id
func (h *ChatHandler) UnreadCount(c *gin.Context) {
	webtoonID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	count, err := h.chatService.UnreadCount(c.Request.Context(), webtoonID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}
