package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"webtoonhub/internal/microservices/http-api/service"
	"webtoonhub/internal/storage"

	"github.com/gin-gonic/gin"
)

// respondDetail writes the {"detail": ...} error body every endpoint uses
func respondDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

// respondError maps service errors to HTTP statuses. Anything unknown is a
// 500 with a generic message; the cause goes to the log only.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrWebtoonNotFound),
		errors.Is(err, service.ErrEpisodeNotFound),
		errors.Is(err, service.ErrSceneNotFound),
		errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrUserNotFound):
		respondDetail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		respondDetail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNameInUse),
		errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrSceneNumberExists):
		respondDetail(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		c.Header("WWW-Authenticate", "Bearer")
		respondDetail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUnknownInteractionType),
		errors.Is(err, storage.ErrNotImage),
		errors.Is(err, storage.ErrEmptyUpload):
		respondDetail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrFileTooBig):
		respondDetail(c, http.StatusRequestEntityTooLarge, err.Error())
	default:
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		respondDetail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// int64Param parses a numeric path parameter, answering 400 on failure
func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		respondDetail(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// intQuery reads an optional integer query parameter
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return n, true
}
