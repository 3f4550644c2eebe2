package handler

import (
	"log/slog"
	"net/http"

	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/middleware"
	"webtoonhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type SceneHandler struct {
	sceneService service.SceneService
	logger       *slog.Logger
}

func NewSceneHandler(sceneService service.SceneService, logger *slog.Logger) *SceneHandler {
	return &SceneHandler{sceneService: sceneService, logger: logger}
}

// ListByWebtoon GET /api/scenes/webtoon/:id
func (h *SceneHandler) ListByWebtoon(c *gin.Context) {
	webtoonID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	scenes, err := h.sceneService.ListByWebtoon(c.Request.Context(), webtoonID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, scenes)
}

// Get GET /api/scenes/:id
func (h *SceneHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	scene, err := h.sceneService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, scene)
}

// Create POST /api/scenes/
func (h *SceneHandler) Create(c *gin.Context) {
	var req dto.CreateSceneDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	scene, err := h.sceneService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, scene)
}

// Update PUT /api/scenes/:id
func (h *SceneHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSceneDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	scene, err := h.sceneService.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, scene)
}
