package handler

import (
	"net/http"

	"webtoonhub/internal/microservices/http-api/middleware"
	"webtoonhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every route group of the API
type Handlers struct {
	Auth        *AuthHandler
	User        *UserHandler
	Webtoon     *WebtoonHandler
	Episode     *EpisodeHandler
	Scene       *SceneHandler
	Chat        *ChatHandler
	Interaction *InteractionHandler
}

// RouterOptions carries the cross-cutting pieces of the router
type RouterOptions struct {
	AuthService service.AuthService
	// Limiter guards write routes; nil disables rate limiting
	Limiter     *middleware.IPRateLimiter
	CORSOrigins []string
	// StaticDir is served at /static when set
	StaticDir string
}

// SetupRouter wires every route under /api
func SetupRouter(h Handlers, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.NoRoute(func(c *gin.Context) {
		respondDetail(c, http.StatusNotFound, "Not Found")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	if opts.StaticDir != "" {
		r.Static("/static/uploads", opts.StaticDir)
	}

	requireAuth := middleware.AuthMiddleware(opts.AuthService)
	optionalAuth := middleware.OptionalAuth(opts.AuthService)
	limit := func(c *gin.Context) { c.Next() }
	if opts.Limiter != nil {
		limit = middleware.RateLimit(opts.Limiter)
	}

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", limit, h.Auth.Register)
		authGroup.POST("/login", limit, h.Auth.Login)
		authGroup.GET("/me", requireAuth, h.Auth.Me)
	}

	users := api.Group("/users")
	{
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", requireAuth, limit, h.User.Update)
	}

	webtoons := api.Group("/webtoons")
	{
		webtoons.GET("/", optionalAuth, h.Webtoon.List)
		webtoons.GET("/my", requireAuth, h.Webtoon.ListMine)
		webtoons.GET("/:id", optionalAuth, h.Webtoon.Get)
		webtoons.POST("/", requireAuth, limit, h.Webtoon.Create)
		webtoons.PUT("/:id", requireAuth, limit, h.Webtoon.Update)
		webtoons.DELETE("/:id", requireAuth, limit, h.Webtoon.Delete)
	}

	episodes := api.Group("/episodes")
	{
		episodes.GET("/webtoon/:id", h.Episode.ListByWebtoon)
		episodes.GET("/:id", h.Episode.Get)
		episodes.POST("/", requireAuth, limit, h.Episode.Create)
		// reordering pushes one update per scene back to back
		episodes.PUT("/:id", requireAuth, h.Episode.Update)
		episodes.DELETE("/:id", requireAuth, limit, h.Episode.Delete)
		episodes.POST("/:id/image", requireAuth, limit, h.Episode.UploadImage)
	}

	scenes := api.Group("/scenes")
	{
		scenes.GET("/webtoon/:id", h.Scene.ListByWebtoon)
		scenes.GET("/:id", h.Scene.Get)
		scenes.POST("/", requireAuth, limit, h.Scene.Create)
		scenes.PUT("/:id", requireAuth, limit, h.Scene.Update)
	}

	// anonymous readers may chat
	chat := api.Group("/chat", optionalAuth)
	{
		chat.GET("/messages/webtoon/:id", h.Chat.ListByWebtoon)
		chat.POST("/messages", limit, h.Chat.Send)
		chat.POST("/messages/batch-read", h.Chat.BatchRead)
		chat.PUT("/messages/:id/read", h.Chat.MarkRead)
		chat.GET("/unread-count/webtoon/:id", h.Chat.UnreadCount)
	}

	interactions := api.Group("/interactions")
	{
		interactions.POST("/like", requireAuth, limit, h.Interaction.ToggleLike)
		interactions.GET("/my", requireAuth, h.Interaction.My)
		interactions.GET("/comments/webtoon/:id", optionalAuth, h.Interaction.ListComments)
		interactions.POST("/comments", optionalAuth, limit, h.Interaction.CreateComment)
		interactions.PUT("/comments/:id", requireAuth, limit, h.Interaction.UpdateComment)
		interactions.DELETE("/comments/:id", requireAuth, limit, h.Interaction.DeleteComment)
	}

	return r
}
