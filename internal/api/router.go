package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/editorial-backoffice/internal/config"
	"github.com/editorial-backoffice/internal/models"
	"github.com/editorial-backoffice/internal/service"
	"github.com/editorial-backoffice/internal/session"
)

const ctxActorKey = "actor"

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, sessions session.Store, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	// Handlers
	dispatcher := NewDispatcher(services, log)
	publicHandler := NewPublicHandler(services, cfg, log)
	editorHandler := NewEditorHandler(services, dispatcher, log)
	userHandler := NewUserHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// Public surface
	router.GET("/feed.xml", publicHandler.Feed)

	v1 := router.Group("/v1")
	{
		v1.GET("/articles", publicHandler.List)
		v1.GET("/articles/:slug", publicHandler.BySlug)

		// Editor surface, behind the session check
		authed := v1.Group("", requireSession(sessions, services.Users, log))
		{
			authed.POST("/actions", editorHandler.Dispatch)
			authed.GET("/editor/search", editorHandler.Search)

			authed.GET("/users", userHandler.List)
			authed.POST("/users", userHandler.Create)
			authed.PUT("/users/:id", userHandler.Update)
			authed.DELETE("/users", userHandler.Delete)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "editorial-backoffice",
	})
}

// metricsHandler returns row counts for the main tables
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		entries, _ := services.Listing.PublicList(ctx)
		live, _ := services.Listing.LiveArticles(ctx)
		users, _ := services.Users.List(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"validated_slugs": len(entries),
				"live_articles":   len(live),
				"users":           len(users),
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// requireSession resolves the actor for the request or aborts with a
// redirect hint. On the first request of a session it stamps the account's
// last connection time.
func requireSession(sessions session.Store, users service.UserService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, found := sessions.Actor(c.Request.Context())
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"redirect": "/login"})
			return
		}

		if sessions.MarkConnected(c.Request.Context()) {
			if err := users.TouchConnection(c.Request.Context(), actor.Email); err != nil {
				log.Warn().Err(err).Str("actor", actor.Email).Msg("Failed to stamp last connection")
			}
		}

		c.Set(ctxActorKey, actor)
		c.Next()
	}
}

// actorFrom returns the actor resolved by requireSession.
func actorFrom(c *gin.Context) models.Actor {
	if v, ok := c.Get(ctxActorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware tags each request with an id for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("request_id", c.GetString("request_id")).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}
