package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/editorial-backoffice/internal/listing"
	"github.com/editorial-backoffice/internal/service"
)

// EditorHandler serves the authenticated editor surface: the action endpoint
// and the draft-inclusive search.
type EditorHandler struct {
	services   *service.Services
	dispatcher *Dispatcher
	log        zerolog.Logger
}

// NewEditorHandler creates a new EditorHandler
func NewEditorHandler(services *service.Services, dispatcher *Dispatcher, log zerolog.Logger) *EditorHandler {
	return &EditorHandler{
		services:   services,
		dispatcher: dispatcher,
		log:        log.With().Str("handler", "editor").Logger(),
	}
}

// Dispatch handles POST /v1/actions with {"action": ..., "payload": {...}}.
// The answer is always the uniform envelope.
func (h *EditorHandler) Dispatch(c *gin.Context) {
	var req struct {
		Action  string          `json:"action"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidPayload})
		return
	}

	envelope, err := h.dispatcher.Dispatch(c.Request.Context(), req.Action, req.Payload, actorFrom(c))
	if errors.Is(err, service.ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{"redirect": "/login"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("action", req.Action).Msg("Dispatch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgStorageFailure})
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// Search handles GET /v1/editor/search?q=&scope=&page=&size=. Editors see
// drafts too; results are paginated with clamping.
func (h *EditorHandler) Search(c *gin.Context) {
	term := c.Query("q")
	scope := c.DefaultQuery("scope", "slugs")
	page := intQuery(c, "page", 1)
	size := intQuery(c, "size", 10)

	ctx := c.Request.Context()
	switch scope {
	case "slugs":
		result, err := h.services.Listing.SearchSlugs(ctx, term, page, size)
		if err != nil {
			h.log.Error().Err(err).Str("term", term).Msg("Slug search failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgStorageFailure})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"results": result,
			"actions": listing.Actions(listing.ContextEditor, "slug"),
		})
	case "articles":
		result, err := h.services.Listing.SearchArticles(ctx, term, page, size)
		if err != nil {
			h.log.Error().Err(err).Str("term", term).Msg("Article search failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgStorageFailure})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"results": result,
			"actions": listing.Actions(listing.ContextEditor, "article"),
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "scope must be one of: slugs, articles"})
	}
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
