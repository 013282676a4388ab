package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
	"github.com/rs/zerolog"

	"github.com/editorial-backoffice/internal/config"
	"github.com/editorial-backoffice/internal/listing"
	"github.com/editorial-backoffice/internal/repository"
	"github.com/editorial-backoffice/internal/service"
)

// PublicHandler serves the unauthenticated read surface: the validated
// article listing, single articles and the RSS feed.
type PublicHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "public").Logger(),
	}
}

// List handles GET /v1/articles — validated entries only, creation order.
func (h *PublicHandler) List(c *gin.Context) {
	entries, err := h.services.Listing.PublicList(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Public listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgStorageFailure})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": entries,
		"actions":  listing.Actions(listing.ContextPublic, "article"),
	})
}

// BySlug handles GET /v1/articles/:slug. Drafts read as not found.
func (h *PublicHandler) BySlug(c *gin.Context) {
	article, err := h.services.Listing.ArticleBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgArticleNotFound})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("slug", c.Param("slug")).Msg("Article lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgStorageFailure})
		return
	}

	c.JSON(http.StatusOK, article)
}

// Feed handles GET /feed.xml — RSS of the live (validated and shipped)
// articles, newest first.
func (h *PublicHandler) Feed(c *gin.Context) {
	articles, err := h.services.Listing.LiveArticles(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Feed query failed")
		c.Status(http.StatusInternalServerError)
		return
	}

	feed := &feeds.Feed{
		Title:       h.cfg.Feed.Title,
		Description: h.cfg.Feed.Description,
		Link:        &feeds.Link{Href: h.cfg.Feed.Link},
	}
	for _, article := range articles {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       article.Title,
			Description: article.Introduction,
			Link:        &feeds.Link{Href: h.cfg.Feed.Link + "/articles/" + article.Slug},
			Author:      &feeds.Author{Name: article.Author, Email: article.AuthorEmail},
			Created:     article.CreatedAt,
			Updated:     article.UpdatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		h.log.Error().Err(err).Msg("Feed rendering failed")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
