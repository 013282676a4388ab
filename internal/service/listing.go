package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/editorial-backoffice/internal/listing"
	"github.com/editorial-backoffice/internal/models"
	"github.com/editorial-backoffice/internal/repository"
)

// PublicEntry is one row of the public article listing.
type PublicEntry struct {
	Slug      string `json:"slug"`
	Label     string `json:"label"`
	CreatedOn string `json:"created_on"`
	Href      string `json:"href"`
}

// ListingService is the read-side projection over articles and slugs.
type ListingService interface {
	PublicList(ctx context.Context) ([]PublicEntry, error)
	ArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	LiveArticles(ctx context.Context) ([]*models.Article, error)
	SearchSlugs(ctx context.Context, term string, page, size int) (listing.Page[*models.SlugEntry], error)
	SearchArticles(ctx context.Context, term string, page, size int) (listing.Page[*models.Article], error)
}

// listingService is the concrete implementation of ListingService
type listingService struct {
	articles repository.ArticleRepository
	slugs    repository.SlugRepository
	log      zerolog.Logger
}

// newListingService creates a new ListingService
func newListingService(articles repository.ArticleRepository, slugs repository.SlugRepository, log zerolog.Logger) *listingService {
	return &listingService{
		articles: articles,
		slugs:    slugs,
		log:      log.With().Str("service", "listing").Logger(),
	}
}

// PublicList filters the slug index down to validated entries only, keeping
// insertion order, and shapes each one for display.
func (s *listingService) PublicList(ctx context.Context) ([]PublicEntry, error) {
	entries, err := s.slugs.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]PublicEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.Validated {
			continue
		}
		public = append(public, PublicEntry{
			Slug:      entry.Slug,
			Label:     listing.Label(entry.Slug),
			CreatedOn: listing.FormatDate(entry.CreatedAt),
			Href:      "/articles/" + entry.Slug,
		})
	}
	return public, nil
}

// ArticleBySlug returns a validated article for the public site. Drafts are
// indistinguishable from missing articles out here.
func (s *listingService) ArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !article.Validated {
		return nil, repository.ErrNotFound
	}
	return article, nil
}

// LiveArticles returns the validated and shipped articles, newest first.
func (s *listingService) LiveArticles(ctx context.Context) ([]*models.Article, error) {
	return s.articles.ListLive(ctx)
}

// SearchSlugs is the editor-side slug search: substring match, all validation
// states, paginated.
func (s *listingService) SearchSlugs(ctx context.Context, term string, page, size int) (listing.Page[*models.SlugEntry], error) {
	entries, err := s.slugs.Search(ctx, term)
	if err != nil {
		return listing.Page[*models.SlugEntry]{}, err
	}
	return listing.Paginate(entries, page, size), nil
}

// SearchArticles is the editor-side body search over title, introduction and
// main, all validation states, paginated.
func (s *listingService) SearchArticles(ctx context.Context, term string, page, size int) (listing.Page[*models.Article], error) {
	articles, err := s.articles.Search(ctx, term)
	if err != nil {
		return listing.Page[*models.Article]{}, err
	}
	return listing.Paginate(articles, page, size), nil
}
