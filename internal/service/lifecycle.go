package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/editorial-backoffice/internal/models"
	"github.com/editorial-backoffice/internal/repository"
	"github.com/editorial-backoffice/internal/slug"
	"github.com/editorial-backoffice/internal/validation"
)

// ArticlePatch carries the mutable fields of an update. Title and Slug are
// present only so their use can be rejected; they are immutable after create.
type ArticlePatch struct {
	Title                 *string              `json:"title,omitempty"`
	Slug                  *string              `json:"slug,omitempty"`
	Introduction          *string              `json:"introduction,omitempty"`
	Main                  *string              `json:"main,omitempty"`
	MainAudioURL          *string              `json:"main_audio_url,omitempty"`
	URLToMainIllustration *string              `json:"url_to_main_illustration,omitempty"`
	URLs                  *[]models.ArticleURL `json:"urls,omitempty"`
}

// PairedOutcome reports both halves of a two-table operation. The two flags
// are kept separate so callers can detect drift between the article and its
// index row; there is no transaction spanning the pair.
type PairedOutcome struct {
	ArticleID int64 `json:"article_id"`
	ArticleOK bool  `json:"article_ok"`
	SlugOK    bool  `json:"slug_ok"`
}

// LifecycleService drives the article state machine: draft, validated,
// shipped, and the paired slug index row.
type LifecycleService interface {
	Create(ctx context.Context, input *validation.ArticleInput, actor models.Actor) (*PairedOutcome, error)
	Update(ctx context.Context, id int64, patch *ArticlePatch, actor models.Actor) (repository.WriteResult, error)
	Delete(ctx context.Context, id int64, actor models.Actor) (*PairedOutcome, error)
	Validate(ctx context.Context, id int64, validated bool, actor models.Actor) (*PairedOutcome, error)
	Ship(ctx context.Context, id int64, shipped bool, actor models.Actor) (repository.WriteResult, error)
}

// lifecycleService is the concrete implementation of LifecycleService
type lifecycleService struct {
	articles repository.ArticleRepository
	slugs    repository.SlugRepository
	log      zerolog.Logger
	now      func() time.Time
}

// newLifecycleService creates a new LifecycleService
func newLifecycleService(articles repository.ArticleRepository, slugs repository.SlugRepository, log zerolog.Logger) *lifecycleService {
	return &lifecycleService{
		articles: articles,
		slugs:    slugs,
		log:      log.With().Str("service", "lifecycle").Logger(),
		now:      time.Now,
	}
}

// Create validates the input, derives the slug from the title, persists the
// article row and, only once the article insert succeeded, the paired slug
// row. Both sub-outcomes are reported independently.
func (s *lifecycleService) Create(ctx context.Context, input *validation.ArticleInput, actor models.Actor) (*PairedOutcome, error) {
	if actor.Zero() {
		return nil, ErrUnauthenticated
	}
	if errs := validation.ValidateArticle(input); len(errs) > 0 {
		return nil, &ValidationFailed{Errors: errs}
	}

	now := s.now().UTC()
	article := &models.Article{
		Slug:                  slug.Derive(input.Title),
		Title:                 input.Title,
		Introduction:          input.Introduction,
		Main:                  input.Main,
		MainAudioURL:          input.MainAudioURL,
		URLToMainIllustration: input.URLToMainIllustration,
		URLs:                  input.URLs,
		Validated:             false,
		Shipped:               false,
		Author:                actor.Nickname,
		AuthorEmail:           actor.Email,
		CreatedAt:             now,
		UpdatedAt:             now,
		UpdatedBy:             actor.Email,
	}

	res, err := s.articles.Insert(ctx, article)
	if err != nil {
		return &PairedOutcome{}, err
	}

	outcome := &PairedOutcome{ArticleID: res.ID, ArticleOK: res.OK}
	if !res.OK {
		return outcome, nil
	}

	sres, err := s.slugs.Insert(ctx, &models.SlugEntry{
		ArticleID: res.ID,
		Slug:      article.Slug,
		Validated: false,
		CreatedAt: now,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("article_id", res.ID).Msg("Slug insert failed after article insert")
		return outcome, nil
	}
	outcome.SlugOK = sres.OK
	return outcome, nil
}

// Update applies a content patch. Any successful update drops the article
// back to draft: validated and shipped are forced false so an edited article
// goes through review again. The slug row's validated flag is deliberately
// left untouched here; only the validate operation writes it.
func (s *lifecycleService) Update(ctx context.Context, id int64, patch *ArticlePatch, actor models.Actor) (repository.WriteResult, error) {
	if actor.Zero() {
		return repository.WriteResult{}, ErrUnauthenticated
	}
	if patch.Title != nil || patch.Slug != nil {
		return repository.WriteResult{}, ErrImmutableField
	}

	fields := map[string]interface{}{
		"validated":  false,
		"shipped":    false,
		"updated_at": s.now().UTC(),
		"updated_by": actor.Email,
	}
	if patch.Introduction != nil {
		fields["introduction"] = *patch.Introduction
	}
	if patch.Main != nil {
		fields["main"] = *patch.Main
	}
	if patch.MainAudioURL != nil {
		fields["main_audio_url"] = *patch.MainAudioURL
	}
	if patch.URLToMainIllustration != nil {
		fields["url_to_main_illustration"] = *patch.URLToMainIllustration
	}
	if patch.URLs != nil {
		fields["urls"] = *patch.URLs
	}

	return s.articles.Update(ctx, id, fields)
}

// Delete removes the slug and article rows through two independent calls, run
// concurrently. The operation only counts as a success when both sides
// succeeded; a lone orphan row is possible and is reported, not hidden.
func (s *lifecycleService) Delete(ctx context.Context, id int64, actor models.Actor) (*PairedOutcome, error) {
	if actor.Zero() {
		return nil, ErrUnauthenticated
	}

	outcome := &PairedOutcome{ArticleID: id}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		res, err := s.slugs.Delete(ctx, id)
		if err != nil {
			s.log.Error().Err(err).Int64("article_id", id).Msg("Slug delete failed")
			return
		}
		outcome.SlugOK = res.OK
	}()
	go func() {
		defer wg.Done()
		res, err := s.articles.Delete(ctx, id)
		if err != nil {
			s.log.Error().Err(err).Int64("article_id", id).Msg("Article delete failed")
			return
		}
		outcome.ArticleOK = res.OK
	}()
	wg.Wait()

	return outcome, nil
}

// Validate sets the article's validated flag and, when the article write
// reports the success marker, mirrors the same value onto the slug row. When
// the marker is absent the slug is left alone and the divergence shows up in
// the outcome.
func (s *lifecycleService) Validate(ctx context.Context, id int64, validated bool, actor models.Actor) (*PairedOutcome, error) {
	if actor.Zero() {
		return nil, ErrUnauthenticated
	}

	res, err := s.articles.Update(ctx, id, map[string]interface{}{
		"validated":  validated,
		"updated_at": s.now().UTC(),
		"updated_by": actor.Email,
	})
	if err != nil {
		return &PairedOutcome{ArticleID: id}, err
	}

	outcome := &PairedOutcome{ArticleID: id, ArticleOK: res.OK}
	if !res.OK {
		return outcome, nil
	}

	sres, err := s.slugs.UpdateValidated(ctx, id, validated)
	if err != nil {
		s.log.Error().Err(err).Int64("article_id", id).Msg("Slug validated propagation failed")
		return outcome, nil
	}
	outcome.SlugOK = sres.OK
	return outcome, nil
}

// Ship flips the published state. Shipping requires a validated article; the
// precondition is checked before any write and violating it never reaches the
// repository's write path. published_at is not touched here.
func (s *lifecycleService) Ship(ctx context.Context, id int64, shipped bool, actor models.Actor) (repository.WriteResult, error) {
	if actor.Zero() {
		return repository.WriteResult{}, ErrUnauthenticated
	}

	if shipped {
		article, err := s.articles.GetByID(ctx, id)
		if err != nil {
			return repository.WriteResult{}, err
		}
		if !article.Validated {
			return repository.WriteResult{}, ErrShipUnvalidated
		}
	}

	return s.articles.Update(ctx, id, map[string]interface{}{
		"shipped":    shipped,
		"updated_at": s.now().UTC(),
		"updated_by": actor.Email,
	})
}
