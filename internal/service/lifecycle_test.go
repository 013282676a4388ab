package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/editorial-backoffice/internal/mocks"
	"github.com/editorial-backoffice/internal/models"
	"github.com/editorial-backoffice/internal/repository"
	"github.com/editorial-backoffice/internal/service"
	"github.com/editorial-backoffice/internal/validation"
)

var testActor = models.Actor{Email: "redac@example.com", Nickname: "Rédac Chef"}

func newTestEnv() (*service.Services, *mocks.MockArticleRepository, *mocks.MockSlugRepository, *mocks.MockUserRepository) {
	articles := mocks.NewMockArticleRepository()
	slugs := mocks.NewMockSlugRepository()
	users := mocks.NewMockUserRepository()

	repos := &repository.Repositories{
		Article: articles,
		Slug:    slugs,
		User:    users,
	}
	return service.NewServices(repos, zerolog.Nop()), articles, slugs, users
}

func validInput() *validation.ArticleInput {
	return &validation.ArticleInput{
		Title:                 "Wash the Sins!",
		Introduction:          "An introduction of at least twenty characters.",
		Main:                  "A main body that is comfortably longer than the fifty character minimum required.",
		MainAudioURL:          "https://cdn.example.com/audio/1.mp3",
		URLToMainIllustration: "https://cdn.example.com/img/1.jpg",
		URLs: []models.ArticleURL{
			{Type: "website", URL: "https://example.com", Credits: "example"},
		},
	}
}

func seedArticle(articles *mocks.MockArticleRepository, slugs *mocks.MockSlugRepository, validated, shipped bool) *models.Article {
	article := articles.Seed(&models.Article{
		Slug:      "wash-the-sins",
		Title:     "Wash the Sins!",
		Validated: validated,
		Shipped:   shipped,
		CreatedAt: time.Now(),
	})
	slugs.Seed(&models.SlugEntry{
		ArticleID: article.ID,
		Slug:      article.Slug,
		Validated: validated,
		CreatedAt: article.CreatedAt,
	})
	return article
}

func TestCreateArticle(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()

	outcome, err := services.Lifecycle.Create(context.Background(), validInput(), testActor)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !outcome.ArticleOK || !outcome.SlugOK {
		t.Fatalf("Expected both sides OK, got article=%v slug=%v", outcome.ArticleOK, outcome.SlugOK)
	}

	article := articles.Articles[outcome.ArticleID]
	if article == nil {
		t.Fatal("Article row should exist")
	}
	if article.Slug != "wash-the-sins" {
		t.Errorf("Expected slug 'wash-the-sins', got %q", article.Slug)
	}
	if article.Validated || article.Shipped {
		t.Errorf("New article must start as draft, got validated=%v shipped=%v", article.Validated, article.Shipped)
	}
	if article.PublishedAt != nil {
		t.Error("New article must not have published_at")
	}
	if article.AuthorEmail != testActor.Email || article.Author != testActor.Nickname {
		t.Errorf("Provenance not stamped from actor: %q / %q", article.Author, article.AuthorEmail)
	}

	entry := slugs.Slugs[outcome.ArticleID]
	if entry == nil {
		t.Fatal("Paired slug row should exist")
	}
	if entry.Slug != "wash-the-sins" || entry.Validated {
		t.Errorf("Slug row mismatch: %+v", entry)
	}
}

func TestCreateRequiresActor(t *testing.T) {
	services, articles, _, _ := newTestEnv()

	_, err := services.Lifecycle.Create(context.Background(), validInput(), models.Actor{})
	if !errors.Is(err, service.ErrUnauthenticated) {
		t.Fatalf("Expected ErrUnauthenticated, got %v", err)
	}
	if articles.InsertCalls != 0 {
		t.Error("Repository must not be reached without a session")
	}
}

func TestCreateValidationAbortsBeforeWrite(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()

	input := validInput()
	input.Title = "x" // below the 2 character minimum

	_, err := services.Lifecycle.Create(context.Background(), input, testActor)
	var vf *service.ValidationFailed
	if !errors.As(err, &vf) {
		t.Fatalf("Expected ValidationFailed, got %v", err)
	}
	if articles.InsertCalls != 0 || slugs.InsertCalls != 0 {
		t.Error("No write may happen on invalid input")
	}
}

func TestCreateReportsSlugFailureIndependently(t *testing.T) {
	services, _, slugs, _ := newTestEnv()
	slugs.InsertErr = errors.New("connection reset")

	outcome, err := services.Lifecycle.Create(context.Background(), validInput(), testActor)
	if err != nil {
		t.Fatalf("Create should not fail outright: %v", err)
	}
	if !outcome.ArticleOK {
		t.Error("Article insert succeeded and must be reported as such")
	}
	if outcome.SlugOK {
		t.Error("Slug insert failed and must be reported as such")
	}
}

func TestUpdateResetsWorkflowFlags(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()
	article := seedArticle(articles, slugs, true, true)

	intro := "A freshly rewritten introduction, long enough."
	res, err := services.Lifecycle.Update(context.Background(), article.ID, &service.ArticlePatch{Introduction: &intro}, testActor)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !res.OK {
		t.Fatal("Update should report success")
	}

	if article.Validated || article.Shipped {
		t.Errorf("Update must force draft state, got validated=%v shipped=%v", article.Validated, article.Shipped)
	}
	if article.Introduction != intro {
		t.Errorf("Patch not applied, got %q", article.Introduction)
	}
	if article.UpdatedBy != testActor.Email {
		t.Errorf("updated_by not stamped, got %q", article.UpdatedBy)
	}
}

// The slug row keeps its stale validated flag across updates; only the
// validate operation writes it. This pins the observed asymmetry down.
func TestUpdateLeavesSlugValidatedStale(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()
	article := seedArticle(articles, slugs, true, false)

	intro := "Another rewritten introduction, long enough."
	if _, err := services.Lifecycle.Update(context.Background(), article.ID, &service.ArticlePatch{Introduction: &intro}, testActor); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if slugs.UpdateValidatedCalls != 0 {
		t.Error("Update must not touch the slug row")
	}
	if !slugs.Slugs[article.ID].Validated {
		t.Error("Slug validated flag should remain stale (true) after the article dropped to draft")
	}
}

func TestUpdateRejectsImmutableFields(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()
	article := seedArticle(articles, slugs, false, false)

	title := "New Title"
	_, err := services.Lifecycle.Update(context.Background(), article.ID, &service.ArticlePatch{Title: &title}, testActor)
	if !errors.Is(err, service.ErrImmutableField) {
		t.Fatalf("Expected ErrImmutableField, got %v", err)
	}
	if articles.UpdateCalls != 0 {
		t.Error("Immutable patch must be rejected before any write")
	}
}

func TestValidatePropagatesToSlug(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()
	article := seedArticle(articles, slugs, false, false)

	outcome, err := services.Lifecycle.Validate(context.Background(), article.ID, true, testActor)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !outcome.ArticleOK || !outcome.SlugOK {
		t.Fatalf("Expected both sides OK, got %+v", outcome)
	}
	if !article.Validated {
		t.Error("Article validated flag not set")
	}
	if !slugs.Slugs[article.ID].Validated {
		t.Error("Slug validated flag must mirror the article's")
	}

	// and back down again
	outcome, err = services.Lifecycle.Validate(context.Background(), article.ID, false, testActor)
	if err != nil || !outcome.SlugOK {
		t.Fatalf("Unvalidate failed: %v %+v", err, outcome)
	}
	if slugs.Slugs[article.ID].Validated {
		t.Error("Slug validated flag must follow the article back to false")
	}
}

func TestValidateSkipsSlugWithoutSuccessMarker(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()
	article := seedArticle(articles, slugs, false, false)
	articles.UpdateNotOK = true

	outcome, err := services.Lifecycle.Validate(context.Background(), article.ID, true, testActor)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if outcome.ArticleOK {
		t.Error("Article side must report the missing success marker")
	}
	if slugs.UpdateValidatedCalls != 0 {
		t.Error("Slug propagation must be skipped without the success marker")
	}
	if slugs.Slugs[article.ID].Validated {
		t.Error("Slug row must be provably unchanged")
	}
}

func TestShipRejectedWithoutValidation(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()
	article := seedArticle(articles, slugs, false, false)

	_, err := services.Lifecycle.Ship(context.Background(), article.ID, true, testActor)
	if !errors.Is(err, service.ErrShipUnvalidated) {
		t.Fatalf("Expected ErrShipUnvalidated, got %v", err)
	}
	if articles.UpdateCalls != 0 {
		t.Error("No write may be attempted when the precondition fails")
	}
	if article.Shipped {
		t.Error("Shipped flag must be left unchanged")
	}
}

func TestValidateShipThenUpdateDropsToDraft(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()
	article := seedArticle(articles, slugs, false, false)
	ctx := context.Background()

	if _, err := services.Lifecycle.Validate(ctx, article.ID, true, testActor); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	res, err := services.Lifecycle.Ship(ctx, article.ID, true, testActor)
	if err != nil || !res.OK {
		t.Fatalf("Ship failed: %v", err)
	}
	if !article.Shipped {
		t.Fatal("Article should be live")
	}
	if article.PublishedAt != nil {
		t.Error("Ship must not populate published_at")
	}
	if _, present := articles.LastUpdateFields["published_at"]; present {
		t.Error("Ship must not write published_at")
	}

	intro := "Edited after going live, needs review again."
	if _, err := services.Lifecycle.Update(ctx, article.ID, &service.ArticlePatch{Introduction: &intro}, testActor); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if article.Validated || article.Shipped {
		t.Errorf("Edit of a live article must drop it to draft, got validated=%v shipped=%v", article.Validated, article.Shipped)
	}
}

func TestUnshipKeepsValidation(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()
	article := seedArticle(articles, slugs, true, true)

	res, err := services.Lifecycle.Ship(context.Background(), article.ID, false, testActor)
	if err != nil || !res.OK {
		t.Fatalf("Unship failed: %v", err)
	}
	if article.Shipped {
		t.Error("Article should be off the site")
	}
	if !article.Validated {
		t.Error("Taking an article offline must not strip its validation")
	}
}

func TestDeleteRemovesBothRows(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()
	article := seedArticle(articles, slugs, true, false)

	outcome, err := services.Lifecycle.Delete(context.Background(), article.ID, testActor)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !outcome.ArticleOK || !outcome.SlugOK {
		t.Fatalf("Expected both deletions OK, got %+v", outcome)
	}
	if len(articles.Articles) != 0 || len(slugs.Slugs) != 0 {
		t.Error("Both rows should be gone")
	}
}

func TestDeletePartialFailureIsReported(t *testing.T) {
	services, articles, slugs, _ := newTestEnv()
	article := seedArticle(articles, slugs, false, false)
	slugs.DeleteNotOK = true

	outcome, err := services.Lifecycle.Delete(context.Background(), article.ID, testActor)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !outcome.ArticleOK {
		t.Error("Article deletion went through and must be reported OK")
	}
	if outcome.SlugOK {
		t.Error("Slug deletion failed and must be reported as such")
	}
}
