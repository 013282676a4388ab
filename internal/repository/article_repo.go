package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/editorial-backoffice/internal/database"
	"github.com/editorial-backoffice/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const articleColumns = `id, slug, title, introduction, main, main_audio_url,
	url_to_main_illustration, urls, validated, shipped, published_at,
	author, author_email, created_at, updated_at, updated_by`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// GetBySlug retrieves an article by its slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE slug = $1`, articleColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, slug))
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1`, articleColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// Insert persists a new article and reports the assigned id.
func (r *articleRepo) Insert(ctx context.Context, article *models.Article) (WriteResult, error) {
	urlsJSON, err := json.Marshal(article.URLs)
	if err != nil {
		return WriteResult{}, fmt.Errorf("marshal urls: %w", err)
	}
	if article.URLs == nil {
		urlsJSON = []byte("[]")
	}

	query := `
		INSERT INTO articles (slug, title, introduction, main, main_audio_url,
			url_to_main_illustration, urls, validated, shipped, published_at,
			author, author_email, created_at, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	var id int64
	err = r.db.QueryRowContext(ctx, query,
		article.Slug, article.Title, article.Introduction, article.Main,
		article.MainAudioURL, article.URLToMainIllustration, urlsJSON,
		article.Validated, article.Shipped, article.PublishedAt,
		article.Author, article.AuthorEmail,
		article.CreatedAt, article.UpdatedAt, article.UpdatedBy,
	).Scan(&id)
	if err != nil {
		return WriteResult{}, fmt.Errorf("insert article: %w", err)
	}
	return WriteResult{ID: id, OK: true}, nil
}

// Update applies the given column values to one article row.
func (r *articleRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) (WriteResult, error) {
	if urls, ok := fields["urls"]; ok {
		urlsJSON, err := json.Marshal(urls)
		if err != nil {
			return WriteResult{}, fmt.Errorf("marshal urls: %w", err)
		}
		fields["urls"] = urlsJSON
	}

	query, args, err := psql.Update("articles").
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return WriteResult{}, fmt.Errorf("build update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return WriteResult{}, fmt.Errorf("update article: %w", err)
	}
	affected, _ := res.RowsAffected()
	return WriteResult{ID: id, OK: affected > 0}, nil
}

// Delete removes one article row by id.
func (r *articleRepo) Delete(ctx context.Context, id int64) (WriteResult, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return WriteResult{}, fmt.Errorf("delete article: %w", err)
	}
	affected, _ := res.RowsAffected()
	return WriteResult{ID: id, OK: affected > 0}, nil
}

// Search matches a free-text term against title, introduction and main body,
// regardless of validation state.
func (r *articleRepo) Search(ctx context.Context, term string) ([]*models.Article, error) {
	pattern := "%" + term + "%"
	query, args, err := psql.Select(articleColumns).
		From("articles").
		Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"introduction": pattern},
			sq.ILike{"main": pattern},
		}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// ListLive returns validated and shipped articles, newest first, for the
// public feed.
func (r *articleRepo) ListLive(ctx context.Context) ([]*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles
		WHERE validated = true AND shipped = true
		ORDER BY created_at DESC`, articleColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list live articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *articleRepo) scanOne(row *sql.Row) (*models.Article, error) {
	article, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return article, err
}

func (r *articleRepo) scanRow(row rowScanner) (*models.Article, error) {
	var article models.Article
	var urlsJSON []byte
	var publishedAt sql.NullTime

	err := row.Scan(
		&article.ID, &article.Slug, &article.Title, &article.Introduction,
		&article.Main, &article.MainAudioURL, &article.URLToMainIllustration,
		&urlsJSON, &article.Validated, &article.Shipped, &publishedAt,
		&article.Author, &article.AuthorEmail,
		&article.CreatedAt, &article.UpdatedAt, &article.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if len(urlsJSON) > 0 {
		if err := json.Unmarshal(urlsJSON, &article.URLs); err != nil {
			return nil, fmt.Errorf("unmarshal urls: %w", err)
		}
	}
	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}
	return &article, nil
}
