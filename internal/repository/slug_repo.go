package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/editorial-backoffice/internal/database"
	"github.com/editorial-backoffice/internal/models"
)

// slugRepo is the concrete implementation of SlugRepository
type slugRepo struct {
	db *database.DB
}

// NewSlugRepo creates a new slug repository
func NewSlugRepo(db *database.DB) SlugRepository {
	return &slugRepo{db: db}
}

// Insert persists the index row paired with an article.
func (r *slugRepo) Insert(ctx context.Context, entry *models.SlugEntry) (WriteResult, error) {
	query := `
		INSERT INTO slugs (article_id, slug, validated, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		entry.ArticleID, entry.Slug, entry.Validated, entry.CreatedAt,
	).Scan(&id)
	if err != nil {
		return WriteResult{}, fmt.Errorf("insert slug: %w", err)
	}
	return WriteResult{ID: id, OK: true}, nil
}

// UpdateValidated mirrors an article's validated flag onto its index row.
// This is the only write path to the flag outside row creation.
func (r *slugRepo) UpdateValidated(ctx context.Context, articleID int64, validated bool) (WriteResult, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE slugs SET validated = $1 WHERE article_id = $2`,
		validated, articleID,
	)
	if err != nil {
		return WriteResult{}, fmt.Errorf("update slug validated: %w", err)
	}
	affected, _ := res.RowsAffected()
	return WriteResult{ID: articleID, OK: affected > 0}, nil
}

// Delete removes the index row keyed by its article id.
func (r *slugRepo) Delete(ctx context.Context, articleID int64) (WriteResult, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM slugs WHERE article_id = $1`, articleID)
	if err != nil {
		return WriteResult{}, fmt.Errorf("delete slug: %w", err)
	}
	affected, _ := res.RowsAffected()
	return WriteResult{ID: articleID, OK: affected > 0}, nil
}

// Search matches a free-text term against slug text, case-insensitively,
// regardless of validation state.
func (r *slugRepo) Search(ctx context.Context, term string) ([]*models.SlugEntry, error) {
	query, args, err := psql.Select("id", "article_id", "slug", "validated", "created_at").
		From("slugs").
		Where(sq.ILike{"slug": "%" + term + "%"}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}
	return r.query(ctx, query, args...)
}

// ListAll returns every index row in creation order.
func (r *slugRepo) ListAll(ctx context.Context) ([]*models.SlugEntry, error) {
	return r.query(ctx, `SELECT id, article_id, slug, validated, created_at FROM slugs ORDER BY created_at`)
}

func (r *slugRepo) query(ctx context.Context, query string, args ...interface{}) ([]*models.SlugEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query slugs: %w", err)
	}
	defer rows.Close()

	var entries []*models.SlugEntry
	for rows.Next() {
		var entry models.SlugEntry
		err := rows.Scan(&entry.ID, &entry.ArticleID, &entry.Slug, &entry.Validated, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
