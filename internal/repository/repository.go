package repository

import (
	"context"
	"errors"

	"github.com/editorial-backoffice/internal/database"
	"github.com/editorial-backoffice/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// WriteResult reports the outcome of a single write. OK is the success
// marker the lifecycle engine checks before running the second half of a
// paired operation: a write can come back error-free yet not OK (no row
// affected), and the two cases are kept distinct on purpose.
type WriteResult struct {
	ID int64
	OK bool
}

// ArticleRepository defines the data operations on the articles table.
type ArticleRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Insert(ctx context.Context, article *models.Article) (WriteResult, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (WriteResult, error)
	Delete(ctx context.Context, id int64) (WriteResult, error)
	Search(ctx context.Context, term string) ([]*models.Article, error)
	ListLive(ctx context.Context) ([]*models.Article, error)
}

// SlugRepository defines the data operations on the slugs index table.
type SlugRepository interface {
	Insert(ctx context.Context, entry *models.SlugEntry) (WriteResult, error)
	UpdateValidated(ctx context.Context, articleID int64, validated bool) (WriteResult, error)
	Delete(ctx context.Context, articleID int64) (WriteResult, error)
	Search(ctx context.Context, term string) ([]*models.SlugEntry, error)
	ListAll(ctx context.Context) ([]*models.SlugEntry, error)
}

// UserRepository defines the data operations on the users table.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (WriteResult, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (WriteResult, error)
	DeleteByEmail(ctx context.Context, email string) (WriteResult, error)
	ListAll(ctx context.Context) ([]*models.User, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Slug    SlugRepository
	User    UserRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Slug:    NewSlugRepo(db),
		User:    NewUserRepo(db),
	}
}
