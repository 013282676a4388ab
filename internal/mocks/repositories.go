package mocks

import (
	"context"
	"strings"

	"github.com/editorial-backoffice/internal/models"
	"github.com/editorial-backoffice/internal/repository"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles map[int64]*models.Article
	order    []int64
	nextID   int64

	GetErr    error
	InsertErr error
	UpdateErr error
	DeleteErr error
	SearchErr error

	// UpdateNotOK makes Update report no affected row without an error,
	// exercising the missing success-marker branch.
	UpdateNotOK bool
	DeleteNotOK bool

	InsertCalls int
	UpdateCalls int
	DeleteCalls int

	LastUpdateFields map[string]interface{}
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[int64]*models.Article)}
}

// Seed stores an article directly, assigning an id when missing.
func (m *MockArticleRepository) Seed(article *models.Article) *models.Article {
	if article.ID == 0 {
		m.nextID++
		article.ID = m.nextID
	} else if article.ID > m.nextID {
		m.nextID = article.ID
	}
	m.Articles[article.ID] = article
	m.order = append(m.order, article.ID)
	return article
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, id := range m.order {
		if m.Articles[id] != nil && m.Articles[id].Slug == slug {
			return m.Articles[id], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	article, ok := m.Articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return article, nil
}

func (m *MockArticleRepository) Insert(ctx context.Context, article *models.Article) (repository.WriteResult, error) {
	m.InsertCalls++
	if m.InsertErr != nil {
		return repository.WriteResult{}, m.InsertErr
	}
	m.nextID++
	article.ID = m.nextID
	m.Articles[article.ID] = article
	m.order = append(m.order, article.ID)
	return repository.WriteResult{ID: article.ID, OK: true}, nil
}

func (m *MockArticleRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (repository.WriteResult, error) {
	m.UpdateCalls++
	m.LastUpdateFields = fields
	if m.UpdateErr != nil {
		return repository.WriteResult{}, m.UpdateErr
	}
	if m.UpdateNotOK {
		return repository.WriteResult{ID: id, OK: false}, nil
	}
	article, ok := m.Articles[id]
	if !ok {
		return repository.WriteResult{ID: id, OK: false}, nil
	}
	applyArticleFields(article, fields)
	return repository.WriteResult{ID: id, OK: true}, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int64) (repository.WriteResult, error) {
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return repository.WriteResult{}, m.DeleteErr
	}
	if m.DeleteNotOK {
		return repository.WriteResult{ID: id, OK: false}, nil
	}
	_, ok := m.Articles[id]
	delete(m.Articles, id)
	return repository.WriteResult{ID: id, OK: ok}, nil
}

func (m *MockArticleRepository) Search(ctx context.Context, term string) ([]*models.Article, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	needle := strings.ToLower(term)
	var out []*models.Article
	for _, id := range m.order {
		article := m.Articles[id]
		if article == nil {
			continue
		}
		haystack := strings.ToLower(article.Title + " " + article.Introduction + " " + article.Main)
		if strings.Contains(haystack, needle) {
			out = append(out, article)
		}
	}
	return out, nil
}

func (m *MockArticleRepository) ListLive(ctx context.Context) ([]*models.Article, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	var out []*models.Article
	for i := len(m.order) - 1; i >= 0; i-- {
		article := m.Articles[m.order[i]]
		if article != nil && article.Validated && article.Shipped {
			out = append(out, article)
		}
	}
	return out, nil
}

func applyArticleFields(article *models.Article, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "validated":
			article.Validated = value.(bool)
		case "shipped":
			article.Shipped = value.(bool)
		case "introduction":
			article.Introduction = value.(string)
		case "main":
			article.Main = value.(string)
		case "main_audio_url":
			article.MainAudioURL = value.(string)
		case "url_to_main_illustration":
			article.URLToMainIllustration = value.(string)
		case "urls":
			article.URLs = value.([]models.ArticleURL)
		case "updated_by":
			article.UpdatedBy = value.(string)
		}
	}
}

// MockSlugRepository is a mock implementation of SlugRepository
type MockSlugRepository struct {
	Slugs map[int64]*models.SlugEntry // keyed by article id
	order []int64

	InsertErr error
	UpdateErr error
	DeleteErr error
	SearchErr error

	DeleteNotOK bool

	InsertCalls          int
	UpdateValidatedCalls int
	DeleteCalls          int
}

func NewMockSlugRepository() *MockSlugRepository {
	return &MockSlugRepository{Slugs: make(map[int64]*models.SlugEntry)}
}

// Seed stores a slug entry directly.
func (m *MockSlugRepository) Seed(entry *models.SlugEntry) *models.SlugEntry {
	m.Slugs[entry.ArticleID] = entry
	m.order = append(m.order, entry.ArticleID)
	return entry
}

func (m *MockSlugRepository) Insert(ctx context.Context, entry *models.SlugEntry) (repository.WriteResult, error) {
	m.InsertCalls++
	if m.InsertErr != nil {
		return repository.WriteResult{}, m.InsertErr
	}
	entry.ID = int64(len(m.order) + 1)
	m.Slugs[entry.ArticleID] = entry
	m.order = append(m.order, entry.ArticleID)
	return repository.WriteResult{ID: entry.ID, OK: true}, nil
}

func (m *MockSlugRepository) UpdateValidated(ctx context.Context, articleID int64, validated bool) (repository.WriteResult, error) {
	m.UpdateValidatedCalls++
	if m.UpdateErr != nil {
		return repository.WriteResult{}, m.UpdateErr
	}
	entry, ok := m.Slugs[articleID]
	if !ok {
		return repository.WriteResult{ID: articleID, OK: false}, nil
	}
	entry.Validated = validated
	return repository.WriteResult{ID: articleID, OK: true}, nil
}

func (m *MockSlugRepository) Delete(ctx context.Context, articleID int64) (repository.WriteResult, error) {
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return repository.WriteResult{}, m.DeleteErr
	}
	if m.DeleteNotOK {
		return repository.WriteResult{ID: articleID, OK: false}, nil
	}
	_, ok := m.Slugs[articleID]
	delete(m.Slugs, articleID)
	return repository.WriteResult{ID: articleID, OK: ok}, nil
}

func (m *MockSlugRepository) Search(ctx context.Context, term string) ([]*models.SlugEntry, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	needle := strings.ToLower(term)
	var out []*models.SlugEntry
	for _, id := range m.order {
		entry := m.Slugs[id]
		if entry != nil && strings.Contains(strings.ToLower(entry.Slug), needle) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (m *MockSlugRepository) ListAll(ctx context.Context) ([]*models.SlugEntry, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	var out []*models.SlugEntry
	for _, id := range m.order {
		if m.Slugs[id] != nil {
			out = append(out, m.Slugs[id])
		}
	}
	return out, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users  map[string]*models.User // keyed by email
	order  []string
	nextID int64

	GetErr    error
	InsertErr error
	UpdateErr error
	DeleteErr error

	UpdateCalls      int
	LastUpdateFields map[string]interface{}
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

// Seed stores a user directly, assigning an id when missing.
func (m *MockUserRepository) Seed(user *models.User) *models.User {
	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	} else if user.ID > m.nextID {
		m.nextID = user.ID
	}
	m.Users[user.Email] = user
	m.order = append(m.order, user.Email)
	return user
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	user, ok := m.Users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Insert(ctx context.Context, user *models.User) (repository.WriteResult, error) {
	if m.InsertErr != nil {
		return repository.WriteResult{}, m.InsertErr
	}
	m.nextID++
	user.ID = m.nextID
	m.Users[user.Email] = user
	m.order = append(m.order, user.Email)
	return repository.WriteResult{ID: user.ID, OK: true}, nil
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (repository.WriteResult, error) {
	m.UpdateCalls++
	m.LastUpdateFields = fields
	if m.UpdateErr != nil {
		return repository.WriteResult{}, m.UpdateErr
	}
	for _, user := range m.Users {
		if user.ID != id {
			continue
		}
		if role, ok := fields["role"].(string); ok {
			user.Role = role
		}
		if perms, ok := fields["permissions"].([]string); ok {
			user.Permissions = perms
		}
		if ident, ok := fields["tiers_service_ident"].(string); ok {
			user.TiersServiceIdent = ident
		}
		return repository.WriteResult{ID: id, OK: true}, nil
	}
	return repository.WriteResult{ID: id, OK: false}, nil
}

func (m *MockUserRepository) DeleteByEmail(ctx context.Context, email string) (repository.WriteResult, error) {
	if m.DeleteErr != nil {
		return repository.WriteResult{}, m.DeleteErr
	}
	_, ok := m.Users[email]
	delete(m.Users, email)
	return repository.WriteResult{OK: ok}, nil
}

func (m *MockUserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	var out []*models.User
	for _, email := range m.order {
		if m.Users[email] != nil {
			out = append(out, m.Users[email])
		}
	}
	return out, nil
}
