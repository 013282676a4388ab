package models

import (
	"time"
)

// URL types allowed on an article's link list.
var ValidURLTypes = map[string]bool{
	"website": true,
	"videos":  true,
	"audio":   true,
	"social":  true,
	"image":   true,
}

// ArticleURL is one entry of an article's ordered link list.
type ArticleURL struct {
	Type    string `json:"type"`
	URL     string `json:"url"`
	Credits string `json:"credits,omitempty"`
}

// Article represents an article in the system. Slug and Title are fixed at
// creation; Validated and Shipped evolve through the lifecycle operations only.
type Article struct {
	ID                    int64        `json:"id" db:"id"`
	Slug                  string       `json:"slug" db:"slug"`
	Title                 string       `json:"title" db:"title"`
	Introduction          string       `json:"introduction" db:"introduction"`
	Main                  string       `json:"main" db:"main"`
	MainAudioURL          string       `json:"main_audio_url" db:"main_audio_url"`
	URLToMainIllustration string       `json:"url_to_main_illustration" db:"url_to_main_illustration"`
	URLs                  []ArticleURL `json:"urls" db:"-"` // Stored as JSONB in DB
	Validated             bool         `json:"validated" db:"validated"`
	Shipped               bool         `json:"shipped" db:"shipped"`
	PublishedAt           *time.Time   `json:"published_at,omitempty" db:"published_at"`
	Author                string       `json:"author" db:"author"`
	AuthorEmail           string       `json:"author_email" db:"author_email"`
	CreatedAt             time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at" db:"updated_at"`
	UpdatedBy             string       `json:"updated_by" db:"updated_by"`
}

// SlugEntry is the denormalized index row paired with an article. Its
// Validated flag mirrors the article's and is only written by the validate
// operation.
type SlugEntry struct {
	ID        int64     `json:"id" db:"id"`
	ArticleID int64     `json:"article_id" db:"article_id"`
	Slug      string    `json:"slug" db:"slug"`
	Validated bool      `json:"validated" db:"validated"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
