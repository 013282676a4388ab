// Package validation checks form input before any write is attempted.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/editorial-backoffice/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ArticleInput is the set of fields accepted when creating an article.
type ArticleInput struct {
	Title                 string              `json:"title"`
	Introduction          string              `json:"introduction"`
	Main                  string              `json:"main"`
	MainAudioURL          string              `json:"main_audio_url"`
	URLToMainIllustration string              `json:"url_to_main_illustration"`
	URLs                  []models.ArticleURL `json:"urls"`
}

// ValidateArticle validates the fields of a new article.
func ValidateArticle(in *ArticleInput) []ValidationError {
	var errors []ValidationError

	titleLen := utf8.RuneCountInString(strings.TrimSpace(in.Title))
	if titleLen < 2 || titleLen > 50 {
		errors = append(errors, ValidationError{Field: "title", Message: "title must be between 2 and 50 characters", Value: in.Title})
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Introduction)) < 20 {
		errors = append(errors, ValidationError{Field: "introduction", Message: "introduction must be at least 20 characters"})
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Main)) < 50 {
		errors = append(errors, ValidationError{Field: "main", Message: "main must be at least 50 characters"})
	}

	if in.MainAudioURL == "" {
		errors = append(errors, ValidationError{Field: "main_audio_url", Message: "main_audio_url is required"})
	} else if !isValidURL(in.MainAudioURL) {
		errors = append(errors, ValidationError{Field: "main_audio_url", Message: "invalid URL", Value: in.MainAudioURL})
	}

	if in.URLToMainIllustration == "" {
		errors = append(errors, ValidationError{Field: "url_to_main_illustration", Message: "url_to_main_illustration is required"})
	} else if !isValidURL(in.URLToMainIllustration) {
		errors = append(errors, ValidationError{Field: "url_to_main_illustration", Message: "invalid URL", Value: in.URLToMainIllustration})
	}

	for i, u := range in.URLs {
		field := fmt.Sprintf("urls[%d]", i)
		if !models.ValidURLTypes[u.Type] {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: "type must be one of: website, videos, audio, social, image",
				Value:   u.Type,
			})
		}
		if u.URL == "" {
			errors = append(errors, ValidationError{Field: field, Message: "url is required"})
		} else if !isValidURL(u.URL) {
			errors = append(errors, ValidationError{Field: field, Message: "invalid URL", Value: u.URL})
		}
	}

	return errors
}

// UserInput is the set of fields accepted when creating a back-office account.
type UserInput struct {
	Email             string `json:"email"`
	TiersServiceIdent string `json:"tiers_service_ident"`
	Role              string `json:"role"`
}

// ValidateUser validates the fields of a new user.
func ValidateUser(in *UserInput) []ValidationError {
	var errors []ValidationError

	if in.Email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(in.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: in.Email})
	}

	if in.TiersServiceIdent == "" {
		errors = append(errors, ValidationError{Field: "tiers_service_ident", Message: "tiers_service_ident is required"})
	}

	if in.Role == "" {
		errors = append(errors, ValidationError{Field: "role", Message: "role is required"})
	} else if !models.ValidRoles[in.Role] {
		errors = append(errors, ValidationError{
			Field:   "role",
			Message: "invalid role, must be one of: admin, contributor",
			Value:   in.Role,
		})
	}

	return errors
}

func isValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
