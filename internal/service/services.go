package service

import (
	"github.com/rs/zerolog"

	"github.com/editorial-backoffice/internal/repository"
)

// Services holds all service interfaces
type Services struct {
	Lifecycle LifecycleService
	Users     UserService
	Listing   ListingService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Lifecycle: newLifecycleService(repos.Article, repos.Slug, log),
		Users:     newUserService(repos.User, log),
		Listing:   newListingService(repos.Article, repos.Slug, log),
	}
}
