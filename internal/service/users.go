package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/editorial-backoffice/internal/models"
	"github.com/editorial-backoffice/internal/permissions"
	"github.com/editorial-backoffice/internal/repository"
	"github.com/editorial-backoffice/internal/validation"
)

// UserPatch carries the editable fields of an account.
type UserPatch struct {
	Role              *string   `json:"role,omitempty"`
	Permissions       *[]string `json:"permissions,omitempty"`
	TiersServiceIdent *string   `json:"tiers_service_ident,omitempty"`
}

// UserService manages back-office accounts.
type UserService interface {
	Create(ctx context.Context, input *validation.UserInput, actor models.Actor) (repository.WriteResult, error)
	Update(ctx context.Context, id int64, patch *UserPatch, actor models.Actor) (repository.WriteResult, error)
	DeleteByEmail(ctx context.Context, email string, actor models.Actor) (repository.WriteResult, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	TouchConnection(ctx context.Context, email string) error
}

// userService is the concrete implementation of UserService
type userService struct {
	users repository.UserRepository
	log   zerolog.Logger
	now   func() time.Time
}

// newUserService creates a new UserService
func newUserService(users repository.UserRepository, log zerolog.Logger) *userService {
	return &userService{
		users: users,
		log:   log.With().Str("service", "users").Logger(),
		now:   time.Now,
	}
}

// Create persists a new account with the permission set denormalized from
// its role.
func (s *userService) Create(ctx context.Context, input *validation.UserInput, actor models.Actor) (repository.WriteResult, error) {
	if actor.Zero() {
		return repository.WriteResult{}, ErrUnauthenticated
	}
	if errs := validation.ValidateUser(input); len(errs) > 0 {
		return repository.WriteResult{}, &ValidationFailed{Errors: errs}
	}

	now := s.now().UTC()
	user := &models.User{
		Email:             input.Email,
		TiersServiceIdent: input.TiersServiceIdent,
		Role:              input.Role,
		Permissions:       permissions.ForRole(input.Role),
		CreatedAt:         now,
		UpdatedAt:         now,
		UpdatedBy:         actor.Email,
	}
	return s.users.Insert(ctx, user)
}

// Update applies an account patch. A role change re-derives the stored
// permission set unless an explicit set is part of the same patch.
func (s *userService) Update(ctx context.Context, id int64, patch *UserPatch, actor models.Actor) (repository.WriteResult, error) {
	if actor.Zero() {
		return repository.WriteResult{}, ErrUnauthenticated
	}

	fields := map[string]interface{}{
		"updated_at": s.now().UTC(),
		"updated_by": actor.Email,
	}
	if patch.Role != nil {
		if !models.ValidRoles[*patch.Role] {
			return repository.WriteResult{}, &ValidationFailed{Errors: []validation.ValidationError{
				{Field: "role", Message: "invalid role, must be one of: admin, contributor", Value: *patch.Role},
			}}
		}
		fields["role"] = *patch.Role
		fields["permissions"] = permissions.ForRole(*patch.Role)
	}
	if patch.Permissions != nil {
		fields["permissions"] = *patch.Permissions
	}
	if patch.TiersServiceIdent != nil {
		fields["tiers_service_ident"] = *patch.TiersServiceIdent
	}

	return s.users.Update(ctx, id, fields)
}

// DeleteByEmail removes an account.
func (s *userService) DeleteByEmail(ctx context.Context, email string, actor models.Actor) (repository.WriteResult, error) {
	if actor.Zero() {
		return repository.WriteResult{}, ErrUnauthenticated
	}
	return s.users.DeleteByEmail(ctx, email)
}

// GetByEmail returns one account.
func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// List returns all accounts in creation order.
func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.ListAll(ctx)
}

// TouchConnection stamps last_connection_at, called once per session start.
func (s *userService) TouchConnection(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = s.users.Update(ctx, user.ID, map[string]interface{}{
		"last_connection_at": s.now().UTC(),
	})
	return err
}
