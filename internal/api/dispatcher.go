package api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/editorial-backoffice/internal/models"
	"github.com/editorial-backoffice/internal/permissions"
	"github.com/editorial-backoffice/internal/repository"
	"github.com/editorial-backoffice/internal/service"
	"github.com/editorial-backoffice/internal/validation"
)

// Article lifecycle actions accepted by the dispatcher.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionValidate = "validate"
	ActionShip     = "ship"
)

// Dispatcher maps an action name to a lifecycle operation, checking the
// actor's stored permission set first. Every branch re-checks that an actor
// is present; its absence surfaces as ErrUnauthenticated, a redirect signal
// rather than a failure envelope.
type Dispatcher struct {
	services *service.Services
	log      zerolog.Logger
	table    map[string]actionSpec
}

type actionSpec struct {
	verb string
	run  func(ctx context.Context, payload json.RawMessage, actor models.Actor) models.Envelope
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(services *service.Services, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		services: services,
		log:      log.With().Str("component", "dispatcher").Logger(),
	}
	d.table = map[string]actionSpec{
		ActionCreate:   {verb: "create", run: d.runCreate},
		ActionUpdate:   {verb: "update", run: d.runUpdate},
		ActionDelete:   {verb: "delete", run: d.runDelete},
		ActionValidate: {verb: "validate", run: d.runValidate},
		ActionShip:     {verb: "ship", run: d.runShip},
	}
	return d
}

// Dispatch runs one named action and always answers with the uniform
// envelope. Unknown actions fail without touching the repository. The only
// error returned is ErrUnauthenticated.
func (d *Dispatcher) Dispatch(ctx context.Context, action string, payload json.RawMessage, actor models.Actor) (models.Envelope, error) {
	if actor.Zero() {
		return models.Envelope{}, service.ErrUnauthenticated
	}

	spec, ok := d.table[action]
	if !ok {
		d.log.Warn().Str("action", action).Msg("Unrecognized action")
		return fail(msgUnknownAction), nil
	}

	allowed, err := d.allowed(ctx, actor, spec.verb)
	if err != nil {
		d.log.Error().Err(err).Str("actor", actor.Email).Msg("Permission lookup failed")
		return fail(msgStorageFailure), nil
	}
	if !allowed {
		return fail(msgForbidden), nil
	}

	return spec.run(ctx, payload, actor), nil
}

func (d *Dispatcher) allowed(ctx context.Context, actor models.Actor, verb string) (bool, error) {
	user, err := d.services.Users.GetByEmail(ctx, actor.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return permissions.Has(user.Permissions, verb, "articles"), nil
}

func (d *Dispatcher) runCreate(ctx context.Context, payload json.RawMessage, actor models.Actor) models.Envelope {
	var input validation.ArticleInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return fail(msgInvalidPayload)
	}

	outcome, err := d.services.Lifecycle.Create(ctx, &input, actor)
	if err != nil {
		return d.envelopeFor(err)
	}
	switch {
	case outcome.ArticleOK && outcome.SlugOK:
		return ok(msgCreateOK)
	case outcome.ArticleOK:
		return fail(msgCreatePartial)
	default:
		return fail(msgStorageFailure)
	}
}

func (d *Dispatcher) runUpdate(ctx context.Context, payload json.RawMessage, actor models.Actor) models.Envelope {
	var req struct {
		ID int64 `json:"id"`
		service.ArticlePatch
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return fail(msgInvalidPayload)
	}

	res, err := d.services.Lifecycle.Update(ctx, req.ID, &req.ArticlePatch, actor)
	if err != nil {
		return d.envelopeFor(err)
	}
	if !res.OK {
		return fail(msgArticleNotFound)
	}
	return ok(msgUpdateOK)
}

func (d *Dispatcher) runDelete(ctx context.Context, payload json.RawMessage, actor models.Actor) models.Envelope {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return fail(msgInvalidPayload)
	}

	outcome, err := d.services.Lifecycle.Delete(ctx, req.ID, actor)
	if err != nil {
		return d.envelopeFor(err)
	}
	// both sides must have gone through; a lone orphan row is a failure
	if !outcome.ArticleOK || !outcome.SlugOK {
		return fail(msgDeleteFailed)
	}
	return ok(msgDeleteOK)
}

func (d *Dispatcher) runValidate(ctx context.Context, payload json.RawMessage, actor models.Actor) models.Envelope {
	var req struct {
		ID    int64 `json:"id"`
		Value bool  `json:"value"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return fail(msgInvalidPayload)
	}

	outcome, err := d.services.Lifecycle.Validate(ctx, req.ID, req.Value, actor)
	if err != nil {
		return d.envelopeFor(err)
	}
	switch {
	case outcome.ArticleOK && outcome.SlugOK && req.Value:
		return ok(msgValidatedOK)
	case outcome.ArticleOK && outcome.SlugOK:
		return ok(msgUnvalidatedOK)
	case outcome.ArticleOK:
		return fail(msgValidatePartial)
	default:
		return fail(msgArticleNotFound)
	}
}

func (d *Dispatcher) runShip(ctx context.Context, payload json.RawMessage, actor models.Actor) models.Envelope {
	var req struct {
		ID    int64 `json:"id"`
		Value bool  `json:"value"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return fail(msgInvalidPayload)
	}

	res, err := d.services.Lifecycle.Ship(ctx, req.ID, req.Value, actor)
	if err != nil {
		return d.envelopeFor(err)
	}
	if !res.OK {
		return fail(msgArticleNotFound)
	}
	if req.Value {
		return ok(msgShippedOK)
	}
	return ok(msgUnshippedOK)
}

// envelopeFor converts operation errors into localized envelopes. Storage
// failures are logged here and never leak their internals.
func (d *Dispatcher) envelopeFor(err error) models.Envelope {
	var vf *service.ValidationFailed
	switch {
	case errors.As(err, &vf):
		return fail(msgInvalidFields)
	case errors.Is(err, service.ErrImmutableField):
		return fail(msgImmutableField)
	case errors.Is(err, service.ErrShipUnvalidated):
		return fail(msgShipUnvalidated)
	case errors.Is(err, repository.ErrNotFound):
		return fail(msgArticleNotFound)
	default:
		d.log.Error().Err(err).Msg("Operation failed")
		return fail(msgStorageFailure)
	}
}

func ok(message string) models.Envelope {
	return models.Envelope{Success: true, Message: message}
}

func fail(message string) models.Envelope {
	return models.Envelope{Success: false, Message: message}
}
