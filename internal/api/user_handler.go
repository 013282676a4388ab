package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/editorial-backoffice/internal/models"
	"github.com/editorial-backoffice/internal/permissions"
	"github.com/editorial-backoffice/internal/repository"
	"github.com/editorial-backoffice/internal/service"
	"github.com/editorial-backoffice/internal/validation"
)

// UserHandler handles account management endpoints, admin-gated through the
// actor's stored permission set.
type UserHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		log:      log.With().Str("handler", "users").Logger(),
	}
}

// List handles GET /v1/users
func (h *UserHandler) List(c *gin.Context) {
	if !h.require(c, "update", "user") {
		return
	}

	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("User listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgStorageFailure})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Create handles POST /v1/users
func (h *UserHandler) Create(c *gin.Context) {
	if !h.require(c, "create", "user") {
		return
	}

	var input validation.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.Envelope{Success: false, Message: msgInvalidPayload})
		return
	}

	_, err := h.services.Users.Create(c.Request.Context(), &input, actorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.Envelope{Success: true, Message: msgUserCreateOK})
}

// Update handles PUT /v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	if !h.require(c, "update", "user") {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Envelope{Success: false, Message: msgInvalidPayload})
		return
	}

	var patch service.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, models.Envelope{Success: false, Message: msgInvalidPayload})
		return
	}

	res, err := h.services.Users.Update(c.Request.Context(), id, &patch, actorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !res.OK {
		c.JSON(http.StatusNotFound, models.Envelope{Success: false, Message: msgStorageFailure})
		return
	}
	c.JSON(http.StatusOK, models.Envelope{Success: true, Message: msgUserUpdateOK})
}

// Delete handles DELETE /v1/users?email=
func (h *UserHandler) Delete(c *gin.Context) {
	if !h.require(c, "delete", "user") {
		return
	}

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, models.Envelope{Success: false, Message: msgInvalidPayload})
		return
	}

	res, err := h.services.Users.DeleteByEmail(c.Request.Context(), email, actorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !res.OK {
		c.JSON(http.StatusNotFound, models.Envelope{Success: false, Message: msgUserDeleteFailed})
		return
	}
	c.JSON(http.StatusOK, models.Envelope{Success: true, Message: msgUserDeleteOK})
}

// require checks the actor's stored grants and writes the refusal itself.
func (h *UserHandler) require(c *gin.Context, verb, resource string) bool {
	actor := actorFrom(c)
	user, err := h.services.Users.GetByEmail(c.Request.Context(), actor.Email)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusForbidden, models.Envelope{Success: false, Message: msgForbidden})
		return false
	}
	if err != nil {
		h.log.Error().Err(err).Str("actor", actor.Email).Msg("Permission lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgStorageFailure})
		return false
	}
	if !permissions.Has(user.Permissions, verb, resource) {
		c.JSON(http.StatusForbidden, models.Envelope{Success: false, Message: msgForbidden})
		return false
	}
	return true
}

func (h *UserHandler) respondError(c *gin.Context, err error) {
	var vf *service.ValidationFailed
	switch {
	case errors.As(err, &vf):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": msgInvalidFields,
			"errors":  vf.Errors,
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, models.Envelope{Success: false, Message: msgStorageFailure})
	default:
		h.log.Error().Err(err).Msg("User operation failed")
		c.JSON(http.StatusInternalServerError, models.Envelope{Success: false, Message: msgStorageFailure})
	}
}
