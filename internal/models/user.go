package models

import (
	"time"
)

// Roles a back-office account can hold.
const (
	RoleAdmin       = "admin"
	RoleContributor = "contributor"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	RoleAdmin:       true,
	RoleContributor: true,
}

// User represents a back-office account. Permissions are denormalized from
// the role when the account is created or edited, not recomputed at read time.
type User struct {
	ID                int64      `json:"id" db:"id"`
	Email             string     `json:"email" db:"email"`
	TiersServiceIdent string     `json:"tiers_service_ident" db:"tiers_service_ident"`
	Role              string     `json:"role" db:"role"`
	Permissions       []string   `json:"permissions" db:"permissions"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	LastConnectionAt  *time.Time `json:"last_connection_at,omitempty" db:"last_connection_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
	UpdatedBy         string     `json:"updated_by" db:"updated_by"`
}
