// Package permissions holds the static role to permission mapping. It is pure
// data plus containment checks; any change to a role's grants is an explicit
// list edit here.
package permissions

import (
	"github.com/editorial-backoffice/internal/models"
)

// Permission strings have the shape "<verb>:<resource>".
const (
	ReadArticles      = "read:articles"
	CreateArticles    = "create:articles"
	UpdateArticles    = "update:articles"
	DeleteArticles    = "delete:articles"
	ValidateArticles  = "validate:articles"
	ShipArticles      = "ship:articles"
	CreateUser        = "create:user"
	UpdateUser        = "update:user"
	DeleteUser        = "delete:user"
	EnableMaintenance = "enable:maintenance"
)

var adminPermissions = []string{
	ReadArticles,
	CreateArticles,
	UpdateArticles,
	DeleteArticles,
	ValidateArticles,
	ShipArticles,
	CreateUser,
	UpdateUser,
	DeleteUser,
	EnableMaintenance,
}

var contributorPermissions = []string{
	ReadArticles,
	CreateArticles,
	UpdateArticles,
	ValidateArticles,
}

// ForRole returns a copy of the permission preset for a role, or nil for an
// unknown role.
func ForRole(role string) []string {
	var preset []string
	switch role {
	case models.RoleAdmin:
		preset = adminPermissions
	case models.RoleContributor:
		preset = contributorPermissions
	default:
		return nil
	}
	out := make([]string, len(preset))
	copy(out, preset)
	return out
}

// Has reports whether the granted set contains "<verb>:<resource>".
func Has(granted []string, verb, resource string) bool {
	want := verb + ":" + resource
	for _, p := range granted {
		if p == want {
			return true
		}
	}
	return false
}
