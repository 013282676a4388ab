package permissions

import (
	"strings"
	"testing"

	"github.com/editorial-backoffice/internal/models"
)

func TestForRole(t *testing.T) {
	admin := ForRole(models.RoleAdmin)
	if len(admin) != 10 {
		t.Errorf("Admin preset must hold 10 permissions, got %d", len(admin))
	}
	contributor := ForRole(models.RoleContributor)
	if len(contributor) != 4 {
		t.Errorf("Contributor preset must hold 4 permissions, got %d", len(contributor))
	}

	if ForRole("superuser") != nil {
		t.Error("Unknown roles get no permissions")
	}

	// callers must not be able to mutate the preset
	admin[0] = "tampered"
	if fresh := ForRole(models.RoleAdmin); fresh[0] != ReadArticles {
		t.Errorf("Preset was mutated through a returned slice: %v", fresh)
	}
}

func TestContributorBoundaries(t *testing.T) {
	contributor := ForRole(models.RoleContributor)

	allowed := []string{"read", "create", "update", "validate"}
	for _, verb := range allowed {
		if !Has(contributor, verb, "articles") {
			t.Errorf("Contributor should be granted %s:articles", verb)
		}
	}

	denied := [][2]string{
		{"delete", "articles"},
		{"ship", "articles"},
		{"create", "user"},
		{"update", "user"},
		{"delete", "user"},
		{"enable", "maintenance"},
	}
	for _, pair := range denied {
		if Has(contributor, pair[0], pair[1]) {
			t.Errorf("Contributor must not be granted %s:%s", pair[0], pair[1])
		}
	}
}

func TestAdminCoversEverything(t *testing.T) {
	admin := ForRole(models.RoleAdmin)
	for _, p := range adminPermissions {
		verb, resource, found := strings.Cut(p, ":")
		if !found {
			t.Fatalf("Malformed permission %q", p)
		}
		if !Has(admin, verb, resource) {
			t.Errorf("Admin should be granted %s", p)
		}
	}
}

func TestHasExactMatchOnly(t *testing.T) {
	granted := []string{ReadArticles}
	if Has(granted, "read", "article") {
		t.Error("Resource names must match exactly")
	}
	if Has(nil, "read", "articles") {
		t.Error("An empty grant set allows nothing")
	}
}