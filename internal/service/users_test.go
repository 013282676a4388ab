package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/editorial-backoffice/internal/models"
	"github.com/editorial-backoffice/internal/permissions"
	"github.com/editorial-backoffice/internal/service"
	"github.com/editorial-backoffice/internal/validation"
)

func TestCreateUserDenormalizesPermissions(t *testing.T) {
	services, _, _, users := newTestEnv()

	res, err := services.Users.Create(context.Background(), &validation.UserInput{
		Email:             "pigiste@example.com",
		TiersServiceIdent: "auth0|456",
		Role:              models.RoleContributor,
	}, testActor)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !res.OK {
		t.Fatal("Create should report success")
	}

	user := users.Users["pigiste@example.com"]
	if user == nil {
		t.Fatal("User row should exist")
	}
	if len(user.Permissions) != 4 {
		t.Errorf("Contributor permissions must be stored on the row, got %v", user.Permissions)
	}
	if user.UpdatedBy != testActor.Email {
		t.Errorf("updated_by not stamped, got %q", user.UpdatedBy)
	}
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	services, _, _, users := newTestEnv()

	_, err := services.Users.Create(context.Background(), &validation.UserInput{
		Email:             "pigiste@example.com",
		TiersServiceIdent: "auth0|456",
		Role:              "editor",
	}, testActor)
	var vf *service.ValidationFailed
	if !errors.As(err, &vf) {
		t.Fatalf("Expected ValidationFailed, got %v", err)
	}
	if len(users.Users) != 0 {
		t.Error("No row may be written on invalid input")
	}
}

func TestUpdateUserRoleReDerivesPermissions(t *testing.T) {
	services, _, _, users := newTestEnv()
	seeded := users.Seed(&models.User{
		Email:       "pigiste@example.com",
		Role:        models.RoleContributor,
		Permissions: permissions.ForRole(models.RoleContributor),
	})

	role := models.RoleAdmin
	_, err := services.Users.Update(context.Background(), seeded.ID, &service.UserPatch{Role: &role}, testActor)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if seeded.Role != models.RoleAdmin {
		t.Errorf("Role not applied, got %q", seeded.Role)
	}
	if len(seeded.Permissions) != 10 {
		t.Errorf("Role change must re-derive the stored permissions, got %v", seeded.Permissions)
	}
}

func TestUpdateUserExplicitPermissionsWin(t *testing.T) {
	services, _, _, users := newTestEnv()
	seeded := users.Seed(&models.User{
		Email:       "pigiste@example.com",
		Role:        models.RoleContributor,
		Permissions: permissions.ForRole(models.RoleContributor),
	})

	role := models.RoleAdmin
	explicit := []string{permissions.ReadArticles}
	_, err := services.Users.Update(context.Background(), seeded.ID, &service.UserPatch{
		Role:        &role,
		Permissions: &explicit,
	}, testActor)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(seeded.Permissions) != 1 || seeded.Permissions[0] != permissions.ReadArticles {
		t.Errorf("An explicit permission set must win over the role preset, got %v", seeded.Permissions)
	}
}

func TestTouchConnectionStampsLastConnection(t *testing.T) {
	services, _, _, users := newTestEnv()
	users.Seed(&models.User{Email: "pigiste@example.com", Role: models.RoleContributor})

	if err := services.Users.TouchConnection(context.Background(), "pigiste@example.com"); err != nil {
		t.Fatalf("TouchConnection failed: %v", err)
	}
	if _, present := users.LastUpdateFields["last_connection_at"]; !present {
		t.Error("last_connection_at must be written")
	}

	err := services.Users.TouchConnection(context.Background(), "inconnu@example.com")
	if err == nil {
		t.Error("Unknown accounts cannot be stamped")
	}
}
