package service

import (
	"context"
	"testing"

	"github.com/bookline/reservation-service/internal/auth"
	"github.com/bookline/reservation-service/internal/domain"
	apperrors "github.com/bookline/reservation-service/pkg/util"
)

func newUserFixture() (*UserService, *stubUserRepo) {
	repo := newStubUserRepo(newFakeClock())
	return NewUserService(repo, 4), repo
}

func TestUserCreateHashesCredential(t *testing.T) {
	roster, _ := newUserFixture()

	password := "secret123"
	created, err := roster.Create(context.Background(), UserInput{
		Name:     "Bea",
		Phone:    "555",
		Email:    "bea@shop.com",
		Role:     domain.RoleEmployee,
		Password: &password,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.PasswordHash == nil {
		t.Fatal("expected a stored credential hash")
	}
	if *created.PasswordHash == password {
		t.Fatal("credential must not be stored in plaintext")
	}
	if err := auth.ComparePassword(*created.PasswordHash, password); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestUserCreateDefaultsToClientRole(t *testing.T) {
	roster, _ := newUserFixture()

	created, err := roster.Create(context.Background(), UserInput{
		Name:  "Ana",
		Phone: "555",
		Email: "ana@example.com",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Role != domain.RoleClient {
		t.Fatalf("expected default role %q, got %q", domain.RoleClient, created.Role)
	}
	if created.PasswordHash != nil {
		t.Fatal("no password given, none should be stored")
	}
	if !created.Active {
		t.Fatal("new entries default to active")
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	roster, _ := newUserFixture()

	input := UserInput{Name: "Bea", Phone: "555", Email: "bea@shop.com", Role: domain.RoleEmployee}
	if _, err := roster.Create(context.Background(), input); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	_, err := roster.Create(context.Background(), input)
	assertCode(t, err, "CONFLICT")
}

func TestUserCreateRejectsUnknownRole(t *testing.T) {
	roster, _ := newUserFixture()

	_, err := roster.Create(context.Background(), UserInput{
		Name:  "Bea",
		Phone: "555",
		Email: "bea@shop.com",
		Role:  domain.UserRole("WIZARD"),
	})
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestUserUpdate(t *testing.T) {
	roster, _ := newUserFixture()

	created, err := roster.Create(context.Background(), UserInput{
		Name: "Bea", Phone: "555", Email: "bea@shop.com", Role: domain.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	dept := "Front desk"
	updated, err := roster.Update(context.Background(), created.ID, UserInput{
		Name:       "Beatriz",
		Phone:      "666",
		Email:      "beatriz@shop.com",
		Role:       domain.RoleSupervisor,
		Department: &dept,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Beatriz" || updated.Email != "beatriz@shop.com" || updated.Role != domain.RoleSupervisor {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Department == nil || *updated.Department != dept {
		t.Fatalf("expected department set, got %v", updated.Department)
	}
}

func TestUserUpdateUnknownID(t *testing.T) {
	roster, _ := newUserFixture()

	_, err := roster.Update(context.Background(), "user-missing", UserInput{
		Name: "Bea", Phone: "555", Email: "bea@shop.com",
	})
	if !apperrors.IsNotFound(err, "user") {
		t.Fatalf("expected user not-found, got %v", err)
	}
}

func TestUserDeactivateKeepsRow(t *testing.T) {
	roster, repo := newUserFixture()

	created, err := roster.Create(context.Background(), UserInput{
		Name: "Bea", Phone: "555", Email: "bea@shop.com", Role: domain.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := roster.Deactivate(context.Background(), created.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	// soft delete: the row stays so reservations keep resolving
	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("deactivated entry must remain fetchable: %v", err)
	}
	if stored.Active {
		t.Fatal("expected active flag cleared")
	}

	active, err := roster.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive returned error: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated entry must not appear in active list, got %+v", active)
	}
}

func TestUserListStaffCarriesManagedCounts(t *testing.T) {
	roster, repo := newUserFixture()

	staff, err := roster.Create(context.Background(), UserInput{
		Name: "Bea", Phone: "555", Email: "bea@shop.com", Role: domain.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := roster.Create(context.Background(), UserInput{
		Name: "Ana", Phone: "555", Email: "ana@example.com", Role: domain.RoleClient,
	}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	repo.managed[staff.ID] = 7

	listed, err := roster.ListStaff(context.Background())
	if err != nil {
		t.Fatalf("ListStaff returned error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected only staff entries, got %d", len(listed))
	}
	if listed[0].User.ID != staff.ID || listed[0].ManagedReservations != 7 {
		t.Fatalf("unexpected staff listing: %+v", listed[0])
	}
}

func TestUserListByRoleRejectsUnknownRole(t *testing.T) {
	roster, _ := newUserFixture()

	_, err := roster.ListByRole(context.Background(), domain.UserRole("WIZARD"))
	assertCode(t, err, "VALIDATION_FAILED")
}
