package service

import (
	"context"
	"strings"
	"testing"

	"github.com/bookline/reservation-service/internal/domain"
	apperrors "github.com/bookline/reservation-service/pkg/util"
)

func newCatalogFixture() (*CatalogService, *stubServiceRepo) {
	repo := newStubServiceRepo(newFakeClock())
	return NewCatalogService(repo), repo
}

func TestCatalogCreateDefaults(t *testing.T) {
	catalog, _ := newCatalogFixture()

	entry, err := catalog.Create(context.Background(), ServiceInput{Name: "Haircut", Price: 2500})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("expected an id")
	}
	if !entry.Active {
		t.Fatal("new entries default to active")
	}
	if entry.DurationMinutes != 60 {
		t.Fatalf("expected default duration 60, got %d", entry.DurationMinutes)
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	catalog, _ := newCatalogFixture()

	longDesc := strings.Repeat("x", 501)
	cases := []struct {
		name  string
		input ServiceInput
	}{
		{"empty name", ServiceInput{Name: "  ", Price: 100}},
		{"long name", ServiceInput{Name: strings.Repeat("x", 101), Price: 100}},
		{"negative price", ServiceInput{Name: "Haircut", Price: -1}},
		{"long description", ServiceInput{Name: "Haircut", Price: 100, Description: &longDesc}},
		{"excessive duration", ServiceInput{Name: "Haircut", Price: 100, DurationMinutes: 481}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.Create(context.Background(), tc.input)
			assertCode(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestCatalogUpdate(t *testing.T) {
	catalog, _ := newCatalogFixture()

	entry, err := catalog.Create(context.Background(), ServiceInput{Name: "Haircut", Price: 2500})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	inactive := false
	updated, err := catalog.Update(context.Background(), entry.ID, ServiceInput{
		Name:            "Premium Haircut",
		Price:           4000,
		DurationMinutes: 45,
		Active:          &inactive,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Premium Haircut" || updated.Price != 4000 || updated.DurationMinutes != 45 {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Active {
		t.Fatal("expected entry deactivated")
	}
}

func TestCatalogUpdateUnknownID(t *testing.T) {
	catalog, _ := newCatalogFixture()

	_, err := catalog.Update(context.Background(), "svc-missing", ServiceInput{Name: "Haircut", Price: 100})
	if !apperrors.IsNotFound(err, "service") {
		t.Fatalf("expected service not-found, got %v", err)
	}
}

func TestCatalogListActiveFiltersInactive(t *testing.T) {
	catalog, repo := newCatalogFixture()

	if _, err := catalog.Create(context.Background(), ServiceInput{Name: "Haircut", Price: 100}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	inactive := false
	if _, err := catalog.Create(context.Background(), ServiceInput{Name: "Retired", Price: 100, Active: &inactive}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	active, err := catalog.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive returned error: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Haircut" {
		t.Fatalf("expected only the active entry, got %+v", active)
	}

	all, err := catalog.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both entries, got %d", len(all))
	}
	if len(repo.byID) != 2 {
		t.Fatalf("expected two stored entries, got %d", len(repo.byID))
	}
}

func TestCatalogDelete(t *testing.T) {
	catalog, _ := newCatalogFixture()

	entry, err := catalog.Create(context.Background(), ServiceInput{Name: "Haircut", Price: 100})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := catalog.Delete(context.Background(), entry.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := catalog.Get(context.Background(), entry.ID); !apperrors.IsNotFound(err, "service") {
		t.Fatalf("expected deleted entry to be gone, got %v", err)
	}
	if err := catalog.Delete(context.Background(), entry.ID); !apperrors.IsNotFound(err, "service") {
		t.Fatalf("expected not-found on double delete, got %v", err)
	}
}

func TestCatalogEntryIsDomainService(t *testing.T) {
	catalog, _ := newCatalogFixture()

	desc := "Classic cut with wash"
	entry, err := catalog.Create(context.Background(), ServiceInput{
		Name:        "  Haircut  ",
		Price:       2500,
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	var got *domain.Service
	got, err = catalog.Get(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "Haircut" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
	if got.Description == nil || *got.Description != desc {
		t.Fatalf("expected description kept, got %v", got.Description)
	}
}
