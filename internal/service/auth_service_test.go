package service

import (
	"context"
	"testing"
	"time"

	"github.com/bookline/reservation-service/internal/auth"
	"github.com/bookline/reservation-service/internal/config"
	"github.com/bookline/reservation-service/internal/domain"
)

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo(newFakeClock())
	gate := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		BcryptCost:            4,
	}, users)
	return gate, users
}

func seedAccount(t *testing.T, users *stubUserRepo, email, password string, role domain.UserRole, active bool) domain.User {
	t.Helper()
	account := domain.User{
		Name:   "Account",
		Phone:  "555",
		Email:  email,
		Role:   role,
		Active: active,
	}
	if password != "" {
		hash, err := auth.HashPassword(password, 4)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		account.PasswordHash = &hash
	}
	if err := users.Create(context.Background(), &account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func TestLoginIssuesTokenForStaff(t *testing.T) {
	gate, users := newAuthFixture(t)
	account := seedAccount(t, users, "bea@shop.com", "secret123", domain.RoleEmployee, true)

	result, err := gate.Login(context.Background(), "bea@shop.com", "secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.ID != account.ID {
		t.Fatalf("expected user %q, got %q", account.ID, result.User.ID)
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected a future expiry, got %v", result.ExpiresAt)
	}

	claims, err := gate.TokenManager().ParseToken(result.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.SubjectID != account.ID || claims.Role != domain.RoleEmployee {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	gate, users := newAuthFixture(t)
	seedAccount(t, users, "bea@shop.com", "secret123", domain.RoleEmployee, true)

	_, err := gate.Login(context.Background(), "bea@shop.com", "wrong")
	assertCode(t, err, "UNAUTHORIZED")
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	gate, _ := newAuthFixture(t)

	_, err := gate.Login(context.Background(), "ghost@shop.com", "whatever")
	assertCode(t, err, "UNAUTHORIZED")
}

func TestLoginRejectsAccountWithoutCredential(t *testing.T) {
	gate, users := newAuthFixture(t)
	seedAccount(t, users, "ana@example.com", "", domain.RoleClient, true)

	_, err := gate.Login(context.Background(), "ana@example.com", "")
	assertCode(t, err, "UNAUTHORIZED")
}

func TestLoginRejectsClientRole(t *testing.T) {
	gate, users := newAuthFixture(t)
	seedAccount(t, users, "ana@example.com", "secret123", domain.RoleClient, true)

	_, err := gate.Login(context.Background(), "ana@example.com", "secret123")
	assertCode(t, err, "FORBIDDEN")
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	gate, users := newAuthFixture(t)
	seedAccount(t, users, "bea@shop.com", "secret123", domain.RoleEmployee, false)

	_, err := gate.Login(context.Background(), "bea@shop.com", "secret123")
	assertCode(t, err, "FORBIDDEN")
}

func TestValidate(t *testing.T) {
	gate, users := newAuthFixture(t)
	seedAccount(t, users, "bea@shop.com", "secret123", domain.RoleEmployee, true)

	result, err := gate.Login(context.Background(), "bea@shop.com", "secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if !gate.Validate(result.Token) {
		t.Fatal("expected issued token to validate")
	}
	if gate.Validate("not-a-token") {
		t.Fatal("expected garbage token to be rejected")
	}
	if gate.Validate("") {
		t.Fatal("expected empty token to be rejected")
	}
}
