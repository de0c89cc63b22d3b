package auth

import (
	"testing"

	"github.com/bookline/reservation-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("secret", 15)

	token, expiresAt, err := manager.GenerateToken("user-1", domain.RoleSupervisor)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatal("expected token and expiry")
	}

	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.SubjectID != "user-1" || claims.Role != domain.RoleSupervisor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenRejectsForeignSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 15)
	verifier := NewTokenManager("secret-b", 15)

	token, _, err := issuer.GenerateToken("user-1", domain.RoleEmployee)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("secret", 15)

	for _, token := range []string{"", "abc", "a.b.c"} {
		if _, err := manager.ParseToken(token); err == nil {
			t.Errorf("expected %q to be rejected", token)
		}
	}
}
