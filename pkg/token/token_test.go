package token

import (
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	signed, expiresAt, err := Generate("u1", "Asha", "customer", "asha@example.com", "12 Market Street", "secret", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if until := time.Until(expiresAt); until < 59*time.Minute || until > time.Hour {
		t.Errorf("expiry window = %v, want ~1h", until)
	}

	claims, err := Validate(signed, "secret")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if claims.UserID != "u1" || claims.Name != "Asha" || claims.Role != "customer" {
		t.Errorf("claims mismatch: %+v", claims)
	}
	if claims.Email != "asha@example.com" || claims.Address != "12 Market Street" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	signed, _, err := Generate("u1", "Asha", "customer", "", "", "secret", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := Validate(signed, "other-secret"); err == nil {
		t.Fatal("expected validation failure with wrong secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	signed, _, err := Generate("u1", "Asha", "customer", "", "", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := Validate(signed, "secret"); err == nil {
		t.Fatal("expected validation failure for expired token")
	}
}

func TestValidateGarbage(t *testing.T) {
	if _, err := Validate("not.a.token", "secret"); err == nil {
		t.Fatal("expected validation failure for garbage input")
	}
}
