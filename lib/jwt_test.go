package lib

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := "session-secret"

	token, err := IssueSessionToken("paige@example.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	claims, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if claims.Email != "paige@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q", claims.Role)
	}
	if !claims.Exp.After(time.Now()) {
		t.Error("expiry should be in the future")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueSessionToken("paige@example.com", "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	if _, err := ParseToken(token, "secret-b"); err == nil {
		t.Error("token signed with a different secret must not parse")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := IssueSessionToken("paige@example.com", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	if _, err := ParseToken(token, "secret"); err == nil {
		t.Error("expired token must not parse")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token", "secret"); err == nil {
		t.Error("garbage token must not parse")
	}
}
