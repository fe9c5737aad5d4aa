package utils

import (
	"testing"
	"time"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken returned error: %v", err)
	}

	username, err := ValidateAdminToken(token)
	if err != nil {
		t.Fatalf("ValidateAdminToken rejected a fresh token: %v", err)
	}
	if username != "admin" {
		t.Errorf("username = %q, want admin", username)
	}
}

func TestValidateAdminToken_Garbage(t *testing.T) {
	if _, err := ValidateAdminToken("not-a-token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestValidateAdminToken_Expired(t *testing.T) {
	token, err := GenerateAdminToken("admin", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAdminToken returned error: %v", err)
	}
	if _, err := ValidateAdminToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}
