package jwtutil

import (
	"testing"

	"github.com/ashwithareddy05/SiteLink-Architectureapp/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("asha", 42, model.RoleStudent)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.Username != "asha" || claims.UserID != 42 || claims.Role != model.RoleStudent {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}

func TestValidateRejectsWrongKey(t *testing.T) {
	token, err := GenerateToken("asha", 42, model.RoleFirm)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	oldSecret := secret
	secret = []byte("a-different-key")
	defer func() { secret = oldSecret }()

	if _, err := ValidateToken(token); err == nil {
		t.Error("expected an error for a token signed with another key")
	}
}
