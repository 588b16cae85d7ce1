package utility

import (
	"os"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	os.Setenv("SECRET_KEY", "test-secret")
	defer os.Unsetenv("SECRET_KEY")

	token, err := GenerateToken("Alice", "alice@example.com", "65f000000000000000000001", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, errMsg := ValidateToken(token)
	if errMsg != "" {
		t.Fatalf("ValidateToken rejected a fresh token: %s", errMsg)
	}
	if claims.Name != "Alice" || claims.Email != "alice@example.com" {
		t.Errorf("identity claims lost: %+v", claims)
	}
	if claims.Uid != "65f000000000000000000001" {
		t.Errorf("uid claim = %q", claims.Uid)
	}
	if claims.Role != "admin" {
		t.Errorf("role claim = %q, want admin", claims.Role)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	os.Setenv("SECRET_KEY", "test-secret")
	defer os.Unsetenv("SECRET_KEY")

	if _, errMsg := ValidateToken("not-a-token"); errMsg == "" {
		t.Fatal("malformed token accepted")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	os.Setenv("SECRET_KEY", "secret-one")
	token, err := GenerateToken("Bob", "bob@example.com", "65f000000000000000000002", "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	os.Setenv("SECRET_KEY", "secret-two")
	defer os.Unsetenv("SECRET_KEY")

	if _, errMsg := ValidateToken(token); errMsg == "" {
		t.Fatal("token signed with a different secret accepted")
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	os.Setenv("SECRET_KEY", "test-secret")
	defer os.Unsetenv("SECRET_KEY")

	token, err := GenerateToken("Carol", "carol@example.com", "65f000000000000000000003", "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, errMsg := ValidateToken(tampered); errMsg == "" {
		t.Fatal("tampered token accepted")
	}
}
