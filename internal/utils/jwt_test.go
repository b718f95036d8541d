package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "64b5f0c2a3d4e5f6a7b8c9d0", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != "64b5f0c2a3d4e5f6a7b8c9d0" {
		t.Fatalf("user id = %q", userID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "64b5f0c2a3d4e5f6a7b8c9d0", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", "64b5f0c2a3d4e5f6a7b8c9d0", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plain password")
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}
