package services

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	password := "SecurePass123!!"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	parts := strings.Split(hash, "$")
	if len(parts) != 2 {
		t.Fatalf("hash %q is not in salt$hash form", hash)
	}
	if salt, err := base64.RawStdEncoding.DecodeString(parts[0]); err != nil || len(salt) != 16 {
		t.Errorf("salt part %q does not decode to 16 bytes", parts[0])
	}
	if key, err := base64.RawStdEncoding.DecodeString(parts[1]); err != nil || len(key) != 32 {
		t.Errorf("key part %q does not decode to 32 bytes", parts[1])
	}
	if hash == password {
		t.Fatal("hash equals the plaintext password")
	}

	ok, err := VerifyPassword(hash, password)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = VerifyPassword(hash, "WrongPass123!!")
	if err != nil {
		t.Fatalf("VerifyPassword wrong: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSalting(t *testing.T) {
	password := "SecurePass123!!"

	first, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("not-a-valid-hash", "whatever"); err == nil {
		t.Error("expected error for malformed stored hash")
	}
}
