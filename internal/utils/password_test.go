package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("open-sesame", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "open-sesame" {
		t.Fatal("hash equals plain text")
	}
	if !VerifyPassword(hash, "open-sesame") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "open-says-me") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPassword_OutOfRangeCost(t *testing.T) {
	// bcrypt rejects costs above 31; we fall back to the default
	// instead of failing registration.
	hash, err := HashPassword("open-sesame", 99)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "open-sesame") {
		t.Fatal("correct password rejected")
	}
}
