package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("198501012010")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "198501012010" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := VerifyPassword(hash, "198501012010"); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}
	if err := VerifyPassword(hash, "wrong-password"); err != ErrPasswordMismatch {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestHashPasswordTooShort(t *testing.T) {
	if _, err := HashPassword("12345"); err != ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestIsPasswordValid(t *testing.T) {
	if IsPasswordValid("12345") {
		t.Error("5-character password should be invalid")
	}
	if !IsPasswordValid("123456") {
		t.Error("6-character password should be valid")
	}
}
