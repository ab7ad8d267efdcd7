package utils

import (
	"strings"
	"testing"
)

func TestEncryptDecryptRoundtrip(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	stored, err := EncryptString("1234567890123")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if !strings.HasPrefix(stored, "enc:") {
		t.Fatalf("expected ciphertext prefix, got %q", stored)
	}
	if strings.Contains(stored, "1234567890123") {
		t.Fatal("ciphertext leaks plaintext")
	}

	plain, err := DecryptString(stored)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "1234567890123" {
		t.Fatalf("roundtrip mismatch: %q", plain)
	}
}

func TestDecryptLegacyPlaintext(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	// rows written before encryption was introduced pass through
	plain, err := DecryptString("0812345678")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "0812345678" {
		t.Fatalf("expected passthrough, got %q", plain)
	}
}

func TestEncryptWithoutKeyStoresPlaintext(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "")

	stored, err := EncryptString("0812345678")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if stored != "0812345678" {
		t.Fatalf("expected plaintext passthrough, got %q", stored)
	}
}

func TestMaskPhone(t *testing.T) {
	if got := MaskPhone("0812345678"); got != "081****678" {
		t.Fatalf("MaskPhone = %q", got)
	}
	if got := MaskPhone("12"); got != "***" {
		t.Fatalf("MaskPhone short = %q", got)
	}
}

func TestMaskID(t *testing.T) {
	if got := MaskID("1234567890123"); got != "****0123" {
		t.Fatalf("MaskID = %q", got)
	}
	if got := MaskID("123"); got != "****" {
		t.Fatalf("MaskID short = %q", got)
	}
}
