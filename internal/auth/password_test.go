package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !hasher.Compare(hash, "secret1") {
		t.Fatal("Compare should accept the original password")
	}
	if hasher.Compare(hash, "secret2") {
		t.Fatal("Compare should reject a different password")
	}
}

func TestBcryptHasher_HashIsRandomized(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
}

func TestBcryptHasher_CompareEmptyHash(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)
	if hasher.Compare("", "secret1") {
		t.Fatal("Compare should reject an empty hash")
	}
}

func TestNewBcryptHasher_ClampsInvalidCost(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(99)
	if hasher.Cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", hasher.Cost)
	}
}
