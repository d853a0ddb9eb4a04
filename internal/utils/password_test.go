package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordClampsOutOfRangeCost(t *testing.T) {
	for _, cost := range []int{-1, 0, bcrypt.MaxCost + 5} {
		hash, err := HashPassword("s3cret", cost)
		if err != nil {
			t.Fatalf("HashPassword(cost=%v) error = %v", cost, err)
		}
		if !CheckPassword(hash, "s3cret") {
			t.Errorf("CheckPassword() = false for hash produced with cost %v", cost)
		}
	}
}

func TestCheckPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if CheckPassword(hash, "not-it") {
		t.Error("CheckPassword() = true for wrong password")
	}
	if CheckPassword("not-a-hash", "s3cret") {
		t.Error("CheckPassword() = true for malformed hash")
	}
}
