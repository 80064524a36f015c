package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Error("VerifyPassword() rejected the original password")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("VerifyPassword() accepted a wrong password")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	// bcrypt errors on costs above MaxCost; the clamp must absorb that.
	hash, err := HashPassword("s3cret", bcrypt.MaxCost+1)
	if err != nil {
		t.Fatalf("HashPassword() with out-of-range cost: %v", err)
	}
	if cost, err := bcrypt.Cost([]byte(hash)); err != nil || cost != bcrypt.DefaultCost {
		t.Errorf("hash cost = %d (err %v), want %d", cost, err, bcrypt.DefaultCost)
	}
}
