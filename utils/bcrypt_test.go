package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")

	hashed, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if err := ComparePassword(hashed, "s3cret-pass"); err != nil {
		t.Fatalf("expected matching password to verify, got %v", err)
	}
	if err := ComparePassword(hashed, "not-the-password"); err == nil {
		t.Fatal("expected mismatching password to fail")
	}
}

func TestHashCost(t *testing.T) {
	cases := []struct {
		env      string
		expected int
	}{
		{"", bcrypt.DefaultCost},
		{"4", 4},
		{"12", 12},
		{"not-a-number", bcrypt.DefaultCost},
		{"0", bcrypt.DefaultCost},
		{"99", bcrypt.DefaultCost},
	}
	for _, c := range cases {
		t.Setenv("BCRYPT_COST", c.env)
		if got := hashCost(); got != c.expected {
			t.Fatalf("BCRYPT_COST=%q: expected cost %d, got %d", c.env, c.expected, got)
		}
	}
}
