package utils

import (
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// hashCost resolves the bcrypt work factor from BCRYPT_COST, falling back
// to the library default when unset or out of the supported range.
func hashCost() int {
	v := os.Getenv("BCRYPT_COST")
	if v == "" {
		return bcrypt.DefaultCost
	}
	cost, err := strconv.Atoi(v)
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost())
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func ComparePassword(hashed string, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
