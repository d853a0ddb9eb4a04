package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a back-office password with the configured bcrypt
// cost.  A cost outside bcrypt's supported range falls back to the library
// default so a mistyped BCRYPT_COST can never produce hashes that later
// refuse to verify.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
