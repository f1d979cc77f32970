package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a plain password at the given cost.  The mock
// account store passes a low cost in tests so seeding stays fast.
func HashPassword(plain string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
