package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a one-way bcrypt hash from the given plaintext
// password using the default cost.
//
// The returned value is safe to persist; the plaintext cannot be recovered
// from it. Use [VerifyPassword] to check a candidate password against a
// stored hash.
//
// Returns an error only if bcrypt itself fails (e.g. the password exceeds
// bcrypt's 72-byte input limit).
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt hash. It is verify-only: no information about the original
// password leaks beyond the boolean result.
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
