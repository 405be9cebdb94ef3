package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a valid bcrypt hash (cost 10) that matches no admin password.
// Login compares against it when the email is unknown, so that the response
// takes roughly the same time whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored bcrypt hash
func VerifyPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

// BurnPasswordCheck performs a bcrypt comparison against the dummy hash.
// Called on the unknown-email path purely to burn the same hashing cost as a
// real verification; the result is always a rejection.
func BurnPasswordCheck(password string) {
	bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
