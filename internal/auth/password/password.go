// Package password is the credential subsystem: one-way hashing and
// verification of user passwords. It owns no storage and never returns the
// plaintext to a caller.
package password

import "golang.org/x/crypto/bcrypt"

// Hash produces a salted bcrypt hash. The salt is fresh per call, so hashing
// the same plaintext twice yields different strings; equality of hashes must
// never be used for verification.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the encoded hash. bcrypt compares
// in constant time against the salt and cost embedded in the hash.
func Verify(plaintext, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plaintext)) == nil
}
