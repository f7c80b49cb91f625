// Package auth isolates the password-hashing algorithm from the rest of the
// authorization logic.
package auth

import "golang.org/x/crypto/bcrypt"

// CredentialVerifier hashes and checks login credentials.
type CredentialVerifier interface {
	Hash(plain string) ([]byte, error)
	Verify(hash []byte, plain string) error
}

type BcryptVerifier struct {
	cost int
}

func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{cost: bcrypt.DefaultCost}
}

func (v *BcryptVerifier) Hash(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), v.cost)
}

func (v *BcryptVerifier) Verify(hash []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain))
}
