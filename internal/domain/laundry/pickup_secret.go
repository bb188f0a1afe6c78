package laundry

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"

	"github.com/laundrypos/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// PickupSecretLength is the number of digits in a pickup secret
const PickupSecretLength = 6

var pickupSecretPattern = regexp.MustCompile(`^[0-9]{6}$`)

// GeneratePickupSecret produces a 6-digit numeric secret from a
// cryptographically secure source. Leading zeros are preserved.
func GeneratePickupSecret() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate pickup secret: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// HashPickupSecret returns a salted hash of the secret. Only the hash is
// ever persisted; the plaintext is shown to the customer once and discarded.
func HashPickupSecret(secret string) (string, error) {
	if !pickupSecretPattern.MatchString(secret) {
		return "", shared.NewDomainError("INVALID_SECRET_FORMAT", "Pickup secret must be exactly 6 digits")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pickup secret: %w", err)
	}
	return string(hash), nil
}

// VerifyPickupSecret reports whether the presented secret matches the
// stored hash. The comparison runs in constant time.
func VerifyPickupSecret(hash, secret string) bool {
	if hash == "" || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
