package auth

import (
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/activity-tracker/internal/storage"
)

// CredentialStore keeps bcrypt password hashes in the credentials table,
// keyed by lowercased email.
type CredentialStore struct {
	adapter    *storage.Adapter
	bcryptCost int
	logger     *slog.Logger
}

func NewCredentialStore(adapter *storage.Adapter, bcryptCost int, logger *slog.Logger) *CredentialStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &CredentialStore{adapter: adapter, bcryptCost: bcryptCost, logger: logger}
}

// HashPassword creates a bcrypt hash of the password
func (c *CredentialStore) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Store writes the hash for the email, replacing any previous one.
func (c *CredentialStore) Store(email, hash string) error {
	creds := c.adapter.ReadCredentials()
	creds[strings.ToLower(email)] = hash
	return c.adapter.WriteCredentials(creds)
}

// Verify reports whether the password matches the stored hash. Unknown
// emails and mismatches are indistinguishable to the caller.
func (c *CredentialStore) Verify(email, password string) bool {
	hash, ok := c.adapter.ReadCredentials()[strings.ToLower(email)]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Remove drops the credential for the email. Absent entries are fine.
func (c *CredentialStore) Remove(email string) error {
	creds := c.adapter.ReadCredentials()
	delete(creds, strings.ToLower(email))
	return c.adapter.WriteCredentials(creds)
}
