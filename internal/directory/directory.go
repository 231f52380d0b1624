// Package directory holds the static distributor roster and the
// credential check performed at login.
package directory

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/herculesvale/vale-service/internal/models"
)

// Directory is the fixed distributor roster. Records are immutable at
// runtime and looked up by username.
//
// The password is a single shared secret supplied through configuration.
// That is a placeholder stance inherited from the reference system; a
// real deployment should swap this package for an identity provider. The
// secret is still only ever compared through a bcrypt hash.
type Directory struct {
	byUsername map[string]models.Distributor
	secretHash []byte
}

// New builds a directory over the given roster and shared secret.
func New(distributors []models.Distributor, sharedSecret string) (*Directory, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(sharedSecret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	byUsername := make(map[string]models.Distributor, len(distributors))
	for _, d := range distributors {
		byUsername[d.Username] = d
	}
	return &Directory{byUsername: byUsername, secretHash: hash}, nil
}

// Authenticate returns the matching active distributor, or nil when the
// credentials do not match. A miss is a normal negative result, not an
// error.
func (d *Directory) Authenticate(username, password string) *models.Distributor {
	dist, ok := d.byUsername[username]
	if !ok || !dist.IsActive {
		return nil
	}
	if bcrypt.CompareHashAndPassword(d.secretHash, []byte(password)) != nil {
		return nil
	}
	out := dist
	return &out
}

// Seed is the built-in roster used when no identity provider is wired.
func Seed() []models.Distributor {
	return []models.Distributor{
		{
			ID:       "1",
			Username: "distribuidor001",
			Name:     "Juan Pérez",
			Email:    "juan.perez@email.com",
			Phone:    "555-0001",
			IsActive: true,
		},
		{
			ID:       "2",
			Username: "distribuidor002",
			Name:     "María González",
			Email:    "maria.gonzalez@email.com",
			Phone:    "555-0002",
			IsActive: true,
		},
	}
}
