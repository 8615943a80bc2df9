// Package credstore persists the operator's session between runs: the bearer
// token and the last verified identity record, kept in two named slots of a
// local sqlite database.
package credstore

import (
	"context"

	"github.com/itradeops/itradectl/internal/models"
)

// Credential is the persisted session material. When Token is empty the
// stored Identity must be treated as stale and untrusted.
type Credential struct {
	Token    string
	Identity models.Employee
}

// Store is a pure persistence boundary; it performs no network calls and no
// validation.
//
// Contract:
//   - Save writes token and identity atomically: a reader never observes one
//     without the other after a successful login/registration/verification.
//   - Load is non-blocking and reports ok=false when no token is stored.
//   - Clear removes both slots and is idempotent.
type Store interface {
	Save(ctx context.Context, token string, identity models.Employee) error
	Load(ctx context.Context) (Credential, bool, error)
	Clear(ctx context.Context) error
}
