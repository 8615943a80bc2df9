// Package session resolves what the console may show: it verifies the
// persisted token against the backend and produces a terminal session state
// for every protected view, plus a polling watcher for accounts awaiting
// activation.
package session

import (
	"context"
	"errors"

	"github.com/itradeops/itradectl/internal/api"
	"github.com/itradeops/itradectl/internal/credstore"
	"github.com/itradeops/itradectl/internal/logging"
	"github.com/itradeops/itradectl/internal/models"
)

type Status string

const (
	StatusUnknown           Status = "unknown"
	StatusVerifying         Status = "verifying"
	StatusUnauthenticated   Status = "unauthenticated"
	StatusPendingActivation Status = "pending_activation"
	StatusAuthenticated     Status = "authenticated"
	StatusForbidden         Status = "forbidden"
)

// State is the resolved outcome of one verification pass. Identity is set for
// Authenticated, PendingActivation and Forbidden.
type State struct {
	Status   Status
	Identity models.Employee
}

// Guard performs the verification pass. It never retries: an ambiguous result
// (network failure, rejected token, malformed response) always resolves to
// Unauthenticated with the stored credential cleared, so the guard can never
// stay authenticated on an unverified token.
type Guard struct {
	client api.Client
	store  credstore.Store
	log    logging.Logger
}

func NewGuard(client api.Client, store credstore.Store, log logging.Logger) *Guard {
	return &Guard{client: client, store: store, log: log}
}

// Check runs a single verification pass and resolves a terminal State.
// The returned error covers local persistence faults only; verification
// failures fold into StatusUnauthenticated.
func (g *Guard) Check(ctx context.Context) (State, error) {
	cred, ok, err := g.store.Load(ctx)
	if err != nil {
		return State{Status: StatusUnknown}, err
	}
	if !ok {
		// No token: terminal, no network call.
		return State{Status: StatusUnauthenticated}, nil
	}

	g.client.SetToken(cred.Token)

	identity, err := g.client.Verify(ctx)
	if err != nil {
		if !errors.Is(err, api.ErrUnauthorized) {
			g.log.Warn(ctx, "verification failed, de-authenticating", "err", err)
		}
		g.client.SetToken("")
		if clearErr := g.store.Clear(ctx); clearErr != nil {
			return State{Status: StatusUnknown}, clearErr
		}
		return State{Status: StatusUnauthenticated}, nil
	}

	// Refresh the cached identity even when unchanged: role and activation
	// status may have been edited by another operator.
	if err := g.store.Save(ctx, cred.Token, identity); err != nil {
		return State{Status: StatusUnknown}, err
	}

	if !identity.IsActive {
		return State{Status: StatusPendingActivation, Identity: identity}, nil
	}
	return State{Status: StatusAuthenticated, Identity: identity}, nil
}

// CheckRole is Check plus a capability requirement, applied only after the
// pass reaches Authenticated. A missing capability downgrades the state to
// Forbidden without re-verification.
func (g *Guard) CheckRole(ctx context.Context, required models.Role) (State, error) {
	st, err := g.Check(ctx)
	if err != nil || st.Status != StatusAuthenticated {
		return st, err
	}
	if st.Identity.Role != required {
		return State{Status: StatusForbidden, Identity: st.Identity}, nil
	}
	return st, nil
}
