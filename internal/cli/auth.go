package cli

import (
	"context"
	"fmt"
	"unicode"

	"github.com/itradeops/itradectl/internal/models"
	"github.com/itradeops/itradectl/internal/session"
)

// getSimpleText, getPassword and askConfirm are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var askConfirm = Confirm

// Login prompts for credentials, authenticates against the backend and
// persists the session. An account that is not yet activated by a manager
// drops into the activation wait screen.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Login", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	pin, err := getPassword("PIN code", a.out)
	if err != nil {
		return err
	}

	token, identity, err := a.client.Login(ctx, login, password, pin)
	if err != nil {
		a.reportFailure(ctx, err)
		return err
	}
	return a.adoptSession(ctx, token, identity)
}

// Register creates a new operator account. Validation mirrors the backend's
// rules so obviously bad input never leaves the console: login at least 3
// characters, password at least 6, PIN 4 to 6 digits, both confirmed.
func (a *App) Register(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Login (min 3 characters)", a.out)
	if err != nil {
		return err
	}
	if len(login) < 3 {
		a.printErr("Login must be at least 3 characters.")
		return nil
	}

	password, err := getPassword("Password (min 6 characters)", a.out)
	if err != nil {
		return err
	}
	if len(password) < 6 {
		a.printErr("Password must be at least 6 characters.")
		return nil
	}
	passwordAgain, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	if password != passwordAgain {
		a.printErr("Passwords do not match.")
		return nil
	}

	pin, err := getPassword("PIN code (4-6 digits)", a.out)
	if err != nil {
		return err
	}
	if !validPin(pin) {
		a.printErr("PIN code must be 4 to 6 digits.")
		return nil
	}
	pinAgain, err := getPassword("Repeat PIN code", a.out)
	if err != nil {
		return err
	}
	if pin != pinAgain {
		a.printErr("PIN codes do not match.")
		return nil
	}

	roleInput, err := getSimpleText(a.reader, "Role (operator/manager/admin, empty for operator)", a.out)
	if err != nil {
		return err
	}
	role := models.RoleOperator
	if roleInput != "" {
		role = models.Role(roleInput)
		if !role.Valid() {
			a.printErr("Unknown role: " + roleInput)
			return nil
		}
	}

	token, identity, err := a.client.Register(ctx, login, password, pin, role)
	if err != nil {
		a.reportFailure(ctx, err)
		return err
	}
	a.printOK("Account created.")
	return a.adoptSession(ctx, token, identity)
}

// adoptSession persists a freshly issued token+identity pair and moves the
// console into the matching state.
func (a *App) adoptSession(ctx context.Context, token string, identity models.Employee) error {
	if err := a.store.Save(ctx, token, identity); err != nil {
		a.log.Error(ctx, "persisting session", "err", err)
		return err
	}
	a.client.SetToken(token)

	if !identity.IsActive {
		a.state = session.State{Status: session.StatusPendingActivation, Identity: identity}
		a.awaitActivation(ctx)
		return nil
	}
	a.state = session.State{Status: session.StatusAuthenticated, Identity: identity}
	a.printOK("Logged in as " + identity.Login)
	return nil
}

// awaitActivation blocks in the polling wait screen until the account is
// activated, the session is lost, or ctx is cancelled. Reports whether the
// session ended up authenticated.
func (a *App) awaitActivation(ctx context.Context) bool {
	a.printMuted(fmt.Sprintf(
		"Your account awaits manager activation; re-checking every %s (Ctrl+C to quit).",
		a.config.ActivationPollInterval))

	st, err := a.watcher.Wait(ctx)
	if err != nil {
		a.log.Warn(ctx, "activation wait interrupted", "err", err)
		return false
	}
	a.state = st

	if st.Status == session.StatusAuthenticated {
		a.printOK("Account activated. Welcome, " + st.Identity.Login + "!")
		return true
	}
	a.printErr("Session lost while waiting for activation, please log in again.")
	return false
}

// Logout clears the persisted credential and forgets the in-memory session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	a.client.SetToken("")
	a.state = session.State{Status: session.StatusUnauthenticated}
	a.printMuted("Logged out.")
	return nil
}

func validPin(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
