package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/itradeops/itradectl/internal/api"
	"github.com/itradeops/itradectl/internal/config"
	"github.com/itradeops/itradectl/internal/credstore"
	"github.com/itradeops/itradectl/internal/dispatch"
	"github.com/itradeops/itradectl/internal/logging"
	"github.com/itradeops/itradectl/internal/session"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	client  api.Client
	store   credstore.Store
	guard   *session.Guard
	watcher *session.ActivationWatcher
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	state   session.State
	closeDB func() error
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	store, db, err := credstore.InitDatabase(ctx, cfg.CredentialDBPath)
	if err != nil {
		log.Error(ctx, "initializing credential store", "err", err)
		return nil, err
	}

	client := api.NewHTTPClient(api.Options{
		BaseURL:         cfg.APIBaseURL,
		RequestTimeout:  cfg.RequestTimeout,
		RateLimitPerSec: cfg.RateLimitPerSec,
		RateBurst:       cfg.RateBurst,
	})

	guard := session.NewGuard(client, store, log)
	watcher := session.NewActivationWatcher(guard, cfg.ActivationPollInterval, log)

	return &App{
		config:  cfg,
		client:  client,
		store:   store,
		guard:   guard,
		watcher: watcher,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closeDB: db.Close,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.closeDB(); err != nil {
			a.log.Warn(ctx, "closing credential store", "err", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.state.Status == session.StatusAuthenticated ||
		a.state.Status == session.StatusPendingActivation
}

// requireSession runs one verification pass before a protected view opens.
// A pending account is routed into the activation wait screen; only a fully
// authenticated session lets the view proceed.
func (a *App) requireSession(ctx context.Context) bool {
	st, err := a.guard.Check(ctx)
	if err != nil {
		a.printErr(err.Error())
		return false
	}
	a.state = st

	switch st.Status {
	case session.StatusAuthenticated:
		return true
	case session.StatusPendingActivation:
		return a.awaitActivation(ctx)
	default:
		a.printErr("You are not logged in. Use 'login' or 'register'.")
		return false
	}
}

// requireRole is requireSession plus a capability gate.
func (a *App) requireRole(ctx context.Context, role string) bool {
	if !a.requireSession(ctx) {
		return false
	}
	if string(a.state.Identity.Role) != role {
		a.printErr("This section requires the " + role + " role.")
		return false
	}
	return true
}

// reportFailure turns an action error into an operator-visible notice.
// The server-provided message is shown verbatim when present; a 401 anywhere
// drops the session on the spot.
func (a *App) reportFailure(ctx context.Context, err error) {
	switch {
	case errors.Is(err, dispatch.ErrDeclined):
		a.printMuted("Cancelled.")
	case errors.Is(err, api.ErrUnauthorized):
		a.dropSession(ctx)
		a.printErr("Session expired, please log in again.")
	case errors.Is(err, api.ErrForbidden):
		a.printErr("Your role does not permit this action.")
	case errors.Is(err, api.ErrUnavailable):
		a.printErr("Server unavailable, try again later.")
	default:
		if msg := api.ServerMessage(err); msg != "" {
			a.printErr(msg)
		} else {
			a.printErr("The action failed, nothing was changed.")
		}
	}
}

// sessionLost reports whether a failure de-authenticated the session while a
// view was open. View loops check it after every action and fall back to the
// root prompt instead of re-prompting on a dead session.
func (a *App) sessionLost() bool {
	return a.state.Status == session.StatusUnauthenticated
}

func (a *App) dropSession(ctx context.Context) {
	a.client.SetToken("")
	if err := a.store.Clear(ctx); err != nil {
		a.log.Warn(ctx, "clearing credential", "err", err)
	}
	a.state = session.State{Status: session.StatusUnauthenticated}
}
