package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/itradeops/itradectl/internal/api"
	"github.com/itradeops/itradectl/internal/config"
	"github.com/itradeops/itradectl/internal/credstore"
	"github.com/itradeops/itradectl/internal/logging"
	"github.com/itradeops/itradectl/internal/models"
	"github.com/itradeops/itradectl/internal/session"
)

// fakeStore is an in-memory credstore.Store.
type fakeStore struct {
	cred credstore.Credential
	ok   bool

	saves  int
	clears int
}

func (s *fakeStore) Save(_ context.Context, token string, identity models.Employee) error {
	s.cred = credstore.Credential{Token: token, Identity: identity}
	s.ok = true
	s.saves++
	return nil
}

func (s *fakeStore) Load(_ context.Context) (credstore.Credential, bool, error) {
	return s.cred, s.ok, nil
}

func (s *fakeStore) Clear(_ context.Context) error {
	s.cred = credstore.Credential{}
	s.ok = false
	s.clears++
	return nil
}

// fakeClient stubs the API methods the tests exercise; the embedded interface
// panics on anything a test should not reach.
type fakeClient struct {
	api.Client

	token string

	loginFn    func(login, password, pin string) (string, models.Employee, error)
	registerFn func(login, password, pin string, role models.Role) (string, models.Employee, error)
	verifyFn   func() (models.Employee, error)

	pendingTx    []models.Transaction
	confirmErr   error
	confirmedIDs []string
	rejectedIDs  []string

	balances      []models.AccountSnapshot
	userBalanceFn func(email string) (models.AccountSnapshot, error)
	cancelled     [][3]string

	employees []models.Employee
	setRoleFn func(id string, role models.Role) (models.Employee, error)

	predictFn func(symbol, interval string, limit int) (models.PricePrediction, error)
	historyFn func(limit int) ([]models.MetricsPoint, error)
}

func (c *fakeClient) SetToken(token string) { c.token = token }

func (c *fakeClient) Login(_ context.Context, login, password, pin string) (string, models.Employee, error) {
	return c.loginFn(login, password, pin)
}

func (c *fakeClient) Register(_ context.Context, login, password, pin string, role models.Role) (string, models.Employee, error) {
	return c.registerFn(login, password, pin, role)
}

func (c *fakeClient) Verify(_ context.Context) (models.Employee, error) {
	return c.verifyFn()
}

func (c *fakeClient) PendingTransactions(_ context.Context) ([]models.Transaction, error) {
	return c.pendingTx, nil
}

func (c *fakeClient) ConfirmTransaction(_ context.Context, id string) error {
	if c.confirmErr != nil {
		return c.confirmErr
	}
	c.confirmedIDs = append(c.confirmedIDs, id)
	return nil
}

func (c *fakeClient) RejectTransaction(_ context.Context, id string) error {
	c.rejectedIDs = append(c.rejectedIDs, id)
	return nil
}

func (c *fakeClient) Balances(_ context.Context) ([]models.AccountSnapshot, error) {
	return c.balances, nil
}

func (c *fakeClient) UserBalance(_ context.Context, email string) (models.AccountSnapshot, error) {
	return c.userBalanceFn(email)
}

func (c *fakeClient) CancelOrder(_ context.Context, email, orderID, symbol string) error {
	c.cancelled = append(c.cancelled, [3]string{email, orderID, symbol})
	return nil
}

func (c *fakeClient) Employees(_ context.Context) ([]models.Employee, error) {
	return c.employees, nil
}

func (c *fakeClient) SetEmployeeRole(_ context.Context, id string, role models.Role) (models.Employee, error) {
	return c.setRoleFn(id, role)
}

func (c *fakeClient) PredictPrice(_ context.Context, symbol, interval string, limit int) (models.PricePrediction, error) {
	return c.predictFn(symbol, interval, limit)
}

func (c *fakeClient) MetricsHistory(_ context.Context, limit int) ([]models.MetricsPoint, error) {
	return c.historyFn(limit)
}

// newTestApp wires an App around fakes, reading view commands from input.
func newTestApp(client api.Client, store credstore.Store, input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ActivationPollInterval = 5 * time.Millisecond

	guard := session.NewGuard(client, store, log)
	watcher := session.NewActivationWatcher(guard, cfg.ActivationPollInterval, log)

	return &App{
		config:  cfg,
		client:  client,
		store:   store,
		guard:   guard,
		watcher: watcher,
		log:     log,
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     out,
		closeDB: func() error { return nil },
	}, out
}

func activeOperator() models.Employee {
	return models.Employee{ID: "emp-1", Login: "alice", Role: models.RoleOperator, IsActive: true}
}

func authedFixture(client *fakeClient, input string) (*App, *bytes.Buffer) {
	store := &fakeStore{cred: credstore.Credential{Token: "tok"}, ok: true}
	if client.verifyFn == nil {
		client.verifyFn = func() (models.Employee, error) { return activeOperator(), nil }
	}
	return newTestApp(client, store, input)
}

// stubConfirm replaces the interactive yes/no gate for the duration of a test.
func stubConfirm(t *testing.T, answer bool) func() {
	t.Helper()
	orig := askConfirm
	askConfirm = func(*bufio.Reader, string, io.Writer) (bool, error) { return answer, nil }
	return func() { askConfirm = orig }
}
