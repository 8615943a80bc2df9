package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itradeops/itradectl/internal/api"
	"github.com/itradeops/itradectl/internal/credstore"
	"github.com/itradeops/itradectl/internal/models"
	"github.com/itradeops/itradectl/internal/session"
)

func pendingTx(ids ...string) []models.Transaction {
	out := make([]models.Transaction, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Transaction{
			ID:       id,
			Email:    id + "@client.test",
			Quantity: json.Number("100"),
		})
	}
	return out
}

func TestTransactionsView_ConfirmRemovesRow(t *testing.T) {
	client := &fakeClient{pendingTx: pendingTx("A", "B", "C")}
	a, out := authedFixture(client, "confirm 2\nback\n")

	restore := stubConfirm(t, true)
	defer restore()

	a.transactionsView(context.Background())

	assert.Equal(t, []string{"B"}, client.confirmedIDs)
	assert.Contains(t, out.String(), "Pending deposits (3)")
	assert.Contains(t, out.String(), "Confirmed.")
	// after the removal the queue re-renders with two rows
	assert.Contains(t, out.String(), "A@client.test")
	assert.Contains(t, out.String(), "C@client.test")
}

func TestTransactionsView_RejectUsesRejectEndpoint(t *testing.T) {
	client := &fakeClient{pendingTx: pendingTx("A", "B")}
	a, _ := authedFixture(client, "reject 1\nback\n")

	restore := stubConfirm(t, true)
	defer restore()

	a.transactionsView(context.Background())

	assert.Equal(t, []string{"A"}, client.rejectedIDs)
	assert.Empty(t, client.confirmedIDs)
}

func TestTransactionsView_DeclinedConfirmSendsNothing(t *testing.T) {
	client := &fakeClient{pendingTx: pendingTx("A")}
	a, out := authedFixture(client, "confirm 1\nback\n")

	restore := stubConfirm(t, false)
	defer restore()

	a.transactionsView(context.Background())

	assert.Empty(t, client.confirmedIDs)
	assert.Contains(t, out.String(), "Cancelled.")
}

func TestTransactionsView_ServerMessageShownVerbatim(t *testing.T) {
	client := &fakeClient{
		pendingTx:  pendingTx("A"),
		confirmErr: &api.RejectedError{Message: "insufficient balance"},
	}
	a, out := authedFixture(client, "confirm 1\nback\n")

	restore := stubConfirm(t, true)
	defer restore()

	a.transactionsView(context.Background())

	assert.Contains(t, out.String(), "insufficient balance")
}

func TestTransactionsView_NotLoggedIn(t *testing.T) {
	client := &fakeClient{}
	a, out := newTestApp(client, &fakeStore{}, "")

	a.transactionsView(context.Background())

	assert.Contains(t, out.String(), "not logged in")
	assert.Empty(t, client.confirmedIDs)
}

func TestBalancesView_CancelOrderRefreshesOnlyThatRow(t *testing.T) {
	u1 := models.AccountSnapshot{Email: "u1@client.test", AccountID: "1001"}
	u2 := models.AccountSnapshot{Email: "u2@client.test", AccountID: "1002"}
	var refreshed []string
	client := &fakeClient{
		balances: []models.AccountSnapshot{u1, u2},
		userBalanceFn: func(email string) (models.AccountSnapshot, error) {
			refreshed = append(refreshed, email)
			return models.AccountSnapshot{Email: email, AccountID: "fresh"}, nil
		},
	}
	a, out := authedFixture(client, "cancel u1@client.test ord-7 BTCUSDT\nback\n")

	restore := stubConfirm(t, true)
	defer restore()

	a.balancesView(context.Background())

	require.Len(t, client.cancelled, 1)
	assert.Equal(t, [3]string{"u1@client.test", "ord-7", "BTCUSDT"}, client.cancelled[0])
	assert.Equal(t, []string{"u1@client.test"}, refreshed)
	assert.Contains(t, out.String(), "Order cancelled.")
}

func TestEmployeesView_RoleChangeUsesReturnedRecord(t *testing.T) {
	emp := models.Employee{ID: "e-1", Login: "bob", Role: models.RoleOperator, IsActive: true}
	client := &fakeClient{
		employees: []models.Employee{emp},
		setRoleFn: func(id string, role models.Role) (models.Employee, error) {
			assert.Equal(t, "e-1", id)
			assert.Equal(t, models.RoleManager, role)
			emp.Role = role
			return emp, nil
		},
	}
	a, out := authedFixture(client, "role 1 manager\nback\n")

	restore := stubConfirm(t, true)
	defer restore()

	a.employeesView(context.Background())

	assert.Contains(t, out.String(), "Updated bob.")
	assert.Contains(t, out.String(), "manager")
}

func TestTelegramView_RequiresAdmin(t *testing.T) {
	client := &fakeClient{}
	a, out := authedFixture(client, "") // verifies as operator

	a.telegramView(context.Background())

	assert.Contains(t, out.String(), "requires the admin role")
}

func TestTransactionsView_401MidActionExitsToRoot(t *testing.T) {
	// A 401 on the action drops the session; the view must leave its prompt
	// loop instead of keeping a dead session interactive.
	client := &fakeClient{
		pendingTx:  pendingTx("A", "B"),
		confirmErr: api.ErrUnauthorized,
	}
	a, out := authedFixture(client, "confirm 1\nreject 2\nback\n")

	restore := stubConfirm(t, true)
	defer restore()

	a.transactionsView(context.Background())

	assert.Contains(t, out.String(), "Session expired")
	assert.Equal(t, session.StatusUnauthenticated, a.state.Status)
	assert.Empty(t, client.rejectedIDs, "no command after the 401 may run in the view")
	store := a.store.(*fakeStore)
	assert.Equal(t, 1, store.clears)
}

func TestPredictView_DefaultsAndReadout(t *testing.T) {
	client := &fakeClient{
		predictFn: func(symbol, interval string, limit int) (models.PricePrediction, error) {
			assert.Equal(t, "LTCUSDT", symbol)
			assert.Equal(t, "1d", interval)
			assert.Equal(t, 200, limit)
			return models.PricePrediction{
				Symbol: "LTCUSDT",
				Mean:   json.Number("71.3"),
				Std:    json.Number("4.2"),
				Histogram: models.PriceHistogram{
					Labels: []string{"60-65", "65-70"},
					Values: []json.Number{"12", "48"},
				},
			}, nil
		},
	}
	// empty answers take the defaults
	a, out := authedFixture(client, "\n\n\n")

	a.predictView(context.Background())

	assert.Contains(t, out.String(), "Prediction for LTCUSDT")
	assert.Contains(t, out.String(), "71.3")
	assert.Contains(t, out.String(), "4.2")
	assert.Contains(t, out.String(), "65-70")
}

func TestPredictView_ValidationStopsBeforeAPI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"bad symbol", "ltc-usdt!\n", "Invalid trading pair"},
		{"bad interval", "LTCUSDT\n5m\n", "Invalid interval"},
		{"limit not a number", "LTCUSDT\n1d\nmany\n", "between 1 and 10000"},
		{"limit too large", "LTCUSDT\n1d\n10001\n", "between 1 and 10000"},
		{"limit zero", "LTCUSDT\n1d\n0\n", "between 1 and 10000"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeClient{
				predictFn: func(string, string, int) (models.PricePrediction, error) {
					t.Fatal("API must not be reached on invalid input")
					return models.PricePrediction{}, nil
				},
			}
			a, out := authedFixture(client, tc.input)

			a.predictView(context.Background())

			assert.Contains(t, out.String(), tc.wantMsg)
		})
	}
}

func TestPredictView_LowercaseSymbolIsUppercased(t *testing.T) {
	client := &fakeClient{
		predictFn: func(symbol, interval string, limit int) (models.PricePrediction, error) {
			assert.Equal(t, "BTCUSDT", symbol)
			return models.PricePrediction{Symbol: symbol}, nil
		},
	}
	a, _ := authedFixture(client, "btcusdt\n1h\n500\n")

	a.predictView(context.Background())
}

func TestMetricsHistory_DefaultLimit(t *testing.T) {
	var gotLimit int
	client := &fakeClient{
		historyFn: func(limit int) ([]models.MetricsPoint, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	a, _ := authedFixture(client, "")

	a.metricsView(context.Background(), []string{"history"})

	assert.Equal(t, 60, gotLimit)
}

func TestViewExpiredSession_DropsCredential(t *testing.T) {
	// The list itself comes back 401: the stored credential must not survive.
	client := &fakeClient{}
	client.verifyFn = func() (models.Employee, error) {
		return models.Employee{}, api.ErrUnauthorized
	}
	store := &fakeStore{cred: credstore.Credential{Token: "stale"}, ok: true}
	a, out := newTestApp(client, store, "")

	a.transactionsView(context.Background())

	assert.Contains(t, out.String(), "not logged in")
	assert.Equal(t, 1, store.clears)
	assert.Equal(t, session.StatusUnauthenticated, a.state.Status)
}
