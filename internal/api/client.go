// Package api implements the REST client for the iTrade backend. Every call
// is fire-once: failures are mapped to sentinel errors or RejectedError and
// surfaced to the caller, never retried here.
package api

import (
	"context"

	"github.com/itradeops/itradectl/internal/models"
)

// BuyOrder are the user-supplied parameters of a limit buy.
type BuyOrder struct {
	Email  string `json:"email"`
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
	Qty    string `json:"qty"`
}

// SellOffset are the parameters of an offset sell. Flag and FlagMessage are
// fixed protocol fields the bot expects to be "0".
type SellOffset struct {
	Email       string `json:"email"`
	Symbol      string `json:"symbol"`
	Price       string `json:"price"`
	Qty         string `json:"qty"`
	PriceIn     string `json:"priceIn"`
	Flag        string `json:"flag"`
	FlagMessage string `json:"flagMessage"`
}

// Client is the backend API surface the console consumes.
//
// Auth calls return the bearer token together with the identity record; the
// implementation also remembers the token for subsequent requests. All methods
// honor context cancellation.
type Client interface {
	Login(ctx context.Context, login, password, pinCode string) (string, models.Employee, error)
	Register(ctx context.Context, login, password, pinCode string, role models.Role) (string, models.Employee, error)
	Verify(ctx context.Context) (models.Employee, error)
	SetToken(token string)

	Balances(ctx context.Context) ([]models.AccountSnapshot, error)
	UserBalance(ctx context.Context, email string) (models.AccountSnapshot, error)
	Deals(ctx context.Context, email string) ([]models.Deal, error)
	PlaceBuyOrder(ctx context.Context, order BuyOrder) error
	PlaceSellOffset(ctx context.Context, order SellOffset) error
	CancelOrder(ctx context.Context, email, orderID, symbol string) error
	CancelAllBySymbol(ctx context.Context, email, symbol string) error

	PendingTransactions(ctx context.Context) ([]models.Transaction, error)
	ConfirmTransaction(ctx context.Context, transactionID string) error
	RejectTransaction(ctx context.Context, transactionID string) error
	PendingRewards(ctx context.Context) ([]models.Reward, error)
	MarkRewardPaid(ctx context.Context, rewardID string) error

	Employees(ctx context.Context) ([]models.Employee, error)
	SetEmployeeRole(ctx context.Context, employeeID string, role models.Role) (models.Employee, error)
	ToggleEmployeeStatus(ctx context.Context, employeeID string) (models.Employee, error)

	BotSettings(ctx context.Context) (models.BotSettings, error)
	UpdateBotSettings(ctx context.Context, settings models.BotSettings) (models.BotSettings, error)
	SetBotStatus(ctx context.Context, statusWork string) (string, error)

	TelegramStats(ctx context.Context) (models.TelegramStats, error)
	SendBroadcast(ctx context.Context, message string, targetGroups []string) (models.BroadcastResult, error)

	Metrics(ctx context.Context) (models.Metrics, error)
	MetricsHistory(ctx context.Context, limit int) ([]models.MetricsPoint, error)

	PredictPrice(ctx context.Context, symbol, interval string, limit int) (models.PricePrediction, error)
}
