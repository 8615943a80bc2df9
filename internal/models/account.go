package models

import (
	"encoding/json"
	"time"
)

// AccountSnapshot is one client account as returned by /api/bybit-balances:
// wallet balance, open orders and the deposit recorded for the account.
// Error carries a per-account fetch problem reported by the backend; it does
// not invalidate the other accounts in the list.
type AccountSnapshot struct {
	Email      string          `json:"email"`
	AccountID  string          `json:"phon"`
	Deposit    json.Number     `json:"depozit"`
	Error      string          `json:"error,omitempty"`
	Balance    BalanceEnvelope `json:"balance"`
	OpenOrders []OpenOrder     `json:"openOrders"`
}

// TotalEquity returns the account's total equity in USDT, or "" when the
// backend returned no wallet list.
func (a AccountSnapshot) TotalEquity() string {
	if len(a.Balance.Result.List) == 0 {
		return ""
	}
	return a.Balance.Result.List[0].TotalEquity
}

// Coins returns the coin positions of the first wallet, if any.
func (a AccountSnapshot) Coins() []CoinBalance {
	if len(a.Balance.Result.List) == 0 {
		return nil
	}
	return a.Balance.Result.List[0].Coins
}

// BalanceEnvelope mirrors the exchange wallet-balance response the backend
// forwards verbatim.
type BalanceEnvelope struct {
	Result struct {
		List []WalletBalance `json:"list"`
	} `json:"result"`
}

type WalletBalance struct {
	TotalEquity string        `json:"totalEquity"`
	Coins       []CoinBalance `json:"coin"`
}

type CoinBalance struct {
	Coin          string `json:"coin"`
	WalletBalance string `json:"walletBalance"`
}

type OpenOrder struct {
	OrderID string `json:"orderId"`
	Symbol  string `json:"symbol"`
	Side    string `json:"side"`
	Price   string `json:"price"`
	Qty     string `json:"qty"`
}

// Deal is one executed trade for an account, already converted from the raw
// exchange fill record.
type Deal struct {
	Time   time.Time
	Symbol string
	Side   string
	Price  string
	Qty    string
}
