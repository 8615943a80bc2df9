package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/itradeops/itradectl/internal/api"
	"github.com/itradeops/itradectl/internal/collection"
	"github.com/itradeops/itradectl/internal/dispatch"
	"github.com/itradeops/itradectl/internal/models"
)

// maxDealsShown caps the executed-deals listing per account.
const maxDealsShown = 10

// confirmGate adapts the interactive yes/no prompt to the dispatcher.
func (a *App) confirmGate() dispatch.ConfirmFunc {
	return func(prompt string) (bool, error) {
		return askConfirm(a.reader, prompt, a.out)
	}
}

// balancesView lists every client account with wallet equity and open orders
// and lets the operator trade on behalf of a single account. Trading actions
// re-fetch only the acted-on account; the other rows stay as loaded.
func (a *App) balancesView(ctx context.Context) {
	if !a.requireSession(ctx) {
		return
	}

	col := collection.New(func(s models.AccountSnapshot) string { return s.Email })
	disp := dispatch.New(col, a.confirmGate(), a.log)

	if err := col.LoadAll(ctx, a.client.Balances); err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.renderBalances(col)

	for {
		if a.sessionLost() {
			return
		}
		line, err := getSimpleText(a.reader,
			"balances: show <email> | deals <email> | buy <email> | sell <email> | cancel <email> <orderId> <symbol> | cancelall <email> <symbol> | reload | back", a.out)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]
		switch cmd {
		case "back":
			return
		case "reload":
			if err := col.LoadAll(ctx, a.client.Balances); err != nil {
				a.reportFailure(ctx, err)
				return
			}
			a.renderBalances(col)
		case "show":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: show <email>")
				continue
			}
			a.showAccount(col, args[0])
		case "deals":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: deals <email>")
				continue
			}
			a.showDeals(ctx, args[0])
		case "buy":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: buy <email>")
				continue
			}
			a.placeBuy(ctx, disp, col, args[0])
		case "sell":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: sell <email>")
				continue
			}
			a.placeSell(ctx, disp, col, args[0])
		case "cancel":
			if len(args) != 3 {
				fmt.Fprintln(a.out, "Usage: cancel <email> <orderId> <symbol>")
				continue
			}
			a.cancelOrder(ctx, disp, col, args[0], args[1], args[2])
		case "cancelall":
			if len(args) != 2 {
				fmt.Fprintln(a.out, "Usage: cancelall <email> <symbol>")
				continue
			}
			a.cancelAll(ctx, disp, col, args[0], args[1])
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) renderBalances(col *collection.Collection[models.AccountSnapshot]) {
	snap := col.Snapshot()
	a.printTitle(fmt.Sprintf("Client accounts (%d)", len(snap)))

	rows := make([][]string, 0, len(snap))
	for _, rec := range snap {
		acc := rec.Data
		equity := acc.TotalEquity()
		if acc.Error != "" {
			equity = "error: " + acc.Error
		}
		rows = append(rows, []string{
			acc.Email,
			acc.AccountID,
			acc.Deposit.String(),
			equity,
			fmt.Sprintf("%d", len(acc.OpenOrders)),
			loadingMark(rec.Loading),
		})
	}
	a.printTable([]string{"EMAIL", "ACCOUNT", "DEPOSIT", "EQUITY", "ORDERS", ""}, rows)
}

func (a *App) showAccount(col *collection.Collection[models.AccountSnapshot], email string) {
	rec, ok := col.Get(email)
	if !ok {
		a.printErr("No such account: " + email)
		return
	}
	acc := rec.Data

	a.printTitle("Coins")
	coinRows := make([][]string, 0)
	for _, c := range acc.Coins() {
		coinRows = append(coinRows, []string{c.Coin, c.WalletBalance})
	}
	a.printTable([]string{"COIN", "BALANCE"}, coinRows)

	a.printTitle("Open orders")
	orderRows := make([][]string, 0)
	for _, o := range acc.OpenOrders {
		orderRows = append(orderRows, []string{o.OrderID, o.Symbol, o.Side, o.Price, o.Qty})
	}
	a.printTable([]string{"ORDER", "SYMBOL", "SIDE", "PRICE", "QTY"}, orderRows)
}

func (a *App) showDeals(ctx context.Context, email string) {
	deals, err := a.client.Deals(ctx, email)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}
	if len(deals) > maxDealsShown {
		deals = deals[:maxDealsShown]
	}

	a.printTitle("Recent deals for " + email)
	rows := make([][]string, 0, len(deals))
	for _, d := range deals {
		rows = append(rows, []string{
			d.Time.Format("2006-01-02 15:04:05"),
			d.Symbol, d.Side, d.Price, d.Qty,
		})
	}
	a.printTable([]string{"TIME", "SYMBOL", "SIDE", "PRICE", "QTY"}, rows)
}

func (a *App) placeBuy(ctx context.Context, disp *dispatch.Dispatcher[models.AccountSnapshot], col *collection.Collection[models.AccountSnapshot], email string) {
	symbol, err := getSimpleText(a.reader, "Symbol (e.g. BTCUSDT)", a.out)
	if err != nil {
		return
	}
	price, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return
	}
	qty, err := getSimpleText(a.reader, "Quantity", a.out)
	if err != nil {
		return
	}

	order := api.BuyOrder{Email: email, Symbol: symbol, Price: price, Qty: qty}
	err = disp.RefreshOne(ctx, email,
		fmt.Sprintf("Buy %s %s at %s for %s?", qty, symbol, price, email),
		func(ctx context.Context) error { return a.client.PlaceBuyOrder(ctx, order) },
		func(ctx context.Context) (models.AccountSnapshot, error) { return a.client.UserBalance(ctx, email) },
	)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.printOK("Buy order placed.")
	a.renderBalances(col)
}

func (a *App) placeSell(ctx context.Context, disp *dispatch.Dispatcher[models.AccountSnapshot], col *collection.Collection[models.AccountSnapshot], email string) {
	symbol, err := getSimpleText(a.reader, "Symbol (e.g. BTCUSDT)", a.out)
	if err != nil {
		return
	}
	price, err := getSimpleText(a.reader, "Sell price", a.out)
	if err != nil {
		return
	}
	qty, err := getSimpleText(a.reader, "Quantity", a.out)
	if err != nil {
		return
	}
	priceIn, err := getSimpleText(a.reader, "Entry price", a.out)
	if err != nil {
		return
	}

	order := api.SellOffset{
		Email: email, Symbol: symbol, Price: price, Qty: qty,
		PriceIn: priceIn, Flag: "0", FlagMessage: "0",
	}
	err = disp.RefreshOne(ctx, email,
		fmt.Sprintf("Sell %s %s at %s for %s?", qty, symbol, price, email),
		func(ctx context.Context) error { return a.client.PlaceSellOffset(ctx, order) },
		func(ctx context.Context) (models.AccountSnapshot, error) { return a.client.UserBalance(ctx, email) },
	)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.printOK("Sell order placed.")
	a.renderBalances(col)
}

func (a *App) cancelOrder(ctx context.Context, disp *dispatch.Dispatcher[models.AccountSnapshot], col *collection.Collection[models.AccountSnapshot], email, orderID, symbol string) {
	err := disp.RefreshOne(ctx, email,
		fmt.Sprintf("Cancel order %s (%s) for %s?", orderID, symbol, email),
		func(ctx context.Context) error { return a.client.CancelOrder(ctx, email, orderID, symbol) },
		func(ctx context.Context) (models.AccountSnapshot, error) { return a.client.UserBalance(ctx, email) },
	)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.printOK("Order cancelled.")
	a.renderBalances(col)
}

func (a *App) cancelAll(ctx context.Context, disp *dispatch.Dispatcher[models.AccountSnapshot], col *collection.Collection[models.AccountSnapshot], email, symbol string) {
	err := disp.RefreshOne(ctx, email,
		fmt.Sprintf("Cancel ALL %s orders for %s?", symbol, email),
		func(ctx context.Context) error { return a.client.CancelAllBySymbol(ctx, email, symbol) },
		func(ctx context.Context) (models.AccountSnapshot, error) { return a.client.UserBalance(ctx, email) },
	)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.printOK("All " + symbol + " orders cancelled.")
	a.renderBalances(col)
}
