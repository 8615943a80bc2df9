package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/itradeops/itradectl/internal/collection"
	"github.com/itradeops/itradectl/internal/dispatch"
	"github.com/itradeops/itradectl/internal/models"
)

// transactionsView is the deposit moderation queue. Confirming or rejecting a
// transaction drops its row from the queue; rows keep server order.
func (a *App) transactionsView(ctx context.Context) {
	if !a.requireSession(ctx) {
		return
	}

	col := collection.New(func(tx models.Transaction) string { return tx.ID })
	disp := dispatch.New(col, a.confirmGate(), a.log)

	if err := col.LoadAll(ctx, a.client.PendingTransactions); err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.renderTransactions(col)

	for {
		if a.sessionLost() {
			return
		}
		line, err := getSimpleText(a.reader, "transactions: confirm <n> | reject <n> | reload | back", a.out)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "back":
			return
		case "reload":
			if err := col.LoadAll(ctx, a.client.PendingTransactions); err != nil {
				a.reportFailure(ctx, err)
				return
			}
			a.renderTransactions(col)
		case "confirm", "reject":
			if len(parts) != 2 {
				fmt.Fprintf(a.out, "Usage: %s <n>\n", parts[0])
				continue
			}
			rec, ok := recordByIndex(col, parts[1])
			if !ok {
				a.printErr("No transaction #" + parts[1])
				continue
			}
			a.moderateTransaction(ctx, disp, col, rec.Data, parts[0] == "confirm")
		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}

func (a *App) moderateTransaction(ctx context.Context, disp *dispatch.Dispatcher[models.Transaction], col *collection.Collection[models.Transaction], tx models.Transaction, confirm bool) {
	verb := "Reject"
	call := a.client.RejectTransaction
	if confirm {
		verb = "Confirm"
		call = a.client.ConfirmTransaction
	}

	err := disp.Remove(ctx, tx.ID,
		fmt.Sprintf("%s deposit of %s from %s?", verb, tx.Quantity.String(), tx.Email),
		func(ctx context.Context) error { return call(ctx, tx.ID) },
	)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.printOK(verb + "ed.")
	a.renderTransactions(col)
}

func (a *App) renderTransactions(col *collection.Collection[models.Transaction]) {
	snap := col.Snapshot()
	a.printTitle(fmt.Sprintf("Pending deposits (%d)", len(snap)))

	rows := make([][]string, 0, len(snap))
	for i, rec := range snap {
		tx := rec.Data
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			tx.Email,
			tx.Nic,
			tx.Quantity.String(),
			tx.Date.Format("2006-01-02 15:04"),
			loadingMark(rec.Loading),
		})
	}
	a.printTable([]string{"#", "EMAIL", "NIC", "AMOUNT", "DATE", ""}, rows)
}

// rewardsView is the referral payout queue; marking a reward paid removes it.
func (a *App) rewardsView(ctx context.Context) {
	if !a.requireSession(ctx) {
		return
	}

	col := collection.New(func(r models.Reward) string { return r.ID })
	disp := dispatch.New(col, a.confirmGate(), a.log)

	if err := col.LoadAll(ctx, a.client.PendingRewards); err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.renderRewards(col)

	for {
		if a.sessionLost() {
			return
		}
		line, err := getSimpleText(a.reader, "rewards: paid <n> | reload | back", a.out)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "back":
			return
		case "reload":
			if err := col.LoadAll(ctx, a.client.PendingRewards); err != nil {
				a.reportFailure(ctx, err)
				return
			}
			a.renderRewards(col)
		case "paid":
			if len(parts) != 2 {
				fmt.Fprintln(a.out, "Usage: paid <n>")
				continue
			}
			rec, ok := recordByIndex(col, parts[1])
			if !ok {
				a.printErr("No reward #" + parts[1])
				continue
			}
			r := rec.Data
			err := disp.Remove(ctx, r.ID,
				fmt.Sprintf("Mark reward of %s to %s as paid?", r.RewardAmount.String(), r.RefEmail),
				func(ctx context.Context) error { return a.client.MarkRewardPaid(ctx, r.ID) },
			)
			if err != nil {
				a.reportFailure(ctx, err)
				continue
			}
			a.printOK("Marked as paid.")
			a.renderRewards(col)
		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}

func (a *App) renderRewards(col *collection.Collection[models.Reward]) {
	snap := col.Snapshot()
	a.printTitle(fmt.Sprintf("Pending referral rewards (%d)", len(snap)))

	rows := make([][]string, 0, len(snap))
	for i, rec := range snap {
		r := rec.Data
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.RefEmail,
			r.UserEmail,
			r.DepositAmount.String(),
			r.RewardAmount.String(),
			r.Date.Format("2006-01-02"),
			loadingMark(rec.Loading),
		})
	}
	a.printTable([]string{"#", "REFERRER", "USER", "DEPOSIT", "REWARD", "DATE", ""}, rows)
}
