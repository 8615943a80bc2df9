package cli

import (
	"context"
	"fmt"
	"strconv"
)

const defaultHistoryLimit = 60

// metricsView prints the current business snapshot; "metrics history [n]"
// prints the last n recorded samples.
func (a *App) metricsView(ctx context.Context, args []string) {
	if !a.requireSession(ctx) {
		return
	}

	if len(args) > 0 && args[0] == "history" {
		limit := defaultHistoryLimit
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
				limit = n
			}
		}
		a.metricsHistory(ctx, limit)
		return
	}

	m, err := a.client.Metrics(ctx)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}

	a.printTitle("Business metrics (" + m.RecordedAt.Format("2006-01-02 15:04") + ")")
	a.printTable([]string{"", ""}, [][]string{
		{"total managed funds", fmt.Sprintf("%.2f USDT", m.TotalManagedFunds)},
		{"active clients", fmt.Sprintf("%d", m.ActiveClients)},
		{"bot users", fmt.Sprintf("%d (%d via referral)", m.TotalBotUsers, m.ReferralBotUsers)},
		{"avg balance / client", fmt.Sprintf("%.2f USDT", m.AvgBalancePerClient)},
		{"funds / bot user", fmt.Sprintf("%.2f USDT", m.FundsPerBotUser)},
		{"client-to-bot conversion", fmt.Sprintf("%.1f%%", m.ClientToBotConversionPct)},
		{"referral share", fmt.Sprintf("%.1f%%", m.ReferralSharePct)},
		{"last month profit", fmt.Sprintf("%.2f USDT", m.LastMonthProfit)},
		{"avg client profit (month)", fmt.Sprintf("%.2f USDT", m.AvgClientProfitLastMonth)},
		{"total profit all time", fmt.Sprintf("%.2f USDT", m.TotalProfitAllTime)},
	})
}

func (a *App) metricsHistory(ctx context.Context, limit int) {
	points, err := a.client.MetricsHistory(ctx, limit)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}

	a.printTitle(fmt.Sprintf("Metrics history (last %d)", len(points)))
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		label := p.Label
		if label == "" {
			label = p.RecordedAt.Format("2006-01-02")
		}
		rows = append(rows, []string{
			label,
			fmt.Sprintf("%.2f", p.TotalManagedFunds),
			fmt.Sprintf("%d", p.ActiveClients),
			fmt.Sprintf("%d", p.TotalBotUsers),
			fmt.Sprintf("%.2f", p.TotalProfit),
		})
	}
	a.printTable([]string{"DATE", "AUM", "CLIENTS", "BOT USERS", "PROFIT"}, rows)
}
