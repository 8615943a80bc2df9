package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/itradeops/itradectl/internal/session"
)

func (a *App) getStatus() string {
	s := ""
	if a.state.Identity.Login != "" {
		s = a.state.Identity.Login + " " + string(a.state.Identity.Role)
	}
	if a.state.Status == session.StatusPendingActivation {
		s = s + " pending"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	a.printTitle("iTrade operator console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	// Restore a previous session if the stored token still verifies.
	if st, err := a.guard.Check(ctx); err == nil {
		a.state = st
		if a.isLoggedIn() {
			a.printMuted("Welcome back, " + st.Identity.Login)
		}
	}

	for {
		fmt.Fprintf(a.out, "itradectl %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: balances, transactions, rewards, employees, bot, telegram, metrics, predict, whoami, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: login, register, exit")
			}

		case "login":
			a.Login(ctx)
		case "register":
			a.Register(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.whoami(ctx)
		case "balances":
			a.balancesView(ctx)
		case "transactions":
			a.transactionsView(ctx)
		case "rewards":
			a.rewardsView(ctx)
		case "employees":
			a.employeesView(ctx)
		case "bot":
			a.botView(ctx)
		case "telegram":
			a.telegramView(ctx)
		case "metrics":
			a.metricsView(ctx, args)
		case "predict":
			a.predictView(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) whoami(ctx context.Context) {
	if !a.requireSession(ctx) {
		return
	}
	id := a.state.Identity
	rows := [][]string{
		{"login", id.Login},
		{"role", string(id.Role)},
		{"active", fmt.Sprintf("%v", id.IsActive)},
	}
	if id.LastLogin != nil {
		rows = append(rows, []string{"last login", id.LastLogin.Format("2006-01-02 15:04:05")})
	}
	a.printTable([]string{"", ""}, rows)
}
