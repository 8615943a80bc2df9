package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/itradeops/itradectl/internal/models"
)

// telegramView is the broadcast console, admins only. It shows the audience
// breakdown and sends a message to one or more target groups.
func (a *App) telegramView(ctx context.Context) {
	if !a.requireRole(ctx, string(models.RoleAdmin)) {
		return
	}

	stats, err := a.client.TelegramStats(ctx)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.renderTelegramStats(stats)

	for {
		if a.sessionLost() {
			return
		}
		line, err := getSimpleText(a.reader, "telegram: send | stats | back", a.out)
		if err != nil {
			return
		}
		switch strings.TrimSpace(line) {
		case "back":
			return
		case "stats":
			stats, err = a.client.TelegramStats(ctx)
			if err != nil {
				a.reportFailure(ctx, err)
				return
			}
			a.renderTelegramStats(stats)
		case "send":
			a.sendBroadcast(ctx)
		default:
			fmt.Fprintln(a.out, "Unknown command:", line)
		}
	}
}

func (a *App) renderTelegramStats(s models.TelegramStats) {
	a.printTitle("Telegram audience")
	a.printTable([]string{"GROUP", "USERS"}, [][]string{
		{models.GroupUsersWithAccount, fmt.Sprintf("%d", s.UsersWithAccount)},
		{models.GroupUsersWithoutAccount, fmt.Sprintf("%d", s.UsersWithoutAccount)},
		{models.GroupAllBotUsers, fmt.Sprintf("%d", s.AllBotUsers)},
	})
}

func (a *App) sendBroadcast(ctx context.Context) {
	groupsInput, err := getSimpleText(a.reader,
		"Target groups, comma-separated (usersWithAccount, usersWithoutAccount, allBotUsers)", a.out)
	if err != nil {
		return
	}
	groups := parseGroups(groupsInput)
	if len(groups) == 0 {
		a.printErr("No valid target group given.")
		return
	}

	message, err := getSimpleText(a.reader, "Message", a.out)
	if err != nil {
		return
	}
	if strings.TrimSpace(message) == "" {
		a.printErr("Message must not be empty.")
		return
	}

	ok, err := askConfirm(a.reader,
		fmt.Sprintf("Send to %s?", strings.Join(groups, ", ")), a.out)
	if err != nil || !ok {
		a.printMuted("Cancelled.")
		return
	}

	result, err := a.client.SendBroadcast(ctx, message, groups)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}

	a.printOK(fmt.Sprintf("Delivered to %d recipients, %d failed.",
		result.Results.Successful, result.Results.Failed))
	for _, e := range result.Results.Errors {
		a.printMuted(fmt.Sprintf("  chat %s: %s", e.ChatID, e.Error))
	}
}

func parseGroups(input string) []string {
	valid := map[string]bool{
		models.GroupUsersWithAccount:    true,
		models.GroupUsersWithoutAccount: true,
		models.GroupAllBotUsers:         true,
	}
	var out []string
	for _, g := range strings.Split(input, ",") {
		g = strings.TrimSpace(g)
		if valid[g] {
			out = append(out, g)
		}
	}
	return out
}
