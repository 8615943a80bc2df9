package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/itradeops/itradectl/internal/models"
)

// botView shows and edits the trading-bot configuration. The run flag is
// inverted on the wire ("0" means trading); the view always speaks in terms
// of trading/stopped so the operator never sees the raw value.
func (a *App) botView(ctx context.Context) {
	if !a.requireSession(ctx) {
		return
	}

	settings, err := a.client.BotSettings(ctx)
	if err != nil {
		a.reportFailure(ctx, err)
		return
	}
	a.renderBotSettings(settings)

	for {
		if a.sessionLost() {
			return
		}
		line, err := getSimpleText(a.reader, "bot: edit | start | stop | reload | back", a.out)
		if err != nil {
			return
		}
		switch strings.TrimSpace(line) {
		case "back":
			return
		case "reload":
			settings, err = a.client.BotSettings(ctx)
			if err != nil {
				a.reportFailure(ctx, err)
				return
			}
			a.renderBotSettings(settings)
		case "edit":
			updated, ok := a.editBotSettings(ctx, settings)
			if ok {
				settings = updated
				a.renderBotSettings(settings)
			}
		case "start":
			if a.setBotStatus(ctx, models.BotStatusTrading, "Start trading?") {
				settings.StatusWork = models.BotStatusTrading
				a.renderBotSettings(settings)
			}
		case "stop":
			if a.setBotStatus(ctx, models.BotStatusStopped, "Stop trading?") {
				settings.StatusWork = models.BotStatusStopped
				a.renderBotSettings(settings)
			}
		default:
			fmt.Fprintln(a.out, "Unknown command:", line)
		}
	}
}

// editBotSettings prompts for every field, keeping the current value when the
// operator enters nothing, and submits the whole document.
func (a *App) editBotSettings(ctx context.Context, current models.BotSettings) (models.BotSettings, bool) {
	next := current

	fields := []struct {
		label string
		value *string
	}{
		{"Symbol", &next.Symbol},
		{"Target", &next.Target},
		{"Price start", &next.PriceStart},
		{"Price stop", &next.PriceStop},
		{"Nickname", &next.Nickname},
	}
	for _, f := range fields {
		input, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.label, *f.value), a.out)
		if err != nil {
			return current, false
		}
		if input != "" {
			*f.value = input
		}
	}

	ok, err := askConfirm(a.reader, "Save bot settings?", a.out)
	if err != nil || !ok {
		a.printMuted("Cancelled.")
		return current, false
	}

	saved, err := a.client.UpdateBotSettings(ctx, next)
	if err != nil {
		a.reportFailure(ctx, err)
		return current, false
	}
	a.printOK("Settings saved.")
	return saved, true
}

func (a *App) setBotStatus(ctx context.Context, status, prompt string) bool {
	ok, err := askConfirm(a.reader, prompt, a.out)
	if err != nil || !ok {
		a.printMuted("Cancelled.")
		return false
	}
	if _, err := a.client.SetBotStatus(ctx, status); err != nil {
		a.reportFailure(ctx, err)
		return false
	}
	a.printOK("Bot status updated.")
	return true
}

func (a *App) renderBotSettings(s models.BotSettings) {
	status := "STOPPED"
	if s.TradingActive() {
		status = "TRADING"
	}
	a.printTitle("Bot settings")
	a.printTable([]string{"", ""}, [][]string{
		{"status", status},
		{"symbol", s.Symbol},
		{"target", s.Target},
		{"price start", s.PriceStart},
		{"price stop", s.PriceStop},
		{"nickname", s.Nickname},
	})
}
