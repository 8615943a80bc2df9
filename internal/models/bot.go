package models

// BotSettings is the trading-bot configuration document. All numeric values
// travel as strings, matching what the backend stores and returns.
//
// StatusWork is the inverted run flag inherited from the bot: trading is
// ACTIVE when StatusWork == "0" and stopped when it is "1".
type BotSettings struct {
	Symbol     string `json:"symbol"`
	Target     string `json:"target"`
	PriceStart string `json:"priceStart"`
	PriceStop  string `json:"priceStop"`
	Nickname   string `json:"nickname"`
	StatusWork string `json:"statusWork"`
}

const (
	BotStatusTrading = "0"
	BotStatusStopped = "1"
)

// TradingActive reports whether the bot is currently trading.
func (s BotSettings) TradingActive() bool {
	return s.StatusWork == BotStatusTrading
}
