package models

// TelegramStats is the audience breakdown for the broadcast view.
// usersWithAccount and usersWithoutAccount never overlap; allBotUsers covers
// both.
type TelegramStats struct {
	UsersWithAccount    int `json:"usersWithAccount"`
	AllBotUsers         int `json:"allBotUsers"`
	UsersWithoutAccount int `json:"usersWithoutAccount"`
}

// Broadcast target group names accepted by /api/admin/telegram/send.
const (
	GroupUsersWithAccount    = "usersWithAccount"
	GroupAllBotUsers         = "allBotUsers"
	GroupUsersWithoutAccount = "usersWithoutAccount"
)

// BroadcastResult is the per-recipient outcome summary of a broadcast.
type BroadcastResult struct {
	Message string           `json:"message"`
	Results BroadcastOutcome `json:"results"`
}

type BroadcastOutcome struct {
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []BroadcastError `json:"errors"`
}

type BroadcastError struct {
	ChatID string `json:"chatId"`
	Error  string `json:"error"`
}
