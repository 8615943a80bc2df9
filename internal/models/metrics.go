package models

import "time"

// Metrics is the current business-metrics snapshot (read-only reporting).
type Metrics struct {
	TotalManagedFunds        float64   `json:"totalManagedFunds"`
	ActiveClients            int       `json:"activeClients"`
	TotalBotUsers            int       `json:"totalBotUsers"`
	ReferralBotUsers         int       `json:"referralBotUsers"`
	AvgBalancePerClient      float64   `json:"avgBalancePerClient"`
	FundsPerBotUser          float64   `json:"fundsPerBotUser"`
	ClientToBotConversionPct float64   `json:"clientToBotConversionPct"`
	ReferralSharePct         float64   `json:"referralSharePct"`
	LastMonthProfit          float64   `json:"lastMonthProfit"`
	AvgClientProfitLastMonth float64   `json:"avgClientProfitLastMonth"`
	TotalProfitAllTime       float64   `json:"totalProfitAllTime"`
	RecordedAt               time.Time `json:"recordedAt"`
}

// MetricsPoint is one history sample for the AUM/clients series.
type MetricsPoint struct {
	RecordedAt        time.Time `json:"recordedAt"`
	TotalManagedFunds float64   `json:"totalManagedFunds"`
	ActiveClients     int       `json:"activeClients"`
	TotalBotUsers     int       `json:"totalBotUsers"`
	TotalProfit       float64   `json:"totalProfit"`
	Label             string    `json:"label,omitempty"`
}
