package models

import (
	"encoding/json"
	"time"
)

// Transaction is one deposit awaiting operator confirmation.
type Transaction struct {
	ID       string      `json:"_id"`
	Email    string      `json:"email"`
	Quantity json.Number `json:"quantity"`
	Date     time.Time   `json:"date"`
	Nic      string      `json:"nic,omitempty"`
}

// Reward is one referral reward awaiting payout.
type Reward struct {
	ID            string      `json:"_id"`
	RefEmail      string      `json:"refEmail"`
	UserEmail     string      `json:"userEmail"`
	DepositAmount json.Number `json:"depositAmount"`
	RewardAmount  json.Number `json:"rewardAmount"`
	RefBybitUID   string      `json:"refBybitUID,omitempty"`
	Date          time.Time   `json:"date"`
	Transaction   *RewardTransactionRef `json:"transactionId,omitempty"`
}

// RewardTransactionRef is the populated transaction reference attached to a
// reward; only the id is of interest to the console.
type RewardTransactionRef struct {
	ID string `json:"_id"`
}
