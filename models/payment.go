package models

import (
	"time"

	"github.com/tripsettle/tripsettle-api/ledger"
)

type Payment struct {
	ID           string       `json:"id"`
	TripID       string       `json:"trip_id"`
	FromUserID   string       `json:"from_user_id"`
	FromUserName string       `json:"from_user_name,omitempty"`
	ToUserID     string       `json:"to_user_id"`
	ToUserName   string       `json:"to_user_name,omitempty"`
	Amount       ledger.Money `json:"amount"`
	SlipURL      string       `json:"slip_url,omitempty"`
	Status       string       `json:"status"` // PENDING, VERIFIED
	CreatedAt    time.Time    `json:"created_at"`
}

type CreatePaymentRequest struct {
	ToUserID string  `json:"to_user_id" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	SlipURL  string  `json:"slip_url"`
}

// BalanceEntry is one netted debt annotated for display: names plus the
// creditor's PromptPay receiving identifier so the client can render a
// payment QR.
type BalanceEntry struct {
	FromUserID      string       `json:"from_user_id"`
	FromUserName    string       `json:"from_user_name"`
	ToUserID        string       `json:"to_user_id"`
	ToUserName      string       `json:"to_user_name"`
	ToPromptPayID   string       `json:"to_prompt_pay_id,omitempty"`
	ToPromptPayType string       `json:"to_prompt_pay_type,omitempty"`
	Amount          ledger.Money `json:"amount"`
}

type BalancesResponse struct {
	Balances      []BalanceEntry      `json:"balances"`
	Diagnostics   []ledger.Diagnostic `json:"diagnostics,omitempty"`
	CurrentUserID string              `json:"current_user_id"`
}
