package models

import (
	"time"

	"github.com/tripsettle/tripsettle-api/ledger"
)

type Expense struct {
	ID           string             `json:"id"`
	TripID       string             `json:"trip_id"`
	PaidByUserID string             `json:"paid_by_user_id"`
	PaidByName   string             `json:"paid_by_name,omitempty"`
	Title        string             `json:"title"`
	Amount       ledger.Money       `json:"amount"`
	SplitType    ledger.SplitType   `json:"split_type"`
	SplitTarget  ledger.SplitTarget `json:"split_target"`
	SplitGroupID string             `json:"split_group_id,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`

	// Shares is what the expense currently resolves to: frozen rows for
	// CUSTOM, recomputed from live membership for ALL and GROUP.
	Shares []ExpenseShare `json:"shares"`
}

type ExpenseShare struct {
	UserID   string       `json:"user_id"`
	UserName string       `json:"user_name,omitempty"`
	Owes     ledger.Money `json:"owes_amount"`
}

type CreateExpenseRequest struct {
	Title        string  `json:"title" binding:"required,min=1,max=100"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	PaidByUserID string  `json:"paid_by_user_id" binding:"required"`
	SplitType    string  `json:"split_type" binding:"omitempty,oneof=EQUAL EXACT"`
	SplitTarget  string  `json:"split_target" binding:"required,oneof=ALL GROUP CUSTOM"`
	SplitGroupID string  `json:"split_group_id"`

	// Shares is required for CUSTOM; EXACT entries carry per-member
	// amounts, EQUAL entries just enumerate the members.
	Shares []CreateExpenseShare `json:"shares"`
}

type CreateExpenseShare struct {
	UserID string  `json:"user_id" binding:"required"`
	Amount float64 `json:"amount"`
}
