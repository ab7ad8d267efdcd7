package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/tripsettle/tripsettle-api/ledger"
	"github.com/tripsettle/tripsettle-api/models"
	"github.com/tripsettle/tripsettle-api/utils"
)

type ExpenseService struct {
	db       *sql.DB
	balances *BalanceService
}

func NewExpenseService(db *sql.DB) *ExpenseService {
	return &ExpenseService{db: db, balances: NewBalanceService(db)}
}

// Create records an expense. Per-member amounts are persisted only for
// CUSTOM splits; ALL and GROUP expenses store just the target and are
// resolved against live membership whenever they are read.
func (s *ExpenseService) Create(ctx context.Context, tripID string, req models.CreateExpenseRequest) (*models.Expense, error) {
	splitType := ledger.SplitType(req.SplitType)
	if splitType == "" {
		splitType = ledger.SplitEqual
	}
	target := ledger.SplitTarget(req.SplitTarget)

	switch target {
	case ledger.TargetGroup:
		if req.SplitGroupID == "" {
			return nil, errors.New("split_group_id is required for GROUP expenses")
		}
	case ledger.TargetCustom:
		if len(req.Shares) == 0 {
			return nil, errors.New("shares are required for CUSTOM expenses")
		}
	}

	expense := &models.Expense{
		ID:           uuid.New().String(),
		TripID:       tripID,
		PaidByUserID: req.PaidByUserID,
		Title:        req.Title,
		Amount:       ledger.MoneyFromFloat(req.Amount),
		SplitType:    splitType,
		SplitTarget:  target,
		SplitGroupID: req.SplitGroupID,
	}

	err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO expenses (id, trip_id, paid_by_user_id, title, amount, split_type, split_target, split_group_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid)
		`, expense.ID, expense.TripID, expense.PaidByUserID, expense.Title,
			expense.Amount.String(), string(expense.SplitType), string(expense.SplitTarget),
			expense.SplitGroupID); err != nil {
			return err
		}

		if target != ledger.TargetCustom {
			return nil
		}

		for _, share := range req.Shares {
			owes := ledger.MoneyFromFloat(share.Amount)
			if splitType == ledger.SplitEqual {
				owes = expense.Amount.DivideEqually(len(req.Shares))
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO expense_shares (id, expense_id, user_id, owes_amount)
				VALUES ($1, $2, $3, $4)
			`, uuid.New().String(), expense.ID, share.UserID, owes.String()); err != nil {
				return err
			}
			expense.Shares = append(expense.Shares, models.ExpenseShare{UserID: share.UserID, Owes: owes})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

// ListForTrip returns the trip's expenses newest first, each with the shares
// it resolves to right now. ALL and GROUP splits are recomputed from the
// current membership, so the listed shares for an old expense change when
// people join or leave.
func (s *ExpenseService) ListForTrip(ctx context.Context, tripID string) ([]models.Expense, error) {
	snap, err := s.balances.LoadSnapshot(ctx, tripID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(snap.Members))
	for _, m := range snap.Members {
		names[m.ID] = m.DisplayName
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.trip_id, e.paid_by_user_id, COALESCE(u.display_name, ''),
		       e.title, e.amount::text, e.split_type, e.split_target,
		       COALESCE(e.split_group_id::text, ''), e.created_at
		FROM expenses e
		INNER JOIN users u ON e.paid_by_user_id = u.id
		WHERE e.trip_id = $1
		ORDER BY e.created_at DESC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ledgerByID := make(map[string]ledger.Expense, len(snap.Expenses))
	for _, le := range snap.Expenses {
		ledgerByID[le.ID] = le
	}

	expenses := []models.Expense{}
	for rows.Next() {
		var exp models.Expense
		var amount string
		if err := rows.Scan(&exp.ID, &exp.TripID, &exp.PaidByUserID, &exp.PaidByName,
			&exp.Title, &amount, &exp.SplitType, &exp.SplitTarget,
			&exp.SplitGroupID, &exp.CreatedAt); err != nil {
			return nil, err
		}
		if exp.Amount, err = ledger.ParseMoney(amount); err != nil {
			return nil, err
		}

		exp.Shares = []models.ExpenseShare{}
		if le, ok := ledgerByID[exp.ID]; ok {
			for _, share := range ledger.ResolveShares(le, *snap) {
				exp.Shares = append(exp.Shares, models.ExpenseShare{
					UserID:   share.MemberID,
					UserName: names[share.MemberID],
					Owes:     share.Owes,
				})
			}
		}
		expenses = append(expenses, exp)
	}
	return expenses, rows.Err()
}
