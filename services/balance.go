package services

import (
	"context"
	"database/sql"

	"github.com/tripsettle/tripsettle-api/ledger"
	"github.com/tripsettle/tripsettle-api/models"
	"github.com/tripsettle/tripsettle-api/utils"
)

// BalanceService loads a full immutable snapshot of a trip's state and runs
// the ledger engine over it. Nothing is cached: every request rebuilds the
// matrix from scratch, so membership changes show up immediately in
// ALL/GROUP splits.
type BalanceService struct {
	db *sql.DB
}

func NewBalanceService(db *sql.DB) *BalanceService {
	return &BalanceService{db: db}
}

// memberProfile carries the display fields the balance response is
// annotated with; the engine itself only ever sees the id and name.
type memberProfile struct {
	displayName   string
	promptPayID   string
	promptPayType string
}

// LoadSnapshot materializes the trip's members, sub-group rosters, expenses
// (with frozen shares for CUSTOM) and payments into a ledger snapshot.
func (s *BalanceService) LoadSnapshot(ctx context.Context, tripID string) (*ledger.Snapshot, error) {
	snap, _, err := s.loadSnapshot(ctx, tripID)
	return snap, err
}

func (s *BalanceService) loadSnapshot(ctx context.Context, tripID string) (*ledger.Snapshot, map[string]memberProfile, error) {
	snap := &ledger.Snapshot{GroupMembers: map[string][]ledger.Member{}}
	profiles := map[string]memberProfile{}

	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, COALESCE(u.display_name, ''),
		       COALESCE(u.prompt_pay_id, ''), COALESCE(u.prompt_pay_type, 'PHONE')
		FROM trip_members tm
		INNER JOIN users u ON tm.user_id = u.id
		WHERE tm.trip_id = $1
		ORDER BY tm.joined_at
	`, tripID)
	if err != nil {
		return nil, nil, err
	}
	for rows.Next() {
		var id string
		var p memberProfile
		if err := rows.Scan(&id, &p.displayName, &p.promptPayID, &p.promptPayType); err != nil {
			rows.Close()
			return nil, nil, err
		}
		if p.promptPayID, err = utils.DecryptString(p.promptPayID); err != nil {
			rows.Close()
			return nil, nil, err
		}
		snap.Members = append(snap.Members, ledger.Member{ID: id, DisplayName: p.displayName})
		profiles[id] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT sgm.sub_group_id, sgm.user_id, COALESCE(u.display_name, '')
		FROM sub_group_members sgm
		INNER JOIN sub_groups sg ON sgm.sub_group_id = sg.id
		INNER JOIN users u ON sgm.user_id = u.id
		WHERE sg.trip_id = $1
		ORDER BY sgm.joined_at
	`, tripID)
	if err != nil {
		return nil, nil, err
	}
	for rows.Next() {
		var groupID, userID, name string
		if err := rows.Scan(&groupID, &userID, &name); err != nil {
			rows.Close()
			return nil, nil, err
		}
		snap.GroupMembers[groupID] = append(snap.GroupMembers[groupID],
			ledger.Member{ID: userID, DisplayName: name})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT id, paid_by_user_id, amount::text, split_type, split_target,
		       COALESCE(split_group_id::text, '')
		FROM expenses
		WHERE trip_id = $1
		ORDER BY created_at
	`, tripID)
	if err != nil {
		return nil, nil, err
	}
	for rows.Next() {
		var exp ledger.Expense
		var amount string
		if err := rows.Scan(&exp.ID, &exp.PayerID, &amount, &exp.Type, &exp.Target, &exp.GroupID); err != nil {
			rows.Close()
			return nil, nil, err
		}
		if exp.Amount, err = ledger.ParseMoney(amount); err != nil {
			rows.Close()
			return nil, nil, err
		}
		snap.Expenses = append(snap.Expenses, exp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	for i, exp := range snap.Expenses {
		if exp.Target != ledger.TargetCustom {
			continue
		}
		shareRows, err := s.db.QueryContext(ctx, `
			SELECT user_id, owes_amount::text
			FROM expense_shares
			WHERE expense_id = $1
		`, exp.ID)
		if err != nil {
			return nil, nil, err
		}
		for shareRows.Next() {
			var share ledger.Share
			var owes string
			if err := shareRows.Scan(&share.MemberID, &owes); err != nil {
				shareRows.Close()
				return nil, nil, err
			}
			if share.Owes, err = ledger.ParseMoney(owes); err != nil {
				shareRows.Close()
				return nil, nil, err
			}
			snap.Expenses[i].Shares = append(snap.Expenses[i].Shares, share)
		}
		shareRows.Close()
		if err := shareRows.Err(); err != nil {
			return nil, nil, err
		}
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT id, from_user_id, to_user_id, amount::text
		FROM payments
		WHERE trip_id = $1
		ORDER BY created_at
	`, tripID)
	if err != nil {
		return nil, nil, err
	}
	for rows.Next() {
		var pay ledger.Payment
		var amount string
		if err := rows.Scan(&pay.ID, &pay.FromID, &pay.ToID, &amount); err != nil {
			rows.Close()
			return nil, nil, err
		}
		if pay.Amount, err = ledger.ParseMoney(amount); err != nil {
			rows.Close()
			return nil, nil, err
		}
		snap.Payments = append(snap.Payments, pay)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return snap, profiles, nil
}

// Balances aggregates and nets the trip's ledger, annotating each entry
// with display names and the creditor's PromptPay receiving identifier.
func (s *BalanceService) Balances(ctx context.Context, tripID, currentUserID string) (*models.BalancesResponse, error) {
	snap, profiles, err := s.loadSnapshot(ctx, tripID)
	if err != nil {
		return nil, err
	}

	matrix, diags := ledger.Aggregate(*snap)
	balances := ledger.Simplify(matrix)

	entries := []models.BalanceEntry{}
	for _, b := range balances {
		debtor, creditor := profiles[b.DebtorID], profiles[b.CreditorID]
		entries = append(entries, models.BalanceEntry{
			FromUserID:      b.DebtorID,
			FromUserName:    debtor.displayName,
			ToUserID:        b.CreditorID,
			ToUserName:      creditor.displayName,
			ToPromptPayID:   creditor.promptPayID,
			ToPromptPayType: creditor.promptPayType,
			Amount:          b.Amount,
		})
	}

	return &models.BalancesResponse{
		Balances:      entries,
		Diagnostics:   diags,
		CurrentUserID: currentUserID,
	}, nil
}
