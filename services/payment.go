package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/tripsettle/tripsettle-api/ledger"
	"github.com/tripsettle/tripsettle-api/models"
)

type PaymentService struct {
	db *sql.DB
}

func NewPaymentService(db *sql.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Create records a settlement transfer. Payments are immutable once
// created; no check is made against outstanding debt.
func (s *PaymentService) Create(ctx context.Context, tripID, fromUserID string, req models.CreatePaymentRequest) (*models.Payment, error) {
	payment := &models.Payment{
		ID:         uuid.New().String(),
		TripID:     tripID,
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		Amount:     ledger.MoneyFromFloat(req.Amount),
		SlipURL:    req.SlipURL,
		Status:     "PENDING",
		CreatedAt:  time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, trip_id, from_user_id, to_user_id, amount, slip_url, status)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`, payment.ID, payment.TripID, payment.FromUserID, payment.ToUserID,
		payment.Amount.String(), payment.SlipURL, payment.Status)
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// ListForTrip returns the trip's payments newest first with sender and
// receiver names attached.
func (s *PaymentService) ListForTrip(ctx context.Context, tripID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.trip_id, p.from_user_id, COALESCE(uf.display_name, ''),
		       p.to_user_id, COALESCE(ut.display_name, ''),
		       p.amount::text, COALESCE(p.slip_url, ''), p.status, p.created_at
		FROM payments p
		INNER JOIN users uf ON p.from_user_id = uf.id
		INNER JOIN users ut ON p.to_user_id = ut.id
		WHERE p.trip_id = $1
		ORDER BY p.created_at DESC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		var amount string
		if err := rows.Scan(&p.ID, &p.TripID, &p.FromUserID, &p.FromUserName,
			&p.ToUserID, &p.ToUserName, &amount, &p.SlipURL, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		if p.Amount, err = ledger.ParseMoney(amount); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
