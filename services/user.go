package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/tripsettle/tripsettle-api/models"
	"github.com/tripsettle/tripsettle-api/utils"
)

type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetOrCreateByPhone looks up a user by phone number, creating the account
// on first login.
func (s *UserService) GetOrCreateByPhone(ctx context.Context, phone string) (*models.User, error) {
	user, err := s.getByPhone(ctx, phone)
	if err == nil {
		return user, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	var id string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (phone_number)
		VALUES ($1)
		RETURNING id
	`, phone).Scan(&id)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:          id,
		PhoneNumber: phone,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

func (s *UserService) getByPhone(ctx context.Context, phone string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userSelect+` WHERE phone_number = $1`, phone))
}

// GetByID fetches a user's profile.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userSelect+` WHERE id = $1`, id))
}

const userSelect = `
	SELECT id, phone_number,
	       COALESCE(display_name, ''),
	       COALESCE(prompt_pay_id, ''),
	       COALESCE(prompt_pay_type, 'PHONE'),
	       COALESCE(profile_picture_url, ''),
	       created_at, updated_at
	FROM users`

func (s *UserService) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.PhoneNumber,
		&user.DisplayName,
		&user.PromptPayID,
		&user.PromptPayType,
		&user.ProfilePictureURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.PromptPayID, err = utils.DecryptString(user.PromptPayID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveProfile stores the display name and PromptPay receiving identifier.
func (s *UserService) SaveProfile(ctx context.Context, userID string, req models.SaveProfileRequest) error {
	promptPayID, err := utils.EncryptString(req.PromptPayID)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE users
		SET display_name = $1,
		    prompt_pay_id = NULLIF($2, ''),
		    prompt_pay_type = COALESCE(NULLIF($3, ''), 'PHONE'),
		    profile_picture_url = NULLIF($4, ''),
		    updated_at = NOW()
		WHERE id = $5
	`, req.DisplayName, promptPayID, req.PromptPayType, req.ProfilePictureURL, userID)
	return err
}
