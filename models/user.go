package models

import "time"

type User struct {
	ID                string    `json:"id"`
	PhoneNumber       string    `json:"phone_number"`
	DisplayName       string    `json:"display_name"`
	PromptPayID       string    `json:"prompt_pay_id,omitempty"`
	PromptPayType     string    `json:"prompt_pay_type,omitempty"` // PHONE, NATIONAL_ID, EWALLET, UNKNOWN
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,min=10"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// Onboarded is false until the user has saved a display name.
	Onboarded bool `json:"onboarded"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type SaveProfileRequest struct {
	DisplayName       string `json:"display_name" binding:"required,min=2"`
	PromptPayID       string `json:"prompt_pay_id" binding:"omitempty,min=10"`
	PromptPayType     string `json:"prompt_pay_type" binding:"omitempty,oneof=PHONE NATIONAL_ID EWALLET UNKNOWN"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

type DecodeQRRequest struct {
	Payload string `json:"payload" binding:"required"`
}
