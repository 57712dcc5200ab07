package dto

import (
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/models"

	"github.com/shopspring/decimal"
)

// RegisterRequest contains user registration data
type RegisterRequest struct {
	Email         string           `json:"email" validate:"required,email"`
	Password      string           `json:"password" validate:"required,min=12"`
	FirstName     string           `json:"firstName" validate:"required,min=1,max=100"`
	LastName      string           `json:"lastName" validate:"required,min=1,max=100"`
	MonthlyIncome *decimal.Decimal `json:"monthlyIncome" validate:"omitempty,non_negative_amount,money"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// MonthlyIncomeRequest sets the declared income used when a month has no
// recorded income
type MonthlyIncomeRequest struct {
	MonthlyIncome *decimal.Decimal `json:"monthlyIncome" validate:"required,non_negative_amount,money"`
}

// TokenResponse contains authentication tokens
type TokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	TokenType    string    `json:"tokenType"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// UserProfileResponse represents the authenticated user's profile
type UserProfileResponse struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Role          string          `json:"role"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func NewUserProfileResponse(user *models.User) UserProfileResponse {
	return UserProfileResponse{
		ID:            user.ID.String(),
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Role:          user.Role,
		MonthlyIncome: user.MonthlyIncome,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
