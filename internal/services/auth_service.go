package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountLocked       = errors.New("account is locked due to too many failed attempts")
	ErrUserAlreadyExists   = errors.New("user with this email already exists")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
)

// Authentication event types reported to metrics and logs
const (
	authEventRegister      = "register"
	authEventLogin         = "login"
	authEventLoginFailed   = "login_failed"
	authEventAccountLocked = "account_locked"
	authEventRefresh       = "token_refresh"
	authEventRefreshFailed = "token_refresh_failed"
	authEventLogout        = "logout"
)

// AuthService handles registration, login, token rotation and the user
// profile
type AuthService struct {
	userRepo             repositories.UserRepositoryInterface
	refreshTokenRepo     repositories.RefreshTokenRepositoryInterface
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface
	passwordService      PasswordServiceInterface
	tokenService         TokenServiceInterface
	metrics              MetricsRecorderInterface
	logger               *slog.Logger
	now                  func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	refreshTokenRepo repositories.RefreshTokenRepositoryInterface,
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:             userRepo,
		refreshTokenRepo:     refreshTokenRepo,
		blacklistedTokenRepo: blacklistedTokenRepo,
		passwordService:      passwordService,
		tokenService:         tokenService,
		metrics:              metrics,
		logger:               logger,
		now:                  time.Now,
	}
}

// Register creates a new user. The optional monthly income becomes the
// fallback for months without recorded income.
func (s *AuthService) Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		s.logger.Info("registration rejected", "reason", "email_already_exists", "ip_address", ipAddress)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:         email,
		PasswordHash:  hashedPassword,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Role:          models.RoleUser,
		MonthlyIncome: decimal.Zero,
	}
	if req.MonthlyIncome != nil {
		user.MonthlyIncome = *req.MonthlyIncome
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.authEvent(authEventRegister, user.ID, ipAddress, userAgent)
	return user, nil
}

// Login checks the credentials and issues a token pair. Repeated failures
// lock the account.
func (s *AuthService) Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.authEvent(authEventLoginFailed, uuid.Nil, ipAddress, userAgent, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsLocked() {
		s.authEvent(authEventLoginFailed, user.ID, ipAddress, userAgent, "reason", "account_locked")
		return nil, ErrAccountLocked
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		locked := user.RegisterFailedLogin(s.now())
		if err := s.userRepo.SaveLoginState(user); err != nil {
			s.logger.Error("failed to save login attempts", "error", err, "user_id", user.ID)
		}
		if locked {
			s.authEvent(authEventAccountLocked, user.ID, ipAddress, userAgent)
		}
		s.authEvent(authEventLoginFailed, user.ID, ipAddress, userAgent, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	user.RegisterLogin(s.now())
	if err := s.userRepo.SaveLoginState(user); err != nil {
		s.logger.Warn("failed to save login state", "error", err, "user_id", user.ID)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.authEvent(authEventLogin, user.ID, ipAddress, userAgent)
	return tokens, nil
}

// RefreshTokens rotates a refresh token: the presented token is revoked and
// a new pair is issued. A revoked or unknown token is rejected.
func (s *AuthService) RefreshTokens(refreshToken, ipAddress, userAgent string) (*dto.TokenResponse, error) {
	claims, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.authEvent(authEventRefreshFailed, uuid.Nil, ipAddress, userAgent, "reason", "invalid_token")
		return nil, ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.refreshTokenRepo.GetByTokenHash(hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			s.authEvent(authEventRefreshFailed, userID, ipAddress, userAgent, "reason", "token_not_found")
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if stored.UserID != userID || !stored.Usable(s.now()) {
		s.authEvent(authEventRefreshFailed, userID, ipAddress, userAgent, "reason", "token_expired_or_revoked")
		return nil, ErrInvalidRefreshToken
	}

	if err := s.refreshTokenRepo.Revoke(stored.ID); err != nil {
		// lost a race with another refresh of the same token
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.authEvent(authEventRefresh, user.ID, ipAddress, userAgent)
	return tokens, nil
}

// Logout blacklists the access token until it expires and revokes every
// refresh token of the user. Tokens that no longer validate are ignored.
func (s *AuthService) Logout(accessToken, ipAddress, userAgent string) error {
	claims, err := s.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		s.logger.Debug("logout with unusable token", "error", err)
		return nil
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}

	blacklisted := &models.BlacklistedToken{
		JTI:       claims.ID,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.blacklistedTokenRepo.Create(blacklisted); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	if err := s.refreshTokenRepo.RevokeAllForUser(userID); err != nil {
		s.logger.Warn("failed to revoke refresh tokens", "error", err, "user_id", userID)
	}

	s.authEvent(authEventLogout, userID, ipAddress, userAgent)
	return nil
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateMonthlyIncome sets the declared monthly income and returns the
// updated profile
func (s *AuthService) UpdateMonthlyIncome(userID uuid.UUID, amount decimal.Decimal) (*models.User, error) {
	if amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	if err := s.userRepo.UpdateMonthlyIncome(userID, amount); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update monthly income: %w", err)
	}

	s.logger.Info("monthly income updated", "user_id", userID, "monthly_income", amount.StringFixed(2))
	return s.GetProfile(userID)
}

func (s *AuthService) issueTokens(user *models.User) (*dto.TokenResponse, error) {
	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.refreshTokenRepo.Create(&models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: refreshExpiresAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
	}, nil
}

// authEvent counts the event and writes it to the log. extra holds
// additional key/value pairs.
func (s *AuthService) authEvent(eventType string, userID uuid.UUID, ipAddress, userAgent string, extra ...any) {
	s.metrics.IncrementCounter(MetricAuthEvent, map[string]string{"event_type": eventType})

	attrs := []any{"event_type", eventType, "ip_address", ipAddress, "user_agent", userAgent}
	if userID != uuid.Nil {
		attrs = append(attrs, "user_id", userID)
	}
	attrs = append(attrs, extra...)

	if eventType == authEventLoginFailed || eventType == authEventRefreshFailed || eventType == authEventAccountLocked {
		s.logger.Warn("authentication event", attrs...)
		return
	}
	s.logger.Info("authentication event", attrs...)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
