package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/errors"
	"github.com/11Jagan/Expense-Tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication and profile endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationError(c, err)
	}

	user, err := h.authService.Register(&req, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrUserAlreadyExists):
			return SendError(c, errors.AuthEmailAlreadyRegistered)
		case services.IsPasswordPolicyError(err):
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewUserProfileResponse(user),
		Message: "User registered successfully",
	})
}

// Login handles POST /auth/login. Repeated failures lock the account.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationError(c, err)
	}

	tokens, err := h.authService.Login(&req, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrAccountLocked):
			return SendError(c, errors.AuthAccountLocked)
		case stderrors.Is(err, services.ErrInvalidCredentials):
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return respond(c, http.StatusOK, tokens)
}

// RefreshToken handles POST /auth/refresh. The presented refresh token is
// revoked and a new pair issued.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req dto.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationError(c, err)
	}

	tokens, err := h.authService.RefreshTokens(req.RefreshToken, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidRefreshToken) {
			return SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Invalid or expired refresh token"))
		}
		return SendSystemError(c, err)
	}

	return respond(c, http.StatusOK, tokens)
}

// Logout handles POST /auth/logout by revoking the presented access token
func (h *AuthHandler) Logout(c echo.Context) error {
	scheme, accessToken, found := strings.Cut(c.Request().Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "bearer") || accessToken == "" {
		return SendError(c, errors.AuthInvalidTokenFormat)
	}

	if err := h.authService.Logout(accessToken, c.RealIP(), c.Request().UserAgent()); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Logout successful"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		if stderrors.Is(err, services.ErrUserNotFound) {
			return SendError(c, errors.SystemNotFound, errors.WithDetails("User not found"))
		}
		return SendSystemError(c, err)
	}

	return respond(c, http.StatusOK, dto.NewUserProfileResponse(user))
}

// UpdateMonthlyIncome handles PUT /auth/me/monthly-income
func (h *AuthHandler) UpdateMonthlyIncome(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.MonthlyIncomeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return sendValidationError(c, err)
	}

	user, err := h.authService.UpdateMonthlyIncome(userID, *req.MonthlyIncome)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrInvalidAmount):
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
		case stderrors.Is(err, services.ErrUserNotFound):
			return SendError(c, errors.SystemNotFound, errors.WithDetails("User not found"))
		}
		return SendSystemError(c, err)
	}

	return respond(c, http.StatusOK, dto.NewUserProfileResponse(user))
}
