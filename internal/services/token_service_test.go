package services

import (
	"crypto/rsa"
	"testing"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/config"
	"github.com/11Jagan/Expense-Tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	cfg        *config.JWTConfig
	now        time.Time
	service    *TokenService
}

func (s *TokenServiceTestSuite) SetupTest() {
	var err error
	s.privateKey, s.publicKey, err = config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.now = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	s.cfg = &config.JWTConfig{
		PrivateKey:           s.privateKey,
		PublicKey:            s.publicKey,
		Issuer:               "expense-tracker-test",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
	}
	s.service = newTokenService(s.cfg, func() time.Time { return s.now })
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) newUser() *models.User {
	return &models.User{ID: uuid.New(), Email: "token@example.com", Role: models.RoleUser}
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken() {
	user := s.newUser()

	token, expiresAt, err := s.service.GenerateAccessToken(user)

	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal(s.now.Add(15*time.Minute), expiresAt)

	claims, err := s.service.ValidateAccessToken(token)
	s.Require().NoError(err)
	s.Equal(user.ID.String(), claims.UserID)
	s.Equal(user.Email, claims.Email)
	s.Equal(user.Email, claims.Subject)
	s.Equal(models.RoleUser, claims.Role)
	s.Equal(models.TokenTypeAccess, claims.TokenType)
	s.Equal(s.cfg.Issuer, claims.Issuer)
	s.NotEmpty(claims.ID)
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken_NilUser() {
	_, _, err := s.service.GenerateAccessToken(nil)
	s.Error(err)
}

func (s *TokenServiceTestSuite) TestGenerateRefreshToken() {
	userID := uuid.New()

	token, expiresAt, err := s.service.GenerateRefreshToken(userID)

	s.Require().NoError(err)
	s.Equal(s.now.Add(7*24*time.Hour), expiresAt)

	claims, err := s.service.ValidateRefreshToken(token)
	s.Require().NoError(err)
	s.Equal(userID.String(), claims.UserID)
	s.Equal(userID.String(), claims.Subject)
	s.Equal(models.TokenTypeRefresh, claims.TokenType)

	_, _, err = s.service.GenerateRefreshToken(uuid.Nil)
	s.Error(err)
}

func (s *TokenServiceTestSuite) TestTokensAreUnique() {
	user := s.newUser()

	first, _, err := s.service.GenerateAccessToken(user)
	s.Require().NoError(err)
	second, _, err := s.service.GenerateAccessToken(user)
	s.Require().NoError(err)

	s.NotEqual(first, second)

	firstJTI, err := s.service.GetJTI(first)
	s.Require().NoError(err)
	secondJTI, err := s.service.GetJTI(second)
	s.Require().NoError(err)
	s.NotEqual(firstJTI, secondJTI)
}

func (s *TokenServiceTestSuite) TestValidate_WrongTokenType() {
	user := s.newUser()
	access, _, err := s.service.GenerateAccessToken(user)
	s.Require().NoError(err)
	refresh, _, err := s.service.GenerateRefreshToken(user.ID)
	s.Require().NoError(err)

	_, err = s.service.ValidateRefreshToken(access)
	s.ErrorIs(err, ErrInvalidTokenType)

	_, err = s.service.ValidateAccessToken(refresh)
	s.ErrorIs(err, ErrInvalidTokenType)
}

func (s *TokenServiceTestSuite) TestValidate_Expired() {
	token, _, err := s.service.GenerateAccessToken(s.newUser())
	s.Require().NoError(err)

	s.now = s.now.Add(16 * time.Minute)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceTestSuite) TestValidate_WrongIssuer() {
	other := newTokenService(&config.JWTConfig{
		PrivateKey:          s.privateKey,
		PublicKey:           s.publicKey,
		Issuer:              "someone-else",
		AccessTokenDuration: time.Minute,
	}, func() time.Time { return s.now })

	token, _, err := other.GenerateAccessToken(s.newUser())
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidIssuer)
}

func (s *TokenServiceTestSuite) TestValidate_WrongSigningKey() {
	otherKey, otherPublic, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	other := newTokenService(&config.JWTConfig{
		PrivateKey:          otherKey,
		PublicKey:           otherPublic,
		Issuer:              s.cfg.Issuer,
		AccessTokenDuration: time.Minute,
	}, func() time.Time { return s.now })

	token, _, err := other.GenerateAccessToken(s.newUser())
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidate_RejectsHMAC() {
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(s.now.Add(time.Hour)),
		},
		UserID:    uuid.NewString(),
		TokenType: models.TokenTypeAccess,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidate_Empty() {
	_, err := s.service.ValidateAccessToken("")
	s.ErrorIs(err, ErrEmptyToken)

	_, err = s.service.ValidateAccessToken("not.a.token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader() {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer abc", want: "abc"},
		{header: "  Bearer   abc  ", want: "abc"},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "Bearer ", wantErr: true},
		{header: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := s.service.ExtractTokenFromHeader(tt.header)
		if tt.wantErr {
			s.ErrorIs(err, ErrInvalidAuthHeader, tt.header)
			continue
		}
		s.NoError(err, tt.header)
		s.Equal(tt.want, got)
	}
}

func (s *TokenServiceTestSuite) TestGetTokenExpiry() {
	token, expiresAt, err := s.service.GenerateAccessToken(s.newUser())
	s.Require().NoError(err)

	got, err := s.service.GetTokenExpiry(token)
	s.NoError(err)
	s.True(expiresAt.Equal(got))

	_, err = s.service.GetTokenExpiry("")
	s.ErrorIs(err, ErrEmptyToken)
}
