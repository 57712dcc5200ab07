package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRefreshToken_Usable(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	revokedAt := now.Add(-time.Minute)

	tests := []struct {
		name   string
		token  RefreshToken
		usable bool
	}{
		{"live token", RefreshToken{ExpiresAt: now.Add(time.Hour)}, true},
		{"expired token", RefreshToken{ExpiresAt: now.Add(-time.Hour)}, false},
		{"expires exactly now", RefreshToken{ExpiresAt: now}, false},
		{"revoked token", RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.usable, tt.token.Usable(now))
		})
	}
}

func TestTokens_BeforeCreateAssignsID(t *testing.T) {
	refresh := &RefreshToken{}
	assert.NoError(t, refresh.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, refresh.ID)

	existing := uuid.New()
	blacklisted := &BlacklistedToken{ID: existing}
	assert.NoError(t, blacklisted.BeforeCreate(nil))
	assert.Equal(t, existing, blacklisted.ID)
}
