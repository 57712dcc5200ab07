package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIPExtractor(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "no forwarding headers",
			remoteAddr: "198.51.100.4:4321",
			expected:   "198.51.100.4",
		},
		{
			name:       "untrusted peer cannot forge X-Forwarded-For",
			remoteAddr: "198.51.100.4:4321",
			headers:    map[string]string{echo.HeaderXForwardedFor: "203.0.113.7"},
			expected:   "198.51.100.4",
		},
		{
			name:       "untrusted peer cannot forge X-Real-IP",
			remoteAddr: "198.51.100.4:4321",
			headers:    map[string]string{echo.HeaderXRealIP: "203.0.113.7"},
			expected:   "198.51.100.4",
		},
		{
			name:       "private proxy forwards the client",
			remoteAddr: "10.0.0.5:4321",
			headers:    map[string]string{echo.HeaderXForwardedFor: "203.0.113.7"},
			expected:   "203.0.113.7",
		},
		{
			name:       "trusted hops are skipped",
			remoteAddr: "127.0.0.1:4321",
			headers:    map[string]string{echo.HeaderXForwardedFor: "203.0.113.7, 10.0.0.1"},
			expected:   "203.0.113.7",
		},
		{
			name:       "client supplied prefix is ignored",
			remoteAddr: "10.0.0.5:4321",
			headers:    map[string]string{echo.HeaderXForwardedFor: "192.0.2.66, 203.0.113.7"},
			expected:   "203.0.113.7",
		},
		{
			name:       "configured proxy range",
			trusted:    []string{"198.51.100.0/24"},
			remoteAddr: "198.51.100.4:4321",
			headers:    map[string]string{echo.HeaderXForwardedFor: "203.0.113.7"},
			expected:   "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor, err := NewIPExtractor(tt.trusted)
			require.NoError(t, err)

			e := echo.New()
			e.IPExtractor = extractor
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			c := e.NewContext(req, httptest.NewRecorder())
			assert.Equal(t, tt.expected, c.RealIP())
		})
	}
}

func TestNewIPExtractor_InvalidRange(t *testing.T) {
	_, err := NewIPExtractor([]string{"10.0.0.0/8", "not-a-cidr"})

	assert.ErrorContains(t, err, "not-a-cidr")
}
