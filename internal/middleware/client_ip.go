package middleware

import (
	"fmt"
	"net"

	"github.com/labstack/echo/v4"
)

// NewIPExtractor resolves the client address from X-Forwarded-For, walking
// back from the connecting peer until the first hop that is not a trusted
// proxy. Loopback, link-local and private ranges are always trusted;
// trustedProxies adds CIDR ranges on top of those.
func NewIPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	opts := make([]echo.TrustOption, 0, len(trustedProxies))
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy range %q: %w", cidr, err)
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}
