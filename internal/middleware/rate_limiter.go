package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// DefaultRequestRate is the sustained rate, in requests per second, allowed
// per client IP on the sign-up and password reset request routes. Login is
// not rate limited.
const DefaultRequestRate rate.Limit = 10.0 / 60

// DefaultBurst is how many requests a client may make before the rate applies.
const DefaultBurst = 10

// RateLimiter limits each client IP to DefaultRequestRate with DefaultBurst.
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithRate(DefaultRequestRate, DefaultBurst)
}

// RateLimiterWithRate is RateLimiter with an explicit rate and burst.
func RateLimiterWithRate(r rate.Limit, burst int) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		// In-memory store, suitable for single-instance deployments.
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  r,
			Burst: burst,
		}),

		// We identify clients by their real IP address.
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.String(http.StatusForbidden, "Unable to identify client.")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
