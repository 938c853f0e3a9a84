// Package buyer resolves the stable key identifying whose basket and orders
// a request operates on, without requiring login.
package buyer

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/bdmarket/storefront/internal/tokens"
)

const (
	// CookieName is the long-lived anonymous buyer cookie.
	CookieName = "storefront_buyer"

	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"

	keyContextKey  = "buyer_key"
	authContextKey = "buyer_authenticated"
	roleContextKey = "buyer_role"

	cookieTTL = 10 * 365 * 24 * time.Hour
)

// Resolver derives the buyer key per request: an authenticated username
// beats the anonymous cookie, which beats minting a fresh key.
type Resolver struct {
	JWTSecret []byte
}

func (r *Resolver) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(AccessCookieName); err == nil && cookie.Value != "" {
				if claims, err := tokens.AccessClaimsFromToken(cookie.Value, r.JWTSecret); err == nil && claims.Username != "" {
					c.Set(keyContextKey, claims.Username)
					c.Set(authContextKey, true)
					c.Set(roleContextKey, claims.Role)
					return next(c)
				}
			}

			if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
				c.Set(keyContextKey, cookie.Value)
				c.Set(authContextKey, false)
				return next(c)
			}

			key := uuid.NewString()
			c.SetCookie(&http.Cookie{
				Name:     CookieName,
				Value:    key,
				Path:     "/",
				Expires:  time.Now().Add(cookieTTL),
				HttpOnly: true,
				SameSite: http.SameSiteStrictMode,
			})
			c.Set(keyContextKey, key)
			c.Set(authContextKey, false)
			return next(c)
		}
	}
}

// Key returns the resolved buyer key for the request.
func Key(c echo.Context) string {
	if v, ok := c.Get(keyContextKey).(string); ok {
		return v
	}
	return ""
}

// Authenticated reports whether the key came from a verified access token.
func Authenticated(c echo.Context) bool {
	v, _ := c.Get(authContextKey).(bool)
	return v
}

// Role returns the authenticated user's role, or "" for anonymous buyers.
func Role(c echo.Context) string {
	v, _ := c.Get(roleContextKey).(string)
	return v
}

// AnonymousKey reads the anonymous cookie without resolving, for the login
// transfer flow.
func AnonymousKey(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// ClearAnonymousCookie drops the anonymous cookie once its basket has been
// transferred to an authenticated buyer.
func ClearAnonymousCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
