package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bdmarket/storefront/internal/buyer"
	"github.com/bdmarket/storefront/internal/events"
	"github.com/bdmarket/storefront/internal/logging"
	"github.com/bdmarket/storefront/internal/service"
	"github.com/bdmarket/storefront/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Baskets  *service.BasketService
	Producer events.Publisher
}

func createCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, "user already exists")
		}
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicUserEvents, strconv.FormatUint(uint64(user.ID), 10), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("user registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

// Login issues the token cookies and folds any anonymous basket into the
// authenticated buyer's basket.
func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, pair, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if anonKey := buyer.AnonymousKey(c); anonKey != "" && anonKey != user.Username {
		if err := h.Baskets.TransferBasket(ctx, anonKey, user.Username); err != nil {
			l.Error("basket transfer failed", "from", anonKey, "error", err)
		} else {
			buyer.ClearAnonymousCookie(c)
		}
	}

	c.SetCookie(createCookie(buyer.AccessCookieName, pair.AccessToken, "/", pair.AccessExp))
	c.SetCookie(createCookie(buyer.RefreshCookieName, pair.RefreshToken, "/", pair.RefreshExp))

	l.Info("user logged in", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	cookie, err := c.Cookie(buyer.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	_, pair, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		}
		l.Error("refresh_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(createCookie(buyer.AccessCookieName, pair.AccessToken, "/", pair.AccessExp))
	c.SetCookie(createCookie(buyer.RefreshCookieName, pair.RefreshToken, "/", pair.RefreshExp))

	return c.JSON(http.StatusOK, transport.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
