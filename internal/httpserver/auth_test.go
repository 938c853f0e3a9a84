package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdmarket/storefront/internal/transport"
)

func TestAuthHTTP_RegisterAndLogin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	creds := transport.RegisterRequest{Username: "alice", Password: "s3cret"}

	rec := env.do(t, http.MethodPost, "/api/auth/register", creds)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/auth/register", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login",
		transport.LoginRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login",
		transport.LoginRequest{Username: "alice", Password: "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tokenResp transport.TokenResponse
	decode(t, rec, &tokenResp)
	assert.NotEmpty(t, tokenResp.AccessToken)
	assert.NotEmpty(t, tokenResp.RefreshToken)

	access := responseCookie(t, rec, "accessToken")
	assert.Equal(t, tokenResp.AccessToken, access.Value)
	responseCookie(t, rec, "refreshToken")

	// the access cookie now resolves the buyer, so a basket created with it
	// belongs to the username
	rec = env.do(t, http.MethodPost, "/api/basket/items",
		transport.AddToBasketRequest{CatalogItemID: env.items[0].ID, Quantity: 1}, access)
	require.Equal(t, http.StatusOK, rec.Code)
	var basket transport.BasketResponse
	decode(t, rec, &basket)
	assert.Equal(t, "alice", basket.BuyerKey)
}

func TestAuthHTTP_LoginTransfersAnonymousBasket(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register",
		transport.RegisterRequest{Username: "carol", Password: "s3cret"})
	require.Equal(t, http.StatusCreated, rec.Code)

	anon := buyerCookie("anon-42")
	rec = env.do(t, http.MethodPost, "/api/basket/items",
		transport.AddToBasketRequest{CatalogItemID: env.items[0].ID, Quantity: 3}, anon)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login",
		transport.LoginRequest{Username: "carol", Password: "s3cret"}, anon)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the anonymous cookie is dropped once its basket has moved over
	cleared := responseCookie(t, rec, "storefront_buyer")
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	access := responseCookie(t, rec, "accessToken")
	rec = env.do(t, http.MethodGet, "/api/basket", nil, access)
	require.Equal(t, http.StatusOK, rec.Code)
	var basket transport.BasketResponse
	decode(t, rec, &basket)
	assert.Equal(t, "carol", basket.BuyerKey)
	require.Len(t, basket.Items, 1)
	assert.Equal(t, 3, basket.Items[0].Quantity)

	// the anonymous basket itself is gone
	rec = env.do(t, http.MethodGet, "/api/basket", nil, anon)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthHTTP_Refresh(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register",
		transport.RegisterRequest{Username: "alice", Password: "s3cret"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/auth/login",
		transport.LoginRequest{Username: "alice", Password: "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code)
	refresh := responseCookie(t, rec, "refreshToken")

	rec = env.do(t, http.MethodPost, "/api/auth/refresh", nil, refresh)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rotated := responseCookie(t, rec, "refreshToken")
	assert.NotEqual(t, refresh.Value, rotated.Value)

	// the old refresh token was revoked on rotation
	rec = env.do(t, http.MethodPost, "/api/auth/refresh", nil, refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
