package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bdmarket/storefront/internal/buyer"
	"github.com/bdmarket/storefront/internal/models"
	"github.com/bdmarket/storefront/internal/repo"
	"github.com/bdmarket/storefront/internal/service"
	"github.com/bdmarket/storefront/internal/tokens"
	"github.com/bdmarket/storefront/internal/uricomposer"
)

var dbSeq atomic.Int64

var (
	testJWTSecret     = []byte("http-test-jwt-secret")
	testRefreshSecret = []byte("http-test-refresh-secret")
)

type testEnv struct {
	e     *echo.Echo
	repo  *repo.GormRepo
	items []models.CatalogItem
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:storefront_http_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	r := &repo.GormRepo{DB: db}

	composer := uricomposer.New("http://cdn.test")
	baskets := &service.BasketService{Repo: r}
	view := &service.BasketViewService{Repo: r, Composer: composer}
	catalog := &service.CatalogService{Repo: r}
	orders := &service.OrderService{Repo: r, Composer: composer}
	auth := &service.AuthService{Repo: r, JWTSecret: testJWTSecret, RefreshSecret: testRefreshSecret}

	e := echo.New()
	Register(e, &Deps{
		Buyer:   &buyer.Resolver{JWTSecret: testJWTSecret},
		Basket:  &BasketHTTP{Svc: baskets, Catalog: catalog, View: view},
		Order:   &OrderHTTP{Svc: orders},
		Catalog: &CatalogHTTP{Svc: catalog},
		Auth:    &AuthHTTP{Svc: auth, Baskets: baskets},
	})

	env := &testEnv{e: e, repo: r}
	env.seedCatalog(t)
	return env
}

func (env *testEnv) seedCatalog(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	brand := models.CatalogBrand{Brand: "Acme"}
	typ := models.CatalogType{Type: "Mug"}
	require.NoError(t, env.repo.DB.Create(&brand).Error)
	require.NoError(t, env.repo.DB.Create(&typ).Error)

	env.items = []models.CatalogItem{
		{Name: "Acme Mug", Description: "A mug", Price: 10.00, PictureURI: "images/1.png", CatalogBrandID: brand.ID, CatalogTypeID: typ.ID},
		{Name: "Acme Shirt", Description: "A shirt", Price: 19.50, PictureURI: "images/2.png", CatalogBrandID: brand.ID, CatalogTypeID: typ.ID},
	}
	for i := range env.items {
		require.NoError(t, env.repo.CreateCatalogItem(ctx, &env.items[i]))
	}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func buyerCookie(key string) *http.Cookie {
	return &http.Cookie{Name: buyer.CookieName, Value: key}
}

// accessCookie mints a valid access token directly, bypassing the login flow.
func accessCookie(t *testing.T, username, role string) *http.Cookie {
	t.Helper()
	token, err := tokens.CreateAccessToken(testJWTSecret, "1", username, role, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return &http.Cookie{Name: buyer.AccessCookieName, Value: token}
}

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set in response", name)
	return nil
}
