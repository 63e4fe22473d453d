package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vmakarenko/storefront-api/internal/hash"
	"github.com/vmakarenko/storefront-api/internal/httpserver"
	"github.com/vmakarenko/storefront-api/internal/images"
	"github.com/vmakarenko/storefront-api/internal/models"
	"github.com/vmakarenko/storefront-api/internal/repo"
	"github.com/vmakarenko/storefront-api/internal/service"
)

var (
	testJWTSecret     = []byte("test-jwt-secret")
	testRefreshSecret = []byte("test-refresh-secret")
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderDetail{},
	))

	imageStore, err := images.NewStore(t.TempDir())
	require.NoError(t, err)

	r := &repo.GormRepo{DB: db}
	deps := &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{
				Repo:          r,
				JWTSecret:     testJWTSecret,
				RefreshSecret: testRefreshSecret,
			},
		},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: r}},
		OrderHandler:   &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r}},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: r}, Images: imageStore},
		AnalyticsHandler: &httpserver.AnalyticsHTTP{
			Svc: &service.AnalyticsService{Repo: r},
		},
		JWTSecret: testJWTSecret,
	}

	e := echo.New()
	httpserver.Register(e, deps)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doMultipart(method, path, token string, fields map[string]string, fileField, fileName string, fileData []byte) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(env.T, err)
		_, err = io.Copy(fw, bytes.NewReader(fileData))
		require.NoError(env.T, err)
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) login(username, password string) string {
	env.T.Helper()

	creds := map[string]string{"username": username, "password": password}

	rec := env.do(http.MethodPost, "/api/v1/register", "", creds)
	require.Equal(env.T, http.StatusCreated, rec.Code)

	return env.loginExisting(username, password)
}

func (env *testEnv) loginExisting(username, password string) string {
	env.T.Helper()

	creds := map[string]string{"username": username, "password": password}
	rec := env.do(http.MethodPost, "/api/v1/login", "", creds)
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.AccessToken)
	return resp.AccessToken
}

func (env *testEnv) loginAdmin() string {
	env.T.Helper()

	hashed, err := hash.HashPassword("admin_password")
	require.NoError(env.T, err)
	admin := models.User{Username: "admin", PasswordHash: hashed, Role: "admin"}
	require.NoError(env.T, env.DB.Create(&admin).Error)

	return env.loginExisting("admin", "admin_password")
}

func (env *testEnv) createProduct(name string, price float64, stock uint) models.Product {
	env.T.Helper()

	p := models.Product{Name: name, Description: name + " description", Price: price, Stock: stock}
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
