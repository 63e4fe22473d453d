package httpserver_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmakarenko/storefront-api/internal/models"
	"github.com/vmakarenko/storefront-api/internal/transport"
)

// pngHeader is enough for content sniffing to see image/png.
var pngHeader = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 64)...)

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("keyboard", 49.9, 10)

	rec := env.do(http.MethodGet, fmt.Sprintf("/api/v1/products/%d", p.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeJSON[models.Product](t, rec)
	require.Equal(t, p.ID, got.ID)
	require.Equal(t, "keyboard", got.Name)
	require.Equal(t, 49.9, got.Price)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/products/42", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductsPaginated(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 12; i++ {
		env.createProduct(fmt.Sprintf("product-%02d", i), float64(i), 1)
	}

	rec := env.do(http.MethodGet, "/api/v1/products?page=2&size=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeJSON[transport.ProductPage](t, rec)
	require.Len(t, page.Data, 5)
	require.Equal(t, "product-05", page.Data[0].Name)
	require.EqualValues(t, 12, page.Meta.Total)
	require.EqualValues(t, 3, page.Meta.TotalPages)
	require.True(t, page.Meta.HasPrev)
	require.True(t, page.Meta.HasNext)
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.login("alice", "password")

	fields := map[string]string{"name": "keyboard", "description": "d", "price": "10"}

	rec := env.doMultipart(http.MethodPost, "/api/v1/products", userToken, fields, "", "", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doMultipart(http.MethodPost, "/api/v1/products", "", fields, "", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProductWithImage(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginAdmin()

	fields := map[string]string{
		"name":        "keyboard",
		"description": "mechanical",
		"price":       "49.90",
		"stock":       "7",
	}
	rec := env.doMultipart(http.MethodPost, "/api/v1/products", adminToken, fields, "image", "kb.png", pngHeader)
	require.Equal(t, http.StatusCreated, rec.Code)

	prod := decodeJSON[models.Product](t, rec)
	require.Equal(t, "keyboard", prod.Name)
	require.Equal(t, 49.9, prod.Price)
	require.EqualValues(t, 7, prod.Stock)
	require.True(t, strings.HasPrefix(prod.ImageURL, "/uploads/"))
	require.True(t, strings.HasSuffix(prod.ImageURL, ".png"))
}

func TestCreateProductRejectsNonImageUpload(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginAdmin()

	fields := map[string]string{"name": "keyboard", "description": "d", "price": "10"}
	rec := env.doMultipart(http.MethodPost, "/api/v1/products", adminToken, fields, "image", "evil.html", []byte("<html><script>alert(1)</script></html>"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginAdmin()
	p := env.createProduct("keyboard", 49.9, 10)

	fields := map[string]string{
		"name":        "keyboard v2",
		"description": "updated",
		"price":       "59.90",
		"stock":       "3",
	}
	rec := env.doMultipart(http.MethodPut, fmt.Sprintf("/api/v1/products/%d", p.ID), adminToken, fields, "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeJSON[models.Product](t, rec)
	require.Equal(t, "keyboard v2", got.Name)
	require.Equal(t, 59.9, got.Price)
}

func TestUpdateProductIDMismatch(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginAdmin()
	p := env.createProduct("keyboard", 49.9, 10)

	fields := map[string]string{"id": "999", "name": "keyboard", "description": "d", "price": "10"}
	rec := env.doMultipart(http.MethodPut, fmt.Sprintf("/api/v1/products/%d", p.ID), adminToken, fields, "", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginAdmin()

	fields := map[string]string{"name": "keyboard", "description": "d", "price": "10"}
	rec := env.doMultipart(http.MethodPut, "/api/v1/products/42", adminToken, fields, "", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginAdmin()
	p := env.createProduct("keyboard", 49.9, 10)

	rec := env.do(http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", p.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", p.ID), adminToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
