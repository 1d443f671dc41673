package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/repository"
)

func intPtr(v int64) *int64 {
	return &v
}

func newProductsRouter(reader ProductReader) *chi.Mux {
	handler := NewProductsHandler(reader, 5*time.Second, testLogger())
	r := chi.NewRouter()
	r.Get("/products", handler.List)
	r.Get("/products/{product_id}", handler.Get)
	return r
}

func TestProductsList(t *testing.T) {
	reader := &mockProductReader{
		listFn: func(ctx context.Context) ([]*domain.Product, error) {
			return []*domain.Product{
				{ID: 1, Name: "Kopi Susu Riyadh", Category: "Coffee", Price: dec("20000"), Stock: intPtr(5)},
				{ID: 2, Name: "Manual Brew V60", Category: "Coffee", Price: dec("25000")},
			}, nil
		},
	}
	router := newProductsRouter(reader)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].([]any)
	require.Len(t, data, 2)

	tracked := data[0].(map[string]any)
	assert.Equal(t, float64(5), tracked["stock"])

	// null stock means the product never sells out
	unlimited := data[1].(map[string]any)
	assert.Nil(t, unlimited["stock"])
}

func TestProductsGet(t *testing.T) {
	reader := &mockProductReader{
		getFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			if id == 1 {
				return &domain.Product{ID: 1, Name: "Kopi Susu Riyadh", Category: "Coffee", Price: dec("20000"), Stock: intPtr(5)}, nil
			}
			return nil, repository.ErrProductNotFound
		},
	}
	router := newProductsRouter(reader)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeEnvelope(t, rec)
		data := body["data"].(map[string]any)
		assert.Equal(t, "Kopi Susu Riyadh", data["name"])
		assert.Equal(t, "20000", data["price"])
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/999", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/latte", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
