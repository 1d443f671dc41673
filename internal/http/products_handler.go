package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/saifulohyr/riyadh-coffee-pos/internal/domain"
	"github.com/saifulohyr/riyadh-coffee-pos/internal/repository"
)

// ProductReader is the catalog read surface. Admin CRUD is out of scope.
type ProductReader interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}

type ProductsHandler struct {
	reader  ProductReader
	timeout time.Duration
	log     *logrus.Logger
}

func NewProductsHandler(reader ProductReader, timeout time.Duration, log *logrus.Logger) *ProductsHandler {
	return &ProductsHandler{
		reader:  reader,
		timeout: timeout,
		log:     log,
	}
}

type ProductResponseDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       *int64          `json:"stock"`
	Description string          `json:"description,omitempty"`
}

// GET /api/v1/products
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.reader.ListProducts(ctx)
	if err != nil {
		h.log.WithError(err).Error("failed to list products")
		respondError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	dtos := make([]ProductResponseDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, convertProduct(p))
	}
	respondData(w, http.StatusOK, dtos)
}

// GET /api/v1/products/{product_id}
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.reader.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("failed to fetch product")
		respondError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	respondData(w, http.StatusOK, convertProduct(product))
}

func convertProduct(p *domain.Product) ProductResponseDTO {
	return ProductResponseDTO{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
	}
}
