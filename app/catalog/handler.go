package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mytheresa/go-storefront/app/api"
	"github.com/mytheresa/go-storefront/app/money"
	"github.com/mytheresa/go-storefront/models"
	"github.com/shopspring/decimal"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Product struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	FormattedPrice string  `json:"formatted_price"`
}

type ProductProvider interface {
	Products() []models.Product
	FindByCode(code string) (*models.Product, error)
	Add(ctx context.Context, code, name string, price decimal.Decimal) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /catalog", h.HandleGet)
	mux.HandleFunc("GET /catalog/{code}", h.HandleGetProduct)
	mux.HandleFunc("POST /catalog", h.HandleCreate)
}

func toProduct(p models.Product) Product {
	return Product{
		Code:           p.Code,
		Name:           p.Name,
		Price:          p.Price.InexactFloat64(),
		FormattedPrice: money.Format(p.Price),
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	var priceFilter *decimal.Decimal
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := decimal.NewFromString(priceStr); err == nil {
			priceFilter = &val
		}
	}

	filtered := make([]models.Product, 0)
	for _, p := range h.repo.Products() {
		if priceFilter != nil && !p.Price.LessThan(*priceFilter) {
			continue
		}
		filtered = append(filtered, p)
	}

	start := min(offset, len(filtered))
	end := min(start+limit, len(filtered))

	products := make([]Product, 0, end-start)
	for _, p := range filtered[start:end] {
		products = append(products, toProduct(p))
	}

	api.OKResponse(w, Response{
		Total:    len(filtered),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	product, err := h.repo.FindByCode(code)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.ErrorResponse(w, http.StatusNotFound, "Product not found")
			return
		}
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	api.OKResponse(w, toProduct(*product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code  string          `json:"code"`
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	product, err := h.repo.Add(r.Context(), input.Code, input.Name, input.Price)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateOrInvalidProduct) {
			api.ErrorResponse(w, http.StatusConflict, "Invalid or duplicate product code")
			return
		}
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	api.JSONResponse(w, http.StatusCreated, toProduct(*product))
}
