package cart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mytheresa/go-storefront/app/api"
	"github.com/mytheresa/go-storefront/app/money"
	"github.com/mytheresa/go-storefront/models"
)

type Response struct {
	Items          []ItemResponse `json:"items"`
	Total          float64        `json:"total"`
	FormattedTotal string         `json:"formatted_total"`
	ItemCount      int            `json:"item_count"`
}

type ItemResponse struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

type BadgeResponse struct {
	Count int `json:"count"`
}

type CartService interface {
	View() View
	ItemCount() int
	AddQuantity(ctx context.Context, code string, delta int) error
	SetQuantity(ctx context.Context, code string, quantity int) error
	Clear(ctx context.Context) error
}

type CartHandler struct {
	cart CartService
}

func NewCartHandler(c CartService) *CartHandler {
	return &CartHandler{cart: c}
}

func (h *CartHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /cart", h.HandleGet)
	mux.HandleFunc("GET /cart/badge", h.HandleBadge)
	mux.HandleFunc("POST /cart/items", h.HandleAdd)
	mux.HandleFunc("PUT /cart/items/{code}", h.HandleSetQuantity)
	mux.HandleFunc("DELETE /cart", h.HandleClear)
}

func (h *CartHandler) writeCart(w http.ResponseWriter) {
	view := h.cart.View()
	response := Response{
		Items:          make([]ItemResponse, len(view.Items)),
		Total:          view.Total.InexactFloat64(),
		FormattedTotal: money.Format(view.Total),
		ItemCount:      view.ItemCount,
	}
	for i, it := range view.Items {
		response.Items[i] = ItemResponse{
			Code:     it.Product.Code,
			Name:     it.Product.Name,
			Quantity: it.Quantity,
			Price:    it.Product.Price.InexactFloat64(),
			Subtotal: it.Subtotal.InexactFloat64(),
		}
	}
	api.OKResponse(w, response)
}

func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w)
}

func (h *CartHandler) HandleBadge(w http.ResponseWriter, r *http.Request) {
	api.OKResponse(w, BadgeResponse{Count: h.cart.ItemCount()})
}

func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code     string `json:"code"`
		Quantity *int   `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	delta := 1
	if input.Quantity != nil {
		delta = *input.Quantity
	}

	if err := h.cart.AddQuantity(r.Context(), input.Code, delta); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.ErrorResponse(w, http.StatusNotFound, "Product not found")
			return
		}
		if errors.Is(err, models.ErrInvalidQuantity) {
			api.ErrorResponse(w, http.StatusBadRequest, "Invalid quantity")
			return
		}
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	h.writeCart(w)
}

func (h *CartHandler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Quantity *int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Quantity == nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing quantity")
		return
	}

	if err := h.cart.SetQuantity(r.Context(), r.PathValue("code"), *input.Quantity); err != nil {
		if errors.Is(err, models.ErrInvalidQuantity) {
			api.ErrorResponse(w, http.StatusBadRequest, "Invalid quantity")
			return
		}
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	h.writeCart(w)
}

func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	h.writeCart(w)
}
