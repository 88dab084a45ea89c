package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/mytheresa/go-storefront/app/api"
	"github.com/mytheresa/go-storefront/models"
)

type Response struct {
	Message        string  `json:"message"`
	Total          float64 `json:"total"`
	FormattedTotal string  `json:"formatted_total"`
	ItemCount      int     `json:"item_count"`
}

type CheckoutProvider interface {
	Checkout(ctx context.Context) (*Receipt, error)
}

type CheckoutHandler struct {
	service CheckoutProvider
}

func NewCheckoutHandler(s CheckoutProvider) *CheckoutHandler {
	return &CheckoutHandler{service: s}
}

func (h *CheckoutHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /checkout", h.HandleCheckout)
}

func (h *CheckoutHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.service.Checkout(r.Context())
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) {
			api.ErrorResponse(w, http.StatusConflict, "El carrito está vacío")
			return
		}
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to complete checkout")
		return
	}

	api.OKResponse(w, Response{
		Message:        receipt.Message,
		Total:          receipt.Total.InexactFloat64(),
		FormattedTotal: receipt.FormattedTotal,
		ItemCount:      receipt.ItemCount,
	})
}
