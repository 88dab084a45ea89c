package cart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mytheresa/go-storefront/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// --- Mock Cart ---

type MockCart struct {
	SourceItems []Item
	Err         error

	// Fields to capture call arguments
	lastCode     string
	lastQuantity int
	addCalled    bool
	setCalled    bool
	clearCalled  bool
}

func (m *MockCart) View() View {
	total := decimal.Zero
	for _, it := range m.SourceItems {
		total = total.Add(it.Subtotal)
	}
	return View{Items: m.SourceItems, Total: total, ItemCount: m.ItemCount()}
}

func (m *MockCart) ItemCount() int {
	n := 0
	for _, it := range m.SourceItems {
		n += it.Quantity
	}
	return n
}

func (m *MockCart) AddQuantity(_ context.Context, code string, delta int) error {
	m.addCalled = true
	m.lastCode = code
	m.lastQuantity = delta
	return m.Err
}

func (m *MockCart) SetQuantity(_ context.Context, code string, quantity int) error {
	m.setCalled = true
	m.lastCode = code
	m.lastQuantity = quantity
	return m.Err
}

func (m *MockCart) Clear(context.Context) error {
	m.clearCalled = true
	return m.Err
}

// --- Helpers ---

func newTestItem(code, name string, price int64, quantity int) Item {
	p := decimal.NewFromInt(price)
	return Item{
		Product:  models.Product{Code: code, Name: name, Price: p},
		Quantity: quantity,
		Subtotal: p.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var errResp map[string]string
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	return errResp["error"]
}

// --- Tests ---

func TestHandleGet(t *testing.T) {
	mockCart := &MockCart{SourceItems: []Item{
		newTestItem("T1", "Teclado", 55000, 2),
		newTestItem("MO1", "Mouse", 40000, 1),
	}}
	handler := NewCartHandler(mockCart)
	rec := httptest.NewRecorder()

	handler.HandleGet(rec, httptest.NewRequest("GET", "/cart", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "T1", resp.Items[0].Code)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 110000.0, resp.Items[0].Subtotal)
	assert.Equal(t, 150000.0, resp.Total)
	assert.Equal(t, "$150.000", resp.FormattedTotal)
	assert.Equal(t, 3, resp.ItemCount)
}

func TestHandleGetEmptyCart(t *testing.T) {
	handler := NewCartHandler(&MockCart{})
	rec := httptest.NewRecorder()

	handler.HandleGet(rec, httptest.NewRequest("GET", "/cart", nil))

	assert.JSONEq(t, `{"items":[],"total":0,"formatted_total":"$0","item_count":0}`, rec.Body.String())
}

func TestHandleBadge(t *testing.T) {
	handler := NewCartHandler(&MockCart{SourceItems: []Item{newTestItem("T1", "Teclado", 55000, 4)}})
	rec := httptest.NewRecorder()

	handler.HandleBadge(rec, httptest.NewRequest("GET", "/cart/badge", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":4}`, rec.Body.String())
}

func TestHandleAdd(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		mockErr            error
		expectedStatusCode int
		expectedError      string
		checkCall          func(t *testing.T, m *MockCart)
	}{
		{
			name:               "Defaults to one unit",
			requestBody:        `{"code":"t1"}`,
			expectedStatusCode: http.StatusOK,
			checkCall: func(t *testing.T, m *MockCart) {
				assert.Equal(t, "t1", m.lastCode)
				assert.Equal(t, 1, m.lastQuantity)
			},
		},
		{
			name:               "Explicit quantity",
			requestBody:        `{"code":"M1","quantity":3}`,
			expectedStatusCode: http.StatusOK,
			checkCall: func(t *testing.T, m *MockCart) {
				assert.Equal(t, 3, m.lastQuantity)
			},
		},
		{
			name:               "Negative quantity is passed through",
			requestBody:        `{"code":"M1","quantity":-1}`,
			expectedStatusCode: http.StatusOK,
			checkCall: func(t *testing.T, m *MockCart) {
				assert.Equal(t, -1, m.lastQuantity)
			},
		},
		{
			name:               "Fractional quantity is rejected",
			requestBody:        `{"code":"M1","quantity":1.5}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid JSON body",
			checkCall: func(t *testing.T, m *MockCart) {
				assert.False(t, m.addCalled)
			},
		},
		{
			name:               "Invalid JSON body",
			requestBody:        `{invalid`,
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid JSON body",
		},
		{
			name:               "Product not found",
			requestBody:        `{"code":"ZZ9"}`,
			mockErr:            models.ErrProductNotFound,
			expectedStatusCode: http.StatusNotFound,
			expectedError:      "Product not found",
		},
		{
			name:               "Quantity above the line limit",
			requestBody:        `{"code":"T1","quantity":9223372036854775807}`,
			mockErr:            models.ErrInvalidQuantity,
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid quantity",
		},
		{
			name:               "Store failure",
			requestBody:        `{"code":"T1"}`,
			mockErr:            errors.New("quota exceeded"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedError:      "Failed to update cart",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockCart := &MockCart{Err: tc.mockErr}
			handler := NewCartHandler(mockCart)
			req := httptest.NewRequest("POST", "/cart/items", strings.NewReader(tc.requestBody))
			rec := httptest.NewRecorder()

			// Act
			handler.HandleAdd(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, decodeError(t, rec))
			}
			if tc.checkCall != nil {
				tc.checkCall(t, mockCart)
			}
		})
	}
}

func TestHandleSetQuantity(t *testing.T) {
	testCases := []struct {
		name               string
		code               string
		requestBody        string
		mockErr            error
		expectedStatusCode int
		expectedError      string
	}{
		{name: "Sets quantity", code: "T1", requestBody: `{"quantity":2}`, expectedStatusCode: http.StatusOK},
		{name: "Zero quantity", code: "T1", requestBody: `{"quantity":0}`, expectedStatusCode: http.StatusOK},
		{name: "Missing quantity", code: "T1", requestBody: `{}`, expectedStatusCode: http.StatusBadRequest, expectedError: "Missing quantity"},
		{name: "Invalid JSON body", code: "T1", requestBody: `nope`, expectedStatusCode: http.StatusBadRequest, expectedError: "Invalid JSON body"},
		{name: "Quantity above the line limit", code: "T1", requestBody: `{"quantity":9223372036854775807}`, mockErr: models.ErrInvalidQuantity, expectedStatusCode: http.StatusBadRequest, expectedError: "Invalid quantity"},
		{name: "Store failure", code: "T1", requestBody: `{"quantity":2}`, mockErr: errors.New("boom"), expectedStatusCode: http.StatusInternalServerError, expectedError: "Failed to update cart"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockCart := &MockCart{Err: tc.mockErr}
			handler := NewCartHandler(mockCart)
			req := httptest.NewRequest("PUT", "/cart/items/"+tc.code, strings.NewReader(tc.requestBody))
			req.SetPathValue("code", tc.code)
			rec := httptest.NewRecorder()

			handler.HandleSetQuantity(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, decodeError(t, rec))
				return
			}
			assert.True(t, mockCart.setCalled)
			assert.Equal(t, tc.code, mockCart.lastCode)
		})
	}
}

func TestHandleClear(t *testing.T) {
	mockCart := &MockCart{}
	handler := NewCartHandler(mockCart)
	rec := httptest.NewRecorder()

	handler.HandleClear(rec, httptest.NewRequest("DELETE", "/cart", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, mockCart.clearCalled)

	failing := NewCartHandler(&MockCart{Err: errors.New("boom")})
	rec = httptest.NewRecorder()
	failing.HandleClear(rec, httptest.NewRequest("DELETE", "/cart", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to clear cart", decodeError(t, rec))
}

func TestRoutesAgainstRealCart(t *testing.T) {
	c, _ := newTestCart(t)
	mux := http.NewServeMux()
	NewCartHandler(c).RegisterRoutes(mux)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rec
	}

	rec := do("POST", "/cart/items", `{"code":"t1","quantity":2}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do("GET", "/cart/badge", "")
	assert.JSONEq(t, `{"count":2}`, rec.Body.String())

	rec = do("POST", "/cart/items", `{"code":"T1","quantity":9223372036854775807}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do("GET", "/cart/badge", "")
	assert.JSONEq(t, `{"count":2}`, rec.Body.String())

	rec = do("PUT", "/cart/items/T1", `{"quantity":1}`)
	var resp Response
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "$55.000", resp.FormattedTotal)

	rec = do("DELETE", "/cart", "")
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 0, resp.ItemCount)
	assert.Empty(t, resp.Items)
}
