package sales

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/easyeat-pos/easyeat/internal/catalog"
)

func newTestRouter(seed ...catalog.Product) (http.Handler, *catalog.MemoryRepository) {
	products := catalog.NewMemoryRepository(seed)
	catalogSvc := catalog.NewService(products)
	handler := NewHandler(nil, NewService(NewMemoryRepository(products, nil)), catalogSvc)
	r := chi.NewRouter()
	r.Route("/sales", handler.MountRoutes)
	return r, products
}

func TestHandlerCheckout(t *testing.T) {
	router, _ := newTestRouter(
		catalog.Product{ID: 1, Name: "Burger", Price: 8, Cost: 3, Stock: 10},
		catalog.Product{ID: 2, Name: "Fries", Price: 3, Cost: 1, Stock: 6},
	)

	body := `{"items":[{"productId":1,"quantity":2},{"productId":2,"quantity":1}],"paymentMethod":"Card"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales/checkout", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var sale Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sale))
	require.InDelta(t, 19, sale.Total, 1e-9)
	require.Len(t, sale.Items, 2)
	require.True(t, strings.HasPrefix(sale.ID, "sale-"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var log []Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &log))
	require.Len(t, log, 1)
}

func TestHandlerCheckoutInsufficientStock(t *testing.T) {
	router, _ := newTestRouter(catalog.Product{ID: 1, Name: "Burger", Price: 8, Stock: 1})

	body := `{"items":[{"productId":1,"quantity":5}],"paymentMethod":"Cash"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales/checkout", strings.NewReader(body)))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlerCheckoutUnknownProduct(t *testing.T) {
	router, _ := newTestRouter()

	body := `{"items":[{"productId":9,"quantity":1}],"paymentMethod":"Cash"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales/checkout", strings.NewReader(body)))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerCheckoutBadRequests(t *testing.T) {
	router, _ := newTestRouter(catalog.Product{ID: 1, Name: "Burger", Price: 8, Stock: 10})

	cases := map[string]string{
		"empty items":    `{"items":[],"paymentMethod":"Cash"}`,
		"zero quantity":  `{"items":[{"productId":1,"quantity":0}],"paymentMethod":"Cash"}`,
		"unknown tender": `{"items":[{"productId":1,"quantity":1}],"paymentMethod":"IOU"}`,
		"missing tender": `{"items":[{"productId":1,"quantity":1}]}`,
		"malformed body": `{"items":`,
		"unknown field":  `{"items":[{"productId":1,"quantity":1}],"paymentMethod":"Cash","tip":5}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales/checkout", strings.NewReader(body)))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandlerExportCSV(t *testing.T) {
	router, _ := newTestRouter(catalog.Product{ID: 1, Name: "Burger", Price: 8, Cost: 3, Stock: 10})

	body := `{"items":[{"productId":1,"quantity":2}],"paymentMethod":"Mobile Wallet"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales/checkout", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "id,date,paymentMethod,total,items\r\n")
	require.Contains(t, rec.Body.String(), "Mobile Wallet,16.00,2x Burger\r\n")
}
