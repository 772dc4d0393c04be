package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(seed ...Product) http.Handler {
	handler := NewHandler(nil, NewService(NewMemoryRepository(seed)))
	r := chi.NewRouter()
	r.Route("/products", handler.MountRoutes)
	return r
}

func TestHandlerCreateAndGet(t *testing.T) {
	router := newTestRouter()

	body := `{"name":"Iced Tea","category":"Drinks","price":3.5,"cost":0.9,"stock":40,"imageUrl":"https://img/1.jpg"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, "Iced Tea", created.Name)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerValidationFailures(t *testing.T) {
	router := newTestRouter()

	cases := map[string]string{
		"missing name":   `{"category":"Drinks","price":3.5,"cost":0.9,"stock":1}`,
		"negative price": `{"name":"Tea","category":"Drinks","price":-1,"cost":0.9,"stock":1}`,
		"negative stock": `{"name":"Tea","category":"Drinks","price":1,"cost":0.9,"stock":-5}`,
		"unknown field":  `{"name":"Tea","category":"Drinks","price":1,"cost":0.9,"stock":1,"sku":"X"}`,
		"malformed body": `{"name":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandlerGetUnknownID(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/99", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/not-a-number", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerUpdate(t *testing.T) {
	router := newTestRouter(Product{ID: 1, Name: "Latte", Category: "Drinks", Price: 4, Cost: 1.2, Stock: 10})

	body := `{"name":"Latte","category":"Drinks","price":4.5,"cost":1.2,"stock":12}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/products/1", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.InDelta(t, 4.5, updated.Price, 1e-9)
	require.Equal(t, 12, updated.Stock)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/products/42", strings.NewReader(body)))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExportCSV(t *testing.T) {
	router := newTestRouter(
		Product{ID: 1, Name: "Latte", Category: "Drinks", Price: 4, Cost: 1.2, Stock: 10},
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "products_")
	require.Contains(t, rec.Body.String(), "id,name,category,price,cost,stock\r\n")
	require.Contains(t, rec.Body.String(), "1,Latte,Drinks,4.00,1.20,10\r\n")
}

func TestHandlerExportEmptyCatalog(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, rec.Body.Len())
}
