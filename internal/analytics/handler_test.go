package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) chi.Router {
	t.Helper()
	svc, _ := newStubService(t, nil, sampleLog(3))
	r := chi.NewRouter()
	r.Route("/dashboard", NewHandler(nil, svc).MountRoutes)
	return r
}

func TestDashboardEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard?period=30d", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var dash Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	require.Equal(t, Period30D, dash.Period)
	require.Equal(t, 3, dash.Summary.SaleCount)
}

func TestDashboardSectionEndpoints(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var summary Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, 3, summary.SaleCount)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/profitability", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var perf []ProductPerformance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &perf))
	require.Len(t, perf, 1)
	require.Equal(t, "Burger", perf[0].Name)
}

func TestDashboardRejectsUnknownPeriod(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard?period=90d", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "period must be one of")
}
