package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driverpay/internal/config"
	"driverpay/internal/domain"
	"driverpay/internal/handler"
	"driverpay/internal/service"
	"driverpay/internal/tests"
)

type testServer struct {
	router *gin.Engine
	store  *tests.MockStore
}

func newTestServer(t *testing.T, checks map[string]handler.HealthCheck) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := tests.NewMockStore()
	cache := tests.NewMockCacheStore()
	driverService := service.NewDriverService(store, cache, tests.NewMockLockStore())
	tripService := service.NewTripService(store, driverService, cache)

	router := NewRouter(RouterDeps{
		DriverHandler:     handler.NewDriverHandler(driverService),
		TripHandler:       handler.NewTripHandler(tripService),
		SettlementHandler: handler.NewSettlementHandler(service.NewSettlementService(store, cache)),
		DashboardHandler:  handler.NewDashboardHandler(service.NewDashboardService(store, cache)),
		HealthHandler:     handler.NewHealthHandler(checks),
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
			OriginPatterns: []string{"https://driver-payment-system*.vercel.app"},
		},
	})

	return &testServer{router: router, store: store}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRouter_Banner(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Driver Payment System API is running", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_Health(t *testing.T) {
	healthy := newTestServer(t, map[string]handler.HealthCheck{
		"postgres": func(context.Context) error { return nil },
	})
	w := healthy.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	degraded := newTestServer(t, map[string]handler.HealthCheck{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	w = degraded.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "degraded", body["status"])
}

func TestRouter_DriverLifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/drivers", `{"name":"Ravi","vehicleNumber":"TN-09-1234","paymentPreference":"BOTH"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[handler.DriverResponse](t, w)
	assert.Equal(t, "Ravi", created.Name)
	assert.Equal(t, "BOTH", created.PaymentPreference)
	assert.NotEmpty(t, created.ID)

	w = s.do(t, http.MethodGet, "/api/drivers", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]handler.DriverResponse](t, w), 1)

	w = s.do(t, http.MethodGet, "/api/drivers/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPut, "/api/drivers/"+created.ID, `{"paymentPreference":"SALARY"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "SALARY", decode[handler.DriverResponse](t, w).PaymentPreference)

	w = s.do(t, http.MethodDelete, "/api/drivers/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/drivers/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CreateDriverValidation(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/drivers", `{"name":"Ravi","paymentPreference":"WEEKLY"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[handler.ErrorResponse](t, w)
	assert.Contains(t, body.Fields, "vehicleNumber")
	assert.Contains(t, body.Fields, "paymentPreference")
}

func TestRouter_TripAndSettlementFlow(t *testing.T) {
	s := newTestServer(t, nil)
	s.store.AddDriver(&domain.Driver{
		ID: "d1", Name: "Ravi", VehicleNumber: "TN-09-1234",
		PaymentPreference: domain.PaymentPreferenceBoth, CreatedAt: time.Now().UTC(),
	})

	// Amounts arrive as form strings from the dashboard client.
	w := s.do(t, http.MethodPost, "/api/trips",
		`{"driverId":"d1","pickupPoint":"Chennai","destination":"Madurai","battaAmount":"500","salaryAmount":"700","totalAmount":""}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	trip := decode[handler.TripResponse](t, w)
	assert.Equal(t, "Chennai -> Madurai", trip.Route)
	assert.Equal(t, 1200.0, trip.TotalAmount)

	w = s.do(t, http.MethodGet, "/api/settlements?status=PENDING", "")
	require.Equal(t, http.StatusOK, w.Code)
	pending := decode[[]handler.SettlementResponse](t, w)
	require.Len(t, pending, 2)

	var battaID string
	for _, p := range pending {
		if p.Type == "BATTA" {
			battaID = p.ID
		}
	}
	require.NotEmpty(t, battaID)

	w = s.do(t, http.MethodPut, "/api/settlements/"+battaID+"/pay", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	paid := decode[handler.SettlementResponse](t, w)
	assert.Equal(t, "PAID", paid.Status)
	assert.NotEmpty(t, paid.PaidAt)

	w = s.do(t, http.MethodPut, "/api/settlements/"+battaID+"/pay", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/settlements?status=PENDING", "")
	require.Equal(t, http.StatusOK, w.Code)
	pending = decode[[]handler.SettlementResponse](t, w)
	require.Len(t, pending, 1)
	assert.Equal(t, "SALARY", pending[0].Type)
	assert.NotEqual(t, battaID, pending[0].ID)

	w = s.do(t, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]handler.SettlementResponse](t, w)
	require.Len(t, history, 1)
	assert.Equal(t, battaID, history[0].ID)

	w = s.do(t, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	dashboard := decode[handler.DashboardResponse](t, w)
	assert.Equal(t, 1, dashboard.TotalDrivers)
	assert.Equal(t, 1, dashboard.TotalTrips)
	assert.Equal(t, 700.0, dashboard.TotalPendingAmount)
	assert.Equal(t, 500.0, dashboard.TotalPaidAmount)
	assert.Len(t, dashboard.RecentTrips, 1)

	w = s.do(t, http.MethodDelete, "/api/drivers/d1", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRouter_TripErrors(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/trips", `{"driverId":"ghost","pickupPoint":"A","destination":"B","totalAmount":10}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/trips", `{"driverId":"d1","pickupPoint":"A","destination":"B","totalAmount":"ten"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/settlements/missing/pay", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/settlements?type=BONUS", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_EmptyCollectionsAreArrays(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/api/drivers", "/api/trips", "/api/settlements", "/api/history"} {
		w := s.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, "[]", w.Body.String(), path)
	}
}

func TestRouter_CORS(t *testing.T) {
	s := newTestServer(t, nil)

	cases := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:5173", true},
		{"https://driver-payment-system-git-main.vercel.app", true},
		{"https://driver-payment-system.vercel.app", true},
		{"https://evil.example.com", false},
	}

	for _, tt := range cases {
		req := httptest.NewRequest(http.MethodOptions, "/api/drivers", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		if tt.allowed {
			assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"), tt.origin)
		} else {
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), tt.origin)
		}
	}
}
