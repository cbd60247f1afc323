package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/khata/internal/adapter/http/handler"
	apimiddleware "github.com/iho/khata/internal/adapter/http/middleware"
	redisrepo "github.com/iho/khata/internal/adapter/repository/redis"
	"github.com/iho/khata/internal/infrastructure/metrics"
	"github.com/iho/khata/internal/usecase"
	"github.com/iho/khata/internal/usecase/mocks"
)

var routerNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	store := mocks.NewMemoryStore()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg)
	clock := mocks.FixedClock{Time: routerNow}

	transactionUC := usecase.NewTransactionUseCase(
		store.TxManager, store.Customers, store.Transactions,
		mocks.PassthroughRetrier{}, &mocks.SequentialIDGenerator{Prefix: "tx"}, clock, m, zerolog.Nop(),
	)

	cfg := RouterConfig{
		CustomerHandler:    handler.NewCustomerHandler(usecase.NewCustomerUseCase(store.Customers, &mocks.SequentialIDGenerator{Prefix: "cust"}, clock, m)),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		ReminderHandler:    handler.NewReminderHandler(usecase.NewReminderUseCase(store.Reminders, &mocks.SequentialIDGenerator{Prefix: "rem"}, clock, m)),
		SummaryHandler:     handler.NewSummaryHandler(usecase.NewSummaryUseCase(store.Customers, store.Transactions, clock, m)),
		LedgerHandler:      handler.NewLedgerHandler(usecase.NewLedgerUseCase(store.TxManager, store.Customers, store.Transactions, clock, m)),
		HealthHandler:      handler.NewHealthHandler(nil, nil),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		HTTPMetrics:        apimiddleware.NewHTTPMetrics(reg),
		Logger:             zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := do(t, router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/customers/",
		"GET /api/v1/customers/",
		"GET /api/v1/customers/{id}",
		"GET /api/v1/customers/{id}/transactions",
		"POST /api/v1/transactions/",
		"GET /api/v1/transactions/",
		"POST /api/v1/reminders/",
		"GET /api/v1/reminders/",
		"POST /api/v1/reminders/{id}/complete",
		"GET /api/v1/summary",
		"GET /api/v1/ledger/consistency",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_CreditAndPaymentFlow(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := do(t, router, http.MethodPost, "/api/v1/customers", `{"id":"c1","name":"Ravi"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/v1/transactions", `{"type":"GIVE_CREDIT","amount":"100","customer_id":"c1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	tx := body["transaction"].(map[string]any)
	assert.Equal(t, "tx-1", tx["id"])
	assert.Equal(t, "2024-03-15", tx["date"])

	rec = do(t, router, http.MethodPost, "/api/v1/transactions", `{"type":"PAYMENT_RECEIVED","amount":40,"customer_id":"c1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v1/customers/c1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	customer := decode(t, rec)
	assert.Equal(t, "60", customer["balance"])
	assert.Equal(t, "2024-03-15", customer["last_transaction_date"])

	rec = do(t, router, http.MethodPost, "/api/v1/transactions", `{"type":"EXPENSE","amount":"25.50"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v1/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode(t, rec)
	assert.Equal(t, "25.5", summary["today_expense"])
	assert.Equal(t, "60", summary["total_receivable"])
	assert.Equal(t, "0", summary["total_payable"])

	rec = do(t, router, http.MethodGet, "/api/v1/customers/c1/transactions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["total"])

	rec = do(t, router, http.MethodGet, "/api/v1/ledger/consistency", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["consistent"])
}

func TestNewRouter_FailuresLeaveNoPartialState(t *testing.T) {
	router := NewRouter(newRouterConfig())

	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/customers", `{"id":"c1","name":"Ravi"}`).Code)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/transactions", `{"id":"t1","type":"GIVE_CREDIT","amount":"10","customer_id":"c1"}`).Code)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"unknown customer", `{"type":"GIVE_CREDIT","amount":"5","customer_id":"ghost"}`, http.StatusNotFound},
		{"duplicate id", `{"id":"t1","type":"GIVE_CREDIT","amount":"10","customer_id":"c1"}`, http.StatusConflict},
		{"negative amount", `{"type":"GIVE_CREDIT","amount":"-5","customer_id":"c1"}`, http.StatusBadRequest},
		{"bad type", `{"type":"give credit","amount":"5","customer_id":"c1"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/v1/transactions", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode(t, rec)["error"])
		})
	}

	customer := decode(t, do(t, router, http.MethodGet, "/api/v1/customers/c1", ""))
	assert.Equal(t, "10", customer["balance"])
	assert.EqualValues(t, 1, decode(t, do(t, router, http.MethodGet, "/api/v1/transactions", ""))["total"])
}

func TestNewRouter_ReminderLifecycle(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := do(t, router, http.MethodPost, "/api/v1/reminders", `{"id":"r1","title":"Collect","date":"2024-03-10","type":"COLLECTION"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reminder := decode(t, rec)
	assert.Equal(t, "UPCOMING", reminder["status"])
	assert.Equal(t, "OVERDUE", reminder["effective_status"])

	rec = do(t, router, http.MethodPost, "/api/v1/reminders/r1/complete", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "COMPLETED", decode(t, rec)["effective_status"])

	rec = do(t, router, http.MethodPost, "/api/v1/reminders/missing/complete", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewRouter_IdempotencyKeyReplaysTransaction(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = redisrepo.NewIdempotencyStore(client)
		cfg.IdempotencyTTL = time.Hour
	}))

	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/customers", `{"id":"c1","name":"Ravi"}`).Code)

	body := `{"type":"GIVE_CREDIT","amount":"100","customer_id":"c1"}`
	first := do(t, router, http.MethodPost, "/api/v1/transactions", body, apimiddleware.IdempotencyKeyHeader, "abc")
	second := do(t, router, http.MethodPost, "/api/v1/transactions", body, apimiddleware.IdempotencyKeyHeader, "abc")

	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(apimiddleware.IdempotencyReplayHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	customer := decode(t, do(t, router, http.MethodGet, "/api/v1/customers/c1", ""))
	assert.Equal(t, "100", customer["balance"])
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.CORSAllowedOrigins = []string{"https://khata.example"}
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/transactions", nil)
	req.Header.Set("Origin", "https://khata.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://khata.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	router := NewRouter(newRouterConfig())

	do(t, router, http.MethodGet, "/api/v1/summary", "")
	rec := do(t, router, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "khata_total_receivable")
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/api/v1/summary",status="200"}`)
}
