package cli

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/splitledger/internal/api"
	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

// serverDeps is everything the HTTP surface is built from.
type serverDeps struct {
	store          *sqlite.SQLiteStore
	publisher      events.Publisher
	tokens         *auth.TokenIssuer
	bcryptCost     int
	metricsEnabled bool
}

// newHandler mounts the Connect services, /healthz and optionally /metrics.
func newHandler(deps serverDeps) http.Handler {
	mux := http.NewServeMux()

	interceptors := []connect.Interceptor{middleware.LoggingInterceptor(slog.Default())}
	if deps.metricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		interceptors = append(interceptors, middleware.NewMetrics(reg).Interceptor())
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	authenticator := auth.NewPasswordAuthenticator(deps.store)
	if deps.bcryptCost != 0 {
		authenticator = authenticator.WithCost(deps.bcryptCost)
	}
	authPath, authHandler := api.NewAuthServiceHandler(
		service.NewAuthService(authenticator, deps.tokens, slog.Default()),
		connect.WithInterceptors(interceptors...),
	)
	mux.Handle(authPath, authHandler)

	// Auth runs first so the logging interceptor sees the account.
	ledgerInterceptors := append([]connect.Interceptor{middleware.Authenticate(deps.tokens, true)}, interceptors...)
	ledgerPath, ledgerHandler := api.NewLedgerServiceHandler(
		service.NewLedgerService(deps.store, deps.publisher),
		connect.WithInterceptors(ledgerInterceptors...),
	)
	mux.Handle(ledgerPath, ledgerHandler)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return loggingMiddleware(corsMiddleware(mux))
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
