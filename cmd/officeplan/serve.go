package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/officeplan/internal/auth"
	"github.com/mmynk/officeplan/internal/ledger"
	"github.com/mmynk/officeplan/internal/metrics"
	"github.com/mmynk/officeplan/internal/middleware"
	"github.com/mmynk/officeplan/internal/seed"
	"github.com/mmynk/officeplan/internal/service"
	"github.com/mmynk/officeplan/internal/storage"
	"github.com/mmynk/officeplan/pkg/api"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the attendance server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer backend.Close()
	store := storage.WithTimeout(backend, cfg.StoreTimeout)

	data, err := seed.Load(cfg.SeedPath)
	if err != nil {
		return err
	}
	seeded, err := seed.Apply(ctx, store, data)
	if err != nil {
		return err
	}
	if seeded {
		slog.Info("Seeded empty store", "employees", len(data.Employees), "departments", len(data.Departments))
	}

	l := ledger.New(store)
	if report, err := l.Sweep(ctx); err != nil {
		slog.Warn("Startup sweep failed", "error", err)
	} else {
		slog.Info("Startup sweep finished", "expired", report.Expired, "orphaned", report.Orphaned)
	}

	grants := auth.NewGrantIssuer(cfg.GrantSecret, cfg.GrantTTL)
	limiter := middleware.NewRateLimiter(cfg.UnlockRate, cfg.UnlockBurst)
	opts := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.DeviceInterceptor(),
		middleware.LoggingInterceptor(),
		middleware.RateLimit(limiter, api.AttendanceServiceUnlockCellProcedure),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewEmployeeServiceHandler(service.NewEmployeeService(store, l), opts))
	mux.Handle(api.NewDepartmentServiceHandler(service.NewDepartmentService(store), opts))
	mux.Handle(api.NewAttendanceServiceHandler(service.NewAttendanceService(store, l, grants), opts))
	mux.Handle("/metrics", metrics.Handler())

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.Handle("/", accessLog(staticHandler(staticDir)))

	srv := &http.Server{
		Addr: cfg.Addr(),
		// h2c for HTTP/2 without TLS
		Handler:           h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return l.Run(ctx, cfg.SweepInterval)
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// staticHandler serves the web frontend, falling back to index.html for
// unknown paths.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/officeplan.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// accessLog logs requests for frontend files. RPCs are logged by the Connect
// interceptor instead.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Debug("Static request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, "+api.DeviceHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
