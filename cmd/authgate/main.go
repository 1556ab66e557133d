// Command authgate runs the authentication gateway as a standalone HTTP
// server backed by Redis and an in-memory user store.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	authgate "github.com/boffins/authgate"
	promexport "github.com/boffins/authgate/metrics/export/prometheus"
	"github.com/boffins/authgate/middleware"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(*configPath, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(configPath string, logger *zap.Logger) error {
	app, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     app.RedisAddr,
		Password: app.RedisPassword,
		DB:       app.RedisDB,
	})
	defer client.Close()

	users := newMemoryUsers()

	engine, err := authgate.New().
		WithConfig(app.Engine).
		WithRedis(client).
		WithUserProvider(users).
		WithAuditSink(authgate.NewJSONWriterSink(os.Stdout)).
		Build()
	if err != nil {
		return err
	}
	defer engine.Close()

	srv := &server{
		engine:          engine,
		users:           users,
		sessionLifetime: app.Engine.Session.Lifetime,
		cookieSecure:    app.CookieSecure,
	}

	mux := http.NewServeMux()
	route := func(pattern string, required authgate.Role, handler http.HandlerFunc) {
		mux.Handle(pattern, middleware.Chain{
			middleware.RateLimit(engine),
			middleware.RequestLogger(logger),
			middleware.Resolve(engine),
			middleware.Require(engine, required),
		}.Then(handler))
	}

	route("POST /signup", authgate.RoleNone, srv.handleSignup)
	route("POST /login", authgate.RoleNone, srv.handleLogin)
	route("POST /api/login", authgate.RoleNone, srv.handleAPILogin)
	route("POST /logout", authgate.RoleNone, srv.handleLogout)
	route("GET /dashboard", authgate.RoleUser, srv.handleDashboard)
	route("GET /admin/users", authgate.RoleAdmin, srv.handleAdminUsers)

	mux.Handle("GET /metrics", promexport.NewExporter(engine).Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := client.Ping(r.Context()).Err(); err != nil {
			writeErrorKind(w, http.StatusServiceUnavailable, "store_unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	httpServer := &http.Server{
		Addr:              app.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", app.Listen))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
