package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GenrePulse/config"
	"GenrePulse/core/dashboard"
	"GenrePulse/logger"

	"github.com/gorilla/mux"
)

// Purger drops cached upstream data before a forced refresh.
type Purger interface {
	Purge(ctx context.Context) (int, error)
}

// Server exposes the dashboard over HTTP and WebSocket.
type Server struct {
	cfg    *config.Config
	dash   *dashboard.Dashboard
	purger Purger
	now    func() time.Time
}

// New creates a server. purger may be nil when no cache is configured.
func New(cfg *config.Config, dash *dashboard.Dashboard, purger Purger) *Server {
	return &Server{cfg: cfg, dash: dash, purger: purger, now: time.Now}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	// 添加 CORS 中间件
	router.Use(corsMiddleware)
	router.Use(requestIDMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", s.DashboardHandler).Methods(http.MethodGet)
	api.HandleFunc("/quarterly", s.QuarterlyHandler).Methods(http.MethodGet)
	api.HandleFunc("/countries", s.CountriesHandler).Methods(http.MethodGet)
	api.HandleFunc("/country", s.SetCountryHandler).Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/refresh", s.RefreshHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/ws", s.StateStreamHandler).Methods(http.MethodGet)

	return router
}

// Start runs the HTTP server until SIGINT or SIGTERM.
func (s *Server) Start() error {
	// 设置服务器超时
	srv := &http.Server{
		Addr:         ":" + s.cfg.HTTPPort,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
