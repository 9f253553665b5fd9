// Package main boots the EcoCart API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecocart/ecocart/internal/config"
	httpapi "github.com/ecocart/ecocart/internal/http"
	"github.com/ecocart/ecocart/internal/obs"
	"github.com/ecocart/ecocart/internal/store"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()
	obs.Logger.Info("service_starting", "store_kind", cfg.StoreKind)
	if cfg.JWTSecret == config.DefaultJWTSecret {
		obs.Logger.Warn("jwt_secret_defaulted", "hint", "set JWT_SECRET outside local development")
	}

	ctxOpen, cancelOpen := context.WithTimeout(context.Background(), 15*time.Second)
	st, err := store.Open(ctxOpen, cfg)
	cancelOpen()
	if err != nil {
		obs.Logger.Error("store_open_error", "error", err)
		os.Exit(1)
	}

	app := httpapi.NewApp(cfg, st)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	ctxClose, cancelClose := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelClose()
	if err := st.Close(ctxClose); err != nil {
		obs.Logger.Error("store_close_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
