package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apto-jkhatri/it-asset-management-app/internal/config"
	"github.com/apto-jkhatri/it-asset-management-app/internal/database"
	"github.com/apto-jkhatri/it-asset-management-app/internal/router"
	"github.com/apto-jkhatri/it-asset-management-app/pkg/logger"
)

func main() {
	cfg := config.Load()
	l := logger.New(cfg.Env).With().Str("service", "assetguard-api").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := database.Open(ctx, cfg)
	cancel()
	if err != nil {
		l.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(l, pool, cfg),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("assetguard api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Warn().Err(err).Msg("shutdown did not finish cleanly")
	}
	l.Info().Msg("assetguard api stopped")
}
