package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	bidding "gallery-auctions/internal/biddingService"
	"gallery-auctions/internal/config"
	"gallery-auctions/internal/metrics"
	"gallery-auctions/internal/repository"
	"gallery-auctions/internal/server"
	"gallery-auctions/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}

	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("unknown log level, keeping info", map[string]any{"log_level": cfg.LogLevel})
	}
	gin.SetMode(cfg.GinMode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	repo := repository.NewMemoryRepo()
	biddingSvc := bidding.NewBiddingService(repo, bidding.WithMetrics(m))

	routerOpts := []server.RouterOption{server.WithTrustedProxies(cfg.TrustedProxies)}
	if cfg.BidRateLimit > 0 {
		limiter := server.NewBidRateLimiter(cfg.BidRateLimit, cfg.BidRateBurst)
		defer limiter.Stop()
		routerOpts = append(routerOpts, server.WithBidRateLimiter(limiter))
		utils.Info("bid rate limiting enabled", map[string]any{"per_second": cfg.BidRateLimit, "burst": cfg.BidRateBurst})
	}

	router := server.SetupRouter(biddingSvc, m, routerOpts...)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		utils.Info("starting auction server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	utils.Info("shutting down auction server", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
	if err := srv.Shutdown(ctx); err != nil {
		utils.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
}
