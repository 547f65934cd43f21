package main

import (
	"context"
	"os"
	"time"

	"spending/internal/cache"
	"spending/internal/cli"
	apphttp "spending/internal/http"
	"spending/internal/log"
	"spending/internal/middleware/ratelimit"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	uploads := cache.NewLRU[[]byte](cfg.UploadCacheSize, cfg.UploadTTL)
	cacheManager := cache.NewManager(logger)
	cacheManager.Register(uploads)

	limiter := ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.UploadRatePerMinute})

	srv := apphttp.NewServer(cfg.Addr(), uploads, logger, apphttp.Options{
		DefaultIncome:  cfg.DefaultIncome(),
		MaxUploadBytes: cfg.MaxUploadBytes,
		UploadLimiter:  limiter,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 30 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := cli.SignalContext()
	defer stop()

	logger.Info("Starting spending dashboard",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		"default_income", cfg.MonthlyIncome,
		"upload_cache_size", cfg.UploadCacheSize,
		"upload_ttl", cfg.UploadTTL.String())

	err := cli.RunServer(ctx, logger, srv, 30*time.Second,
		func(ctx context.Context) error { return cacheManager.Run(ctx, cfg.CacheCleanupInterval) },
		func(ctx context.Context) error { return limiter.Run(ctx, cfg.CacheCleanupInterval) },
	)
	if err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
