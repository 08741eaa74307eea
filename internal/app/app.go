package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ethrva/shopfront/internal/api"
	"github.com/ethrva/shopfront/internal/catalog"
	"github.com/ethrva/shopfront/internal/domain/checkout"
	"github.com/ethrva/shopfront/internal/events"
	"github.com/ethrva/shopfront/internal/storage/postgres"
	"github.com/ethrva/shopfront/internal/storage/redis"
	"github.com/ethrva/shopfront/pkg/health"
	"github.com/ethrva/shopfront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Redis client for basket storage.
	redisOpts, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		return errors.Wrap(err, "parse redis URL")
	}
	rdb := goredis.NewClient(redisOpts)
	defer func() { _ = rdb.Close() }()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "ping redis")
	}

	// Order event publisher: AMQP when configured, no-op otherwise.
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			return errors.Wrap(err, "dial amqp")
		}
		defer func() { _ = conn.Close() }()

		amqpPub, err := events.NewAMQPPublisher(conn, cfg.EventExchange)
		if err != nil {
			return errors.Wrap(err, "create amqp publisher")
		}
		defer func() { _ = amqpPub.Close() }()
		publisher = amqpPub
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthSvc.AddReadinessCheck("redis", 5*time.Second, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddLivenessCheck("gc_pause", time.Second, health.GCMaxPauseCheck(10*time.Second))

	// Repositories.
	basketRepo := redis.NewBasketRepository(rdb, cfg.BasketTTL)
	orderRepo := postgres.NewOrderRepository(pool)
	customerStore := postgres.NewCustomerStore(pool)
	productRepo := postgres.NewProductRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)

	// Catalog read-through cache in front of the product table.
	productCache, err := catalog.NewCache(ctx, productRepo, cfg.CatalogCacheTTL)
	if err != nil {
		return errors.Wrap(err, "warm catalog cache")
	}
	productCache.AutoRefresh(ctx, cfg.CatalogCacheTTL)

	// Domain services.
	checkoutSvc := checkout.NewService(customerStore, basketRepo, orderRepo, publisher)

	// HTTP handlers.
	h := api.NewHandler(basketRepo, productCache, checkoutSvc, sessionRepo, []byte(cfg.SessionPepper))

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", h.Routes())

	healthSvc.SetReady(true)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("shopfront-api", m),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
