package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Varun5711/bookmarkd/internal/auth"
	"github.com/Varun5711/bookmarkd/internal/cache"
	"github.com/Varun5711/bookmarkd/internal/config"
	"github.com/Varun5711/bookmarkd/internal/database"
	"github.com/Varun5711/bookmarkd/internal/handlers"
	"github.com/Varun5711/bookmarkd/internal/lock"
	"github.com/Varun5711/bookmarkd/internal/logger"
	"github.com/Varun5711/bookmarkd/internal/metrics"
	"github.com/Varun5711/bookmarkd/internal/middleware"
	"github.com/Varun5711/bookmarkd/internal/redis"
	"github.com/Varun5711/bookmarkd/internal/service"
	"github.com/Varun5711/bookmarkd/internal/storage"
)

func main() {
	log := logger.New("api")
	defer log.Sync()
	defer log.SetStdLog()()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := handlers.NewHealthHandler()

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.NewClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		health.Register("redis", redisClient)
	}

	var (
		store     storage.Store
		dbManager *database.DBManager
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn("Using in-memory storage, data is lost on restart")
		store = storage.NewMemoryStorage()
	default:
		dbManager, err = database.NewDBManager(ctx, database.Config{
			PrimaryDSN:      cfg.Database.PrimaryDSN,
			ReplicaDSNs:     cfg.Database.ReplicaDSNs,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		})
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer dbManager.Close()

		if cfg.Database.AutoMigrate {
			if err := migrate(ctx, dbManager, redisClient); err != nil {
				log.Fatal("Migration failed: %v", err)
			}
			log.Info("Migrations applied")
		}

		store = storage.NewPostgresStorage(dbManager)
	}
	health.Register("database", store)
	go reportPools(ctx, 15*time.Second, dbManager, redisClient)

	var limiter middleware.Limiter
	if redisClient != nil {
		limiter = middleware.NewRedisRateLimiter(redisClient.Redis(), cfg.RateLimit.Requests, cfg.RateLimit.Window)
	} else {
		local := middleware.NewLocalRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		go local.Cleanup(ctx, time.Minute, 10*cfg.RateLimit.Window)
		limiter = local
	}
	log.Info("Rate limiting /auth with %s limiter: %d per %s", limiter.Name(), limiter.Limit(), cfg.RateLimit.Window)

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	carCache := cache.New("car:", cfg.Cache.L1Capacity, redisClient.Redis(), cfg.Cache.L2TTL)

	docs, err := handlers.NewSwaggerHandler()
	if err != nil {
		log.Fatal("Failed to load API docs: %v", err)
	}

	router := &handlers.Router{
		Auth:        handlers.NewAuthHandler(service.NewAuthService(store, auth.NewHasher(auth.DefaultParams), tokens), log),
		Users:       handlers.NewUserHandler(service.NewUserService(store), log),
		Bookmarks:   handlers.NewBookmarkHandler(service.NewBookmarkService(store), log),
		Cars:        handlers.NewCarHandler(service.NewCarService(store, carCache, log), log),
		Health:      health,
		Docs:        docs,
		RequireAuth: middleware.NewAuthMiddleware(tokens, log).RequireAuth,
		AuthLimiter: limiter,
	}

	handler := middleware.Chain(router.Routes(),
		middleware.RequestID,
		middleware.Recovery(log),
		middleware.AccessLog(log),
		middleware.Metrics,
		middleware.CORS(cfg.HTTP.CORSAllowedOrigins),
	)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          log.StdLogger(),
	}

	go func() {
		log.Info("Listening on %s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}

// migrate applies pending migrations. With redis configured, replicas
// starting together take turns.
func migrate(ctx context.Context, db *database.DBManager, redisClient *redis.Client) error {
	if redisClient == nil {
		return db.Migrate(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	return lock.New(redisClient.Redis(), "bookmarkd:migrate", time.Minute).
		Do(ctx, 500*time.Millisecond, db.Migrate)
}

// reportPools copies connection pool counters into prometheus until ctx ends.
func reportPools(ctx context.Context, every time.Duration, db *database.DBManager, redisClient *redis.Client) {
	if db == nil && redisClient == nil {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		if db != nil {
			for _, st := range db.Stats() {
				metrics.RecordDBPool(st.Name, st.Total, st.Idle, st.Acquired)
			}
		}
		if redisClient != nil {
			st := redisClient.Stats()
			metrics.RecordRedisPool(st.TotalConns, st.IdleConns)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
