package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"newsfox/internal/common/pagination"
	"newsfox/internal/config"
	hhttp "newsfox/internal/handler/http"
	hauth "newsfox/internal/handler/http/auth"
	hfav "newsfox/internal/handler/http/favorite"
	hheadline "newsfox/internal/handler/http/headline"
	"newsfox/internal/handler/http/requestid"
	pgRepo "newsfox/internal/infra/adapter/persistence/postgres"
	sqliteRepo "newsfox/internal/infra/adapter/persistence/sqlite"
	"newsfox/internal/infra/cache"
	"newsfox/internal/infra/db"
	"newsfox/internal/infra/provider"
	"newsfox/internal/observability/logging"
	"newsfox/internal/observability/tracing"
	"newsfox/internal/repository"
	favUC "newsfox/internal/usecase/favorite"
	hlUC "newsfox/internal/usecase/headline"
	pkgconfig "newsfox/pkg/config"

	_ "newsfox/docs" // swagger docs
)

// @title           NewsFox API
// @version         1.0
// @description     カテゴリ別ニュースヘッドラインの取得とお気に入り管理の REST API
// @description     ヘッドラインは外部ニュースプロバイダから取得し、正規化して返します。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

func main() {
	configPath := flag.String("config", pkgconfig.GetEnvString("NEWSFOX_CONFIG", "configs/newsfox.yaml"), "path to the YAML config file")
	flag.Parse()

	// .env は任意（本番では環境変数を直接設定する）
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("path", *configPath), slog.Any("error", err))
		os.Exit(1)
	}
	secret := validateJWTSecret(logger, cfg.Security)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Init("newsfox-api")
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	database, driver := initDatabase(ctx, logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	rdb := initCache(ctx, logger, cfg.Cache)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	headlineSvc, err := setupHeadlines(cfg, rdb)
	if err != nil {
		logger.Error("failed to create headline provider", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("headline provider ready",
		slog.String("provider", headlineSvc.Provider.Name()),
		slog.Bool("cache", rdb != nil))

	users, favorites := repositories(database, driver)
	favoriteSvc := favUC.NewService(users, favorites)

	version := pkgconfig.GetEnvString("VERSION", "dev")
	handler, err := setupServer(logger, database, rdb, version, secret, cfg.Security.JWT.Issuer, headlineSvc, favoriteSvc)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(ctx, logger, handler, version)
}

// validateJWTSecret enforces a minimum secret strength at startup.
func validateJWTSecret(logger *slog.Logger, sec config.SecurityConfig) []byte {
	secret := sec.JWTSecret()
	if secret == "" {
		logger.Error("JWT secret must be set", slog.String("env", sec.JWT.SecretEnv))
		os.Exit(1)
	}
	// セキュリティ: 最小32文字（256ビット）を強制
	if len(secret) < 32 {
		logger.Error("JWT secret must be at least 32 characters (256 bits)", slog.String("env", sec.JWT.SecretEnv))
		os.Exit(1)
	}
	return []byte(secret)
}

// initDatabase opens the configured database and creates the schema.
func initDatabase(ctx context.Context, logger *slog.Logger) (*sql.DB, string) {
	opts, err := db.OptionsFromEnv()
	if err != nil {
		logger.Error("invalid database configuration", slog.Any("error", err))
		os.Exit(1)
	}
	database, err := db.Open(ctx, opts)
	if err != nil {
		logger.Error("failed to open database", slog.String("driver", opts.Driver), slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database, db.DialectFor(opts.Driver)); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database, opts.Driver
}

// initCache connects to Redis when the configured URL variable is set.
// A failed connection disables caching rather than the service.
func initCache(ctx context.Context, logger *slog.Logger, cc config.CacheConfig) *redis.Client {
	if cc.RedisURLEnv == "" || cc.TTL <= 0 {
		logger.Info("headline cache disabled")
		return nil
	}
	rawURL := os.Getenv(cc.RedisURLEnv)
	if rawURL == "" {
		logger.Info("headline cache disabled", slog.String("env", cc.RedisURLEnv))
		return nil
	}
	rdb, err := cache.Connect(ctx, rawURL)
	if err != nil {
		logger.Warn("redis unavailable, headline cache disabled", slog.Any("error", err))
		return nil
	}
	logger.Info("headline cache enabled", slog.Duration("ttl", cc.TTL))
	return rdb
}

func setupHeadlines(cfg *config.Config, rdb *redis.Client) (*hlUC.Service, error) {
	p, err := provider.New(cfg.Provider, nil)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		p = cache.WithPageCache(p, rdb, cfg.Cache.TTL)
	}
	svc := hlUC.NewService(p)
	svc.Timeout = cfg.Provider.Timeout
	return svc, nil
}

func repositories(database *sql.DB, driver string) (repository.UserRepository, repository.FavoriteRepository) {
	if driver == db.DriverSQLite {
		return sqliteRepo.NewUserRepo(database), sqliteRepo.NewFavoriteRepo(database)
	}
	return pgRepo.NewUserRepo(database), pgRepo.NewFavoriteRepo(database)
}

// setupServer registers all routes and wraps them in the middleware chain.
func setupServer(
	logger *slog.Logger,
	database *sql.DB,
	rdb *redis.Client,
	version string,
	secret []byte,
	issuer string,
	headlineSvc *hlUC.Service,
	favoriteSvc *favUC.Service,
) (http.Handler, error) {
	mux := http.NewServeMux()

	health := &hhttp.HealthHandler{DB: database, Version: version}
	if rdb != nil {
		health.Redis = rdb
	}
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hheadline.Register(mux, headlineSvc, pagination.LoadFromEnv())
	hfav.Register(mux, favoriteSvc)

	corsCfg, err := hhttp.LoadCORSConfig()
	if err != nil {
		return nil, err
	}
	logger.Info("CORS configured", slog.Any("allowed_origins", corsCfg.AllowedOrigins))

	var limiterOpts []hhttp.RateLimiterOption
	if pkgconfig.GetEnvBool("TRUST_PROXY_HEADERS", false) {
		limiterOpts = append(limiterOpts, hhttp.WithTrustedProxyHeaders())
	}
	limiter := hhttp.NewRateLimiter(
		pkgconfig.GetEnvFloat("RATE_LIMIT_RPS", 10),
		pkgconfig.GetEnvInt("RATE_LIMIT_BURST", 20),
		limiterOpts...,
	)

	verifier := hauth.NewVerifier(secret, issuer)

	// 外側から: CORS → Request ID → Context Logger → Recovery → Logging → Tracing → Rate Limit → Body Limit → Auth → Metrics
	// Metrics は mux の直前に置く（r.Pattern を参照するため）
	return hhttp.Chain(mux,
		hhttp.CORS(corsCfg),
		requestid.Middleware,
		hhttp.ContextLogger(logger),
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		tracing.Middleware,
		limiter.Limit,
		hhttp.LimitRequestBody(1<<20),
		verifier.Authz,
		hhttp.MetricsMiddleware,
	), nil
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, logger *slog.Logger, handler http.Handler, version string) {
	addr := pkgconfig.GetEnvString("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", addr), slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
