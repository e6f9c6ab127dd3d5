package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"newsroom/internal/common/pagination"
	"newsroom/internal/config"
	pgRepo "newsroom/internal/infra/adapter/persistence/postgres"
	"newsroom/internal/infra/assistant"
	"newsroom/internal/infra/db"
	"newsroom/internal/observability/logging"
	"newsroom/internal/observability/tracing"
	envconfig "newsroom/pkg/config"

	aiUC "newsroom/internal/usecase/ai"
	followUC "newsroom/internal/usecase/follow"
	nlUC "newsroom/internal/usecase/newsletter"
	paperUC "newsroom/internal/usecase/newspaper"
	userUC "newsroom/internal/usecase/user"

	hhttp "newsroom/internal/handler/http"
	hai "newsroom/internal/handler/http/ai"
	hauth "newsroom/internal/handler/http/auth"
	hfollow "newsroom/internal/handler/http/follow"
	"newsroom/internal/handler/http/middleware"
	hnewsletter "newsroom/internal/handler/http/newsletter"
	hnewspaper "newsroom/internal/handler/http/newspaper"
	"newsroom/internal/handler/http/requestid"
	huser "newsroom/internal/handler/http/user"
	authservice "newsroom/internal/service/auth"

	_ "newsroom/docs" // swagger docs
)

// @title           Newsroom API
// @version         1.0
// @description     ニュースレター執筆・フォロー・日刊新聞生成のための REST API
// @description     ニュースレターの作成と公開、ユーザーのフォロー、AI による執筆支援、日刊新聞の生成を提供します。

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
// @description サインインで発行されるセッションCookie。

func main() {
	logger := initLogger()
	version := getVersion()

	shutdownTracing := tracing.Init("newsroom-api", version)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	secCfg := loadSecurityConfig(logger)
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components := setupServer(logger, database, secCfg, version)
	runServer(logger, components, version)
}

// initLogger installs the JSON logger as the slog default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return envconfig.GetEnvString("VERSION", "dev")
}

// loadSecurityConfig loads cookie, session and password settings and checks
// the session secret. The server refuses to start with a weak secret.
func loadSecurityConfig(logger *slog.Logger) *config.SecurityConfig {
	cfg, err := config.LoadSecurityConfigFromEnv()
	if err != nil {
		logger.Error("failed to load security configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if err := authservice.ValidateSessionSecret(cfg.SessionSecret()); err != nil {
		logger.Error("session secret validation failed",
			slog.String("env", cfg.Security.Session.SecretEnv),
			slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Security.AdminBypass {
		logger.Warn("admin bypass is ENABLED - never use this in production")
	}
	return cfg
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	ctx := context.Background()
	database, err := db.Open(ctx)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler       http.Handler
	SignInLimiter *middleware.RateLimiter
}

// setupServer wires repositories, services and routes and returns the
// handler wrapped in the middleware chain.
func setupServer(logger *slog.Logger, database *sql.DB, secCfg *config.SecurityConfig, version string) *ServerComponents {
	users := pgRepo.NewUserRepo(database)
	follows := pgRepo.NewFollowRepo(database)
	newsletters := pgRepo.NewNewsletterRepo(database)
	papers := pgRepo.NewNewspaperRepo(database)

	aiCfg, err := config.LoadAIConfig()
	if err != nil {
		logger.Error("failed to load AI configuration", slog.Any("error", err))
		os.Exit(1)
	}
	completer, err := assistant.New(aiCfg)
	if err != nil {
		logger.Error("failed to create AI provider", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("AI provider configured",
		slog.String("provider", aiCfg.Provider),
		slog.Duration("timeout", aiCfg.Timeout))
	aiSvc := aiUC.NewService(completer, assistant.PrometheusMetrics{})

	policy := authservice.PasswordPolicy{
		MinLength:     secCfg.Security.Password.MinLength,
		BcryptCost:    secCfg.Security.Password.BcryptCost,
		WeakPasswords: secCfg.Security.Password.WeakPasswords,
	}
	authSvc := &authservice.AuthService{
		Users:       users,
		Sessions:    authservice.NewSessionManager(secCfg.SessionSecret(), secCfg.SessionTTL()),
		Policy:      policy,
		AdminBypass: secCfg.Security.AdminBypass,
	}
	bootstrapAdmin(logger, authSvc)

	userSvc := userUC.Service{Users: users, Follows: follows, Newsletters: newsletters, Passwords: policy}
	followSvc := followUC.Service{Users: users, Follows: follows}
	nlSvc := nlUC.Service{Repo: newsletters, Categorizer: aiSvc}
	paperSvc := &paperUC.Service{
		Newsletters: newsletters,
		Papers:      papers,
		Summarizer:  aiSvc,
		Location:    envconfig.GetEnvLocation("NEWSPAPER_TIMEZONE"),
	}

	ipExtractor, err := middleware.LoadIPExtractor()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// レート制限: サインインは1分間に SIGNIN_RATE_LIMIT リクエストまで（デフォルト5）
	signInLimit := envconfig.GetEnvInt("SIGNIN_RATE_LIMIT", 5)
	signInLimiter := middleware.NewRateLimiter(signInLimit, time.Minute, ipExtractor, func() {
		hhttp.RecordRateLimited("signin")
	})
	logger.Info("sign-in rate limiting initialized",
		slog.Int("limit", signInLimit),
		slog.Duration("window", time.Minute))

	cookie := hauth.CookieConfig{
		Name:   secCfg.Security.Session.CookieName,
		Secure: secCfg.Security.Session.Secure,
	}

	var aiStatus hhttp.AIStatus
	if st, ok := completer.(assistant.Status); ok {
		aiStatus = st
	}

	mux := http.NewServeMux()

	// ヘルスチェック・メトリクス・Swagger UI（認証不要）
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, AI: aiStatus, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	paginationCfg := pagination.LoadFromEnv()

	hauth.Register(mux, authSvc, cookie, signInLimiter.Middleware)
	huser.Register(mux, userSvc, paginationCfg)
	hfollow.Register(mux, followSvc)
	hnewsletter.Register(mux, nlSvc, paginationCfg)
	hai.Register(mux, aiSvc)
	hnewspaper.Register(mux, paperSvc)

	handler := applyMiddleware(logger, mux, authSvc, cookie)

	return &ServerComponents{
		Handler:       handler,
		SignInLimiter: signInLimiter,
	}
}

// bootstrapAdmin creates the ADMIN_EMAIL account on first start. It is a
// no-op when either variable is unset or the account already exists.
func bootstrapAdmin(logger *slog.Logger, authSvc *authservice.AuthService) {
	email := envconfig.GetEnvString("ADMIN_EMAIL", "")
	password := envconfig.GetEnvString("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		logger.Info("admin bootstrap skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	created, err := authSvc.EnsureAdmin(ctx, envconfig.GetEnvString("ADMIN_NAME", "Admin"), email, password)
	if err != nil {
		logger.Error("admin bootstrap failed", slog.Any("error", err))
		os.Exit(1)
	}
	if created {
		logger.Info("admin account created", slog.String("email", email))
	}
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): CORS → Request ID → Recovery → Tracing → Logging →
// Metrics → Input Validation → Session → Timeout
func applyMiddleware(logger *slog.Logger, handler http.Handler, authSvc *authservice.AuthService, cookie hauth.CookieConfig) http.Handler {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	requestTimeout := envconfig.GetEnvDuration("REQUEST_TIMEOUT", 60*time.Second)

	return hhttp.Chain(handler,
		middleware.CORS(corsConfig),
		requestid.Middleware,
		hhttp.Recover(logger),
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		hhttp.InputValidation(),
		hauth.Session(authSvc, cookie),
		hhttp.Timeout(requestTimeout),
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupInterval := envconfig.GetEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute)
	go hhttp.StartRateLimitCleanup(ctx, components.SignInLimiter, cleanupInterval, "signin")

	addr := ":" + envconfig.GetEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
