package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpadp "credito-inmobiliario/internal/adapter/http"
	"credito-inmobiliario/internal/adapter/middleware"
	"credito-inmobiliario/internal/adapter/repository/sqlstore"
	"credito-inmobiliario/internal/config"
	"credito-inmobiliario/internal/infrastructure/authprovider"
	"credito-inmobiliario/internal/infrastructure/cache"
	"credito-inmobiliario/internal/infrastructure/db"
	"credito-inmobiliario/internal/infrastructure/logger"
	investmentuc "credito-inmobiliario/internal/usecase/investment"
	loanuc "credito-inmobiliario/internal/usecase/loan"
	paymentuc "credito-inmobiliario/internal/usecase/payment"
	useruc "credito-inmobiliario/internal/usecase/user"
)

const slowQuery = 200 * time.Millisecond

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DatabaseURL,
		logger.NewGormLogger(log.Named("gorm"), logger.GormLevel(cfg.LogLevel), slowQuery))
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	// sqlite is the local/dev store; managed databases are migrated out of band
	if cfg.DBDriver == "sqlite" {
		if err := sqlstore.Migrate(gdb); err != nil {
			log.Fatal("migrate", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	// repositories + unit of work
	loans := sqlstore.NewLoanRepository(gdb)
	investments := sqlstore.NewInvestmentRepository(gdb)
	payments := sqlstore.NewPaymentRepository(gdb)
	profiles := sqlstore.NewProfileRepository(gdb)
	cosigners := sqlstore.NewCosignerRepository(gdb)
	tx := sqlstore.NewGormUoW(gdb)

	auth := authprovider.New(cfg.AuthURL, cfg.AuthAnonKey, cfg.AuthServiceRoleKey)
	verifier := authprovider.NewVerifier(cfg.AuthJWTSecret)

	userUC := useruc.NewUsecase(profiles, auth, log)
	loanUC := loanuc.NewUsecase(loans, cosigners, tx)
	investmentUC := investmentuc.NewUsecase(investments, tx)
	paymentUC := paymentuc.NewUsecase(payments, loans, investments, tx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	renderer, err := httpadp.NewRenderer()
	if err != nil {
		log.Fatal("templates", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Renderer = renderer
	e.Use(echomw.Recover(), middleware.RequestLogger(log), metrics.Middleware())

	httpadp.Register(e, httpadp.Handlers{
		Health:   httpadp.NewHandler(),
		Auth:     httpadp.NewAuthHandler(userUC, cfg.CookieSecure, log),
		Admin:    httpadp.NewAdminHandler(userUC, loanUC, investmentUC, paymentUC, log),
		Investor: httpadp.NewInvestorHandler(loanUC, investmentUC, paymentUC, log),
		Owner:    httpadp.NewOwnerHandler(loanUC, log),
	}, httpadp.Guards{
		Session:     middleware.Session(verifier, auth, cfg.CookieSecure, log),
		RoleGuard:   middleware.RoleGuard(userUC, metrics, log),
		Idempotency: middleware.Idempotency(rdb, cfg.IdempotencyTTL(), log),
	}, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
