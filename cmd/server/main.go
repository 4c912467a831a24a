package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/nylose/sportcenter/internal/config"
	"github.com/nylose/sportcenter/internal/database"
	"github.com/nylose/sportcenter/internal/email"
	"github.com/nylose/sportcenter/internal/handler"
	"github.com/nylose/sportcenter/internal/logging"
	"github.com/nylose/sportcenter/internal/metrics"
	"github.com/nylose/sportcenter/internal/middleware"
	"github.com/nylose/sportcenter/internal/payment"
	"github.com/nylose/sportcenter/internal/queue"
	"github.com/nylose/sportcenter/internal/repository"
	"github.com/nylose/sportcenter/internal/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("database open failed", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		logger.Fatal("migrations failed", zap.Error(err))
	}
	if err := database.Seed(ctx, db, cfg.BcryptCost); err != nil {
		cancel()
		logger.Fatal("seeding failed", zap.Error(err))
	}
	cancel()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal("upload directory unavailable", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	users := repository.NewUserRepo(db)
	sports := repository.NewSportRepo(db)
	schedules := repository.NewScheduleRepo(db)
	memberships := repository.NewMembershipRepo(db)
	payments := repository.NewPaymentRepo(db)
	social := repository.NewSocialMediaRepo(db)
	contact := repository.NewContactInfoRepo(db)
	stats := repository.NewStatsRepo(db)

	reg := metrics.NewRegistry()
	mailer := email.NewFromEnv(logger)
	go queue.StartPaymentConsumer(logger.Named("payments"))

	base := handler.Base{Log: logger, Production: cfg.IsProduction()}
	authH := &handler.AuthHandler{
		Base: base, Cfg: cfg,
		Users: users, Memberships: memberships, Payments: payments,
		Processor: payment.MockProcessor{}, Mailer: mailer,
	}
	publicH := &handler.PublicHandler{
		Base: base, DB: db,
		Sports: sports, Schedules: schedules, Social: social, Contact: contact,
	}
	memberH := &handler.MemberHandler{
		Base: base, Users: users, Memberships: memberships, Payments: payments,
	}
	adminH := &handler.AdminHandler{
		Base: base, Cfg: cfg,
		Users: users, Sports: sports, Schedules: schedules,
		Social: social, Contact: contact, Memberships: memberships, Stats: stats,
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = router.ErrorHandler(cfg.IsProduction())

	e.Use(echomw.Recover())
	e.Use(middleware.Metrics(reg))
	// Innermost observability middleware; owns error-to-response conversion.
	e.Use(middleware.RequestLogger(logger))
	if cfg.IsProduction() {
		e.Use(echomw.Secure())
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.FrontendOrigins,
		AllowCredentials: true,
	}))
	e.Use(echomw.BodyLimit("10M"))

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(cfg.IsProduction()), rdb))

	router.RegisterCore(e, cfg.UploadDir)
	router.RegisterPublic(e, publicH)
	router.RegisterAuth(e, authH, cfg.JWTSecret, users)
	router.RegisterMember(e, memberH, authH, cfg.JWTSecret, users)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret, users)

	addr := ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
