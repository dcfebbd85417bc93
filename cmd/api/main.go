package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authjwt "github.com/mlukyanov/task-api/internal/auth/jwt"
	"github.com/mlukyanov/task-api/internal/auth/password"
	authsvc "github.com/mlukyanov/task-api/internal/auth/service"
	"github.com/mlukyanov/task-api/internal/config"
	lg "github.com/mlukyanov/task-api/internal/infra/log"
	"github.com/mlukyanov/task-api/internal/migrate"
	"github.com/mlukyanov/task-api/internal/ratelimit"
	"github.com/mlukyanov/task-api/internal/repo"
	pgrepo "github.com/mlukyanov/task-api/internal/repo/postgres"
	redisrepo "github.com/mlukyanov/task-api/internal/repo/redis"
	"github.com/mlukyanov/task-api/internal/task"
	"github.com/mlukyanov/task-api/internal/transport/http/handlers"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zapLog := lg.Must(cfg.LogLevel)
	defer zapLog.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	var denylist repo.TokenDenylist = repo.NoopDenylist{}
	if cfg.RedisAddress != "" {
		redisCli := redisv9.NewClient(&redisv9.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisCli.Close()
		denylist = redisrepo.NewRedisDenylist(redisCli)
	}

	validate := validator.New()
	policy := password.NewPolicy(nil)
	tokens := authjwt.NewTokenManager(cfg)

	userRepo := pgrepo.NewPostgresUserRepo(db)
	taskRepo := pgrepo.NewPostgresTaskRepo(db)

	svc, err := authsvc.New(userRepo, denylist, tokens, policy, validate)
	if err != nil {
		zapLog.Fatal("failed to init auth service", zap.Error(err))
	}
	taskSvc := task.NewService(taskRepo, validate)

	authLimiter := ratelimit.New(cfg.AuthRateWindow, cfg.AuthRateMax)
	defer authLimiter.Stop()
	apiLimiter := ratelimit.New(cfg.APIRateWindow, cfg.APIRateMax)
	defer apiLimiter.Stop()

	router := handlers.NewRouter(handlers.RouterDeps{
		Logger:         zapLog,
		Tokens:         tokens,
		AuthService:    svc,
		TaskService:    taskSvc,
		AuthLimiter:    authLimiter,
		APILimiter:     apiLimiter,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}

	rootCtx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")
	cancel()

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
	zapLog.Info("server stopped")
}
