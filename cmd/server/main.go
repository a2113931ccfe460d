package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"property-price-service/internal/adapters/primary/http/handlers"
	"property-price-service/internal/adapters/primary/http/middleware"
	"property-price-service/internal/adapters/secondary/csvfile"
	"property-price-service/internal/adapters/secondary/postgres"
	"property-price-service/internal/adapters/secondary/regressor"
	"property-price-service/internal/config"
	"property-price-service/internal/core/domain"
	"property-price-service/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Create database pool
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("parse db config: %v", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	if err := postgres.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	log.Info("database connection established")

	// Secondary adapters
	userRepo := postgres.NewUserRepository(pool)
	reader := csvfile.NewReader()
	store := regressor.NewStore()

	// Core services
	predictionSvc := services.NewPredictionService(reader, store,
		cfg.Model.DataPath, cfg.Model.ModelPath, cfg.Model.TargetColumn,
		domain.MelbourneAliases)
	authSvc := services.NewAuthService(userRepo, cfg.Auth.Secret, cfg.Auth.TokenTTL)

	// A broken dataset or artifact must abort startup rather than fail
	// every request later.
	if _, err := predictionSvc.Profile(context.Background()); err != nil {
		log.Fatalf("load prediction artifacts: %v", err)
	}
	log.WithFields(log.Fields{
		"data_path":  cfg.Model.DataPath,
		"model_path": cfg.Model.ModelPath,
		"target":     cfg.Model.TargetColumn,
	}).Info("prediction service initialized")

	// Primary adapter (HTTP handlers)
	h := handlers.New(predictionSvc, authSvc)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	h.RegisterRoutes(router.Group("/"))

	// Liveness probe with DB ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
