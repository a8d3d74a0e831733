package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patient-registry-service/internal/config"
	"patient-registry-service/internal/domain"
	"patient-registry-service/internal/handler"
	"patient-registry-service/internal/middleware"
	"patient-registry-service/internal/repository"
	"patient-registry-service/internal/usecase"

	"github.com/dgraph-io/badger/v4"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	repo, healthCheck, closeStorage, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer closeStorage()
	log.WithField("backend", cfg.Storage.Backend).Info("patient storage ready")

	patientUC := usecase.NewPatientUseCase(repo)
	statsUC := usecase.NewStatsUseCase(repo)

	h := handler.New(patientUC, statsUC)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	h.RegisterRoutes(router.Group("/"))

	router.GET("/healthz", func(c *gin.Context) {
		if err := healthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "detail": err.Error()})
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

// openStorage builds the repository for the configured backend and returns
// it together with a health probe and a close func for shutdown.
func openStorage(cfg *config.Config) (domain.PatientRepository, func(context.Context) error, func(), error) {
	switch cfg.Storage.Backend {
	case "file":
		repo, err := repository.NewFilePatientRepository(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, nil, err
		}
		check := func(ctx context.Context) error {
			_, _, err := repo.List(ctx, domain.ListFilter{})
			return err
		}
		return repo, check, func() {}, nil

	case "badger":
		opts := badger.DefaultOptions(cfg.Storage.BadgerDir).WithLogger(nil)
		db, err := badger.Open(opts)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open badger: %w", err)
		}
		repo := repository.NewBadgerPatientRepository(db)
		check := func(ctx context.Context) error {
			if db.IsClosed() {
				return fmt.Errorf("badger store closed")
			}
			return nil
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.WithError(err).Warn("close badger store")
			}
		}
		return repo, check, closeFn, nil

	case "postgres":
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parse db config: %w", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("create db pool: %w", err)
		}
		if err := pool.Ping(context.Background()); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("ping db: %w", err)
		}
		if err := repository.EnsureSchema(context.Background(), pool); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}

		repo := repository.NewPostgresPatientRepository(pool)
		return repo, pool.Ping, pool.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
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
