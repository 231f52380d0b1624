package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/herculesvale/vale-service/internal/api"
	"github.com/herculesvale/vale-service/internal/auth"
	"github.com/herculesvale/vale-service/internal/config"
	"github.com/herculesvale/vale-service/internal/directory"
	"github.com/herculesvale/vale-service/internal/folio"
	"github.com/herculesvale/vale-service/internal/logger"
	"github.com/herculesvale/vale-service/internal/repository"
	"github.com/herculesvale/vale-service/internal/service"
	"github.com/herculesvale/vale-service/pkg/db"
)

func main() {
	// .env is for local development; production sets env vars directly
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = zlog.Sync() }()

	var vouchers repository.VoucherRepository
	var subClients repository.SubClientRepository

	if cfg.Database.Enabled() {
		conn, err := db.NewPostgresConnection(cfg.Database)
		if err != nil {
			zlog.Fatal("db connect", zap.Error(err))
		}
		defer conn.Close()

		if err := db.Bootstrap(context.Background(), conn); err != nil {
			zlog.Fatal("db bootstrap", zap.Error(err))
		}

		vouchers = repository.NewPostgresVoucherRepository(conn)
		subClients = repository.NewPostgresSubClientRepository(conn)
		zlog.Info("using postgres store", zap.String("host", cfg.Database.Host))
	} else {
		vouchers = repository.NewMemoryVoucherRepository()
		subClients = repository.NewMemorySubClientRepository()
		zlog.Info("no database configured, using in-memory store")
	}

	dir, err := directory.New(directory.Seed(), cfg.Auth.SharedSecret)
	if err != nil {
		zlog.Fatal("build distributor directory", zap.Error(err))
	}

	handler := api.NewRouter(api.Deps{
		Logger:     zlog,
		Tokens:     auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer),
		Directory:  dir,
		Vouchers:   service.NewVoucherService(vouchers, folio.NewGenerator(), zlog),
		SubClients: service.NewSubClientService(subClients, zlog),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			zlog.Error("http server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	zlog.Info("starting vale-service", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal("listen", zap.Error(err))
	}

	<-idleConnsClosed
	zlog.Info("server stopped")
}
