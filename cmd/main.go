package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	httpctx "github.com/dvoronin/membergate/internal/api/http/context"
	"github.com/dvoronin/membergate/internal/api/http/handler"
	"github.com/dvoronin/membergate/internal/api/http/router"
	httpServer "github.com/dvoronin/membergate/internal/api/http/server"
	"github.com/dvoronin/membergate/internal/auth"
	"github.com/dvoronin/membergate/internal/config"
	"github.com/dvoronin/membergate/internal/logger"
	"github.com/dvoronin/membergate/internal/model"
	"github.com/dvoronin/membergate/internal/repository/postgres"
	"github.com/dvoronin/membergate/internal/service"
	"github.com/dvoronin/membergate/internal/session"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)

	sessionStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize session store", "error", err)
	}

	authService := service.NewAuth(userRepo, hasher, logger)
	bridge := service.NewBridge(userRepo, logger)
	sessionManager := service.NewSessionManager(bridge, sessionStore, cfg.Session.TTL, logger)
	ctxMgr := httpctx.NewManager()

	cookie := handler.CookieConfig{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.HTTP.EnableHTTPS,
	}

	r := router.New(authService, sessionManager, sessionManager, ctxMgr, cookie, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = httpServer.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = httpServer.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newSessionStore(ctx context.Context, cfg *config.Config) (model.SessionStore, error) {
	switch cfg.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		return session.NewRedisStore(ctx, client)
	case "memory":
		return session.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
