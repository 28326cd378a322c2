package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/users/api/handler"
	"github.com/fastygo/users/internal/config"
	"github.com/fastygo/users/internal/infrastructure/monitor"
	sqliteInfra "github.com/fastygo/users/internal/infrastructure/sqlite"
	"github.com/fastygo/users/internal/middleware"
	"github.com/fastygo/users/internal/router"
	"github.com/fastygo/users/internal/services/lifecycle"
	"github.com/fastygo/users/pkg/httpcontext"
	"github.com/fastygo/users/pkg/logger"
	"github.com/fastygo/users/repository/sqlite"
	authUC "github.com/fastygo/users/usecase/auth"
	userUC "github.com/fastygo/users/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	connector, err := sqliteInfra.NewConnector(cfg.Database)
	if err != nil {
		zapLogger.Fatal("sqlite configuration invalid", zap.Error(err))
	}
	if err := sqliteInfra.RunMigrations(appCtx, cfg, connector, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	userRepo := sqlite.NewUserRepository(connector)

	userUseCase := userUC.New(userRepo, userUC.ListPolicy{
		Default: cfg.Users.DefaultListLimit,
		Max:     cfg.Users.MaxListLimit,
	}, zapLogger)
	authUseCase := authUC.New(userRepo, zapLogger)

	mon := monitor.New(connector, 0, zapLogger)
	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		User:   apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	h := router.New(handlers,
		middleware.AccessLog(zapLogger),
		middleware.Recover(zapLogger),
	)

	server := &fasthttp.Server{
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("db_path", connector.Path()),
			zap.String("env", cfg.Environment),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
