package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillmatrix/skill-matrix/internal/app"
	"github.com/skillmatrix/skill-matrix/internal/config"
	httpRouter "github.com/skillmatrix/skill-matrix/internal/http/router"
	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.IsDevelopment() {
		logger.SetTextFormatter()
	}

	// Вебсокеты.
	hub := ws.NewHub()
	go hub.Run(ctx)

	// Хранилище, репозитории и сервисы; схема применяется при открытии.
	application, err := app.Open(ctx, cfg, hub)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка открытия хранилища")
	}
	defer safeClose(application)

	engine := httpRouter.SetupRouter(cfg, application, hub)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Log.WithField("port", cfg.HTTPPort).WithField("driver", cfg.DBDriver).Info("main: HTTP сервер запущен")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.WithError(err).Error("main: сервер завершился с ошибкой")
	}
}

// safeClose закрывает хранилище.
func safeClose(a *app.App) {
	if err := a.Close(); err != nil {
		logger.Log.WithError(err).Error("main: ошибка закрытия хранилища")
	}
}
