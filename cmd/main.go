package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-aggregator/bracket"
	"github.com/Dosada05/tournament-aggregator/clients"
	"github.com/Dosada05/tournament-aggregator/config"
	"github.com/Dosada05/tournament-aggregator/handlers"
	api "github.com/Dosada05/tournament-aggregator/routes"
	"github.com/Dosada05/tournament-aggregator/services"
)

// Фиксированная конфигурация брекета: две группы по два слота, победители
// встречаются в финале.
var bracketGroups = []string{"group-a", "group-b"}

const slotsPerGroup = 2

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("matches_service", cfg.MatchesServiceBaseURL),
		slog.String("teams_service", cfg.TeamsServiceBaseURL))

	// Клиенты удалённых сервисов
	matchesClient := clients.NewMatchesClient(clients.MatchesClientConfig{
		BaseURL: cfg.MatchesServiceBaseURL,
		Timeout: cfg.RemoteTimeout,
	}, logger)
	teamsClient := clients.NewTeamsClient(clients.TeamsClientConfig{
		BaseURL: cfg.TeamsServiceBaseURL,
		Timeout: cfg.RemoteTimeout,
	}, logger)
	logger.Info("remote service clients initialized")

	// Состояние брекета и кеш представления
	store := bracket.NewStore(bracketGroups, slotsPerGroup)
	cache := services.NewStateCache(cfg.CacheTTL)

	// Инициализация сервисов
	validator := services.NewSlotValidator(store, matchesClient, logger)
	viewBuilder := services.NewViewBuilder(matchesClient, logger)
	finalScheduler := services.NewFinalScheduler(matchesClient, store, cache, logger)
	aggregationService := services.NewAggregationService(
		store,
		matchesClient,
		teamsClient,
		validator,
		viewBuilder,
		finalScheduler,
		cache,
		nil, // системные часы
		logger,
	)
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP
	tournamentHandler := handlers.NewTournamentHandler(aggregationService)

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, tournamentHandler)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
