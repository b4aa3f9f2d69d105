package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/avdonin/event_safety_system/internal/config"
	v1 "github.com/avdonin/event_safety_system/internal/handler/http/v1"
	"github.com/avdonin/event_safety_system/internal/models"
	"github.com/avdonin/event_safety_system/internal/oracle"
	memrepo "github.com/avdonin/event_safety_system/internal/repository/memory"
	pgrepo "github.com/avdonin/event_safety_system/internal/repository/postgres"
	"github.com/avdonin/event_safety_system/internal/service"
	"github.com/avdonin/event_safety_system/internal/webhook"
	"github.com/avdonin/event_safety_system/pkg/logger"
	"github.com/avdonin/event_safety_system/pkg/postgres"
	redisclient "github.com/avdonin/event_safety_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/avdonin/event_safety_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// repositories - набор хранилищ, за которыми работают сервисы.
// Оба бэкенда (memory и postgres) реализуют один и тот же набор контрактов.
type repositories struct {
	alerts     service.AlertRepository
	reports    service.ReportRepository
	responders service.ResponderRepository
	dispatch   service.DispatchRepository
}

// @title Event Safety System API
// @version 1.0
// @description Coordination core for event safety monitoring: attendee reports, alert lifecycle, dispatch and sentiment.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// seedResponders наполняет пустой ростер стартовым составом смены
func seedResponders(ctx context.Context, repo service.ResponderRepository, log *logrus.Logger) {
	existing, err := repo.ListResponders(ctx, "")
	if err != nil || len(existing) > 0 {
		return
	}

	roster := []*models.Responder{
		{ID: "resp-1", Name: "Alice Johnson", Status: models.ResponderStatusAvailable, Location: models.GeoPoint{Lat: 34.0525, Lng: -118.2435}},
		{ID: "resp-2", Name: "Bob Williams", Status: models.ResponderStatusAvailable, Location: models.GeoPoint{Lat: 34.0520, Lng: -118.2440}},
		{ID: "resp-3", Name: "Charlie Brown", Status: models.ResponderStatusOnBreak, Location: models.GeoPoint{Lat: 34.0518, Lng: -118.2430}},
		{ID: "resp-4", Name: "Diana Prince", Status: models.ResponderStatusAvailable, Location: models.GeoPoint{Lat: 34.0530, Lng: -118.2445}},
	}
	for _, responder := range roster {
		if err := repo.CreateResponder(ctx, responder); err != nil {
			log.WithError(err).WithField("responder_id", responder.ID).Warn("Failed to seed responder")
		}
	}
	log.WithField("count", len(roster)).Info("Responder roster seeded")
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Выбор бэкенда хранения
	var repos repositories
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}

		dbpool, err := postgres.NewPostgresDB(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")

		repo := pgrepo.NewRepository(dbpool, redisClient)
		repos = repositories{alerts: repo, reports: repo, responders: repo, dispatch: repo}
	default:
		store := memrepo.NewStore()
		repos = repositories{alerts: store, reports: store, responders: store, dispatch: store}
		log.Info("Using in-memory storage backend")
	}

	seedResponders(ctx, repos.responders, log)

	// Клиент оракула классификации
	classifier := oracle.NewClient(cfg.OracleAPIKey, cfg.OracleModel, cfg.OracleBaseURL, cfg.OracleTimeout, log)

	// Инициализация издателя вебхуков
	webhookPublisher := webhook.NewRedisPublisher(redisClient)

	// Инициализация и запуск воркера вебхуков
	webhookWorker := webhook.NewWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Инициализация сервисов. Агрегатор настроения подписан на изменения
	// набора алертов и обновляет сводку в фоне. Реестр и координатор делят
	// одну блокировку мутаций жизненного цикла алертов.
	stateMu := &sync.Mutex{}
	sentimentService := service.NewSentiment(repos.alerts, classifier, redisClient, log)
	registryService := service.NewAlertRegistry(repos.alerts, log, webhookPublisher, sentimentService, stateMu)
	intakeService := service.NewReportIntake(repos.reports, registryService, classifier, cfg.EventID, log)
	dispatchService := service.NewDispatch(repos.alerts, repos.responders, repos.dispatch, log, webhookPublisher, sentimentService, stateMu)
	statsService := service.NewStats(repos.alerts, repos.reports, repos.responders, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(intakeService, registryService, dispatchService, sentimentService, statsService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterSystemRoutes(api)

	protected := api.Group("", v1.APIKeyAuthMiddleware(cfg, log))
	handler.RegisterRoutes(protected)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
