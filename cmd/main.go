package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers/health"
	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers/list_audit"
	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers/list_notifications"
	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers/toggle_notification"
	"github.com/m04kA/SMC-OrgNotifications/internal/api/middleware"
	"github.com/m04kA/SMC-OrgNotifications/internal/config"
	"github.com/m04kA/SMC-OrgNotifications/internal/infra/storage/toggle_audit"
	"github.com/m04kA/SMC-OrgNotifications/internal/integrations/controller"
	"github.com/m04kA/SMC-OrgNotifications/internal/service/views"
	"github.com/m04kA/SMC-OrgNotifications/internal/worker"
	"github.com/m04kA/SMC-OrgNotifications/pkg/logger"
	"github.com/m04kA/SMC-OrgNotifications/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-OrgNotifications...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Журнал изменений привязок (опционально)
	var auditRepo *toggle_audit.Repository
	var auditRecorder views.AuditRecorder
	if cfg.Audit.Enabled {
		db, err := sql.Open("postgres", cfg.Audit.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.Audit.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Audit.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Audit.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Connected to audit database %s:%d/%s", cfg.Audit.Host, cfg.Audit.Port, cfg.Audit.DBName)

		auditRepo = toggle_audit.NewRepository(db)
		auditRecorder = auditRepo
	}

	// Клиент API контроллера
	controllerClient := controller.NewClient(
		cfg.Controller.URL,
		cfg.Controller.Token,
		cfg.Controller.TimeoutDuration(),
		metricsCollector,
	)
	log.Info("Controller client initialized (url=%s, timeout=%ds)", cfg.Controller.URL, cfg.Controller.Timeout)

	// Реестр представлений организаций
	registry := views.NewRegistry(controllerClient, auditRecorder, metricsCollector, log)

	refresher := worker.NewRefresher(
		registry,
		log,
		cfg.Views.RefreshDuration(),
		cfg.Views.EvictDuration(),
		cfg.Views.TTLDuration(),
	)
	if err := refresher.Start(); err != nil {
		log.Fatal("Failed to start views refresher: %v", err)
	}
	log.Info("Views refresher started (refresh=%ds, evict=%ds, ttl=%ds)",
		cfg.Views.RefreshInterval, cfg.Views.EvictInterval, cfg.Views.ViewTTL)

	// Инициализируем handlers
	healthHandler := health.NewHandler(registry)
	listNotificationsHandler := list_notifications.NewHandler(registry, log)
	toggleNotificationHandler := toggle_notification.NewHandler(registry, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	r.HandleFunc("/health", healthHandler.Handle).Methods(http.MethodGet)

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API v1 endpoints
	api := r.PathPrefix("/api/v1").Subrouter()

	if auditRepo != nil {
		listAuditHandler := list_audit.NewHandler(auditRepo, log)
		api.HandleFunc("/organizations/{id}/notifications/audit", listAuditHandler.Handle).Methods(http.MethodGet)
	}
	api.HandleFunc("/organizations/{id}/notifications", listNotificationsHandler.Handle).Methods(http.MethodGet)
	api.HandleFunc("/organizations/{id}/notifications/{template_id}/toggle", toggleNotificationHandler.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем refresher ПЕРЕД сервером
	refresher.Stop()
	log.Info("Views refresher stopped")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
