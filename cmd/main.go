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

	checkBookabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/check_bookability"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	declareAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/declare_availability"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getOwnerTimelineHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_owner_timeline"
	getUserAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_user_appointments"
	transitionAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/transition_appointment"
	updateAppointmentServicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment_services"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	outboxPublisher "github.com/m04kA/SMC-AppointmentService/internal/infra/outbox"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	intervalRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/interval"
	outboxRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/outbox"
	catalogServiceClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	declareAvailabilityUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/declare_availability"
	transitionAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиента каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		intervalRepository    *intervalRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		outboxRepository      *outboxRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		intervalRepository = intervalRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		intervalRepository = intervalRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(intervalRepository, outboxRepository, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogClient,
		outboxRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		outboxRepository,
		catalogClient,
		txMgr,
		log,
	)
	transitionAppointmentUseCase := transitionAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		outboxRepository,
		txMgr,
		log,
	)
	declareAvailabilityUseCase := declareAvailabilityUC.NewUseCase(availabilitySvc, txMgr, log)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(transitionAppointmentUseCase, log)
	declareAvailability := declareAvailabilityHandler.NewHandler(declareAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentServices := updateAppointmentServicesHandler.NewHandler(appointmentsSvc, log)
	getOwnerTimeline := getOwnerTimelineHandler.NewHandler(availabilitySvc, log)
	checkBookability := checkBookabilityHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Таймлайн продавца
	api.HandleFunc("/sellers/{sellerId}/timeline", getOwnerTimeline.Handle).Methods(http.MethodGet)

	// Проверка бронируемости диапазона
	api.HandleFunc("/sellers/{sellerId}/bookable", checkBookability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Встречи ---
	// Создание встречи (hold)
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение встречи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Переход статуса встречи
	protected.HandleFunc("/appointments/{appointmentId}/status", transitionAppointment.Handle).Methods(http.MethodPatch)

	// Обновление состава услуг встречи
	protected.HandleFunc("/appointments/{appointmentId}/services", updateAppointmentServices.Handle).Methods(http.MethodPut)

	// Встречи пользователя (как клиента или как продавца)
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Таймлайн ---
	// Объявление (не)доступности владельца
	protected.HandleFunc("/timeline/availability", declareAvailability.Handle).Methods(http.MethodPost)

	// Запускаем публикатор событий изменений (если включен)
	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()

	if cfg.Events.Enabled {
		publisher := outboxPublisher.NewPublisher(outboxRepository, txMgr, log, outboxPublisher.Config{
			Brokers:   cfg.Events.Brokers,
			Topic:     cfg.Events.Topic,
			PollEvery: time.Duration(cfg.Events.PollEvery) * time.Second,
			BatchSize: cfg.Events.BatchSize,
		})
		go publisher.Run(publisherCtx)
		log.Info("Change event publisher started (topic=%s)", cfg.Events.Topic)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
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

	// Останавливаем публикатор событий
	stopPublisher()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
