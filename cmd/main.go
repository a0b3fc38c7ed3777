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

	cancelBookingHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/cancel_booking"
	checkConflictsHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/check_conflicts"
	conflictStatsHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/conflict_stats"
	createBookingHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/get_booking"
	getOrganizationBookingsHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/get_organization_bookings"
	getUserBookingsHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/get_user_bookings"
	listConflictsHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/list_conflicts"
	logConflictHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/log_conflict"
	resolveConflictHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/resolve_conflict"
	updateBookingStatusHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/update_booking_status"
	updateParticipantsHandler "github.com/artel-platform/AOM-BookingService/internal/api/handlers/update_participants"
	"github.com/artel-platform/AOM-BookingService/internal/api/middleware"
	"github.com/artel-platform/AOM-BookingService/internal/config"
	bookingRepo "github.com/artel-platform/AOM-BookingService/internal/infra/storage/booking"
	conflictLogRepo "github.com/artel-platform/AOM-BookingService/internal/infra/storage/conflictlog"
	resourceRepo "github.com/artel-platform/AOM-BookingService/internal/infra/storage/resource"
	orgServiceClient "github.com/artel-platform/AOM-BookingService/internal/integrations/orgservice"
	bookingsService "github.com/artel-platform/AOM-BookingService/internal/service/bookings"
	conflictsService "github.com/artel-platform/AOM-BookingService/internal/service/conflicts"
	createBookingUC "github.com/artel-platform/AOM-BookingService/internal/usecase/create_booking"
	"github.com/artel-platform/AOM-BookingService/pkg/dbmetrics"
	"github.com/artel-platform/AOM-BookingService/pkg/logger"
	"github.com/artel-platform/AOM-BookingService/pkg/metrics"
	"github.com/artel-platform/AOM-BookingService/pkg/simpletxmanager"
	"github.com/artel-platform/AOM-BookingService/pkg/txmanager"
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

	log.Info("Starting AOM-BookingService...")
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

	// Инициализируем клиента OrgService
	orgClient := orgServiceClient.NewClient(
		cfg.OrgService.URL,
		time.Duration(cfg.OrgService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (OrgService=%s timeout=%ds)",
		cfg.OrgService.URL, cfg.OrgService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		resourceRepository    *resourceRepo.Repository
		conflictLogRepository *conflictLogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		conflictLogRepository = conflictLogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		conflictLogRepository = conflictLogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	conflictSvc := conflictsService.NewService(
		bookingRepository,
		resourceRepository,
		conflictLogRepository,
		orgClient,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		orgClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		conflictSvc,
		txMgr,
		log,
		cfg.Conflicts.LogOnReject,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkConflicts := checkConflictsHandler.NewHandler(conflictSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updateParticipants := updateParticipantsHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getOrganizationBookings := getOrganizationBookingsHandler.NewHandler(bookingSvc, log)
	logConflict := logConflictHandler.NewHandler(conflictSvc, log)
	listConflicts := listConflictsHandler.NewHandler(conflictSvc, log)
	resolveConflict := resolveConflictHandler.NewHandler(conflictSvc, log)
	conflictStats := conflictStatsHandler.NewHandler(conflictSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

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

	// Сухая проверка конфликтов бронирования
	api.HandleFunc("/bookings/check", checkConflicts.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования с проверкой конфликтов
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Обновление количества участников
	protected.HandleFunc("/bookings/{bookingId}/participants", updateParticipants.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление организацией (для менеджеров) ---
	// Список бронирований организации
	protected.HandleFunc("/organizations/{orgId}/bookings", getOrganizationBookings.Handle).Methods(http.MethodGet)

	// Журнал конфликтов организации
	protected.HandleFunc("/organizations/{orgId}/conflicts", logConflict.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/organizations/{orgId}/conflicts", listConflicts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/organizations/{orgId}/conflicts/stats", conflictStats.Handle).Methods(http.MethodGet)

	// Разрешение конфликта
	protected.HandleFunc("/conflicts/{conflictId}/resolve", resolveConflict.Handle).Methods(http.MethodPatch)

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
