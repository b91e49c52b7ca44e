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

	createBookingHandler "github.com/m04kA/TCM-VisitService/internal/api/handlers/create_booking"
	generateSlotsHandler "github.com/m04kA/TCM-VisitService/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/TCM-VisitService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/TCM-VisitService/internal/api/handlers/get_booking"
	getSimulationHandler "github.com/m04kA/TCM-VisitService/internal/api/handlers/get_simulation"
	getTempleHandler "github.com/m04kA/TCM-VisitService/internal/api/handlers/get_temple"
	getTempleConfigHandler "github.com/m04kA/TCM-VisitService/internal/api/handlers/get_temple_config"
	getUserBookingsHandler "github.com/m04kA/TCM-VisitService/internal/api/handlers/get_user_bookings"
	getWaitEstimateHandler "github.com/m04kA/TCM-VisitService/internal/api/handlers/get_wait_estimate"
	updateBookingStatusHandler "github.com/m04kA/TCM-VisitService/internal/api/handlers/update_booking_status"
	updateTempleConfigHandler "github.com/m04kA/TCM-VisitService/internal/api/handlers/update_temple_config"
	"github.com/m04kA/TCM-VisitService/internal/api/middleware"
	"github.com/m04kA/TCM-VisitService/internal/config"
	bookingRepo "github.com/m04kA/TCM-VisitService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/TCM-VisitService/internal/infra/storage/slot"
	templeRepo "github.com/m04kA/TCM-VisitService/internal/infra/storage/temple"
	weatherServiceClient "github.com/m04kA/TCM-VisitService/internal/integrations/weatherservice"
	bookingsService "github.com/m04kA/TCM-VisitService/internal/service/bookings"
	"github.com/m04kA/TCM-VisitService/internal/service/capacity"
	templesService "github.com/m04kA/TCM-VisitService/internal/service/temples"
	createBookingUC "github.com/m04kA/TCM-VisitService/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/TCM-VisitService/internal/usecase/generate_slots"
	getAvailableSlotsUC "github.com/m04kA/TCM-VisitService/internal/usecase/get_available_slots"
	getSimulationUC "github.com/m04kA/TCM-VisitService/internal/usecase/get_simulation"
	getWaitEstimateUC "github.com/m04kA/TCM-VisitService/internal/usecase/get_wait_estimate"
	"github.com/m04kA/TCM-VisitService/pkg/bookingid"
	"github.com/m04kA/TCM-VisitService/pkg/dbmetrics"
	"github.com/m04kA/TCM-VisitService/pkg/logger"
	"github.com/m04kA/TCM-VisitService/pkg/metrics"
	"github.com/m04kA/TCM-VisitService/pkg/simpletxmanager"
	"github.com/m04kA/TCM-VisitService/pkg/txmanager"
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

	log.Info("Starting TCM-VisitService...")
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

	// Инициализируем клиента погодного сервиса (если включён)
	var weatherClient getSimulationUC.WeatherClient
	if cfg.WeatherService.Enabled {
		weatherClient = weatherServiceClient.NewClient(
			cfg.WeatherService.URL,
			time.Duration(cfg.WeatherService.Timeout)*time.Second,
			log,
		)
		log.Info("WeatherService client initialized (url=%s, timeout=%ds)",
			cfg.WeatherService.URL, cfg.WeatherService.Timeout)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		slotRepository    *slotRepo.Repository
		templeRepository  *templeRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		templeRepository = templeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		templeRepository = templeRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Аллокатор ёмкости - единственная точка изменения счётчиков слотов
	allocator := capacity.NewAllocator(slotRepository, cfg.Allocator.MaxRetries, log)

	// Генератор публичных идентификаторов бронирований
	idGenerator := bookingid.New()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		allocator,
		txMgr,
		&createBookingUC.RealTimeProvider{},
		log,
	)
	templeSvc := templesService.NewService(templeRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		templeRepository,
		allocator,
		idGenerator,
		&createBookingUC.RealTimeProvider{},
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(slotRepository, templeRepository, log)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(slotRepository, templeRepository, log)
	getSimulationUseCase := getSimulationUC.NewUseCase(templeRepository, weatherClient, log)
	getWaitEstimateUseCase := getWaitEstimateUC.NewUseCase(slotRepository, templeRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getSimulation := getSimulationHandler.NewHandler(getSimulationUseCase, log)
	getWaitEstimate := getWaitEstimateHandler.NewHandler(getWaitEstimateUseCase, log)
	getTemple := getTempleHandler.NewHandler(templeSvc, log)
	getTempleConfig := getTempleConfigHandler.NewHandler(templeSvc, log)
	updateTempleConfig := updateTempleConfigHandler.NewHandler(templeSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Карточка храма
	api.HandleFunc("/temples/{templeId}", getTemple.Handle).Methods(http.MethodGet)

	// Слоты храма на дату с остатком мест
	api.HandleFunc("/temples/{templeId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Конфигурация ёмкости храма
	api.HandleFunc("/temples/{templeId}/config", getTempleConfig.Handle).Methods(http.MethodGet)

	// Симуляция посещаемости на день
	api.HandleFunc("/temples/{templeId}/simulation", getSimulation.Handle).Methods(http.MethodGet)

	// Оценка времени ожидания
	api.HandleFunc("/temples/{templeId}/slots/{slotId}/wait-estimate", getWaitEstimate.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID (внутреннему или публичному "TCM...")
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Изменение статуса: отмена, завершение, неявка
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление храмом (для операторов) ---
	// Генерация сетки слотов на дату
	protected.HandleFunc("/temples/{templeId}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

	// Обновление конфигурации ёмкости
	protected.HandleFunc("/temples/{templeId}/config", updateTempleConfig.Handle).Methods(http.MethodPut)

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
