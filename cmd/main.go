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

	cancelBookingHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/create_booking"
	getAreaBookingsHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/get_area_bookings"
	getAreaSlotsHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/get_area_slots"
	getBookingHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/get_client_bookings"
	getOccupiedSlotsHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/get_occupied_slots"
	rescheduleBookingHandler "github.com/m04kA/SLN-BookingService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SLN-BookingService/internal/api/middleware"
	"github.com/m04kA/SLN-BookingService/internal/config"
	bookingRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/booking"
	catalogServiceClient "github.com/m04kA/SLN-BookingService/internal/integrations/catalogservice"
	bookingsService "github.com/m04kA/SLN-BookingService/internal/service/bookings"
	"github.com/m04kA/SLN-BookingService/internal/slotcatalog"
	createBookingUC "github.com/m04kA/SLN-BookingService/internal/usecase/create_booking"
	getOccupiedSlotsUC "github.com/m04kA/SLN-BookingService/internal/usecase/get_occupied_slots"
	rescheduleBookingUC "github.com/m04kA/SLN-BookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SLN-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SLN-BookingService/pkg/logger"
	"github.com/m04kA/SLN-BookingService/pkg/metrics"
	"github.com/m04kA/SLN-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/SLN-BookingService/pkg/txmanager"
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

	log.Info("Starting SLN-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс бизнеса: в нём трактуются все даты бронирований
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load booking timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Booking timezone: %s", cfg.Booking.Timezone)

	// Собираем статический каталог слотов из конфигурации
	perAreaSlots := make(map[int64][]string, len(cfg.Slots.Areas))
	for _, area := range cfg.Slots.Areas {
		perAreaSlots[area.AreaID] = area.Slots
	}
	catalog, err := slotcatalog.New(cfg.Slots.Default, perAreaSlots)
	if err != nil {
		log.Fatal("Failed to build slot catalog: %v", err)
	}
	log.Info("Slot catalog built: %d default slots, %d area overrides",
		len(cfg.Slots.Default), len(cfg.Slots.Areas))

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

	// Инициализируем клиента каталога зон и услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalog,
		catalogClient,
		txMgr,
		location,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		catalog,
		catalogClient,
		txMgr,
		location,
		log,
	)

	getOccupiedSlotsUseCase := getOccupiedSlotsUC.NewUseCase(
		bookingRepository,
		catalogClient,
		location,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getOccupiedSlots := getOccupiedSlotsHandler.NewHandler(getOccupiedSlotsUseCase, log)
	getAreaSlots := getAreaSlotsHandler.NewHandler(catalog, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getAreaBookings := getAreaBookingsHandler.NewHandler(bookingSvc, log)

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

	// Каталог слотов зоны обслуживания
	api.HandleFunc("/areas/{areaId}/slots", getAreaSlots.Handle).Methods(http.MethodGet)

	// Занятые слоты зоны на дату
	api.HandleFunc("/areas/{areaId}/occupied-slots", getOccupiedSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос бронирования на другую дату/слот
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Календарь зоны (для администраторов) ---
	protected.HandleFunc("/areas/{areaId}/bookings", getAreaBookings.Handle).Methods(http.MethodGet)

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
