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

	accountCreatedHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/account_created"
	cancelBookingHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/delete_booking"
	getAdminBookingsHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/get_admin_bookings"
	getAvailabilityHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/get_user_bookings"
	manageBlockedSlotsHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/manage_blocked_slots"
	manageCouponsHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/manage_coupons"
	quotePriceHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/quote_price"
	rescheduleBookingHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/update_booking_status"
	validateCouponHandler "github.com/m04kA/FSP-BookingService/internal/api/handlers/validate_coupon"
	"github.com/m04kA/FSP-BookingService/internal/api/middleware"
	"github.com/m04kA/FSP-BookingService/internal/catalog"
	"github.com/m04kA/FSP-BookingService/internal/config"
	blockedSlotRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/blockedslot"
	bookingRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/booking"
	couponRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/coupon"
	identityClient "github.com/m04kA/FSP-BookingService/internal/integrations/identity"
	bookingsService "github.com/m04kA/FSP-BookingService/internal/service/bookings"
	couponsService "github.com/m04kA/FSP-BookingService/internal/service/coupons"
	scheduleService "github.com/m04kA/FSP-BookingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/FSP-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/FSP-BookingService/internal/usecase/get_available_slots"
	quotePriceUC "github.com/m04kA/FSP-BookingService/internal/usecase/quote_price"
	validateCouponUC "github.com/m04kA/FSP-BookingService/internal/usecase/validate_coupon"
	"github.com/m04kA/FSP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FSP-BookingService/pkg/logger"
	"github.com/m04kA/FSP-BookingService/pkg/metrics"
	"github.com/m04kA/FSP-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/FSP-BookingService/pkg/txmanager"
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

	log.Info("Starting FSP-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Каталог услуг: встроенный прайс-лист студии
	cat := catalog.Default()
	log.Info("Service catalog loaded: %d services, %d deals", len(cat.Services()), len(cat.Deals()))

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

	// Клиент платформы аккаунтов
	identity := identityClient.NewClient(
		cfg.Identity.URL,
		time.Duration(cfg.Identity.Timeout)*time.Second,
		log,
	)
	log.Info("Identity client initialized (url=%s, timeout=%ds)", cfg.Identity.URL, cfg.Identity.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		couponRepository      *couponRepo.Repository
		blockedSlotRepository *blockedSlotRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		couponRepository = couponRepo.NewRepository(wrappedDB)
		blockedSlotRepository = blockedSlotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		couponRepository = couponRepo.NewRepository(db)
		blockedSlotRepository = blockedSlotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		blockedSlotRepository,
		txMgr,
		log,
	)
	couponSvc := couponsService.NewService(couponRepository, log)
	scheduleSvc := scheduleService.NewService(bookingRepository, blockedSlotRepository, log)

	// Инициализируем use cases
	quotePriceUseCase := quotePriceUC.NewUseCase(cat, couponRepository, log)
	validateCouponUseCase := validateCouponUC.NewUseCase(couponRepository, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, blockedSlotRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		cat,
		bookingRepository,
		couponRepository,
		blockedSlotRepository,
		identity,
		txMgr,
		log,
	)

	// Инициализируем handlers
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(scheduleSvc, log)
	validateCoupon := validateCouponHandler.NewHandler(validateCouponUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	manageBlockedSlots := manageBlockedSlotsHandler.NewHandler(scheduleSvc, log)
	manageCoupons := manageCouponsHandler.NewHandler(couponSvc, log)
	accountCreated := accountCreatedHandler.NewHandler(couponSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// Предварительный расчет цены для мастера бронирования
	api.HandleFunc("/quotes", quotePrice.Handle).Methods(http.MethodPost)

	// Свободные слоты на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Анонимная занятость календаря за период
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Проверка купона в мастере бронирования
	api.HandleFunc("/coupons/validate", validateCoupon.Handle).Methods(http.MethodPost)

	// Создание бронирования (гостевое допустимо)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Просмотр бронирования по публичной ссылке из письма
	api.HandleFunc("/bookings/by-reference/{reference}", getBooking.HandleByReference).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования пользователем
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Admin(cfg.Admin.Token))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getAdminBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.HandleAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.HandleAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Блокировки слотов ---
	admin.HandleFunc("/blocked-slots", manageBlockedSlots.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-slots", manageBlockedSlots.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-slots/{slotId:[0-9]+}", manageBlockedSlots.HandleDelete).Methods(http.MethodDelete)

	// --- Купоны ---
	admin.HandleFunc("/coupons", manageCoupons.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/coupons", manageCoupons.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/coupons/{couponId:[0-9]+}/deactivate", manageCoupons.HandleDeactivate).Methods(http.MethodPatch)

	// ============================================================
	// SYSTEM HOOKS (платформа аккаунтов, авторизация токеном)
	// ============================================================

	hooks := api.PathPrefix("/hooks").Subrouter()
	hooks.Use(middleware.Admin(cfg.Admin.Token))
	hooks.HandleFunc("/account-created", accountCreated.Handle).Methods(http.MethodPost)

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
