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
	"github.com/redis/go-redis/v9"

	bookSlotHandler "github.com/m04kA/SMC-CabinService/internal/api/handlers/book_slot"
	cancelBookingHandler "github.com/m04kA/SMC-CabinService/internal/api/handlers/cancel_booking"
	createCabinHandler "github.com/m04kA/SMC-CabinService/internal/api/handlers/create_cabin"
	deleteBookingHandler "github.com/m04kA/SMC-CabinService/internal/api/handlers/delete_booking"
	deleteCabinHandler "github.com/m04kA/SMC-CabinService/internal/api/handlers/delete_cabin"
	getAllBookingsHandler "github.com/m04kA/SMC-CabinService/internal/api/handlers/get_all_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CabinService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CabinService/internal/api/handlers/get_booking"
	getMyBookingsHandler "github.com/m04kA/SMC-CabinService/internal/api/handlers/get_my_bookings"
	listCabinsHandler "github.com/m04kA/SMC-CabinService/internal/api/handlers/list_cabins"
	updateCabinHandler "github.com/m04kA/SMC-CabinService/internal/api/handlers/update_cabin"
	"github.com/m04kA/SMC-CabinService/internal/api/middleware"
	"github.com/m04kA/SMC-CabinService/internal/config"
	bookingRepo "github.com/m04kA/SMC-CabinService/internal/infra/storage/booking"
	cabinRepo "github.com/m04kA/SMC-CabinService/internal/infra/storage/cabin"
	authServiceClient "github.com/m04kA/SMC-CabinService/internal/integrations/authservice"
	bookingsService "github.com/m04kA/SMC-CabinService/internal/service/bookings"
	cabinsService "github.com/m04kA/SMC-CabinService/internal/service/cabins"
	bookSlotUC "github.com/m04kA/SMC-CabinService/internal/usecase/book_slot"
	getAvailableSlotsUC "github.com/m04kA/SMC-CabinService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CabinService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CabinService/pkg/logger"
	"github.com/m04kA/SMC-CabinService/pkg/metrics"
	"github.com/m04kA/SMC-CabinService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-CabinService/pkg/txmanager"
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

	log.Info("Starting SMC-CabinService...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс, в котором работают кабины
	location, err := cfg.Service.Location()
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}
	log.Info("Cabin timezone: %s", location)

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

	// Инициализируем клиент сервиса аутентификации
	authClient := authServiceClient.NewClient(
		cfg.AuthService.URL,
		time.Duration(cfg.AuthService.Timeout)*time.Second,
		log,
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		authClient = authClient.WithCache(redisClient, time.Duration(cfg.Redis.IdentityTTL)*time.Second)
		log.Info("Identity cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.IdentityTTL)
	}
	log.Info("AuthService client initialized (url=%s, timeout=%ds)",
		cfg.AuthService.URL, cfg.AuthService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		cabinRepository   *cabinRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		cabinRepository = cabinRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		cabinRepository = cabinRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, location, log)
	cabinSvc := cabinsService.NewService(cabinRepository, bookingRepository, location, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		cabinRepository,
		location,
		log,
	)
	bookSlotUseCase := bookSlotUC.NewUseCase(
		bookingRepository,
		cabinRepository,
		txMgr,
		location,
		log,
	)

	// Инициализируем handlers
	listCabins := listCabinsHandler.NewHandler(cabinSvc, log)
	createCabin := createCabinHandler.NewHandler(cabinSvc, log)
	updateCabin := updateCabinHandler.NewHandler(cabinSvc, log)
	deleteCabin := deleteCabinHandler.NewHandler(cabinSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	getAllBookings := getAllBookingsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список кабин
	api.HandleFunc("/cabins", listCabins.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer-токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authClient, log))

	// Доступные слоты кабины на сегодня и завтра
	protected.HandleFunc("/bookings/{cabinId:[0-9]+}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Бронирование выбранного слота
	protected.HandleFunc("/bookings/{cabinId:[0-9]+}/book-selected-slot",
		bookSlot.Handle).Methods(http.MethodPost)

	// Бронирования текущего пользователя
	protected.HandleFunc("/bookings/my-bookings", getMyBookings.Handle).Methods(http.MethodGet)

	// Отмена бронирования (владелец или админ)
	protected.HandleFunc("/bookings/{id:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodDelete)

	// Бронирование по ID (владелец или админ)
	protected.HandleFunc("/bookings/{id:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer-токен с правами администратора)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin(log))

	// Управление кабинами
	admin.HandleFunc("/cabins", createCabin.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/cabins/{id:[0-9]+}", updateCabin.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/cabins/{id:[0-9]+}", deleteCabin.Handle).Methods(http.MethodDelete)

	// Весь леджер бронирований
	admin.HandleFunc("/bookings/admin/all-bookings", getAllBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/admin/{id:[0-9]+}/delete", deleteBooking.Handle).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
