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

	cancelBookingHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/cancel_booking"
	clientBookingsHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/client_bookings"
	createBookingHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/list_bookings"
	patchBookingsHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/patch_bookings"
	requestRescheduleHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/request_reschedule"
	respondRescheduleHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/respond_reschedule"
	updateStatusHandler "github.com/m04kA/spa-booking-service/internal/api/handlers/update_booking_status"
	"github.com/m04kA/spa-booking-service/internal/api/middleware"
	"github.com/m04kA/spa-booking-service/internal/config"
	catalogCache "github.com/m04kA/spa-booking-service/internal/infra/cache/catalog"
	bookingRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/client"
	rescheduleRepo "github.com/m04kA/spa-booking-service/internal/infra/storage/reschedule"
	whatsappClient "github.com/m04kA/spa-booking-service/internal/integrations/whatsapp"
	"github.com/m04kA/spa-booking-service/internal/notification"
	bookingsService "github.com/m04kA/spa-booking-service/internal/service/bookings"
	createBookingUC "github.com/m04kA/spa-booking-service/internal/usecase/create_booking"
	requestRescheduleUC "github.com/m04kA/spa-booking-service/internal/usecase/request_reschedule"
	respondRescheduleUC "github.com/m04kA/spa-booking-service/internal/usecase/respond_reschedule"
	updateStatusUC "github.com/m04kA/spa-booking-service/internal/usecase/update_booking_status"
	"github.com/m04kA/spa-booking-service/pkg/dbmetrics"
	"github.com/m04kA/spa-booking-service/pkg/logger"
	"github.com/m04kA/spa-booking-service/pkg/metrics"
	"github.com/m04kA/spa-booking-service/pkg/txmanager"
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

	log.Info("Starting spa-booking-service...")

	// Инициализируем метрики (если включены)
	// Методы *metrics.Metrics безопасны для nil, поэтому при выключенных метриках передаём nil
	var metricsCollector *metrics.Metrics
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	rescheduleRepository := rescheduleRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш профилей профессионалов (Redis опционален)
	// Услуги и цены всегда читаются из БД, итоги бронирований не зависят от кэша
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш не обязателен: при недоступном Redis запросы идут в БД
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
		cancel()
	}
	professionals := catalogCache.NewCache(
		catalogRepository,
		redisClient,
		time.Duration(cfg.Redis.CatalogTTL)*time.Second,
		log,
		metricsCollector,
	)

	// Инициализируем каналы уведомлений
	var senders []notification.Sender
	if cfg.Notifications.Enabled {
		waClient := whatsappClient.NewClient(
			cfg.WhatsApp.URL,
			cfg.WhatsApp.Token,
			time.Duration(cfg.WhatsApp.Timeout)*time.Second,
			log,
		)
		if waClient.Configured() {
			senders = append(senders, notification.NewWhatsAppSender(waClient))
			log.Info("WhatsApp notifications enabled (gateway=%s)", cfg.WhatsApp.URL)
		} else {
			log.Warn("WhatsApp gateway is not configured, WhatsApp notifications disabled")
		}

		if sg := notification.NewSendGridSender(notification.SendGridConfig{
			APIKey:    cfg.SendGrid.APIKey,
			FromEmail: cfg.SendGrid.FromEmail,
			FromName:  cfg.SendGrid.FromName,
		}); sg != nil {
			senders = append(senders, sg)
			log.Info("Email notifications enabled (from=%s)", cfg.SendGrid.FromEmail)
		}
	}
	dispatcher := notification.NewDispatcher(
		log,
		metricsCollector,
		cfg.Notifications.RatePerSecond,
		cfg.Notifications.Burst,
		senders...,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		clientRepository,
		catalogRepository,
		professionals,
		rescheduleRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		clientRepository,
		catalogRepository,
		catalogRepository,
		txMgr,
		metricsCollector,
		log,
	)

	updateStatusUseCase := updateStatusUC.NewUseCase(
		bookingRepository,
		bookingSvc,
		dispatcher,
		metricsCollector,
		log,
		updateStatusUC.Options{
			RejectFromFinal: cfg.Booking.TerminalTransitions != config.TerminalTransitionsAllow,
			BusinessName:    cfg.Notifications.BusinessName,
		},
	)

	requestRescheduleUseCase := requestRescheduleUC.NewUseCase(
		bookingRepository,
		rescheduleRepository,
		metricsCollector,
		log,
	)

	respondRescheduleUseCase := respondRescheduleUC.NewUseCase(
		rescheduleRepository,
		bookingRepository,
		bookingSvc,
		dispatcher,
		txMgr,
		metricsCollector,
		log,
		respondRescheduleUC.Options{
			NotifyClient: cfg.Notifications.NotifyRescheduleDecision,
			BusinessName: cfg.Notifications.BusinessName,
		},
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(updateStatusUseCase, log)
	requestReschedule := requestRescheduleHandler.NewHandler(requestRescheduleUseCase, log)
	respondReschedule := respondRescheduleHandler.NewHandler(respondRescheduleUseCase, log)
	patchBookings := patchBookingsHandler.NewHandler(requestReschedule, respondReschedule, log)
	clientBookings := clientBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (клиентские, с ограничением частоты запросов)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
		public.Use(limiter.Middleware)
		log.Info("Rate limiting enabled: %d req/min, burst=%d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// Создание бронирования
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Заявка на перенос и ответ на неё (action в теле)
	public.HandleFunc("/bookings", patchBookings.Handle).Methods(http.MethodPatch)

	// Отмена бронирования клиентом
	public.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Заявка на перенос бронирования
	public.HandleFunc("/bookings/{bookingId}/reschedule-requests", requestReschedule.Handle).Methods(http.MethodPost)

	// Бронирования клиента по телефону
	public.HandleFunc("/clients/{phone}/bookings", clientBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (требуют X-Actor-ID header)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.Auth)

	// Список бронирований с фильтрами
	staff.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	staff.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	staff.HandleFunc("/bookings/{bookingId}/status", updateStatus.Handle).Methods(http.MethodPut)

	// Ответ на заявку о переносе
	staff.HandleFunc("/reschedule-requests/{requestId}/response", respondReschedule.Handle).Methods(http.MethodPost)

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

	close(stopMetricsCh)

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
