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

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BeautyBot/internal/api/handlers/catalog"
	createAppointmentHandler "github.com/m04kA/SMC-BeautyBot/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-BeautyBot/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-BeautyBot/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-BeautyBot/internal/api/handlers/get_availability"
	"github.com/m04kA/SMC-BeautyBot/internal/api/handlers/health"
	listAppointmentsHandler "github.com/m04kA/SMC-BeautyBot/internal/api/handlers/list_appointments"
	listBookingRequestsHandler "github.com/m04kA/SMC-BeautyBot/internal/api/handlers/list_booking_requests"
	processBookingRequestHandler "github.com/m04kA/SMC-BeautyBot/internal/api/handlers/process_booking_request"
	updateAppointmentHandler "github.com/m04kA/SMC-BeautyBot/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-BeautyBot/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyBot/internal/bot"
	"github.com/m04kA/SMC-BeautyBot/internal/bot/dialogue"
	"github.com/m04kA/SMC-BeautyBot/internal/config"
	"github.com/m04kA/SMC-BeautyBot/internal/infra/session"
	appointmentRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/appointment"
	bookingRequestRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/bookingrequest"
	clientRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/client"
	"github.com/m04kA/SMC-BeautyBot/internal/infra/storage/pgerrors"
	procedureRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/procedure"
	salonRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/salon"
	specialistRepo "github.com/m04kA/SMC-BeautyBot/internal/infra/storage/specialist"
	appointmentsService "github.com/m04kA/SMC-BeautyBot/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-BeautyBot/internal/service/catalog"
	createAppointmentUC "github.com/m04kA/SMC-BeautyBot/internal/usecase/create_appointment"
	createBookingRequestUC "github.com/m04kA/SMC-BeautyBot/internal/usecase/create_booking_request"
	getAvailabilityUC "github.com/m04kA/SMC-BeautyBot/internal/usecase/get_availability"
	"github.com/m04kA/SMC-BeautyBot/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBot/pkg/logger"
	"github.com/m04kA/SMC-BeautyBot/pkg/metrics"
	"github.com/m04kA/SMC-BeautyBot/pkg/txmanager"
)

const (
	sessionJanitorInterval = 10 * time.Minute
	serializableTxAttempts = 3
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

	log.Info("Starting SMC-BeautyBot...")
	log.Info("Configuration loaded from config.toml")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	// nil-коллектор безопасен: все методы Metrics его проверяют
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

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
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
	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithSerializationRetry(serializableTxAttempts, pgerrors.IsSerializationFailure))

	// Инициализируем репозитории
	salonRepository := salonRepo.NewRepository(wrappedDB)
	specialistRepository := specialistRepo.NewRepository(wrappedDB)
	procedureRepository := procedureRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	bookingRequestRepository := bookingRequestRepo.NewRepository(wrappedDB)

	// Хранилище состояний диалогов
	var sessions dialogue.SessionStore
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		sessions = session.NewRedisStore(redisClient, cfg.Session.TTL(), session.RealTimeProvider{})
		log.Info("Dialogue sessions stored in redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	} else {
		memoryStore := session.NewMemoryStore(cfg.Session.TTL(), session.RealTimeProvider{})
		go memoryStore.RunJanitor(ctx, sessionJanitorInterval)
		sessions = memoryStore
		log.Info("Dialogue sessions stored in memory")
	}

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		appointmentRepository,
		cfg.Slots.FirstHour,
		cfg.Slots.LastHour,
		metricsCollector,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		specialistRepository,
		clientRepository,
		txMgr,
		cfg.Slots.FirstHour,
		cfg.Slots.LastHour,
		session.RealTimeProvider{},
		metricsCollector,
		log,
	)
	createBookingRequestUseCase := createBookingRequestUC.NewUseCase(bookingRequestRepository, log)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		salonRepository,
		specialistRepository,
		procedureRepository,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		bookingRequestRepository,
		createAppointmentUseCase,
		log,
	)

	// Telegram бот
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatal("Failed to create telegram bot: %v", err)
	}
	botAPI.Debug = cfg.Telegram.Debug
	if err := tgbotapi.SetLogger(log); err != nil {
		log.Warn("Failed to set telegram logger: %v", err)
	}
	log.Info("Authorized on telegram account @%s", botAPI.Self.UserName)

	controller := dialogue.NewController(dialogue.Deps{
		Sender:          botAPI,
		Sessions:        sessions,
		Salons:          salonRepository,
		Specialists:     specialistRepository,
		Procedures:      procedureRepository,
		Availability:    getAvailabilityUseCase,
		Appointments:    createAppointmentUseCase,
		BookingRequests: createBookingRequestUseCase,
		Clock:           session.RealTimeProvider{},
		Logger:          log,
		DateWindowDays:  cfg.Slots.DateWindowDays,
		FirstHour:       cfg.Slots.FirstHour,
		LastHour:        cfg.Slots.LastHour,
	})
	telegramBot := bot.NewBot(botAPI, controller, cfg.Telegram.UpdateTimeout, metricsCollector, log)

	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		if err := telegramBot.Run(ctx); err != nil {
			log.Error("Bot stopped with error: %v", err)
		}
	}()

	// Инициализируем handlers
	catalogH := catalog.NewHandler(catalogSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listBookingRequests := listBookingRequestsHandler.NewHandler(appointmentsSvc, log)
	processBookingRequest := processBookingRequestHandler.NewHandler(appointmentsSvc, log)
	healthH := health.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", healthH.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token, если токен задан)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.AdminAuth(cfg.Admin.Token))
	if cfg.Admin.Token == "" {
		log.Warn("Admin token is empty, admin API is not protected")
	}

	// --- Каталог ---
	api.HandleFunc("/salons", catalogH.ListSalons).Methods(http.MethodGet)
	api.HandleFunc("/salons", catalogH.CreateSalon).Methods(http.MethodPost)
	api.HandleFunc("/salons/{id}", catalogH.GetSalon).Methods(http.MethodGet)
	api.HandleFunc("/salons/{id}", catalogH.UpdateSalon).Methods(http.MethodPut)
	api.HandleFunc("/salons/{id}", catalogH.DeleteSalon).Methods(http.MethodDelete)

	api.HandleFunc("/specialists", catalogH.ListSpecialists).Methods(http.MethodGet)
	api.HandleFunc("/specialists", catalogH.CreateSpecialist).Methods(http.MethodPost)
	api.HandleFunc("/specialists/{id}", catalogH.GetSpecialist).Methods(http.MethodGet)
	api.HandleFunc("/specialists/{id}", catalogH.UpdateSpecialist).Methods(http.MethodPut)
	api.HandleFunc("/specialists/{id}", catalogH.DeleteSpecialist).Methods(http.MethodDelete)

	api.HandleFunc("/procedures", catalogH.ListProcedures).Methods(http.MethodGet)
	api.HandleFunc("/procedures", catalogH.CreateProcedure).Methods(http.MethodPost)
	api.HandleFunc("/procedures/{id}", catalogH.GetProcedure).Methods(http.MethodGet)
	api.HandleFunc("/procedures/{id}", catalogH.UpdateProcedure).Methods(http.MethodPut)
	api.HandleFunc("/procedures/{id}", catalogH.DeleteProcedure).Methods(http.MethodDelete)

	// --- Записи ---
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// Занятость салона или мастера на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Заявки на консультацию ---
	api.HandleFunc("/booking-requests", listBookingRequests.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking-requests/{requestId}/processed", processBookingRequest.Handle).Methods(http.MethodPost)

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
		log.Info("Starting admin API on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	select {
	case <-botDone:
		log.Info("Bot stopped")
	case <-shutdownCtx.Done():
		log.Warn("Bot did not stop in time")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Service stopped gracefully")
}
