package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookSlotHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/book_slot"
	declareAvailabilityHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/declare_availability"
	deleteSlotHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/delete_slot"
	getConsultationHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_consultation"
	getMyAvailabilityHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_my_availability"
	getMyConsultationsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_my_consultations"
	healthHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/health"
	listConsultationsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/list_consultations"
	listCounselorsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/list_counselors"
	listUsersHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/list_users"
	searchByCounselorHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/search_by_counselor"
	searchByDateHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/search_by_date"
	transitionConsultationHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/transition_consultation"
	updateUserRoleHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/update_user_role"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/availability"
	consultationRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/consultation"
	userRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/videorooms"
	availabilityService "github.com/m04kA/SMC-ConsultationService/internal/service/availability"
	consultationsService "github.com/m04kA/SMC-ConsultationService/internal/service/consultations"
	identityService "github.com/m04kA/SMC-ConsultationService/internal/service/identity"
	bookSlotUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/book_slot"
	declareAvailabilityUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/declare_availability"
	searchSlotsUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/search_slots"
	transitionConsultationUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/transition_consultation"
	"github.com/m04kA/SMC-ConsultationService/migrations"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
	"github.com/m04kA/SMC-ConsultationService/pkg/metrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/migrator"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	var logOpts []logger.Option
	if cfg.Logs.Format == "json" {
		logOpts = append(logOpts, logger.WithJSON())
	}
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level, logOpts...)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ConsultationService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.App.Timezone, err)
	}

	// Инициализируем метрики (если включены). nil-коллектор безопасен для всех вызовов.
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
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		m, err := migrator.New(db, migrations.FS, ".", log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := m.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, _ := m.Version(context.Background())
		log.Info("Database migrations applied (version=%d)", version)
	}

	// Обёртка над БД: транзакции через контекст и метрики запросов
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	slotRepository := availabilityRepo.NewRepository(wrappedDB)
	consultationRepository := consultationRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	identitySvc := identityService.NewService(userRepository, cfg.Identity.BootstrapAdminEmails, log)
	consultationsSvc := consultationsService.NewService(consultationRepository, userRepository, cfg.Video.BaseURL, log)
	availabilitySvc := availabilityService.NewService(slotRepository, location, log)

	// Клиент провайдера видеокомнат (опционально)
	var rooms transitionConsultationUC.RoomProvisioner
	if cfg.Video.APIURL != "" {
		rooms = videorooms.NewClient(
			cfg.Video.APIURL,
			cfg.Video.APIKey,
			time.Duration(cfg.Video.Timeout)*time.Second,
			log,
		)
		log.Info("Video rooms client initialized (url=%s, timeout=%ds)", cfg.Video.APIURL, cfg.Video.Timeout)
	}

	// Инициализируем use cases
	searchSlotsUseCase := searchSlotsUC.NewUseCase(slotRepository, userRepository, txMgr, location, log)
	bookSlotUseCase := bookSlotUC.NewUseCase(slotRepository, consultationRepository, txMgr, metricsCollector, location, log)
	transitionUseCase := transitionConsultationUC.NewUseCase(
		consultationRepository,
		transitionConsultationUC.UUIDTokenGenerator{},
		rooms,
		metricsCollector,
		cfg.Video.BaseURL,
		log,
	)
	declareAvailabilityUseCase := declareAvailabilityUC.NewUseCase(
		slotRepository,
		txMgr,
		metricsCollector,
		declareAvailabilityUC.Settings{
			AdvanceDays: cfg.Booking.AdvanceDays,
			Location:    location,
		},
		log,
	)

	// Инициализируем handlers
	listCounselors := listCounselorsHandler.NewHandler(searchSlotsUseCase, log)
	searchByDate := searchByDateHandler.NewHandler(searchSlotsUseCase, log)
	searchByCounselor := searchByCounselorHandler.NewHandler(searchSlotsUseCase, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	getMyConsultations := getMyConsultationsHandler.NewHandler(consultationsSvc, log)
	getConsultation := getConsultationHandler.NewHandler(consultationsSvc, log)
	transitionConsultation := transitionConsultationHandler.NewHandler(transitionUseCase, log)
	declareAvailability := declareAvailabilityHandler.NewHandler(declareAvailabilityUseCase, log)
	getMyAvailability := getMyAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(availabilitySvc, log)
	listUsers := listUsersHandler.NewHandler(identitySvc, log)
	listConsultations := listConsultationsHandler.NewHandler(consultationsSvc, log)
	updateUserRole := updateUserRoleHandler.NewHandler(identitySvc, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Session(identitySvc, log))

	// Поиск доступен и гостям
	api.HandleFunc("/counselors", listCounselors.Handle).Methods(http.MethodGet)
	api.HandleFunc("/counselors/{counselorId}/slots", searchByCounselor.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", searchByDate.Handle).Methods(http.MethodGet)

	// Студент
	api.HandleFunc("/bookings", bookSlot.Handle).Methods(http.MethodPost)

	// Участники консультаций
	api.HandleFunc("/me/consultations", getMyConsultations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/consultations/{consultationId}", getConsultation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/consultations/{consultationId}/status", transitionConsultation.Handle).Methods(http.MethodPatch)

	// Консультант
	api.HandleFunc("/availability", declareAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/me/availability", getMyAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// Администратор
	api.HandleFunc("/admin/users", listUsers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/admin/consultations", listConsultations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/admin/users/{userId}/role", updateUserRole.Handle).Methods(http.MethodPut)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	ctx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
