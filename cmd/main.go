package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	bookAppointmentHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/book_appointment"
	createAppointmentHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/create_appointment"
	createFeedbackHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/create_feedback"
	deleteDocumentHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/delete_document"
	generateTimeSlotsHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/generate_time_slots"
	getAppointmentHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/get_appointment"
	getAppointmentQRHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/get_appointment_qr"
	getAppointmentSlipHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/get_appointment_slip"
	getAvailableSlotsHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/get_available_slots"
	getDocumentHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/get_document"
	listAppointmentsHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/list_appointments"
	listDocumentsHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/list_documents"
	processDocumentHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/process_document"
	updateStatusHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/update_appointment_status"
	uploadDocumentHandler "github.com/m04kA/GovAppointmentService/internal/api/handlers/upload_document"
	"github.com/m04kA/GovAppointmentService/internal/api/middleware"
	"github.com/m04kA/GovAppointmentService/internal/config"
	"github.com/m04kA/GovAppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/appointment"
	departmentRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/department"
	documentRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/document"
	feedbackRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/feedback"
	govServiceRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/govservice"
	notificationRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/notification"
	officerRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/officer"
	timeSlotRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/timeslot"
	userRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/user"
	"github.com/m04kA/GovAppointmentService/internal/integrations/blobstore"
	"github.com/m04kA/GovAppointmentService/internal/integrations/messaging"
	"github.com/m04kA/GovAppointmentService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/GovAppointmentService/internal/service/appointments"
	"github.com/m04kA/GovAppointmentService/internal/service/assignment"
	"github.com/m04kA/GovAppointmentService/internal/service/booking"
	documentsService "github.com/m04kA/GovAppointmentService/internal/service/documents"
	feedbackService "github.com/m04kA/GovAppointmentService/internal/service/feedback"
	bookAppointmentUC "github.com/m04kA/GovAppointmentService/internal/usecase/book_appointment"
	createAppointmentUC "github.com/m04kA/GovAppointmentService/internal/usecase/create_appointment"
	generateTimeSlotsUC "github.com/m04kA/GovAppointmentService/internal/usecase/generate_time_slots"
	getAvailableSlotsUC "github.com/m04kA/GovAppointmentService/internal/usecase/get_available_slots"
	updateStatusUC "github.com/m04kA/GovAppointmentService/internal/usecase/update_appointment_status"
	"github.com/m04kA/GovAppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GovAppointmentService/pkg/logger"
	"github.com/m04kA/GovAppointmentService/pkg/metrics"
	"github.com/m04kA/GovAppointmentService/pkg/tracing"
	"github.com/m04kA/GovAppointmentService/pkg/txmanager"
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

	log.Info("Starting GovAppointmentService...")
	log.Info("Configuration loaded from %s", configPath)

	// Трассировка
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Метрики собираются всегда, наружу отдаются только если включены
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithTimeout(time.Duration(cfg.Database.TxTimeout)*time.Second),
		txmanager.WithMaxRetries(*cfg.Database.TxMaxRetries),
		txmanager.WithLogger(log),
	)

	// Инициализируем репозитории
	userRepository := userRepo.NewRepository(wrappedDB)
	serviceRepository := govServiceRepo.NewRepository(wrappedDB)
	departmentRepository := departmentRepo.NewRepository(wrappedDB)
	slotRepository := timeSlotRepo.NewRepository(wrappedDB)
	officerRepository := officerRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	documentRepository := documentRepo.NewRepository(wrappedDB)
	feedbackRepository := feedbackRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	// Хранилище документов
	blobs, err := blobstore.NewLocalStore(cfg.BlobStore.Dir, cfg.BlobStore.BaseURL, log)
	if err != nil {
		log.Fatal("Failed to initialize blob store: %v", err)
	}

	// Уведомления: in-app всегда, Kafka и шлюз рассылок если включены
	dispatcher := notifier.NewDispatcher(log, metricsCollector).
		Register("in_app", notifier.NewInAppStore(notificationRepository))

	var kafkaPublisher *notifier.KafkaPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher = notifier.NewKafkaPublisher(notifier.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), cfg.Kafka.Topic)
		dispatcher.Register("kafka", kafkaPublisher)
		log.Info("Kafka notifications enabled (brokers=%s, topic=%s)", strings.Join(cfg.Kafka.Brokers, ","), cfg.Kafka.Topic)
	}

	if cfg.Messaging.Enabled {
		messagingClient := messaging.NewClient(
			cfg.Messaging.URL,
			domain.NotificationChannel(cfg.Messaging.Channel),
			time.Duration(cfg.Messaging.Timeout)*time.Second,
			otelhttp.NewTransport(http.DefaultTransport),
			log,
		)
		dispatcher.Register("messaging", messagingClient)
		log.Info("Messaging gateway enabled (url=%s, channel=%s, timeout=%ds)",
			cfg.Messaging.URL, cfg.Messaging.Channel, cfg.Messaging.Timeout)
	}

	// Инициализируем сервисы
	resolver := assignment.NewResolver(officerRepository, appointmentRepository, cfg.Slots.Location(), log)
	placer := booking.NewPlacer(
		userRepository,
		serviceRepository,
		slotRepository,
		officerRepository,
		appointmentRepository,
		resolver,
		log,
	)

	documentLimits := domain.DocumentLimits{
		MaxFiles:         cfg.Documents.MaxFiles,
		MaxFileSize:      int64(cfg.Documents.MaxFileSizeMB) << 20,
		AllowedMimeTypes: cfg.Documents.AllowedMimeTypes,
	}

	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	documentSvc := documentsService.NewService(appointmentRepository, documentRepository, officerRepository, blobs, documentLimits, log)
	feedbackSvc := feedbackService.NewService(appointmentRepository, feedbackRepository, log)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		placer,
		appointmentRepository,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		placer,
		appointmentRepository,
		documentRepository,
		blobs,
		dispatcher,
		metricsCollector,
		txMgr,
		documentLimits,
		log,
	)

	updateStatusUseCase := updateStatusUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		officerRepository,
		dispatcher,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		serviceRepository,
		slotRepository,
		cfg.Slots.DefaultWindowDays,
		log,
	)

	generateTimeSlotsUseCase := generateTimeSlotsUC.NewUseCase(
		departmentRepository,
		slotRepository,
		generateTimeSlotsUC.Config{
			GranularityMinutes: cfg.Slots.GranularityMinutes,
			DefaultMaxBookings: cfg.Slots.DefaultMaxBookings,
			Location:           cfg.Slots.Location(),
		},
		log,
	)

	// Инициализируем handlers
	// Форма с документами: все файлы плюс запас на поле data
	maxFormBytes := int64(documentLimits.MaxFiles)*documentLimits.MaxFileSize + 1<<20
	maxDocumentBytes := documentLimits.MaxFileSize + 1<<20

	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, maxFormBytes, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	generateTimeSlots := generateTimeSlotsHandler.NewHandler(generateTimeSlotsUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	listOwnAppointments := listAppointmentsHandler.NewOwnHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getAppointmentQR := getAppointmentQRHandler.NewHandler(appointmentSvc, log)
	getAppointmentSlip := getAppointmentSlipHandler.NewHandler(appointmentSvc, log)
	listDocuments := listDocumentsHandler.NewHandler(documentSvc, log)
	uploadDocument := uploadDocumentHandler.NewHandler(documentSvc, maxDocumentBytes, log)
	deleteDocument := deleteDocumentHandler.NewHandler(documentSvc, log)
	getDocument := getDocumentHandler.NewHandler(documentSvc, log)
	processDocument := processDocumentHandler.NewHandler(documentSvc, log)
	createFeedback := createFeedbackHandler.NewHandler(feedbackSvc, log)

	// Лимитер запросов на бронирование
	var (
		rdb         *redis.Client
		rateLimited = func(h http.Handler) http.Handler { return h }
	)
	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.Window) * time.Second
		var limiter middleware.Limiter = middleware.NewLocalLimiter(cfg.RateLimit.Limit, window)

		if cfg.Redis.Addr != "" {
			rdb = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			if err := rdb.Ping(context.Background()).Err(); err != nil {
				log.Warn("Redis is unreachable at %s, rate limiter falls back to local: %v", cfg.Redis.Addr, err)
			}
			limiter = middleware.NewFallbackLimiter(
				middleware.NewRedisLimiter(rdb, cfg.RateLimit.Limit, window, "gov-appointments:rl"),
				limiter,
				log,
			)
		}

		rateLimited = middleware.RateLimit(limiter, metricsCollector, log)
		log.Info("Rate limiting enabled: %d requests per %ds", cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

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

	// Загруженные документы
	if strings.HasPrefix(cfg.BlobStore.BaseURL, "/") {
		prefix := strings.TrimRight(cfg.BlobStore.BaseURL, "/") + "/"
		r.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.BlobStore.Dir)))).
			Methods(http.MethodGet)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты по услуге
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирование ---
	protected.Handle("/appointments/book", rateLimited(http.HandlerFunc(bookAppointment.Handle))).Methods(http.MethodPost)
	protected.Handle("/appointments", rateLimited(http.HandlerFunc(createAppointment.Handle))).Methods(http.MethodPost)

	// --- Приёмы пользователя ---
	protected.HandleFunc("/users/me/appointments", listOwnAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/qr", getAppointmentQR.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/slip", getAppointmentSlip.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/feedback", createFeedback.Handle).Methods(http.MethodPost)

	// --- Документы ---
	protected.HandleFunc("/appointments/{appointmentId}/documents", listDocuments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/documents", uploadDocument.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/documents/{documentId}", deleteDocument.Handle).Methods(http.MethodDelete)

	// --- Для сотрудников отделов ---
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/documents/{documentId}", getDocument.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/documents/{documentId}/process", processDocument.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/departments/{departmentId}/time-slots/generate", generateTimeSlots.Handle).Methods(http.MethodPost)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", middleware.UserIDHeader},
		AllowCredentials: true,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(corsHandler.Handler(r), cfg.Metrics.ServiceName),
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error("Failed to close kafka writer: %v", err)
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
