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

	createAppointmentHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/create_appointment"
	generateMeetingLinkHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/generate_meeting_link"
	getAppointmentHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/get_available_slots"
	getDoctorDashboardHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/get_doctor_dashboard"
	getDoctorTimeSlotsHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/get_doctor_time_slots"
	getPatientAppointmentsHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/get_patient_appointments"
	initiatePaymentHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/initiate_payment"
	manageDoctorTimeSlotsHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/manage_doctor_time_slots"
	paymentCallbackHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/payment_callback"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-DoctorBookingService/internal/api/handlers/update_appointment_status"
	meetingLinkListener "github.com/m04kA/SMC-DoctorBookingService/internal/api/listeners/meeting_link"
	"github.com/m04kA/SMC-DoctorBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DoctorBookingService/internal/config"
	"github.com/m04kA/SMC-DoctorBookingService/internal/domain"
	"github.com/m04kA/SMC-DoctorBookingService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/appointment"
	doctorRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/doctor"
	paymentRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/payment"
	scheduleRepo "github.com/m04kA/SMC-DoctorBookingService/internal/infra/storage/schedule"
	meetingServiceClient "github.com/m04kA/SMC-DoctorBookingService/internal/integrations/meetingservice"
	paymentGatewayClient "github.com/m04kA/SMC-DoctorBookingService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-DoctorBookingService/internal/service/admission"
	appointmentsService "github.com/m04kA/SMC-DoctorBookingService/internal/service/appointments"
	scheduleService "github.com/m04kA/SMC-DoctorBookingService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/create_appointment"
	generateMeetingLinkUC "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/generate_meeting_link"
	getAvailableSlotsUC "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/get_available_slots"
	getDoctorDashboardUC "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/get_doctor_dashboard"
	initiatePaymentUC "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/initiate_payment"
	paymentCallbackUC "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/payment_callback"
	rescheduleAppointmentUC "github.com/m04kA/SMC-DoctorBookingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/logger"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/metrics"
	"github.com/m04kA/SMC-DoctorBookingService/pkg/txmanager"
)

// eventPublisher издатель событий: RabbitMQ или in-process
type eventPublisher interface {
	PublishAppointmentConfirmed(ctx context.Context, event events.AppointmentConfirmed) error
	Close() error
}

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

	log.Info("Starting SMC-DoctorBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Инициализируем репозитории (с метриками или без)
	var (
		doctorRepository      *doctorRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		paymentRepository     *paymentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		txMgr                 *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		doctorRepository = doctorRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		plainDB := dbmetrics.NewPlainDB(db)

		doctorRepository = doctorRepo.NewRepository(plainDB)
		appointmentRepository = appointmentRepo.NewRepository(plainDB)
		paymentRepository = paymentRepo.NewRepository(plainDB)
		scheduleRepository = scheduleRepo.NewRepository(plainDB)
		txMgr = txmanager.NewTransactionManager(plainDB)
	}

	// Кэш расписаний врачей
	var schedules scheduleRepo.Store = scheduleRepository
	if cfg.Cache.Enabled {
		var cacheMetrics scheduleRepo.CacheMetrics
		if metricsCollector != nil {
			cacheMetrics = metricsCollector
		}

		cached, err := scheduleRepo.NewCachedRepository(scheduleRepository, cfg.Cache.Size, cacheMetrics, log)
		if err != nil {
			log.Fatal("Failed to initialize schedule cache: %v", err)
		}
		schedules = cached
		log.Info("Schedule cache enabled (size=%d)", cfg.Cache.Size)
	}

	// Инициализируем интеграционных клиентов
	paymentGateway := paymentGatewayClient.NewClient(
		cfg.PaymentGateway.URL,
		cfg.PaymentGateway.AppKey,
		cfg.PaymentGateway.AppSecret,
		cfg.PaymentGateway.CallbackURL,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	meetingClient := meetingServiceClient.NewClient(
		cfg.MeetingService.URL,
		cfg.MeetingService.Token,
		time.Duration(cfg.MeetingService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PaymentGateway=%s timeout=%ds, MeetingService=%s timeout=%ds)",
		cfg.PaymentGateway.URL, cfg.PaymentGateway.Timeout, cfg.MeetingService.URL, cfg.MeetingService.Timeout)

	// Контроллер допуска
	policy := domain.AdmissionPolicy{
		HourlyCapacity:        cfg.Policy.HourlyCapacity,
		AlmostFullThreshold:   cfg.Policy.AlmostFullThreshold,
		DashboardStartHour:    cfg.Policy.DashboardStartHour,
		DashboardEndHour:      cfg.Policy.DashboardEndHour,
		MaxAdvanceBookingDays: cfg.Policy.MaxAdvanceBookingDays,
	}

	var decisions admission.DecisionRecorder
	if metricsCollector != nil {
		decisions = metricsCollector
	}
	admissionSvc := admission.NewService(appointmentRepository, policy, decisions, log)
	log.Info("Admission policy: capacity=%d/hour, almost_full=%d, advance=%d days",
		policy.HourlyCapacity, policy.AlmostFullThreshold, policy.MaxAdvanceBookingDays)

	// Ссылки на встречи нужны издателю событий при выключенном RabbitMQ
	generateMeetingLinkUseCase := generateMeetingLinkUC.NewUseCase(
		appointmentRepository,
		doctorRepository,
		meetingClient,
		cfg.MeetingService.DurationMinutes,
		log,
	)

	// Издатель событий
	var publisher eventPublisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = events.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey, log)
		if err != nil {
			log.Fatal("Failed to initialize event publisher: %v", err)
		}
		log.Info("Event publisher connected (exchange=%s)", cfg.RabbitMQ.Exchange)
	} else {
		publisher = events.NewInlinePublisher(generateMeetingLinkUseCase.HandleAppointmentConfirmed, log)
		log.Info("RabbitMQ disabled, events are handled in-process")
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		doctorRepository,
		publisher,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		schedules,
		doctorRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		doctorRepository,
		schedules,
		appointmentRepository,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		doctorRepository,
		appointmentRepository,
		admissionSvc,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		doctorRepository,
		appointmentRepository,
		admissionSvc,
		txMgr,
		log,
	)
	getDoctorDashboardUseCase := getDoctorDashboardUC.NewUseCase(
		doctorRepository,
		appointmentRepository,
		admissionSvc,
		log,
	)
	initiatePaymentUseCase := initiatePaymentUC.NewUseCase(
		appointmentRepository,
		paymentRepository,
		paymentGateway,
		log,
	)
	paymentCallbackUseCase := paymentCallbackUC.NewUseCase(
		appointmentRepository,
		paymentRepository,
		paymentGateway,
		publisher,
		txMgr,
		log,
	)

	// Слушатель RabbitMQ (nil, если RabbitMQ выключен)
	listener, err := meetingLinkListener.NewListener(generateMeetingLinkUseCase, cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal("Failed to initialize meeting link listener: %v", err)
	}

	listenerCtx, stopListener := context.WithCancel(context.Background())
	defer stopListener()

	if listener != nil {
		if err := listener.Start(listenerCtx); err != nil {
			log.Fatal("Failed to start meeting link listener: %v", err)
		}
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getDoctorTimeSlots := getDoctorTimeSlotsHandler.NewHandler(scheduleSvc, log)
	manageDoctorTimeSlots := manageDoctorTimeSlotsHandler.NewHandler(scheduleSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getDoctorDashboard := getDoctorDashboardHandler.NewHandler(getDoctorDashboardUseCase, log)
	initiatePayment := initiatePaymentHandler.NewHandler(initiatePaymentUseCase, log)
	paymentCallback := paymentCallbackHandler.NewHandler(paymentCallbackUseCase, log)
	generateMeetingLink := generateMeetingLinkHandler.NewHandler(generateMeetingLinkUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободное время приёма врача на дату
	api.HandleFunc("/doctors/{doctorId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Регулярное расписание врача
	api.HandleFunc("/doctors/{doctorId}/time-slots", getDoctorTimeSlots.Handle).Methods(http.MethodGet)

	// Возврат пользователя со страницы оплаты
	api.HandleFunc("/payments/callback", paymentCallback.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", updateAppointmentStatus.HandleCancel).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/confirm", updateAppointmentStatus.HandleConfirm).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", updateAppointmentStatus.HandleComplete).Methods(http.MethodPatch)

	// --- Оплата и встреча ---
	protected.HandleFunc("/appointments/{appointmentId}/payments", initiatePayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/meeting-link", generateMeetingLink.Handle).Methods(http.MethodPost)

	// --- Пациент ---
	protected.HandleFunc("/patients/me/appointments", getPatientAppointments.Handle).Methods(http.MethodGet)

	// --- Врач и персонал ---
	protected.HandleFunc("/doctors/{doctorId}/dashboard", getDoctorDashboard.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId}/time-slots", manageDoctorTimeSlots.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/doctors/{doctorId}/time-slots/{slotId}", manageDoctorTimeSlots.HandleRemove).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем слушателя и издателя событий
	stopListener()
	if err := listener.Stop(); err != nil {
		log.Error("Failed to stop meeting link listener: %v", err)
	}
	if err := publisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
