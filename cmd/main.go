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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	availabilityRuleHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/availability_rule"
	blockedSlotsHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/blocked_slots"
	cancelBookingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/create_booking"
	createTeamMeetingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/create_team_meeting"
	dateOverridesHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/date_overrides"
	getAvailableDatesHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/get_booking"
	getMemberBookingsHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/get_member_bookings"
	healthHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/health"
	reassignBookingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/reassign_booking"
	rescheduleBookingHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/reschedule_booking"
	resolveCustomerHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/resolve_customer"
	updateBookingStatusHandler "github.com/m04kA/SMC-MeetingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-MeetingService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/availability"
	blockedSlotRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/blockedslot"
	bookingRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/calendar"
	customerRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/customer"
	meetingTypeRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/meetingtype"
	memberRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/member"
	accessServiceClient "github.com/m04kA/SMC-MeetingService/internal/integrations/accessservice"
	"github.com/m04kA/SMC-MeetingService/internal/integrations/mailer"
	availabilityService "github.com/m04kA/SMC-MeetingService/internal/service/availability"
	blockedSlotsService "github.com/m04kA/SMC-MeetingService/internal/service/blockedslots"
	bookingsService "github.com/m04kA/SMC-MeetingService/internal/service/bookings"
	customersService "github.com/m04kA/SMC-MeetingService/internal/service/customers"
	notificationsService "github.com/m04kA/SMC-MeetingService/internal/service/notifications"
	rulesService "github.com/m04kA/SMC-MeetingService/internal/service/rules"
	createBookingUC "github.com/m04kA/SMC-MeetingService/internal/usecase/create_booking"
	createTeamMeetingUC "github.com/m04kA/SMC-MeetingService/internal/usecase/create_team_meeting"
	getAvailableDatesUC "github.com/m04kA/SMC-MeetingService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-MeetingService/internal/usecase/get_available_slots"
	reassignBookingUC "github.com/m04kA/SMC-MeetingService/internal/usecase/reassign_booking"
	rescheduleBookingUC "github.com/m04kA/SMC-MeetingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-MeetingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingService/pkg/logger"
	"github.com/m04kA/SMC-MeetingService/pkg/metrics"
	"github.com/m04kA/SMC-MeetingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-MeetingService/pkg/txmanager"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
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

	log.Info("Starting SMC-MeetingService...")

	loc, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid scheduling timezone: %v", err)
	}
	clock := types.NewWallClock(loc)
	grid := cfg.Scheduling.SlotGrid()
	log.Info("Scheduling: timezone=%s, grid=%s-%s step=%dm, default duration=%dm",
		loc, grid.Start, grid.End, grid.StepMinutes, cfg.Scheduling.DefaultDurationMinutes)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var availabilityMetrics availabilityService.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		availabilityMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории работают либо через обертку с метриками, либо напрямую с *sql.DB
	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.Manager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	memberRepository := memberRepo.NewRepository(executor)
	meetingTypeRepository := meetingTypeRepo.NewRepository(executor)
	customerRepository := customerRepo.NewRepository(executor)
	ruleRepository := availabilityRepo.NewRepository(executor)
	blockedSlotRepository := blockedSlotRepo.NewRepository(executor)
	calendarRepository := calendarRepo.NewRepository(executor)

	// Интеграции
	accessClient := accessServiceClient.NewClient(
		cfg.AccessService.URL,
		time.Duration(cfg.AccessService.Timeout)*time.Second,
		log,
	)
	smtpMailer := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	log.Info("Integrations initialized (AccessService=%s timeout=%ds, SMTP enabled=%t)",
		cfg.AccessService.URL, cfg.AccessService.Timeout, cfg.SMTP.Enabled)

	// Сервисы
	notifier := notificationsService.NewService(smtpMailer, memberRepository, customerRepository, cfg.SMTP.Enabled, log)
	availabilitySvc := availabilityService.NewService(
		bookingRepository,
		blockedSlotRepository,
		ruleRepository,
		memberRepository,
		calendarRepository,
		availabilityMetrics,
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, memberRepository, notifier, txMgr, clock, log)
	customerSvc := customersService.NewService(customerRepository, txMgr, log)
	ruleSvc := rulesService.NewService(ruleRepository, memberRepository, txMgr, clock, log)
	blockedSlotSvc := blockedSlotsService.NewService(blockedSlotRepository, memberRepository, txMgr, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		memberRepository,
		meetingTypeRepository,
		customerRepository,
		customerSvc,
		availabilitySvc,
		notifier,
		txMgr,
		clock,
		log,
	)
	createTeamMeetingUseCase := createTeamMeetingUC.NewUseCase(
		bookingRepository,
		memberRepository,
		meetingTypeRepository,
		availabilitySvc,
		notifier,
		txMgr,
		clock,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		memberRepository,
		availabilitySvc,
		notifier,
		txMgr,
		clock,
		log,
	)
	reassignBookingUseCase := reassignBookingUC.NewUseCase(
		bookingRepository,
		memberRepository,
		availabilitySvc,
		notifier,
		txMgr,
		clock,
		log,
	)

	// Поиск слотов и дней использует одну сетку
	slotFinder := getAvailableSlotsUC.NewFinder(availabilitySvc, grid)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		memberRepository,
		slotFinder,
		cfg.Scheduling.DefaultDurationMinutes,
		clock,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		memberRepository,
		slotFinder,
		cfg.Scheduling.DefaultDurationMinutes,
		clock,
		log,
	)

	// Handlers
	health := healthHandler.NewHandler()
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createTeamMeeting := createTeamMeetingHandler.NewHandler(createTeamMeetingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	reassignBooking := reassignBookingHandler.NewHandler(reassignBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getMemberBookings := getMemberBookingsHandler.NewHandler(bookingSvc, log)
	availabilityRule := availabilityRuleHandler.NewHandler(ruleSvc, log)
	dateOverrides := dateOverridesHandler.NewHandler(ruleSvc, log)
	blockedSlots := blockedSlotsHandler.NewHandler(blockedSlotSvc, log)
	resolveCustomer := resolveCustomerHandler.NewHandler(customerSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Отмена клиентом по токену из письма
	api.HandleFunc("/public/bookings/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT или X-User-ID + AccessService)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	if cfg.Auth.JWTSecret != "" {
		protected.Use(middleware.JWTAuth([]byte(cfg.Auth.JWTSecret), log))
		log.Info("Auth: bearer JWT")
	} else {
		protected.Use(middleware.Auth(accessClient, log))
		log.Info("Auth: X-User-ID header with AccessService roles")
	}

	// --- Доступность ---
	protected.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/members/{memberId}/available-slots", getAvailableSlots.HandleMember).Methods(http.MethodGet)
	protected.HandleFunc("/members/{memberId}/available-dates", getAvailableDates.HandleMember).Methods(http.MethodGet)
	protected.HandleFunc("/teams/available-slots", getAvailableSlots.HandleTeam).Methods(http.MethodGet)
	protected.HandleFunc("/teams/available-dates", getAvailableDates.HandleTeam).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/team", createTeamMeeting.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reassign", reassignBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/members/{memberId}/bookings", getMemberBookings.Handle).Methods(http.MethodGet)

	// --- Расписание участника ---
	protected.HandleFunc("/members/{memberId}/availability-rule", availabilityRule.Get).Methods(http.MethodGet)
	protected.HandleFunc("/members/{memberId}/availability-rule", availabilityRule.Update).Methods(http.MethodPut)
	protected.HandleFunc("/members/{memberId}/date-overrides", dateOverrides.Add).Methods(http.MethodPost)
	protected.HandleFunc("/members/{memberId}/date-overrides/{overrideId}", dateOverrides.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/members/{memberId}/blocked-slots", blockedSlots.List).Methods(http.MethodGet)
	protected.HandleFunc("/members/{memberId}/blocked-slots", blockedSlots.Create).Methods(http.MethodPost)
	protected.HandleFunc("/members/{memberId}/blocked-slots/{slotId}", blockedSlots.Delete).Methods(http.MethodDelete)

	// --- Клиенты ---
	protected.HandleFunc("/customers/resolve", resolveCustomer.Handle).Methods(http.MethodPost)

	// CORS, восстановление после паники и access-лог поверх роутера
	var handler http.Handler = r
	handler = gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", middleware.UserIDHeader}),
	)(handler)
	handler = gorillaHandlers.RecoveryHandler(gorillaHandlers.PrintRecoveryStack(true))(handler)
	handler = gorillaHandlers.CombinedLoggingHandler(log.Writer(), handler)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	// Останавливаем сбор метрик connection pool
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
