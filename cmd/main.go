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

	assignMechanicHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/assign_mechanic"
	authHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/auth"
	catalogHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/catalog"
	createBookingHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/create_booking"
	customersHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/customers"
	employeesHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/employees"
	exportBookingsHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/export_bookings"
	getBookingHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/get_booking"
	getDashboardStatsHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/get_dashboard_stats"
	getMechanicBookingsHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/get_mechanic_bookings"
	listBookingsHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/list_bookings"
	promosHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/promos"
	quoteBookingHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/quote_booking"
	reviewsHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/reviews"
	sparepartsHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/spareparts"
	stockHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/stock"
	updateBookingStatusHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/update_booking_status"
	updateMechanicNotesHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/update_mechanic_notes"
	"github.com/m04kA/SMC-WorkshopService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopService/internal/config"
	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/catalog"
	promoRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/promo"
	reviewRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/review"
	sparepartRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/sparepart"
	stockRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/stock"
	userRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/user"
	twilioClient "github.com/m04kA/SMC-WorkshopService/internal/integrations/twilio"
	"github.com/m04kA/SMC-WorkshopService/internal/integrations/whatsapp"
	"github.com/m04kA/SMC-WorkshopService/internal/scheduler"
	authService "github.com/m04kA/SMC-WorkshopService/internal/service/auth"
	bookingsService "github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-WorkshopService/internal/service/catalog"
	customersService "github.com/m04kA/SMC-WorkshopService/internal/service/customers"
	employeesService "github.com/m04kA/SMC-WorkshopService/internal/service/employees"
	promosService "github.com/m04kA/SMC-WorkshopService/internal/service/promos"
	reviewsService "github.com/m04kA/SMC-WorkshopService/internal/service/reviews"
	sparepartsService "github.com/m04kA/SMC-WorkshopService/internal/service/spareparts"
	stockService "github.com/m04kA/SMC-WorkshopService/internal/service/stock"
	createBookingUC "github.com/m04kA/SMC-WorkshopService/internal/usecase/create_booking"
	quoteBookingUC "github.com/m04kA/SMC-WorkshopService/internal/usecase/quote_booking"
	recordStockMovementUC "github.com/m04kA/SMC-WorkshopService/internal/usecase/record_stock_movement"
	sendServiceRemindersUC "github.com/m04kA/SMC-WorkshopService/internal/usecase/send_service_reminders"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
	"github.com/m04kA/SMC-WorkshopService/pkg/metrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/txmanager"
)

// jobTimeout ограничение одного запуска cron задачи
const jobTimeout = 5 * time.Minute

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

	log.Info("Starting SMC-WorkshopService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Workshop.Location()
	if err != nil {
		log.Fatal("Invalid workshop timezone: %v", err)
	}

	// Инициализируем метрики (если включены); при nil коллекторе обертки работают как прокси
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	promoRepository := promoRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	sparepartRepository := sparepartRepo.NewRepository(wrappedDB)
	stockRepository := stockRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Интеграции
	links := whatsapp.NewLinkBuilder(cfg.WhatsApp.CountryCode)

	// nil Sender означает только запись напоминаний в лог
	var reminderSender sendServiceRemindersUC.Sender
	if cfg.Twilio.Enabled {
		reminderSender = twilioClient.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From, log)
		log.Info("Twilio WhatsApp sender enabled (from=%s)", cfg.Twilio.From)
	} else {
		log.Info("Twilio disabled, service reminders will only be logged")
	}

	// Инициализируем сервисы
	authSvc := authService.NewService(userRepository, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), log)
	bookingSvc := bookingsService.NewService(bookingRepository, userRepository, txMgr, log)
	catalogSvc := catalogService.NewService(catalogRepository, txMgr, log)
	promoSvc := promosService.NewService(promoRepository, &promosService.RealTimeProvider{Location: location}, log)
	sparepartSvc := sparepartsService.NewService(sparepartRepository, log)
	stockSvc := stockService.NewService(stockRepository, log)
	employeeSvc := employeesService.NewService(userRepository, authSvc, log)
	customerSvc := customersService.NewService(
		bookingRepository,
		links,
		&customersService.RealTimeProvider{Location: location},
		cfg.Workshop.Name,
		log,
	)
	reviewSvc := reviewsService.NewService(reviewRepository, log)

	if err := employeeSvc.EnsureAdmin(context.Background(),
		cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword, cfg.Auth.BootstrapName); err != nil {
		log.Fatal("Failed to ensure bootstrap admin: %v", err)
	}

	// Инициализируем use cases
	clock := &quoteBookingUC.RealTimeProvider{Location: location}

	quoteBookingUseCase := quoteBookingUC.NewUseCase(
		catalogRepository,
		promoRepository,
		metricsCollector,
		clock,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		quoteBookingUseCase,
		links,
		metricsCollector,
		txMgr,
		clock,
		cfg.WhatsApp.WorkshopPhone,
		cfg.Workshop.Name,
		log,
	)

	recordStockMovementUseCase := recordStockMovementUC.NewUseCase(
		sparepartRepository,
		stockRepository,
		metricsCollector,
		txMgr,
		clock,
		log,
	)

	sendServiceRemindersUseCase := sendServiceRemindersUC.NewUseCase(
		bookingRepository,
		reminderSender,
		metricsCollector,
		clock,
		cfg.Workshop.Name,
		log,
	)

	// Инициализируем handlers
	authH := authHandler.NewHandler(authSvc, log)
	catalogH := catalogHandler.NewHandler(catalogSvc, log)
	promosH := promosHandler.NewHandler(promoSvc, log)
	sparepartsH := sparepartsHandler.NewHandler(sparepartSvc, log)
	stockH := stockHandler.NewHandler(stockSvc, recordStockMovementUseCase, log)
	employeesH := employeesHandler.NewHandler(employeeSvc, log)
	customersH := customersHandler.NewHandler(customerSvc, log)
	reviewsH := reviewsHandler.NewHandler(reviewSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	quoteBooking := quoteBookingHandler.NewHandler(quoteBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updateMechanicNotes := updateMechanicNotesHandler.NewHandler(bookingSvc, log)
	assignMechanic := assignMechanicHandler.NewHandler(bookingSvc, log)
	getMechanicBookings := getMechanicBookingsHandler.NewHandler(bookingSvc, log)
	getDashboardStats := getDashboardStatsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.MetricsMiddleware(metricsCollector))

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

	api.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)

	// Каталог и промо для формы бронирования
	api.HandleFunc("/services", catalogH.List).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId:[0-9]+}", catalogH.Get).Methods(http.MethodGet)
	api.HandleFunc("/promos", promosH.List).Methods(http.MethodGet)
	api.HandleFunc("/promos/{promoId:[0-9]+}", promosH.Get).Methods(http.MethodGet)

	// Бронирование клиентом
	api.HandleFunc("/bookings/quote", quoteBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отзывы
	api.HandleFunc("/reviews", reviewsH.List).Methods(http.MethodGet)
	api.HandleFunc("/reviews", reviewsH.Create).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc))

	protected.HandleFunc("/auth/me", authH.Me).Methods(http.MethodGet)

	// --- Администратор и механик: карточка бронирования ---
	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleMechanic))

	staff.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}/notes", updateMechanicNotes.Handle).Methods(http.MethodPatch)

	// --- Механик ---
	mechanic := protected.PathPrefix("").Subrouter()
	mechanic.Use(middleware.RequireRole(domain.RoleMechanic))

	mechanic.HandleFunc("/mechanic/bookings", getMechanicBookings.Handle).Methods(http.MethodGet)

	// --- Склад (администратор и кладовщик) ---
	warehouse := protected.PathPrefix("").Subrouter()
	warehouse.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleWarehouse))

	warehouse.HandleFunc("/spareparts", sparepartsH.List).Methods(http.MethodGet)
	warehouse.HandleFunc("/spareparts/low-stock", sparepartsH.LowStock).Methods(http.MethodGet)
	warehouse.HandleFunc("/spareparts/export", sparepartsH.Export).Methods(http.MethodGet)
	warehouse.HandleFunc("/spareparts/{sparepartId:[0-9]+}", sparepartsH.Get).Methods(http.MethodGet)
	warehouse.HandleFunc("/stock/in", stockH.StockIn).Methods(http.MethodPost)
	warehouse.HandleFunc("/stock/out", stockH.StockOut).Methods(http.MethodPost)
	warehouse.HandleFunc("/stock/movements", stockH.Movements).Methods(http.MethodGet)
	warehouse.HandleFunc("/stock/report", stockH.Report).Methods(http.MethodGet)
	warehouse.HandleFunc("/stock/report/export", stockH.ExportReport).Methods(http.MethodGet)

	// --- Администратор ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/dashboard/stats", getDashboardStats.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/mechanic", assignMechanic.Handle).Methods(http.MethodPatch)

	admin.HandleFunc("/services", catalogH.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId:[0-9]+}", catalogH.Update).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId:[0-9]+}", catalogH.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/promos", promosH.Create).Methods(http.MethodPost)
	admin.HandleFunc("/promos/{promoId:[0-9]+}", promosH.Update).Methods(http.MethodPut)
	admin.HandleFunc("/promos/{promoId:[0-9]+}", promosH.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/spareparts", sparepartsH.Create).Methods(http.MethodPost)
	admin.HandleFunc("/spareparts/{sparepartId:[0-9]+}", sparepartsH.Update).Methods(http.MethodPut)
	admin.HandleFunc("/spareparts/{sparepartId:[0-9]+}", sparepartsH.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/employees", employeesH.List).Methods(http.MethodGet)
	admin.HandleFunc("/employees", employeesH.Create).Methods(http.MethodPost)
	admin.HandleFunc("/employees/{employeeId:[0-9]+}", employeesH.Get).Methods(http.MethodGet)
	admin.HandleFunc("/employees/{employeeId:[0-9]+}", employeesH.Update).Methods(http.MethodPut)
	admin.HandleFunc("/employees/{employeeId:[0-9]+}", employeesH.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/customers", customersH.List).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{plate}/reminder", customersH.Reminder).Methods(http.MethodGet)

	// ============================================================
	// SCHEDULER
	// ============================================================

	jobs := scheduler.New(location, jobTimeout, log)
	if cfg.Scheduler.Enabled {
		err := jobs.Add("service_reminders", cfg.Scheduler.RemindersSpec, func(ctx context.Context) error {
			_, err := sendServiceRemindersUseCase.Execute(ctx)
			return err
		})
		if err != nil {
			log.Fatal("Failed to schedule service reminders: %v", err)
		}

		err = jobs.Add("low_stock_report", cfg.Scheduler.LowStockSpec, func(ctx context.Context) error {
			items, err := sparepartSvc.LowStock(ctx)
			if err != nil {
				return err
			}
			for _, item := range items {
				log.Warn("LowStock: %s (%s) stock=%d status=%s", item.Name, item.Code, item.Stock, item.StockStatus)
			}
			log.Info("LowStock: %d spareparts need restocking", len(items))
			return nil
		})
		if err != nil {
			log.Fatal("Failed to schedule low stock report: %v", err)
		}

		jobs.Start()
		log.Info("Scheduler started (timezone=%s)", location)
	}

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

	// Сначала cron, чтобы задачи не стартовали во время остановки сервера
	if cfg.Scheduler.Enabled {
		if err := jobs.Stop(shutdownCtx); err != nil {
			log.Error("Scheduler did not stop in time: %v", err)
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
