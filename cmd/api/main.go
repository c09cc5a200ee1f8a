package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/payroll-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/logging"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/payroll-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/payroll-backend-go/internal/service/auth"
	bonusService "github.com/cmlabs-hris/payroll-backend-go/internal/service/bonus"
	employeeService "github.com/cmlabs-hris/payroll-backend-go/internal/service/employee"
	logisticsService "github.com/cmlabs-hris/payroll-backend-go/internal/service/logistics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/master"
	payrollService "github.com/cmlabs-hris/payroll-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/payroll-backend-go/internal/service/report"
	socialSecurityService "github.com/cmlabs-hris/payroll-backend-go/internal/service/socialsecurity"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := logging.NewLogger("payroll-backend", cfg.App.Version, cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	if cfg.Database.AutoMigrate {
		migrator, err := database.NewMigrator(dsn, logger)
		if err != nil {
			return err
		}
		if err := migrator.Up(); err != nil {
			_ = migrator.Close()
			return err
		}
		if err := migrator.Close(); err != nil {
			logger.Warn("Failed to close migrator", "error", err)
		}
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	scheduler := cron.NewScheduler(logger)
	healthChecks := map[string]appHTTP.HealthCheck{
		"postgres": db.Ping,
	}

	// Cache: redis when enabled, otherwise in-process with a janitor
	var appCache *cache.Cache
	if cfg.Redis.Enabled {
		var client *redis.Client
		client, err = cache.NewRedisClient(cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		defer client.Close()

		appCache = cache.New(cache.NewRedisStore(client), cache.NewRedisVersions(client), cache.WithLogger(logger))
		healthChecks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	} else {
		store := cache.NewMemoryStore()
		appCache = cache.New(store, cache.NewMemoryVersions(), cache.WithLogger(logger))
		cron.RegisterCacheJanitor(scheduler, store, cfg.Cache.JanitorInterval, logger)
	}

	var fileStorage storage.FileStorage
	var filesHandler http.Handler
	switch cfg.Storage.Driver {
	case "local":
		local, err := storage.NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		fileStorage = local
		filesHandler = http.FileServer(http.Dir(local.Root()))
	case "s3":
		s3Storage, err := storage.NewS3Storage(ctx, storage.S3Config{
			Endpoint:     cfg.Storage.Endpoint,
			Region:       cfg.Storage.Region,
			Bucket:       cfg.Storage.Bucket,
			AccessKey:    cfg.Storage.AccessKey,
			SecretKey:    cfg.Storage.SecretKey,
			UsePathStyle: cfg.Storage.UsePathStyle,
			PresignTTL:   cfg.Storage.PresignTTL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		fileStorage = s3Storage
	default:
		return fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}

	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	workshopRepo := postgresql.NewWorkshopRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	salaryChangeRepo := postgresql.NewSalaryChangeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	logisticsRepo := postgresql.NewLogisticsRepository(db)
	socialSecurityRepo := postgresql.NewSocialSecurityRepository(db)
	bonusRepo := postgresql.NewBonusRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	payrollItemRepo := postgresql.NewPayrollItemRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	listTTL := cfg.Cache.ListTTL
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	masterService := master.NewMasterService(departmentRepo, workshopRepo, appCache, listTTL)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, salaryChangeRepo, departmentRepo, workshopRepo, appCache, listTTL)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, appCache, listTTL)
	logisticsSvc := logisticsService.NewLogisticsService(logisticsRepo, employeeRepo, appCache, listTTL)
	socialSecuritySvc := socialSecurityService.NewSocialSecurityService(socialSecurityRepo, employeeRepo, appCache, listTTL)
	bonusSvc := bonusService.NewBonusService(bonusRepo, employeeRepo, appCache, listTTL)

	// Payroll services: core -> cache -> logging
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		payrollItemRepo,
		employeeRepo,
		attendanceRepo,
		logisticsRepo,
		socialSecurityRepo,
		cfg.Payroll,
	)
	payrollSvc = payrollService.NewCachingPayrollService(payrollSvc, appCache, listTTL)
	payrollSvc = payrollService.NewLoggingPayrollService(payrollSvc, logger)

	payrollItemSvc := payrollService.NewPayrollItemService(db, payrollRepo, payrollItemRepo)
	payrollItemSvc = payrollService.NewCachingPayrollItemService(payrollItemSvc, appCache, listTTL)
	payrollItemSvc = payrollService.NewLoggingPayrollItemService(payrollItemSvc, logger)

	reportSvc := reportService.NewReportService(
		reportRepo,
		payrollRepo,
		employeeRepo,
		bonusRepo,
		fileStorage,
		appCache,
		cfg.Cache.ReportTTL,
		cfg.Storage.PresignTTL,
	)

	if cfg.Bootstrap.AdminPassword != "" {
		if err := authService.EnsureUser(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword, user.RoleAdmin); err != nil {
			return fmt.Errorf("failed to ensure bootstrap admin: %w", err)
		}
		logger.Info("Bootstrap admin ensured", "username", cfg.Bootstrap.AdminUsername)
	} else {
		logger.Warn("BOOTSTRAP_ADMIN_PASSWORD is empty, skipping bootstrap admin")
	}

	router := appHTTP.NewRouter(logger, JWTService, cfg.CORS.AllowedOrigins, appHTTP.Handlers{
		Auth:           appHTTP.NewAuthHandler(authService),
		Master:         appHTTP.NewMasterHandler(masterService),
		Employee:       appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:     appHTTP.NewAttendanceHandler(attendanceSvc),
		Logistics:      appHTTP.NewLogisticsHandler(logisticsSvc),
		SocialSecurity: appHTTP.NewSocialSecurityHandler(socialSecuritySvc),
		Bonus:          appHTTP.NewBonusHandler(bonusSvc),
		Payroll:        appHTTP.NewPayrollHandler(payrollSvc, payrollItemSvc),
		Report:         appHTTP.NewReportHandler(reportSvc),
		Health:         appHTTP.NewHealthHandler(healthChecks),
		Files:          filesHandler,
	})

	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
