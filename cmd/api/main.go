package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/tattoo-scheduler/internal/db"
	domainAppointment "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/handlers"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/tattoo-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/logger"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/metrics"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/routes"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/scheduler"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/tattoo-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/tattoo-scheduler/internal/usecase/availability"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/validators"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := validators.Register(); err != nil {
		zlog.Fatal("failed to register validators", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}

	loc := timezone.Location(cfg.Timezone)
	clock := timezone.SystemClock(loc)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	servicePriceRepo := infraRepo.NewServicePriceGormRepository(db)

	var availabilityStore availability.Store = infraRepo.NewAvailabilityGormRepository(db)
	if rdb, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		zlog.Warn("redis unavailable, availability cache disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		availabilityStore = cache.NewAvailabilityCache(availabilityStore, rdb, cfg.AvailabilityCacheTTL, zlog)
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, zlog, 256)

	schedulingMetrics := metrics.NewSchedulingMetrics(prometheus.DefaultRegisterer)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	getAvailabilityUC := ucAvailability.NewGetWeeklyAvailability(availabilityStore)
	setAvailabilityUC := ucAvailability.NewSetWeeklyAvailability(availabilityStore, auditDispatcher)
	deleteAvailabilityUC := ucAvailability.NewDeleteWeeklyAvailability(availabilityStore, auditDispatcher)

	slotsUC := ucAppointment.NewGetAvailableSlots(
		availabilityStore,
		appointmentRepo,
		servicePriceRepo,
		cfg.SlotGranularity,
		loc,
		clock,
		schedulingMetrics,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		servicePriceRepo,
		auditDispatcher,
		schedulingMetrics,
		clock,
		cfg.BookingTimeout,
		zlog,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		domainAppointment.CancellationPolicy{Cutoff: cfg.CancellationCutoff},
		auditDispatcher,
		schedulingMetrics,
		clock,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher, clock)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo, loc)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo, loc)

	// ======================================================
	// ⏱️ SWEEPER
	// ======================================================
	sweeper := scheduler.NewSweeper(
		appointmentRepo,
		completeAppointmentUC,
		scheduler.Config{Interval: cfg.SweepInterval, BatchSize: cfg.SweepBatchSize},
		clock,
		schedulingMetrics,
		zlog.Named("sweeper"),
	)

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			zlog.Error("sweeper stopped", zap.Error(err))
		}
	}()

	// ======================================================
	// 🧩 HTTP
	// ======================================================
	if cfg.LogFormat == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Dependencies{
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Log:         zlog,
		Gatherer:    prometheus.DefaultGatherer,
		Appointments: handlers.NewAppointmentHandler(
			createAppointmentUC,
			cancelAppointmentUC,
			listAppointmentsByDateUC,
			listAppointmentsByMonthUC,
			loc,
			clock,
		),
		Availability: handlers.NewAvailabilityHandler(
			getAvailabilityUC,
			setAvailabilityUC,
			deleteAvailabilityUC,
		),
		Public:        handlers.NewPublicHandler(slotsUC, loc),
		ServicePrices: handlers.NewServicePriceHandler(servicePriceRepo, auditDispatcher),
		AuditLogs:     handlers.NewAuditLogsHandler(auditLogger, loc),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server running", zap.String("addr", cfg.Addr()), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("http shutdown", zap.Error(err))
	}
	<-sweepDone

	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		zlog.Warn("audit dispatcher did not drain", zap.Error(err))
	}
}
