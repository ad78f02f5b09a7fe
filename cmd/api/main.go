package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	httpadp "sales-daily-report/internal/adapter/http"
	idemp "sales-daily-report/internal/adapter/middleware"
	"sales-daily-report/internal/adapter/repository/mysql"
	"sales-daily-report/internal/config"
	"sales-daily-report/internal/infrastructure/cache"
	"sales-daily-report/internal/infrastructure/db"
	"sales-daily-report/internal/infrastructure/lock"
	"sales-daily-report/internal/jobs"
	"sales-daily-report/internal/logging"
	ucReport "sales-daily-report/internal/usecase/report"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.WithError(err).Fatal("open mysql")
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		log.WithError(err).Fatal("migrate schema")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.WithError(err).Fatal("mysql handle")
	}

	health := httpadp.NewHandler().WithDependency("mysql", sqlDB.PingContext)

	var (
		locker   lock.Locker = lock.NewLocal()
		mutating []echo.MiddlewareFunc
		alerts   *cache.AlertStore
	)
	if cfg.RedisEnabled {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Fatal("open redis")
		}
		defer func() { _ = rdb.Close() }()

		locker = lock.NewRedis(rdb, time.Duration(cfg.ReportLockTTLSecs)*time.Second)
		mutating = append(mutating, idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log))
		alerts = cache.NewAlertStore(rdb)
		health.WithDependency("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	} else {
		log.Warn("redis disabled: in-process report locks, no idempotency, no alerts")
	}

	reports := mysql.NewReportRepository(gdb)
	teams := mysql.NewTeamRepository(gdb)
	uc := ucReport.NewUsecase(reports, mysql.NewGormUoW(gdb, locker),
		ucReport.WithScope(teams),
		ucReport.WithRoster(teams),
		ucReport.WithLogger(log),
	)

	handlers := httpadp.Handlers{
		Health:  health,
		Reports: httpadp.NewReportHandler(uc, cfg.StatsPeriodDays),
		Teams:   httpadp.NewTeamHandler(teams),
		Alerts:  httpadp.NewAlertHandler(nil),
	}

	c := cron.New()
	if alerts != nil {
		handlers.Alerts = httpadp.NewAlertHandler(alerts)
		job := jobs.NewMissingReportJob(uc, alerts, log)
		if _, err := jobs.InitCronJobs(c, cfg.MissingReportCron, job); err != nil {
			log.WithError(err).Fatal("schedule cron jobs")
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method": v.Method, "uri": v.URI, "status": v.Status, "latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request failed")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))
	httpadp.Register(e, handlers, mutating...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	<-c.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
}
