package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisEnabled bool
	RedisAddr    string
	RedisDB      int

	IdempTTLSecs      int
	ReportLockTTLSecs int

	StatsPeriodDays   int
	MissingReportCron string

	LogLevel  string
	LogFormat string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

// Load reads the process environment. A .env file in the working directory is
// merged first when present; variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "sales_reports"),
		MySQLUser: getenv("MYSQL_USER", "sales"),
		MySQLPass: getenv("MYSQL_PASS", "sales"),

		RedisEnabled: getenvBool("REDIS_ENABLED", true),
		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),

		IdempTTLSecs:      getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		ReportLockTTLSecs: getenvInt("REPORT_LOCK_TTL_SECONDS", 10),

		StatsPeriodDays:   getenvInt("STATS_PERIOD_DAYS", 30),
		MissingReportCron: getenv("MISSING_REPORT_CRON", "0 9 * * *"),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "json")),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.RedisEnabled && c.RedisAddr == "" {
		return errors.New("missing REDIS_ADDR (set REDIS_ENABLED=false to run without redis)")
	}
	if c.StatsPeriodDays <= 0 {
		return fmt.Errorf("invalid STATS_PERIOD_DAYS %d: must be positive", c.StatsPeriodDays)
	}
	if c.ReportLockTTLSecs <= 0 {
		return fmt.Errorf("invalid REPORT_LOCK_TTL_SECONDS %d: must be positive", c.ReportLockTTLSecs)
	}
	if _, err := cron.ParseStandard(c.MissingReportCron); err != nil {
		return fmt.Errorf("invalid MISSING_REPORT_CRON %q: %w", c.MissingReportCron, err)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime is needed for DATE/DATETIME columns
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
