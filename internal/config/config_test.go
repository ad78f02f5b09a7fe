package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "MYSQL_HOST", "REDIS_ENABLED", "STATS_PERIOD_DAYS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q, want 8080", c.AppPort)
	}
	if !c.RedisEnabled {
		t.Fatal("RedisEnabled should default to true")
	}
	if c.StatsPeriodDays != 30 {
		t.Fatalf("StatsPeriodDays = %d, want 30", c.StatsPeriodDays)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("STATS_PERIOD_DAYS", "7")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "not-a-number")

	c := Load()
	if c.AppPort != "9090" || c.RedisEnabled || c.RedisDB != 3 || c.StatsPeriodDays != 7 {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want lowercased debug", c.LogLevel)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("bad int should fall back to default, got %d", c.IdempTTLSecs)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort: "8080", MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d", MySQLUser: "u",
			RedisEnabled: true, RedisAddr: "r:6379",
			StatsPeriodDays: 30, ReportLockTTLSecs: 10, MissingReportCron: "0 9 * * *",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok", func(c *Config) {}, ""},
		{"missing host", func(c *Config) { c.MySQLHost = "" }, "missing MySQL config"},
		{"bad port", func(c *Config) { c.MySQLPort = "nope" }, "invalid MYSQL_PORT"},
		{"missing app port", func(c *Config) { c.AppPort = "" }, "missing APP_PORT"},
		{"redis without addr", func(c *Config) { c.RedisAddr = "" }, "missing REDIS_ADDR"},
		{"redis disabled without addr", func(c *Config) { c.RedisEnabled = false; c.RedisAddr = "" }, ""},
		{"zero period", func(c *Config) { c.StatsPeriodDays = 0 }, "STATS_PERIOD_DAYS"},
		{"zero lock ttl", func(c *Config) { c.ReportLockTTLSecs = 0 }, "REPORT_LOCK_TTL_SECONDS"},
		{"bad cron", func(c *Config) { c.MissingReportCron = "every day" }, "MISSING_REPORT_CRON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "db", MySQLPort: "3307", MySQLDB: "reports"}
	got := c.MySQLDSN()
	if !strings.HasPrefix(got, "u:p@tcp(db:3307)/reports?") {
		t.Fatalf("dsn = %q", got)
	}
	if !strings.Contains(got, "parseTime=true") {
		t.Fatalf("dsn missing parseTime: %q", got)
	}
}
