package config

import (
	"testing"
	"time"
)

// setRequired satisfies every must() variable so Load can run in tests.
func setRequired(t *testing.T) {
	t.Helper()
	for k, v := range map[string]string{
		"APP_ENV":                "test",
		"APP_PORT":               "8080",
		"DB_USER":                "root",
		"DB_HOST":                "localhost",
		"DB_PORT":                "3306",
		"DB_NAME":                "booking",
		"JWT_SECRET":             "secret",
		"ACCESS_TOKEN_TTL_MIN":   "15",
		"REFRESH_TOKEN_TTL_DAYS": "7",
		"BCRYPT_COST":            "10",
	} {
		t.Setenv(k, v)
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
		"DB_PING_TIMEOUT", "HOLD_SWEEP_INTERVAL_SEC", "SEED_ON_START",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.DBMaxOpenConns != 25 || cfg.DBMaxIdleConns != 25 {
		t.Errorf("pool defaults = %d open / %d idle, want 25/25", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
	if cfg.DBConnLifetime != 30*time.Minute {
		t.Errorf("DBConnLifetime = %s, want 30m", cfg.DBConnLifetime)
	}
	if cfg.DBPingTimeout != 5*time.Second {
		t.Errorf("DBPingTimeout = %s, want 5s", cfg.DBPingTimeout)
	}
	if cfg.SweepInterval != time.Minute {
		t.Errorf("SweepInterval = %s, want 1m", cfg.SweepInterval)
	}
	if !cfg.SeedOnStart {
		t.Error("SeedOnStart = false, want true by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "5")
	t.Setenv("DB_MAX_IDLE_CONNS", "2")
	t.Setenv("DB_CONN_MAX_LIFETIME", "10m")
	t.Setenv("DB_PING_TIMEOUT", "1s")
	t.Setenv("HOLD_SWEEP_INTERVAL_SEC", "10")
	t.Setenv("SEED_ON_START", "false")

	cfg := Load()
	if cfg.DBMaxOpenConns != 5 || cfg.DBMaxIdleConns != 2 {
		t.Errorf("pool = %d open / %d idle, want 5/2", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
	if cfg.DBConnLifetime != 10*time.Minute {
		t.Errorf("DBConnLifetime = %s, want 10m", cfg.DBConnLifetime)
	}
	if cfg.DBPingTimeout != time.Second {
		t.Errorf("DBPingTimeout = %s, want 1s", cfg.DBPingTimeout)
	}
	if cfg.SweepInterval != 10*time.Second {
		t.Errorf("SweepInterval = %s, want 10s", cfg.SweepInterval)
	}
	if cfg.SeedOnStart {
		t.Error("SeedOnStart = true, want false")
	}
}
