package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "BLOB_DRIVER", "SIMULATED_LATENCY", "RESET_TOKEN_TTL", "DATABASE_DSN", "STORE_KEY_PREFIX"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port 8080 got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Blob.Driver != "fs" {
		t.Fatalf("unexpected drivers %s/%s", cfg.Database.Driver, cfg.Blob.Driver)
	}
	if cfg.Store.KeyPrefix != "yd-" {
		t.Fatalf("unexpected prefix %s", cfg.Store.KeyPrefix)
	}
	if cfg.App.SimulatedLatency != 0 || cfg.App.ResetTokenTTL != 5*time.Minute {
		t.Fatalf("unexpected app config %+v", cfg.App)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/dairy")
	t.Setenv("SIMULATED_LATENCY", "300")
	t.Setenv("RESET_TOKEN_TTL", "90s")
	t.Setenv("BLOB_S3_PATH_STYLE", "true")
	t.Setenv("SERVER_READ_TIMEOUT", "nope")

	cfg := Load()
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("expected lowercased driver got %s", cfg.Database.Driver)
	}
	if cfg.Database.DSN() != "postgres://u:p@db:5432/dairy" {
		t.Fatalf("expected DATABASE_DSN to win, got %s", cfg.Database.DSN())
	}
	if cfg.App.SimulatedLatency != 300*time.Millisecond {
		t.Fatalf("expected 300ms got %s", cfg.App.SimulatedLatency)
	}
	if cfg.App.ResetTokenTTL != 90*time.Second {
		t.Fatalf("expected 90s got %s", cfg.App.ResetTokenTTL)
	}
	if !cfg.Blob.S3PathStyle {
		t.Fatal("expected path style")
	}
	if cfg.Server.ReadTimeout != 15 {
		t.Fatalf("invalid int should fall back, got %d", cfg.Server.ReadTimeout)
	}
}

func TestDSNFromFields(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	if d.DSN() != "host=h port=1 user=u password=p dbname=n sslmode=disable" {
		t.Fatalf("unexpected dsn %s", d.DSN())
	}
}
