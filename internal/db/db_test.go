package db

import (
	"testing"

	"github.com/diewo77/go-dairy/internal/config"
	"github.com/diewo77/go-dairy/internal/store"
)

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{`  "postgres://u:p@h:5432/d"  `, "postgres://u:p@h:5432/d"},
		{"host=h   user=u dbname=d", "host=h user=u dbname=d sslmode=disable"},
		{"host=h user=u dbname=d sslmode=require", "host=h user=u dbname=d sslmode=require"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := NormalizeDSN(tt.in); got != tt.want {
			t.Errorf("NormalizeDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskDSN(t *testing.T) {
	if got := MaskDSN("host=h password=secret dbname=d"); got != "host=h password=*** dbname=d" {
		t.Errorf("unexpected mask %q", got)
	}
	if got := MaskDSN("postgres://u:secret@h:5432/d"); got != "postgres://u:***@h:5432/d" {
		t.Errorf("unexpected mask %q", got)
	}
}

func TestConnectSQLiteAndMigrate(t *testing.T) {
	cfg := config.DatabaseConfig{Driver: "sqlite", SQLitePath: "file:" + t.Name() + "?mode=memory&cache=shared"}
	conn, err := Connect(cfg, false)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !conn.Migrator().HasTable(&store.Record{}) {
		t.Fatal("expected records table")
	}
}

func TestConnectUnknownDriver(t *testing.T) {
	if _, err := Connect(config.DatabaseConfig{Driver: "oracle"}, false); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
