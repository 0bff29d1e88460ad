package app

import (
	"context"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func testLogger() *log.Entry {
	logger := log.New()
	logger.SetLevel(log.ErrorLevel)
	return logger.WithField("component", "test")
}

func TestNewDependencies_Memory(t *testing.T) {
	cfg := DefaultConfig()

	deps, err := NewDependencies(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer deps.Close()

	if deps.Orders == nil {
		t.Error("expected orders service to be initialized")
	}
	if deps.Products == nil {
		t.Error("expected products service to be initialized")
	}
	if deps.Health == nil {
		t.Error("expected health handler to be initialized")
	}
	if deps.Metrics == nil {
		t.Error("expected metrics to be initialized")
	}
}

func TestNewDependencies_EmptyDriverFallsBackToMemory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = ""

	deps, err := NewDependencies(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deps.Close()
}

func TestNewDependencies_PostgresRequiresDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres
	cfg.PostgresDSN = ""

	_, err := NewDependencies(context.Background(), cfg, testLogger())
	if err == nil {
		t.Fatal("expected error for postgres driver without DSN")
	}
	if !strings.Contains(err.Error(), "ORDENES_POSTGRES_DSN") {
		t.Errorf("expected DSN hint in error, got: %v", err)
	}
}

func TestNewDependencies_UnsupportedDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "cassandra"

	_, err := NewDependencies(context.Background(), cfg, testLogger())
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
