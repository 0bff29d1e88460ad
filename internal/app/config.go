package app

import "os"

// Драйверы хранилища, поддерживаемые приложением.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool
}

// DefaultConfig возвращает базовые адреса API и HTTP-метрик
// и хранилище в памяти.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
	}
}

// ConfigFromEnv формирует конфигурацию, позволяя переопределить
// значения через переменные окружения.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("ORDENES_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ORDENES_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("ORDENES_STORAGE_DRIVER"); v != "" {
		cfg.StorageDriver = v
	}
	if v := os.Getenv("ORDENES_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
		if cfg.StorageDriver == StorageDriverMemory && os.Getenv("ORDENES_STORAGE_DRIVER") == "" {
			cfg.StorageDriver = StorageDriverPostgres
		}
	}
	if v := os.Getenv("ORDENES_POSTGRES_AUTO_MIGRATE"); v == "false" || v == "0" {
		cfg.PostgresAutoMigrate = false
	}
	return cfg
}
