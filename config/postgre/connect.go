package postgre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"

	"restock-srv/config"
)

const (
	connectTimeout  = 5 * time.Second
	connMaxIdleTime = 5 * time.Minute
)

var (
	instance *sql.DB
	mu       sync.Mutex
)

// DSN builds the lib/pq connection string.
func DSN(cfg config.PostgresConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode)
}

// Connect opens the pool once and reuses it afterwards. A failed attempt can be retried.
func Connect(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.DBName, err)
	}

	instance = db
	return instance, nil
}

// HealthCheck pings the shared pool.
func HealthCheck(ctx context.Context) error {
	mu.Lock()
	db := instance
	mu.Unlock()

	if db == nil {
		return errors.New("PostgreSQL client not initialized")
	}
	return db.PingContext(ctx)
}

// Disconnect closes the shared pool so Connect can open a new one.
func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	if err != nil {
		return fmt.Errorf("failed to close PostgreSQL connection: %w", err)
	}
	return nil
}
