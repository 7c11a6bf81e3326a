// Package config содержит инициализацию подключения к базе данных сервера
// и доступ к глобальному экземпляру *sql.DB.
//
// Пакет выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx);
//   - настройку пула соединений;
//   - проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate) при старте сервера.
//
// Инициализация должна выполняться один раз при запуске сервера.
package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/Altair788/AdHub/internal/shared/logger"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// DB: глобальный экземпляр подключения к базе данных.
var DB *sql.DB

// Init открывает подключение к базе данных, проверяет его доступность
// и, если включено, применяет миграции из cfg.Migrations.Path.
func Init(ctx context.Context, cfg *Config, log *logger.HTTPLogger) error {
	customLog := log.Sugar()

	db, err := Open(ctx, cfg.DB)
	if err != nil {
		customLog.Errorf("error to connect db: %v", err)
		return err
	}
	DB = db

	if !cfg.Migrations.Enabled {
		return nil
	}
	if err := Migrate(db, cfg.Migrations.Path); err != nil {
		customLog.Errorf("error applying migrations: %v", err)
		return err
	}

	customLog.Info("migrations applied successfully")
	return nil
}

// Open создаёт пул соединений pgx и проверяет его пингом.
func Open(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// Migrate применяет миграции из source (например file://migrations/postgres).
// migrate.ErrNoChange ошибкой не считается.
func Migrate(db *sql.DB, source string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// GetDB возвращает текущий глобальный экземпляр *sql.DB.
//
// Может быть nil, если Init ещё не вызывался или завершился ошибкой.
func GetDB() *sql.DB {
	return DB
}
