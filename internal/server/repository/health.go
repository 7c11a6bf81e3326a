package repository

import (
	"context"
	"database/sql"
)

// HealthRepository проверяет доступность БД для /healthz.
type HealthRepository struct {
	db *sql.DB
}

func NewHealthRepository(db *sql.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

func (r *HealthRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return mapError("health.Ping", err)
	}
	return nil
}
