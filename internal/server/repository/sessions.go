package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Altair788/AdHub/internal/server/models"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/utils"
)

// SessionsRepository отвечает за хранение и управление refresh-сессиями пользователя.
//
// Используется для:
//   - хранения refresh-токенов (в виде хэшей)
//   - реализации refresh token rotation
//   - отзыва всех сессий после сброса пароля
type SessionsRepository struct {
	db *sql.DB
}

// NewSessionsRepository создает новый SessionsRepository.
func NewSessionsRepository(db *sql.DB) *SessionsRepository {
	return &SessionsRepository{db: db}
}

// Create создает новую refresh-сессию пользователя и возвращает её id.
func (r *SessionsRepository) Create(ctx context.Context, userID int64, refreshHash string, expiresAt time.Time) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO sessions (user_id, refresh_hash, expires_at)
		 VALUES ($1,$2,$3)
		 RETURNING id`,
		userID, refreshHash, expiresAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, mapError("sessions.Create", err)
	}
	return id, nil
}

// GetByRefreshHash возвращает сессию по хэшу refresh-токена.
//
// Если сессии нет, возвращается ErrUnauthorized: для клиента это просто недействительный токен.
func (r *SessionsRepository) GetByRefreshHash(ctx context.Context, refreshHash string) (models.Session, error) {
	var (
		s         models.Session
		revokedAt sql.NullTime
		replaced  sql.NullString
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at, revoked_at, replaced_by
		   FROM sessions
		  WHERE refresh_hash=$1`,
		refreshHash,
	).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &revokedAt, &replaced)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Session{}, serr.ErrUnauthorized
		}
		return models.Session{}, mapError("sessions.GetByRefreshHash", err)
	}

	s.RevokedAt = utils.PtrIf(revokedAt.Time, revokedAt.Valid)
	if replaced.Valid {
		if id, e := uuid.Parse(replaced.String); e == nil {
			s.ReplacedBy = &id
		}
	}
	return s, nil
}

// RevokeAndReplace отзывает старую refresh-сессию
// и помечает ее замененной новой.
func (r *SessionsRepository) RevokeAndReplace(ctx context.Context, oldID, newID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions
		    SET revoked_at = now(),
		        replaced_by = $2
		  WHERE id = $1
		    AND revoked_at IS NULL`,
		oldID, newID,
	)
	if err != nil {
		return mapError("sessions.RevokeAndReplace", err)
	}
	return nil
}

// RevokeAllForUser отзывает все активные refresh-сессии пользователя.
func (r *SessionsRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions
		    SET revoked_at = now()
		  WHERE user_id = $1
		    AND revoked_at IS NULL`,
		userID,
	)
	if err != nil {
		return mapError("sessions.RevokeAllForUser", err)
	}
	return nil
}

// PruneForUser оставляет пользователю не больше keep активных сессий,
// отзывая самые старые.
func (r *SessionsRepository) PruneForUser(ctx context.Context, userID int64, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions
		    SET revoked_at = now()
		  WHERE id IN (
		        SELECT id FROM sessions
		         WHERE user_id = $1
		           AND revoked_at IS NULL
		         ORDER BY created_at DESC
		        OFFSET $2)`,
		userID, keep,
	)
	if err != nil {
		return mapError("sessions.PruneForUser", err)
	}
	return nil
}
